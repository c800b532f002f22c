package detection

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"proctor_guard_backend/internal/util"
)

func encodeTestPNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestDecodeFrame(t *testing.T) {
	t.Run("plain base64 payload", func(t *testing.T) {
		payload := encodeTestPNG(t, 32, 24)

		img, err := DecodeFrame(payload)
		require.NoError(t, err)
		assert.Equal(t, 32, img.Bounds().Dx())
		assert.Equal(t, 24, img.Bounds().Dy())
	})

	t.Run("data URI prefix is stripped", func(t *testing.T) {
		payload := "data:image/png;base64," + encodeTestPNG(t, 16, 16)

		img, err := DecodeFrame(payload)
		require.NoError(t, err)
		assert.Equal(t, 16, img.Bounds().Dx())
	})

	t.Run("surrounding whitespace tolerated", func(t *testing.T) {
		payload := "  " + encodeTestPNG(t, 8, 8) + "\n"

		_, err := DecodeFrame(payload)
		require.NoError(t, err)
	})

	t.Run("invalid base64 fails with decode error", func(t *testing.T) {
		_, err := DecodeFrame("not-base64!!!")
		require.Error(t, err)
		assert.ErrorIs(t, err, util.ErrDecodeFailed)
	})

	t.Run("valid base64 of garbage fails with decode error", func(t *testing.T) {
		payload := base64.StdEncoding.EncodeToString([]byte("definitely not an image"))

		_, err := DecodeFrame(payload)
		require.Error(t, err)
		assert.ErrorIs(t, err, util.ErrDecodeFailed)
	})

	t.Run("empty payload fails with decode error", func(t *testing.T) {
		_, err := DecodeFrame("")
		require.Error(t, err)
		assert.ErrorIs(t, err, util.ErrDecodeFailed)
	})
}
