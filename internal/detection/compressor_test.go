package detection

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientFrame(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8((x * 7) % 256), G: uint8((y * 3) % 256), B: uint8((x + y) % 256), A: 255})
		}
	}
	return img
}

func TestCompressEvidence(t *testing.T) {
	t.Run("output is a 640x480 jpeg", func(t *testing.T) {
		out, err := CompressEvidence(gradientFrame(1280, 720))
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(out)
		require.NoError(t, err)

		img, format, err := image.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 640, img.Bounds().Dx())
		assert.Equal(t, 480, img.Bounds().Dy())
	})

	t.Run("upscales small frames to the same target", func(t *testing.T) {
		out, err := CompressEvidence(gradientFrame(100, 100))
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(out)
		require.NoError(t, err)

		img, _, err := image.Decode(bytes.NewReader(raw))
		require.NoError(t, err)
		assert.Equal(t, 640, img.Bounds().Dx())
		assert.Equal(t, 480, img.Bounds().Dy())
	})

	t.Run("identical input yields identical bytes", func(t *testing.T) {
		frame := gradientFrame(800, 600)

		first, err := CompressEvidence(frame)
		require.NoError(t, err)
		second, err := CompressEvidence(frame)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("string form is the base64 of the byte form", func(t *testing.T) {
		frame := gradientFrame(640, 480)

		raw, err := CompressEvidenceBytes(frame)
		require.NoError(t, err)
		encoded, err := CompressEvidence(frame)
		require.NoError(t, err)

		assert.Equal(t, base64.StdEncoding.EncodeToString(raw), encoded)
	})

	t.Run("compresses harder than a full quality encode", func(t *testing.T) {
		frame := gradientFrame(1920, 1080)

		raw, err := CompressEvidenceBytes(frame)
		require.NoError(t, err)

		var full bytes.Buffer
		require.NoError(t, jpeg.Encode(&full, frame, &jpeg.Options{Quality: 100}))

		assert.Less(t, len(raw), full.Len())
	})
}
