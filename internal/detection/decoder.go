package detection

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"strings"

	"proctor_guard_backend/internal/util"
)

// DecodeFrame 把 base64 编码的帧载荷解码成像素矩阵。
// 载荷可以带 data URI 头（data:image/jpeg;base64,xxxx），逗号之前的部分会被剥掉。
// 载荷不是合法图像数据时返回 util.ErrDecodeFailed。
func DecodeFrame(payload string) (image.Image, error) {
	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrDecodeFailed, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrDecodeFailed, err)
	}

	return img, nil
}
