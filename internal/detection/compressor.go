package detection

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// 取证截图的固定压缩参数。相同输入永远得到相同输出字节，
// 不随请求配置变化。
const (
	evidenceWidth   = 640
	evidenceHeight  = 480
	evidenceQuality = 75
)

// CompressEvidenceBytes 把一帧缩放到 640x480（不保持宽高比，与采集端约定一致），
// 按质量 75 重编码为 JPEG。
func CompressEvidenceBytes(img image.Image) ([]byte, error) {
	resized := imaging.Resize(img, evidenceWidth, evidenceHeight, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(evidenceQuality)); err != nil {
		return nil, fmt.Errorf("encode evidence jpeg: %w", err)
	}

	return buf.Bytes(), nil
}

// CompressEvidence 同上，返回 base64 字符串（数据库内的存储形态）。
func CompressEvidence(img image.Image) (string, error) {
	raw, err := CompressEvidenceBytes(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
