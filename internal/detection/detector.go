package detection

import (
	"fmt"
	"image"
	"os"
	"sort"

	pigo "github.com/esimov/pigo/core"

	"proctor_guard_backend/internal/config"
	"proctor_guard_backend/internal/util"
)

// Region 检测到的人脸区域：中心点行列坐标 + 区域边长 + 置信度
type Region struct {
	Row   int     `json:"row"`
	Col   int     `json:"col"`
	Scale int     `json:"scale"`
	Score float32 `json:"score"`
}

// FaceDetector 对一帧图像返回检测到的人脸区域列表（可能为空）。
// 实现必须可以被多个请求并发调用。
type FaceDetector interface {
	Detect(img image.Image) ([]Region, error)
}

// PigoDetector 基于 pigo 级联分类器的实现。级联模型在进程启动时
// 加载并解包一次，之后只读。
type PigoDetector struct {
	classifier *pigo.Pigo
	cfg        config.DetectionConfig
}

func NewPigoDetector(cfg config.DetectionConfig) (*PigoDetector, error) {
	data, err := os.ReadFile(cfg.CascadeFile)
	if err != nil {
		return nil, fmt.Errorf("read cascade file: %w", err)
	}

	classifier, err := pigo.NewPigo().Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("unpack cascade: %w", err)
	}

	return &PigoDetector{classifier: classifier, cfg: cfg}, nil
}

func (d *PigoDetector) Detect(img image.Image) ([]Region, error) {
	src := pigo.ImgToNRGBA(img)
	cols := src.Bounds().Dx()
	rows := src.Bounds().Dy()
	if cols == 0 || rows == 0 {
		return nil, fmt.Errorf("%w: empty frame", util.ErrClassifier)
	}

	pixels := pigo.RgbToGrayscale(src)

	maxSize := cols
	if rows > maxSize {
		maxSize = rows
	}

	params := pigo.CascadeParams{
		MinSize:     d.cfg.MinFaceSize,
		MaxSize:     maxSize,
		ShiftFactor: d.cfg.ShiftFactor,
		ScaleFactor: d.cfg.ScaleFactor,
		ImageParams: pigo.ImageParams{
			Pixels: pixels,
			Rows:   rows,
			Cols:   cols,
			Dim:    cols,
		},
	}

	dets := d.classifier.RunCascade(params, 0.0)
	dets = d.classifier.ClusterDetections(dets, d.cfg.ClusterIoU)

	regions := make([]Region, 0, len(dets))
	for _, det := range dets {
		if float64(det.Q) < d.cfg.QualityThresh {
			continue
		}
		regions = append(regions, Region{
			Row:   det.Row,
			Col:   det.Col,
			Scale: det.Scale,
			Score: det.Q,
		})
	}

	// 置信度降序，结果顺序与帧内容一一对应
	sort.Slice(regions, func(i, j int) bool {
		if regions[i].Score != regions[j].Score {
			return regions[i].Score > regions[j].Score
		}
		if regions[i].Row != regions[j].Row {
			return regions[i].Row < regions[j].Row
		}
		return regions[i].Col < regions[j].Col
	})

	return regions, nil
}
