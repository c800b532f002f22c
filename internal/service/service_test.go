package service

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"proctor_guard_backend/internal/detection"
	"proctor_guard_backend/internal/model"
	"proctor_guard_backend/internal/repository"
	"proctor_guard_backend/pkg/database"
)

// setupTestDB 每个测试一个独立的内存库，外键约束打开，迁移跑全
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.RunMigrations(db))
	return db
}

func seedStudentAndExam(t *testing.T, db *gorm.DB) (*model.Student, *model.Exam) {
	t.Helper()
	student := &model.Student{Name: "Alice", Email: "alice@example.com"}
	require.NoError(t, db.Create(student).Error)

	exam := &model.Exam{Name: "Algorithms Midterm", Code: "EXAM-001", Duration: 90, TotalQuestions: 40}
	require.NoError(t, db.Create(exam).Error)

	return student, exam
}

// stubDetector 返回固定数量的人脸，让服务层测试不依赖级联模型文件
type stubDetector struct {
	faces int
	err   error
}

func (d *stubDetector) Detect(img image.Image) ([]detection.Region, error) {
	if d.err != nil {
		return nil, d.err
	}
	regions := make([]detection.Region, d.faces)
	for i := range regions {
		regions[i] = detection.Region{Row: 100 + i, Col: 100 + i, Scale: 80, Score: 20}
	}
	return regions, nil
}

func newTestProctorService(db *gorm.DB, detector detection.FaceDetector) *ProctorService {
	return NewProctorService(
		repository.NewAlertRepository(db),
		repository.NewExamRepository(db),
		detector,
		&EvidenceArchiveService{},
		NewPresenceService(nil, 0),
	)
}

// pngFrame 生成一帧 data URI 形式的 PNG，模拟前端 canvas.toDataURL 的输出
func pngFrame(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8((x * 5) % 256), G: uint8((y * 11) % 256), B: uint8((x ^ y) % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}
