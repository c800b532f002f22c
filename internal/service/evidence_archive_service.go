package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"proctor_guard_backend/internal/config"
	"proctor_guard_backend/internal/model"
	"proctor_guard_backend/internal/util"
	"proctor_guard_backend/pkg/logger"
	"proctor_guard_backend/pkg/monitoring"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// StorageProvider 定义通用存储接口
type StorageProvider interface {
	Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error)
	GetURL(filename string) string
}

// LocalStorageProvider 本地存储实现
type LocalStorageProvider struct {
	Config *config.StorageConfig
}

func (p *LocalStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	dst := filepath.Join(p.Config.LocalPath, filename)
	dir := filepath.Dir(dst)
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	out, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer out.Close()

	_, err = io.Copy(out, reader)
	if err != nil {
		return "", err
	}

	return p.GetURL(filename), nil
}

func (p *LocalStorageProvider) GetURL(filename string) string {
	return "/" + filename
}

// MinioStorageProvider MinIO存储实现
type MinioStorageProvider struct {
	Config *config.StorageConfig
	Client *minio.Client
}

func NewMinioStorageProvider(cfg *config.StorageConfig) (*MinioStorageProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: false,
	})
	if err != nil {
		return nil, err
	}
	return &MinioStorageProvider{Config: cfg, Client: client}, nil
}

func (p *MinioStorageProvider) Upload(ctx context.Context, filename string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Config.MinioBucket, filename, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return p.GetURL(filename), nil
}

func (p *MinioStorageProvider) GetURL(filename string) string {
	return "/" + p.Config.MinioBucket + "/" + filename
}

// EvidenceArchiveService 把取证截图归档到对象存储。
// 数据库里的 image_data 是权威副本，归档只是给回看页面留原图，
// 所以上传失败不影响告警落库，只记日志和指标。
type EvidenceArchiveService struct {
	Provider StorageProvider
}

func NewEvidenceArchiveService(cfg *config.Config) *EvidenceArchiveService {
	s := &EvidenceArchiveService{}
	switch cfg.Storage.Type {
	case util.StorageNone, "":
		// 不归档，告警与截图照常落库
	case util.StorageLocal:
		s.Provider = &LocalStorageProvider{Config: &cfg.Storage}
	case util.StorageMinio:
		provider, err := NewMinioStorageProvider(&cfg.Storage)
		if err != nil {
			logger.Log.Warn("MinIO init failed, evidence archiving disabled", zap.Error(err))
			break
		}
		s.Provider = provider
	}
	return s
}

// Archive 上传一张已压缩的取证图，对象名带上考试与告警 id 便于按场次翻查。
func (s *EvidenceArchiveService) Archive(ctx context.Context, alert *model.Alert, data []byte) {
	if s == nil || s.Provider == nil || len(data) == 0 {
		return
	}

	objectName := fmt.Sprintf("evidence/%d/%d_%s.jpg", alert.ExamID, alert.ID, uuid.NewString())
	if _, err := s.Provider.Upload(ctx, objectName, bytes.NewReader(data), int64(len(data)), "image/jpeg"); err != nil {
		monitoring.EvidenceArchiveFailures.Inc()
		logger.Log.Warn("Evidence archive upload failed",
			zap.Uint("alert_id", alert.ID),
			zap.String("object", objectName),
			zap.Error(err))
		return
	}

	logger.Log.Debug("Evidence archived",
		zap.Uint("alert_id", alert.ID),
		zap.String("object", objectName))
}
