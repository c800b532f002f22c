package service

import (
	"context"
	"encoding/json"
	"proctor_guard_backend/internal/model"
	"proctor_guard_backend/internal/repository"
	"proctor_guard_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	dashboardStatsKey = "dashboard:stats"
	dashboardStatsTTL = 10 * time.Second
)

// DashboardService 汇总监考总览计数。监控页每秒都在轮询，
// 计数走 Redis 短缓存，Redis 不可用时直接查库。
type DashboardService struct {
	StudentRepo    *repository.StudentRepository
	ExamRepo       *repository.ExamRepository
	AlertRepo      *repository.AlertRepository
	SubmissionRepo *repository.SubmissionRepository
	Redis          *redis.Client
}

func NewDashboardService(
	studentRepo *repository.StudentRepository,
	examRepo *repository.ExamRepository,
	alertRepo *repository.AlertRepository,
	submissionRepo *repository.SubmissionRepository,
	rdb *redis.Client,
) *DashboardService {
	return &DashboardService{
		StudentRepo:    studentRepo,
		ExamRepo:       examRepo,
		AlertRepo:      alertRepo,
		SubmissionRepo: submissionRepo,
		Redis:          rdb,
	}
}

func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, dashboardStatsKey).Result()
		if err == nil {
			var cached model.DashboardStats
			if jerr := json.Unmarshal([]byte(val), &cached); jerr == nil {
				return &cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Debug("Dashboard stats cache read failed", zap.Error(err))
		}
	}

	stats, err := s.collect()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		val, _ := json.Marshal(stats)
		if err := s.Redis.Set(ctx, dashboardStatsKey, val, dashboardStatsTTL).Err(); err != nil {
			logger.Log.Debug("Dashboard stats cache write failed", zap.Error(err))
		}
	}

	return stats, nil
}

func (s *DashboardService) collect() (*model.DashboardStats, error) {
	stats := &model.DashboardStats{}

	var err error
	if stats.Students, err = s.StudentRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Exams, err = s.ExamRepo.Count(); err != nil {
		return nil, err
	}
	if stats.Alerts, err = s.AlertRepo.Count(); err != nil {
		return nil, err
	}
	if stats.CriticalAlerts, err = s.AlertRepo.CountBySeverity(model.SeverityCritical); err != nil {
		return nil, err
	}
	if stats.WarningAlerts, err = s.AlertRepo.CountBySeverity(model.SeverityWarning); err != nil {
		return nil, err
	}
	if stats.Screenshots, err = s.AlertRepo.CountScreenshots(); err != nil {
		return nil, err
	}
	if stats.Submissions, err = s.SubmissionRepo.Count(); err != nil {
		return nil, err
	}
	if stats.FlaggedSubmissions, err = s.SubmissionRepo.CountFlagged(); err != nil {
		return nil, err
	}

	return stats, nil
}
