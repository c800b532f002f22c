package service

import (
	"context"
	"encoding/json"
	"fmt"
	"proctor_guard_backend/internal/model"
	"proctor_guard_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const presenceKeyPrefix = "presence:student:"

// PresenceService 基于 Redis 维护考生在线状态：每分析一帧就刷新一次
// 带 TTL 的键，monitor 页面扫描前缀得到实时在考名单。
// Redis 未启用时所有方法都是空操作，考试监控核心流程不依赖它。
type PresenceService struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewPresenceService(rdb *redis.Client, ttlSeconds int) *PresenceService {
	if ttlSeconds <= 0 {
		ttlSeconds = 30
	}
	return &PresenceService{Redis: rdb, TTL: time.Duration(ttlSeconds) * time.Second}
}

// Touch 记录一次心跳，键到期即视为离线。
func (s *PresenceService) Touch(ctx context.Context, studentID, examID uint) {
	if s == nil || s.Redis == nil {
		return
	}

	entry := model.LiveStudent{
		StudentID: studentID,
		ExamID:    examID,
		LastSeen:  time.Now().UTC(),
	}
	val, _ := json.Marshal(entry)

	key := fmt.Sprintf("%s%d", presenceKeyPrefix, studentID)
	if err := s.Redis.Set(ctx, key, val, s.TTL).Err(); err != nil {
		logger.Log.Debug("Presence touch failed", zap.Uint("student_id", studentID), zap.Error(err))
	}
}

// Live 扫描所有未过期的心跳键，返回当前在考的学生。
func (s *PresenceService) Live(ctx context.Context) ([]model.LiveStudent, error) {
	students := make([]model.LiveStudent, 0)
	if s == nil || s.Redis == nil {
		return students, nil
	}

	var cursor uint64
	for {
		keys, next, err := s.Redis.Scan(ctx, cursor, presenceKeyPrefix+"*", 100).Result()
		if err != nil {
			return nil, err
		}

		for _, key := range keys {
			val, err := s.Redis.Get(ctx, key).Result()
			if err == redis.Nil {
				continue // 扫描和读取之间刚好过期
			}
			if err != nil {
				return nil, err
			}

			var entry model.LiveStudent
			if err := json.Unmarshal([]byte(val), &entry); err != nil {
				logger.Log.Warn("Dropping malformed presence entry", zap.String("key", key), zap.Error(err))
				continue
			}
			students = append(students, entry)
		}

		cursor = next
		if cursor == 0 {
			break
		}
	}

	return students, nil
}
