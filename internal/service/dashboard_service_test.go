package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"proctor_guard_backend/internal/model"
	"proctor_guard_backend/internal/repository"
)

func newTestDashboardService(db *gorm.DB, rdb *redis.Client) *DashboardService {
	return NewDashboardService(
		repository.NewStudentRepository(db),
		repository.NewExamRepository(db),
		repository.NewAlertRepository(db),
		repository.NewSubmissionRepository(db),
		rdb,
	)
}

func seedDashboardRows(t *testing.T, db *gorm.DB) {
	t.Helper()
	student, exam := seedStudentAndExam(t, db)

	critical := &model.Alert{StudentID: student.ID, ExamID: exam.ID, Reason: "Multiple faces detected", Severity: model.SeverityCritical}
	require.NoError(t, db.Create(critical).Error)
	require.NoError(t, db.Create(&model.ViolationScreenshot{
		AlertID:       critical.ID,
		StudentID:     student.ID,
		ExamID:        exam.ID,
		ImageData:     "ZmFrZQ==",
		ViolationType: "multiple_faces_detected",
	}).Error)

	require.NoError(t, db.Create(&model.Alert{
		StudentID: student.ID, ExamID: exam.ID, Reason: "No face detected", Severity: model.SeverityWarning,
	}).Error)

	require.NoError(t, db.Create(&model.Submission{
		StudentID: student.ID, ExamID: exam.ID, Answers: datatypes.JSONMap{"q1": "A"}, Flagged: true,
	}).Error)
	require.NoError(t, db.Create(&model.Submission{
		StudentID: student.ID, ExamID: exam.ID, Answers: datatypes.JSONMap{"q1": "B"},
	}).Error)
}

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()

	t.Run("counts without cache", func(t *testing.T) {
		db := setupTestDB(t)
		seedDashboardRows(t, db)
		svc := newTestDashboardService(db, nil)

		stats, err := svc.Stats(ctx)
		require.NoError(t, err)

		assert.EqualValues(t, 1, stats.Students)
		assert.EqualValues(t, 1, stats.Exams)
		assert.EqualValues(t, 2, stats.Alerts)
		assert.EqualValues(t, 1, stats.CriticalAlerts)
		assert.EqualValues(t, 1, stats.WarningAlerts)
		assert.EqualValues(t, 1, stats.Screenshots)
		assert.EqualValues(t, 2, stats.Submissions)
		assert.EqualValues(t, 1, stats.FlaggedSubmissions)
	})

	t.Run("cached counts survive new writes until expiry", func(t *testing.T) {
		db := setupTestDB(t)
		seedDashboardRows(t, db)
		mr := miniredis.RunT(t)
		rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
		svc := newTestDashboardService(db, rdb)

		first, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, first.Alerts)

		var student model.Student
		require.NoError(t, db.First(&student).Error)
		var exam model.Exam
		require.NoError(t, db.First(&exam).Error)
		require.NoError(t, db.Create(&model.Alert{
			StudentID: student.ID, ExamID: exam.ID, Reason: "Left fullscreen mode", Severity: model.SeverityCritical,
		}).Error)

		cached, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 2, cached.Alerts)

		mr.FastForward(11 * time.Second)

		fresh, err := svc.Stats(ctx)
		require.NoError(t, err)
		assert.EqualValues(t, 3, fresh.Alerts)
	})
}
