package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"proctor_guard_backend/internal/model"
)

func TestAlertRepositoryCreateWithScreenshot(t *testing.T) {
	t.Run("alert and screenshot written together", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAlertRepository(db)
		student, exam := seedStudentAndExam(t, db)

		alert := &model.Alert{
			StudentID: student.ID,
			ExamID:    exam.ID,
			Reason:    "No face detected",
			Severity:  model.SeverityWarning,
		}
		shot := &model.ViolationScreenshot{
			StudentID:     student.ID,
			ExamID:        exam.ID,
			ImageData:     "ZmFrZS1qcGVn",
			ViolationType: "no_face_detected",
		}

		require.NoError(t, repo.CreateWithScreenshot(alert, shot))
		require.NotZero(t, alert.ID)
		assert.Equal(t, alert.ID, shot.AlertID)

		var shotCount int64
		require.NoError(t, db.Model(&model.ViolationScreenshot{}).Where("alert_id = ?", alert.ID).Count(&shotCount).Error)
		assert.Equal(t, int64(1), shotCount)
	})

	t.Run("nil screenshot writes only the alert", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAlertRepository(db)
		student, exam := seedStudentAndExam(t, db)

		alert := &model.Alert{
			StudentID: student.ID,
			ExamID:    exam.ID,
			Reason:    "Left fullscreen mode",
			Severity:  model.SeverityCritical,
		}
		require.NoError(t, repo.CreateWithScreenshot(alert, nil))

		var shotCount int64
		require.NoError(t, db.Model(&model.ViolationScreenshot{}).Count(&shotCount).Error)
		assert.Zero(t, shotCount)
	})

	t.Run("failed screenshot insert rolls back the alert", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAlertRepository(db)
		student, exam := seedStudentAndExam(t, db)

		alert := &model.Alert{
			StudentID: student.ID,
			ExamID:    exam.ID,
			Reason:    "Multiple faces detected",
			Severity:  model.SeverityCritical,
		}
		// 截图引用不存在的学生，外键让第二条插入失败
		shot := &model.ViolationScreenshot{
			StudentID:     student.ID + 9999,
			ExamID:        exam.ID,
			ImageData:     "ZmFrZS1qcGVn",
			ViolationType: "multiple_faces_detected",
		}

		err := repo.CreateWithScreenshot(alert, shot)
		require.Error(t, err)
		assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)

		var alertCount, shotCount int64
		require.NoError(t, db.Model(&model.Alert{}).Count(&alertCount).Error)
		require.NoError(t, db.Model(&model.ViolationScreenshot{}).Count(&shotCount).Error)
		assert.Zero(t, alertCount, "alert must be rolled back with its screenshot")
		assert.Zero(t, shotCount)
	})

	t.Run("alert for nonexistent student is rejected with zero rows", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAlertRepository(db)
		_, exam := seedStudentAndExam(t, db)

		alert := &model.Alert{
			StudentID: 424242,
			ExamID:    exam.ID,
			Reason:    "No face detected",
			Severity:  model.SeverityWarning,
		}

		err := repo.CreateWithScreenshot(alert, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, gorm.ErrForeignKeyViolated)

		var alertCount int64
		require.NoError(t, db.Model(&model.Alert{}).Count(&alertCount).Error)
		assert.Zero(t, alertCount)
	})

	t.Run("second screenshot for the same alert is rejected", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewAlertRepository(db)
		student, exam := seedStudentAndExam(t, db)

		alert := &model.Alert{StudentID: student.ID, ExamID: exam.ID, Reason: "No face detected", Severity: model.SeverityWarning}
		shot := &model.ViolationScreenshot{StudentID: student.ID, ExamID: exam.ID, ImageData: "YQ==", ViolationType: "no_face_detected"}
		require.NoError(t, repo.CreateWithScreenshot(alert, shot))

		duplicate := &model.ViolationScreenshot{
			AlertID:       alert.ID,
			StudentID:     student.ID,
			ExamID:        exam.ID,
			ImageData:     "Yg==",
			ViolationType: "no_face_detected",
		}
		err := db.Create(duplicate).Error
		require.Error(t, err)
	})
}

func TestAlertRepositoryViolationsWithEvidence(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAlertRepository(db)
	student, exam := seedStudentAndExam(t, db)

	older := &model.Alert{
		StudentID: student.ID,
		ExamID:    exam.ID,
		Reason:    "Left fullscreen mode",
		Severity:  model.SeverityCritical,
		Timestamp: time.Now().Add(-time.Hour),
	}
	require.NoError(t, repo.CreateWithScreenshot(older, nil))

	newer := &model.Alert{
		StudentID: student.ID,
		ExamID:    exam.ID,
		Reason:    "Multiple faces detected",
		Severity:  model.SeverityCritical,
		Timestamp: time.Now(),
	}
	shot := &model.ViolationScreenshot{
		StudentID:     student.ID,
		ExamID:        exam.ID,
		ImageData:     "ZmFrZS1qcGVn",
		ViolationType: "multiple_faces_detected",
	}
	require.NoError(t, repo.CreateWithScreenshot(newer, shot))

	rows, err := repo.ViolationsWithEvidence()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// 最近的告警排在最前
	assert.Equal(t, newer.ID, rows[0].AlertID)
	assert.Equal(t, "Alice", rows[0].StudentName)
	assert.Equal(t, "multiple_faces_detected", rows[0].ViolationType)
	assert.Equal(t, "ZmFrZS1qcGVn", rows[0].ImageData)

	// 没有截图的告警也要出现，取证字段为空
	assert.Equal(t, older.ID, rows[1].AlertID)
	assert.Empty(t, rows[1].ImageData)
	assert.Empty(t, rows[1].ViolationType)
	assert.Equal(t, model.SeverityCritical, rows[1].Severity)
}

func TestAlertRepositoryCounts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAlertRepository(db)
	student, exam := seedStudentAndExam(t, db)

	for _, severity := range []string{model.SeverityWarning, model.SeverityCritical, model.SeverityCritical} {
		require.NoError(t, repo.Create(&model.Alert{
			StudentID: student.ID,
			ExamID:    exam.ID,
			Reason:    "x",
			Severity:  severity,
		}))
	}

	total, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)

	critical, err := repo.CountBySeverity(model.SeverityCritical)
	require.NoError(t, err)
	assert.Equal(t, int64(2), critical)

	byStudent, err := repo.FindByStudentID(student.ID)
	require.NoError(t, err)
	assert.Len(t, byStudent, 3)

	none, err := repo.FindByStudentID(student.ID + 1)
	require.NoError(t, err)
	assert.Empty(t, none)
}
