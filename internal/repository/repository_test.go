package repository

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"proctor_guard_backend/internal/model"
	"proctor_guard_backend/pkg/database"
)

// setupTestDB 每个测试一个独立的内存库，外键约束打开，迁移跑全
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
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
