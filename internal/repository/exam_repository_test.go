package repository

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestExamRepositoryLookup(t *testing.T) {
	db := setupTestDB(t)
	repo := NewExamRepository(db)
	_, exam := seedStudentAndExam(t, db)

	t.Run("by id", func(t *testing.T) {
		found, err := repo.FindByID(exam.ID)
		require.NoError(t, err)
		assert.Equal(t, "EXAM-001", found.Code)
	})

	t.Run("by code", func(t *testing.T) {
		found, err := repo.FindByCode("EXAM-001")
		require.NoError(t, err)
		assert.Equal(t, exam.ID, found.ID)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := repo.FindByCode("EXAM-404")
		require.Error(t, err)
		assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	})
}
