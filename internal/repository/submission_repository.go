package repository

import (
	"proctor_guard_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(submission *model.Submission) error {
	return r.DB.Omit(clause.Associations).Create(submission).Error
}

func (r *SubmissionRepository) FindAll() ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Order("submitted_at DESC, id DESC").Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) FindByStudentID(studentID uint) ([]model.Submission, error) {
	var submissions []model.Submission
	err := r.DB.Where("student_id = ?", studentID).Order("submitted_at DESC, id DESC").Find(&submissions).Error
	return submissions, err
}

func (r *SubmissionRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) CountFlagged() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).Where("flagged = ?", true).Count(&count).Error
	return count, err
}
