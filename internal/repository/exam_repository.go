package repository

import (
	"proctor_guard_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

func (r *ExamRepository) Create(exam *model.Exam) error {
	return r.DB.Create(exam).Error
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.First(&exam, id).Error
	return &exam, err
}

// FindByCode 按考试码查找（EXAM-001 这类人类可读标识）
func (r *ExamRepository) FindByCode(code string) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Where("code = ?", code).First(&exam).Error
	return &exam, err
}

func (r *ExamRepository) FindAll() ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Order("id").Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&model.Exam{}).Count(&count).Error
	return count, err
}
