package service

import (
	"proctor_guard_backend/internal/model"
	"proctor_guard_backend/internal/repository"
)

type ExamService struct {
	Repo *repository.ExamRepository
}

func NewExamService(repo *repository.ExamRepository) *ExamService {
	return &ExamService{Repo: repo}
}

type CreateExamRequest struct {
	Name           string `json:"name" binding:"required"`
	Code           string `json:"code"`
	Duration       int    `json:"duration"`
	TotalQuestions int    `json:"total_questions"`
}

func (s *ExamService) Create(req *CreateExamRequest) (*model.Exam, error) {
	exam := &model.Exam{
		Name:           req.Name,
		Code:           req.Code,
		Duration:       req.Duration,
		TotalQuestions: req.TotalQuestions,
	}
	if err := s.Repo.Create(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) Get(id uint) (*model.Exam, error) {
	return s.Repo.FindByID(id)
}

func (s *ExamService) List() ([]model.Exam, error) {
	return s.Repo.FindAll()
}
