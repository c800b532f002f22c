package service

import (
	"proctor_guard_backend/internal/model"
	"proctor_guard_backend/internal/repository"
)

type StudentService struct {
	Repo *repository.StudentRepository
}

func NewStudentService(repo *repository.StudentRepository) *StudentService {
	return &StudentService{Repo: repo}
}

type CreateStudentRequest struct {
	Name   string  `json:"name" binding:"required"`
	Email  string  `json:"email" binding:"required"`
	ExamID *string `json:"exam_id"`
}

func (s *StudentService) Create(req *CreateStudentRequest) (*model.Student, error) {
	student := &model.Student{
		Name:   req.Name,
		Email:  req.Email,
		ExamID: req.ExamID,
	}
	if err := s.Repo.Create(student); err != nil {
		return nil, err
	}
	return student, nil
}

func (s *StudentService) Get(id uint) (*model.Student, error) {
	return s.Repo.FindByID(id)
}

func (s *StudentService) List() ([]model.Student, error) {
	return s.Repo.FindAll()
}
