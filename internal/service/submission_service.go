package service

import (
	"context"
	"proctor_guard_backend/internal/model"
	"proctor_guard_backend/internal/repository"
	"proctor_guard_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type SubmissionService struct {
	SubmissionRepo *repository.SubmissionRepository
	ExamRepo       *repository.ExamRepository
}

func NewSubmissionService(submissionRepo *repository.SubmissionRepository, examRepo *repository.ExamRepository) *SubmissionService {
	return &SubmissionService{SubmissionRepo: submissionRepo, ExamRepo: examRepo}
}

// SubmitExamInput 规范化后的交卷请求。ExamRef 可以是数字 id 或考试 code。
type SubmitExamInput struct {
	StudentRef interface{}
	ExamRef    interface{}
	Answers    map[string]interface{}
	Score      *float64
	Flagged    bool
}

// Submit 落一条交卷记录。答案按 JSON 存储，考试 code 在入库前解析成
// 数字 id，解析不了直接报错而不是写空外键。
func (s *SubmissionService) Submit(ctx context.Context, in SubmitExamInput) (*model.Submission, error) {
	studentID, err := ResolveStudentRef(in.StudentRef)
	if err != nil {
		return nil, err
	}
	examID, err := ResolveExamRef(s.ExamRepo, in.ExamRef)
	if err != nil {
		return nil, err
	}

	answers := in.Answers
	if answers == nil {
		answers = map[string]interface{}{}
	}

	// 没给分数按 0 分落库，列里不留 NULL
	score := in.Score
	if score == nil {
		zero := 0.0
		score = &zero
	}

	submission := &model.Submission{
		StudentID: studentID,
		ExamID:    examID,
		Answers:   datatypes.JSONMap(answers),
		Score:     score,
		Flagged:   in.Flagged,
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, translateWriteError(err)
	}

	logger.Log.Info("Submission recorded",
		zap.Uint("submission_id", submission.ID),
		zap.Uint("student_id", studentID),
		zap.Uint("exam_id", examID),
		zap.Bool("flagged", submission.Flagged))

	return submission, nil
}

func (s *SubmissionService) List() ([]model.Submission, error) {
	return s.SubmissionRepo.FindAll()
}

func (s *SubmissionService) ListByStudent(studentID uint) ([]model.Submission, error) {
	return s.SubmissionRepo.FindByStudentID(studentID)
}
