package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"proctor_guard_backend/internal/detection"
	"proctor_guard_backend/internal/model"
	"proctor_guard_backend/internal/repository"
	"proctor_guard_backend/internal/util"
	"proctor_guard_backend/pkg/logger"
	"proctor_guard_backend/pkg/monitoring"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProctorService struct {
	AlertRepo *repository.AlertRepository
	ExamRepo  *repository.ExamRepository
	Detector  detection.FaceDetector
	Archive   *EvidenceArchiveService
	Presence  *PresenceService
}

func NewProctorService(
	alertRepo *repository.AlertRepository,
	examRepo *repository.ExamRepository,
	detector detection.FaceDetector,
	archive *EvidenceArchiveService,
	presence *PresenceService,
) *ProctorService {
	return &ProctorService{
		AlertRepo: alertRepo,
		ExamRepo:  examRepo,
		Detector:  detector,
		Archive:   archive,
		Presence:  presence,
	}
}

// AnalyzeFrameInput 是规范化后的帧分析请求，引用字段保持原始 JSON 形态，
// 由 ResolveStudentRef / ResolveExamRef 统一收口。
type AnalyzeFrameInput struct {
	Image      string
	StudentRef interface{}
	ExamRef    interface{}
}

// FrameAnalysis 单帧分析结果。无违规时 alert=false，其余字段为 null，
// 与旧版前端的轮询逻辑保持兼容。
type FrameAnalysis struct {
	Alert           bool    `json:"alert"`
	Reason          *string `json:"reason"`
	Severity        *string `json:"severity"`
	ViolationType   *string `json:"violation_type"`
	CompressedImage *string `json:"compressed_image"`
	AlertID         *uint   `json:"alert_id,omitempty"`
}

// AnalyzeFrame 解码一帧、统计人脸数并按判定表落库。
// 0 张脸记 warning 告警，2 张以上记 critical，恰好 1 张不产生任何写入。
func (s *ProctorService) AnalyzeFrame(ctx context.Context, in AnalyzeFrameInput) (*FrameAnalysis, error) {
	studentID, err := ResolveStudentRef(in.StudentRef)
	if err != nil {
		return nil, err
	}
	examID, err := ResolveExamRef(s.ExamRepo, in.ExamRef)
	if err != nil {
		return nil, err
	}

	img, err := detection.DecodeFrame(in.Image)
	if err != nil {
		return nil, err
	}

	faces, err := s.Detector.Detect(img)
	if err != nil {
		if errors.Is(err, util.ErrClassifier) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", util.ErrClassifier, err)
	}
	monitoring.FramesAnalyzed.Inc()

	verdict := detection.ClassifyFaceCount(len(faces))
	result := &FrameAnalysis{Alert: verdict.Alert}
	if !verdict.Alert {
		s.Presence.Touch(ctx, studentID, examID)
		return result, nil
	}

	// 压缩失败只丢截图不丢告警
	var shot *model.ViolationScreenshot
	var compressed []byte
	if raw, cerr := detection.CompressEvidenceBytes(img); cerr != nil {
		logger.Log.Warn("Evidence compression failed, recording alert without screenshot",
			zap.Uint("student_id", studentID), zap.Error(cerr))
	} else {
		compressed = raw
		encoded := base64.StdEncoding.EncodeToString(raw)
		shot = &model.ViolationScreenshot{
			StudentID:     studentID,
			ExamID:        examID,
			ImageData:     encoded,
			ViolationType: verdict.ViolationType,
		}
		result.CompressedImage = &encoded
	}

	alert := &model.Alert{
		StudentID: studentID,
		ExamID:    examID,
		Reason:    verdict.Reason,
		Severity:  verdict.Severity,
	}
	if err := s.AlertRepo.CreateWithScreenshot(alert, shot); err != nil {
		return nil, translateWriteError(err)
	}

	result.Reason = &alert.Reason
	result.Severity = &alert.Severity
	result.ViolationType = &verdict.ViolationType
	result.AlertID = &alert.ID

	monitoring.ViolationsRecorded.WithLabelValues(verdict.ViolationType, verdict.Severity).Inc()
	s.Archive.Archive(ctx, alert, compressed)
	s.Presence.Touch(ctx, studentID, examID)

	logger.Log.Info("Violation recorded from frame analysis",
		zap.Uint("alert_id", alert.ID),
		zap.Uint("student_id", studentID),
		zap.Uint("exam_id", examID),
		zap.Int("faces", len(faces)),
		zap.String("severity", alert.Severity))

	return result, nil
}

// LogViolationInput 客户端主动上报的违规事件（切屏、退出全屏等）。
type LogViolationInput struct {
	StudentRef    interface{}
	ExamRef       interface{}
	ViolationType string
	Reason        string
	Severity      string
	Image         string
}

type LoggedViolation struct {
	Success bool `json:"success"`
	AlertID uint `json:"alert_id"`
}

// LogViolation 记录一条客户端上报的违规。已登记的类型用判定表里的
// reason 和 severity；未登记的类型必须由调用方给出合法 severity，
// 不做静默降级。
func (s *ProctorService) LogViolation(ctx context.Context, in LogViolationInput) (*LoggedViolation, error) {
	studentID, err := ResolveStudentRef(in.StudentRef)
	if err != nil {
		return nil, err
	}
	examID, err := ResolveExamRef(s.ExamRepo, in.ExamRef)
	if err != nil {
		return nil, err
	}

	violationType := strings.TrimSpace(in.ViolationType)
	verdict, known := detection.LookupViolation(violationType)
	if !known {
		severity := strings.TrimSpace(in.Severity)
		if severity == "" {
			return nil, fmt.Errorf("%w: %q", util.ErrSeverityRequired, violationType)
		}
		if !model.ValidSeverity(severity) {
			return nil, fmt.Errorf("%w: got %q", util.ErrInvalidSeverity, severity)
		}
		reason := strings.TrimSpace(in.Reason)
		if reason == "" {
			reason = detection.DefaultReason
		}
		verdict = detection.Verdict{
			Alert:         true,
			Reason:        reason,
			Severity:      severity,
			ViolationType: violationType,
		}
	}

	// 带了截图就一并压缩入库，图是坏的按解码失败处理
	var shot *model.ViolationScreenshot
	var compressed []byte
	if in.Image != "" {
		img, derr := detection.DecodeFrame(in.Image)
		if derr != nil {
			return nil, derr
		}
		if raw, cerr := detection.CompressEvidenceBytes(img); cerr != nil {
			logger.Log.Warn("Evidence compression failed, recording alert without screenshot",
				zap.Uint("student_id", studentID), zap.Error(cerr))
		} else {
			compressed = raw
			shot = &model.ViolationScreenshot{
				StudentID:     studentID,
				ExamID:        examID,
				ImageData:     base64.StdEncoding.EncodeToString(raw),
				ViolationType: verdict.ViolationType,
			}
		}
	}

	alert := &model.Alert{
		StudentID: studentID,
		ExamID:    examID,
		Reason:    verdict.Reason,
		Severity:  verdict.Severity,
	}
	if err := s.AlertRepo.CreateWithScreenshot(alert, shot); err != nil {
		return nil, translateWriteError(err)
	}

	monitoring.ViolationsRecorded.WithLabelValues(verdict.ViolationType, verdict.Severity).Inc()
	s.Archive.Archive(ctx, alert, compressed)
	s.Presence.Touch(ctx, studentID, examID)

	logger.Log.Info("Violation logged",
		zap.Uint("alert_id", alert.ID),
		zap.Uint("student_id", studentID),
		zap.Uint("exam_id", examID),
		zap.String("violation_type", verdict.ViolationType),
		zap.String("severity", alert.Severity))

	return &LoggedViolation{Success: true, AlertID: alert.ID}, nil
}

// CreateAlertInput 人工录入告警（监考老师后台手动补记）。
type CreateAlertInput struct {
	StudentRef interface{}
	ExamRef    interface{}
	Reason     string
	Severity   string
}

func (s *ProctorService) CreateAlert(ctx context.Context, in CreateAlertInput) (*model.Alert, error) {
	studentID, err := ResolveStudentRef(in.StudentRef)
	if err != nil {
		return nil, err
	}
	examID, err := ResolveExamRef(s.ExamRepo, in.ExamRef)
	if err != nil {
		return nil, err
	}

	// 手工告警的 severity 允许缺省为 warning，这是接口文档写明的默认值
	severity := strings.TrimSpace(in.Severity)
	if severity == "" {
		severity = model.SeverityWarning
	}
	if !model.ValidSeverity(severity) {
		return nil, fmt.Errorf("%w: got %q", util.ErrInvalidSeverity, severity)
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = detection.DefaultReason
	}

	alert := &model.Alert{
		StudentID: studentID,
		ExamID:    examID,
		Reason:    reason,
		Severity:  severity,
	}
	if err := s.AlertRepo.Create(alert); err != nil {
		return nil, translateWriteError(err)
	}

	return alert, nil
}

func (s *ProctorService) ListAlerts() ([]model.Alert, error) {
	return s.AlertRepo.FindAll()
}

func (s *ProctorService) ListAlertsByStudent(studentID uint) ([]model.Alert, error) {
	return s.AlertRepo.FindByStudentID(studentID)
}

// ViolationsWithEvidence 返回告警与截图的合并视图，没有截图的告警也在列。
func (s *ProctorService) ViolationsWithEvidence() ([]model.ViolationEvidence, error) {
	return s.AlertRepo.ViolationsWithEvidence()
}

// translateWriteError 把外键失败翻译成业务错误，引用了不存在的学生或
// 考试属于调用方问题，不该报 500。
func translateWriteError(err error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %v", util.ErrIntegrity, err)
	}
	return err
}
