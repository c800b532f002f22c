package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"proctor_guard_backend/internal/service"
	"proctor_guard_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProctorController struct {
	ProctorService *service.ProctorService
}

func NewProctorController(proctorService *service.ProctorService) *ProctorController {
	return &ProctorController{ProctorService: proctorService}
}

// AnalyzeFrameRequest 帧分析请求。前端新旧版本字段命名不一致，
// 两种拼法都收，进服务层之前归一。
type AnalyzeFrameRequest struct {
	Image          string      `json:"image"`
	StudentID      interface{} `json:"studentId"`
	StudentIDSnake interface{} `json:"student_id"`
	ExamID         interface{} `json:"examId"`
	ExamIDSnake    interface{} `json:"exam_id"`
}

// LogViolationRequest 客户端上报违规事件的请求体
type LogViolationRequest struct {
	StudentID     interface{} `json:"student_id"`
	ExamID        interface{} `json:"exam_id"`
	ViolationType string      `json:"violation_type"`
	Reason        string      `json:"reason"`
	Severity      string      `json:"severity"`
	Image         string      `json:"image"`
}

// CreateAlertRequest 手工录入告警的请求体
type CreateAlertRequest struct {
	StudentID interface{} `json:"student_id"`
	ExamID    interface{} `json:"exam_id"`
	Reason    string      `json:"reason"`
	Severity  string      `json:"severity"`
}

// @Summary 分析摄像头帧
// @Description 解码一帧画面并统计人脸数，0 张或多张人脸会记录告警与取证截图
// @Tags 监考
// @Accept json
// @Produce json
// @Param body body AnalyzeFrameRequest true "帧数据"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/analyze-frame [post]
func (c *ProctorController) AnalyzeFrame(ctx *gin.Context) {
	var req AnalyzeFrameRequest
	if !bindJSON(ctx, &req) {
		return
	}

	studentRef := firstRef(req.StudentID, req.StudentIDSnake)
	examRef := firstRef(req.ExamID, req.ExamIDSnake)
	if req.Image == "" || studentRef == nil || examRef == nil {
		util.BadRequest(ctx, "image, examId, and studentId are required")
		return
	}

	result, err := c.ProctorService.AnalyzeFrame(ctx.Request.Context(), service.AnalyzeFrameInput{
		Image:      req.Image,
		StudentRef: studentRef,
		ExamRef:    examRef,
	})
	if err != nil {
		respondDomainError(ctx, err, "Frame analysis failed")
		return
	}

	util.Success(ctx, result)
}

// @Summary 上报违规事件
// @Description 记录切屏、退出全屏等客户端侧检测到的违规，可附带截图
// @Tags 监考
// @Accept json
// @Produce json
// @Param body body LogViolationRequest true "违规信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/log-violation [post]
func (c *ProctorController) LogViolation(ctx *gin.Context) {
	var req LogViolationRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if req.StudentID == nil || req.ExamID == nil || req.ViolationType == "" {
		util.BadRequest(ctx, "student_id, exam_id, and violation_type are required")
		return
	}

	result, err := c.ProctorService.LogViolation(ctx.Request.Context(), service.LogViolationInput{
		StudentRef:    req.StudentID,
		ExamRef:       req.ExamID,
		ViolationType: req.ViolationType,
		Reason:        req.Reason,
		Severity:      req.Severity,
		Image:         req.Image,
	})
	if err != nil {
		respondDomainError(ctx, err, "Failed to log violation")
		return
	}

	util.Created(ctx, result)
}

// @Summary 创建告警
// @Description 监考端手工补记一条告警，severity 缺省为 warning
// @Tags 告警
// @Accept json
// @Produce json
// @Param body body CreateAlertRequest true "告警信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/alerts [post]
func (c *ProctorController) CreateAlert(ctx *gin.Context) {
	var req CreateAlertRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if req.StudentID == nil || req.ExamID == nil || req.Reason == "" {
		util.BadRequest(ctx, "student_id, exam_id, and reason are required")
		return
	}

	alert, err := c.ProctorService.CreateAlert(ctx.Request.Context(), service.CreateAlertInput{
		StudentRef: req.StudentID,
		ExamRef:    req.ExamID,
		Reason:     req.Reason,
		Severity:   req.Severity,
	})
	if err != nil {
		respondDomainError(ctx, err, "Failed to create alert")
		return
	}

	util.Created(ctx, alert)
}

// @Summary 告警列表
// @Tags 告警
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/alerts [get]
func (c *ProctorController) ListAlerts(ctx *gin.Context) {
	alerts, err := c.ProctorService.ListAlerts()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, alerts)
}

// @Summary 某个学生的告警
// @Tags 告警
// @Produce json
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response
// @Router /api/alerts/student/{studentId} [get]
func (c *ProctorController) StudentAlerts(ctx *gin.Context) {
	studentID, err := strconv.Atoi(ctx.Param("studentId"))
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	alerts, lerr := c.ProctorService.ListAlertsByStudent(uint(studentID))
	if lerr != nil {
		util.LogInternalError(ctx, lerr)
		return
	}
	util.Success(ctx, alerts)
}

// @Summary 违规与取证截图
// @Description 告警联查截图的合并视图，没有截图的告警同样返回
// @Tags 告警
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/violations-with-screenshots [get]
func (c *ProctorController) ViolationsWithScreenshots(ctx *gin.Context) {
	rows, err := c.ProctorService.ViolationsWithEvidence()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// firstRef 返回第一个非空的引用值，camelCase 优先
func firstRef(primary, fallback interface{}) interface{} {
	if primary != nil {
		return primary
	}
	return fallback
}

// normalizeAnswers 把答案字段归一成对象：字符串按 JSON 再解一次，
// 解不开或者根本不是对象就存空对象。
func normalizeAnswers(value interface{}) map[string]interface{} {
	switch v := value.(type) {
	case map[string]interface{}:
		return v
	case string:
		parsed := map[string]interface{}{}
		if err := json.Unmarshal([]byte(v), &parsed); err != nil {
			return map[string]interface{}{}
		}
		return parsed
	default:
		return map[string]interface{}{}
	}
}

// bindJSON 解析请求体，超出体积上限返回 413 而不是笼统的 400
func bindJSON(ctx *gin.Context, obj interface{}) bool {
	if err := ctx.ShouldBindJSON(obj); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			util.PayloadTooLarge(ctx)
			return false
		}
		util.BadRequest(ctx, err.Error())
		return false
	}
	return true
}

// respondDomainError 把服务层错误翻译成响应：引用解析、解码、完整性
// 这类调用方错误报 400，其余记日志报 500。
func respondDomainError(ctx *gin.Context, err error, internalMessage string) {
	switch {
	case errors.Is(err, util.ErrDecodeFailed),
		errors.Is(err, util.ErrInvalidStudentRef),
		errors.Is(err, util.ErrInvalidExamRef),
		errors.Is(err, util.ErrExamNotFound),
		errors.Is(err, util.ErrIntegrity),
		errors.Is(err, util.ErrInvalidSeverity),
		errors.Is(err, util.ErrSeverityRequired):
		util.BadRequest(ctx, err.Error())
	default:
		util.ServerError(ctx, err, internalMessage)
	}
}
