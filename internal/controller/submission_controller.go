package controller

import (
	"proctor_guard_backend/internal/service"
	"proctor_guard_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

// SubmitExamRequest 交卷请求。考试可以用数字 id 或 code 指定，
// answers 既可以是对象也可以是序列化过的 JSON 字符串。
type SubmitExamRequest struct {
	StudentID      interface{} `json:"studentId"`
	StudentIDSnake interface{} `json:"student_id"`
	ExamID         interface{} `json:"examId"`
	ExamIDSnake    interface{} `json:"exam_id"`
	Answers        interface{} `json:"answers"`
	Score          *float64    `json:"score"`
	Flagged        bool        `json:"flagged"`
}

// @Summary 交卷
// @Description 记录一次交卷，examId 可以传数字 id 或考试 code
// @Tags 交卷
// @Accept json
// @Produce json
// @Param body body SubmitExamRequest true "交卷内容"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/submit-exam [post]
func (c *SubmissionController) SubmitExam(ctx *gin.Context) {
	var req SubmitExamRequest
	if !bindJSON(ctx, &req) {
		return
	}

	studentRef := firstRef(req.StudentID, req.StudentIDSnake)
	if studentRef == nil {
		util.BadRequest(ctx, "studentId is required")
		return
	}
	examRef := firstRef(req.ExamID, req.ExamIDSnake)
	if examRef == nil {
		util.BadRequest(ctx, "examId is required")
		return
	}

	submission, err := c.SubmissionService.Submit(ctx.Request.Context(), service.SubmitExamInput{
		StudentRef: studentRef,
		ExamRef:    examRef,
		Answers:    normalizeAnswers(req.Answers),
		Score:      req.Score,
		Flagged:    req.Flagged,
	})
	if err != nil {
		respondDomainError(ctx, err, "Failed to submit exam")
		return
	}

	util.Created(ctx, submission)
}

// @Summary 创建交卷记录
// @Description 与 /api/submit-exam 等价的旧接口，只认 snake_case 字段
// @Tags 交卷
// @Accept json
// @Produce json
// @Param body body SubmitExamRequest true "交卷内容"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/submissions [post]
func (c *SubmissionController) Create(ctx *gin.Context) {
	var req SubmitExamRequest
	if !bindJSON(ctx, &req) {
		return
	}

	if req.StudentIDSnake == nil || req.ExamIDSnake == nil {
		util.BadRequest(ctx, "student_id and exam_id are required")
		return
	}

	submission, err := c.SubmissionService.Submit(ctx.Request.Context(), service.SubmitExamInput{
		StudentRef: req.StudentIDSnake,
		ExamRef:    req.ExamIDSnake,
		Answers:    normalizeAnswers(req.Answers),
		Score:      req.Score,
		Flagged:    req.Flagged,
	})
	if err != nil {
		respondDomainError(ctx, err, "Failed to create submission")
		return
	}

	util.Created(ctx, submission)
}

// @Summary 交卷列表
// @Tags 交卷
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/submissions [get]
func (c *SubmissionController) List(ctx *gin.Context) {
	submissions, err := c.SubmissionService.List()
	if err != nil {
		util.ServerError(ctx, err, "Failed to get submissions")
		return
	}
	util.Success(ctx, submissions)
}

// @Summary 某个学生的交卷记录
// @Tags 交卷
// @Produce json
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response
// @Router /api/submissions/student/{studentId} [get]
func (c *SubmissionController) StudentSubmissions(ctx *gin.Context) {
	studentID, err := strconv.Atoi(ctx.Param("studentId"))
	if err != nil {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	submissions, lerr := c.SubmissionService.ListByStudent(uint(studentID))
	if lerr != nil {
		util.ServerError(ctx, lerr, "Failed to get submissions")
		return
	}
	util.Success(ctx, submissions)
}
