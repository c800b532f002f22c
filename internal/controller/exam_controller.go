package controller

import (
	"errors"
	"net/http"
	"proctor_guard_backend/internal/service"
	"proctor_guard_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// @Summary 创建考试
// @Tags 考试
// @Accept json
// @Produce json
// @Param body body service.CreateExamRequest true "考试信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/exams [post]
func (c *ExamController) Create(ctx *gin.Context) {
	var req service.CreateExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Exam name is required")
		return
	}

	exam, err := c.ExamService.Create(&req)
	if err != nil {
		util.ServerError(ctx, err, "Failed to create exam")
		return
	}

	util.Created(ctx, exam)
}

// @Summary 考试详情
// @Tags 考试
// @Produce json
// @Param id path int true "考试ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/exams/{id} [get]
func (c *ExamController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	exam, err := c.ExamService.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(ctx, http.StatusNotFound, "Exam not found")
			return
		}
		util.ServerError(ctx, err, "Failed to get exam")
		return
	}

	util.Success(ctx, exam)
}

// @Summary 考试列表
// @Tags 考试
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/exams [get]
func (c *ExamController) List(ctx *gin.Context) {
	exams, err := c.ExamService.List()
	if err != nil {
		util.ServerError(ctx, err, "Failed to get exams")
		return
	}
	util.Success(ctx, exams)
}
