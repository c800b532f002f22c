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

type StudentController struct {
	StudentService *service.StudentService
}

func NewStudentController(studentService *service.StudentService) *StudentController {
	return &StudentController{StudentService: studentService}
}

// @Summary 登记考生
// @Tags 考生
// @Accept json
// @Produce json
// @Param body body service.CreateStudentRequest true "考生信息"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/students [post]
func (c *StudentController) Create(ctx *gin.Context) {
	var req service.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Name and email are required")
		return
	}

	student, err := c.StudentService.Create(&req)
	if err != nil {
		util.ServerError(ctx, err, "Failed to create student")
		return
	}

	util.Created(ctx, student)
}

// @Summary 考生详情
// @Tags 考生
// @Produce json
// @Param id path int true "考生ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/students/{id} [get]
func (c *StudentController) Get(ctx *gin.Context) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		util.BadRequest(ctx, "invalid id")
		return
	}

	student, err := c.StudentService.Get(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.Error(ctx, http.StatusNotFound, "Student not found")
			return
		}
		util.ServerError(ctx, err, "Failed to get student")
		return
	}

	util.Success(ctx, student)
}

// @Summary 考生列表
// @Tags 考生
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/students [get]
func (c *StudentController) List(ctx *gin.Context) {
	students, err := c.StudentService.List()
	if err != nil {
		util.ServerError(ctx, err, "Failed to get students")
		return
	}
	util.Success(ctx, students)
}
