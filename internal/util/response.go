package util

import (
	"net/http"
	"proctor_guard_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// WantsRaw 调用方通过 ?raw=1|true|yes 要求去掉包装、直接返回数据本体
// （兼容旧监考前端的裸 JSON 模式）
func WantsRaw(c *gin.Context) bool {
	raw := strings.ToLower(strings.TrimSpace(c.Query("raw")))
	return raw == "1" || raw == "true" || raw == "yes"
}

func Success(c *gin.Context, data interface{}) {
	if WantsRaw(c) {
		c.JSON(http.StatusOK, data)
		return
	}
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	if WantsRaw(c) {
		c.JSON(http.StatusCreated, data)
		return
	}
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func PayloadTooLarge(c *gin.Context) {
	Error(c, http.StatusRequestEntityTooLarge, "Request payload too large")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// ServerError 记录原始错误，对外只给一句概括，细节不出门
func ServerError(c *gin.Context, err error, message string) {
	logger.Log.Error(message, zap.Error(err))
	Error(c, http.StatusInternalServerError, message)
}
