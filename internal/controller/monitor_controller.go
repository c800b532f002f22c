package controller

import (
	"proctor_guard_backend/internal/service"
	"proctor_guard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type MonitorController struct {
	PresenceService *service.PresenceService
}

func NewMonitorController(presenceService *service.PresenceService) *MonitorController {
	return &MonitorController{PresenceService: presenceService}
}

// @Summary 在考学生
// @Description 最近仍在上报帧的考生名单，依赖 Redis，未启用时返回空列表
// @Tags 监控
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/monitor/live [get]
func (c *MonitorController) Live(ctx *gin.Context) {
	students, err := c.PresenceService.Live(ctx.Request.Context())
	if err != nil {
		util.ServerError(ctx, err, "Failed to get live students")
		return
	}
	util.Success(ctx, students)
}
