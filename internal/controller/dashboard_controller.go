package controller

import (
	"proctor_guard_backend/internal/service"
	"proctor_guard_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// @Summary 监考总览
// @Description 考生、考试、告警、交卷各项计数，供监考大盘轮询
// @Tags 监控
// @Produce json
// @Success 200 {object} util.Response{data=model.DashboardStats}
// @Router /api/dashboard/stats [get]
func (c *DashboardController) Stats(ctx *gin.Context) {
	stats, err := c.DashboardService.Stats(ctx.Request.Context())
	if err != nil {
		util.ServerError(ctx, err, "Failed to get dashboard stats")
		return
	}
	util.Success(ctx, stats)
}
