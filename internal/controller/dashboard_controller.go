package controller

import (
	"learntrack_backend/internal/service"
	"learntrack_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	UserService      *service.UserService
}

func NewDashboardController(dashboardService *service.DashboardService, userService *service.UserService) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
		UserService:      userService,
	}
}

// GetDashboard godoc
// @Summary Administrator dashboard statistics
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.DashboardStats}
// @Router /admin/dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	stats, err := c.DashboardService.GetDashboard(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}

// ListUsers godoc
// @Summary All users with their overall progress
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]service.UserWithProgress}
// @Router /admin/users [get]
func (c *DashboardController) ListUsers(ctx *gin.Context) {
	rows, err := c.UserService.ListWithProgress()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rows)
}

// GetUserStats godoc
// @Summary Detailed usage statistics
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.UserStats}
// @Router /admin/user-stats [get]
func (c *DashboardController) GetUserStats(ctx *gin.Context) {
	stats, err := c.DashboardService.GetUserStats(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
