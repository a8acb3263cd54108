package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zhanel/coursehub/internal/app/models/dto"
	"github.com/zhanel/coursehub/internal/app/services"
	"github.com/zhanel/coursehub/internal/middleware"
)

// StatsController exposes the aggregation reports (admin only)
type StatsController struct {
	statsService services.StatsService
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService services.StatsService) *StatsController {
	return &StatsController{statsService: statsService}
}

// PopularCourses reports courses passing the popularity thresholds
func (c *StatsController) PopularCourses(ctx *gin.Context) {
	rows, err := c.statsService.PopularCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}

// CourseStatistics reports per-course aggregates
func (c *StatsController) CourseStatistics(ctx *gin.Context) {
	rows, err := c.statsService.CourseStatistics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}

// CourseModuleStatistics reports module aggregates for recent courses
func (c *StatsController) CourseModuleStatistics(ctx *gin.Context) {
	rows, err := c.statsService.CourseModuleStatistics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}

// UserPerformance reports per-student grade aggregates
func (c *StatsController) UserPerformance(ctx *gin.Context) {
	rows, err := c.statsService.UserPerformance(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}

// UserActivity reports per-student activity aggregates
func (c *StatsController) UserActivity(ctx *gin.Context) {
	rows, err := c.statsService.UserActivity(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}

// NotificationStatistics reports per-user delivery aggregates
func (c *StatsController) NotificationStatistics(ctx *gin.Context) {
	rows, err := c.statsService.NotificationStatistics(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(rows))
}
