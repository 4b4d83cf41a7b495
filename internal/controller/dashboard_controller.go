package controller

import (
	"coachpro_backend/internal/repository"
	"coachpro_backend/internal/service"
	"coachpro_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
	UserRepo         *repository.UserRepository
}

func NewDashboardController(dashboardService *service.DashboardService, userRepo *repository.UserRepository) *DashboardController {
	return &DashboardController{
		DashboardService: dashboardService,
		UserRepo:         userRepo,
	}
}

// Overview godoc
// @Summary Staff dashboard KPIs
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=service.Dashboard}
// @Router /api/dashboard [get]
func (c *DashboardController) Overview(ctx *gin.Context) {
	d, err := c.DashboardService.Overview(ctx.Request.Context())
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, d)
}

// ListStudents godoc
// @Summary Page through students with enrollment and score summaries
// @Tags dashboard
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page, from 1"
// @Param limit query int false "page size"
// @Param search query string false "name or email filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/students [get]
func (c *DashboardController) ListStudents(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	students, total, err := c.UserRepo.ListStudents(ctx.Request.Context(), page, limit, ctx.Query("search"))
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: students, Total: total, Page: page, Limit: limit})
}
