package controller

import (
	"coachpro_backend/internal/service"
	"coachpro_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AssessmentController struct {
	AssessmentService *service.AssessmentService
}

func NewAssessmentController(assessmentService *service.AssessmentService) *AssessmentController {
	return &AssessmentController{AssessmentService: assessmentService}
}

func idParam(ctx *gin.Context) (uint, bool) {
	id, ok := util.ParseUintParam(ctx.Param("id"))
	if !ok {
		util.BadRequest(ctx, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

// Create godoc
// @Summary Create an assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.AssessmentRequest true "assessment with question config"
// @Success 201 {object} util.Response{data=model.Assessment}
// @Failure 400 {object} util.Response
// @Router /api/assessments [post]
func (c *AssessmentController) Create(ctx *gin.Context) {
	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.AssessmentService.CreateAssessment(ctx.Request.Context(), req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, a)
}

// Update godoc
// @Summary Update an assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Param body body service.AssessmentRequest true "assessment with question config"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id} [put]
func (c *AssessmentController) Update(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	var req service.AssessmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	a, err := c.AssessmentService.UpdateAssessment(ctx.Request.Context(), id, req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// Get godoc
// @Summary Fetch an assessment
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response{data=model.Assessment}
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id} [get]
func (c *AssessmentController) Get(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	a, err := c.AssessmentService.GetAssessment(ctx.Request.Context(), id)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, a)
}

// List godoc
// @Summary List a program's assessments
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param programId query int true "program id"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/assessments [get]
func (c *AssessmentController) List(ctx *gin.Context) {
	programID, ok := util.ParseUintParam(ctx.Query("programId"))
	if !ok {
		util.BadRequest(ctx, "programId must be a positive integer")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	items, total, err := c.AssessmentService.ListAssessments(ctx.Request.Context(), programID, page, limit)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// SubmitResponse godoc
// @Summary Submit and score answers to an assessment
// @Tags assessments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Param body body service.SubmitResponseRequest true "answers keyed by question id"
// @Success 201 {object} util.Response{data=model.AssessmentResponse}
// @Failure 404 {object} util.Response
// @Router /api/assessments/{id}/responses [post]
func (c *AssessmentController) SubmitResponse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := idParam(ctx)
	if !ok {
		return
	}

	var req service.SubmitResponseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	resp, err := c.AssessmentService.SubmitResponse(ctx.Request.Context(), id, claims.UserID, req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, resp)
}

// ListResponses godoc
// @Summary Page through an assessment's scored responses
// @Tags assessments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "assessment id"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/assessments/{id}/responses [get]
func (c *AssessmentController) ListResponses(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	items, total, err := c.AssessmentService.ListResponses(ctx.Request.Context(), id, page, limit)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}
