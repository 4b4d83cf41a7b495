package controller

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/service"
	"coachpro_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type EnrollmentController struct {
	EnrollmentService     *service.EnrollmentService
	RecommendationService *service.RecommendationService
}

func NewEnrollmentController(
	enrollmentService *service.EnrollmentService,
	recommendationService *service.RecommendationService,
) *EnrollmentController {
	return &EnrollmentController{
		EnrollmentService:     enrollmentService,
		RecommendationService: recommendationService,
	}
}

// resolveStudent picks the student the request acts on. Staff with the
// given capability may name another student; everyone else acts as
// themselves.
func resolveStudent(ctx *gin.Context, cap model.Capability) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}

	if raw := ctx.Query("studentId"); raw != "" {
		id, ok := util.ParseUintParam(raw)
		if !ok {
			util.BadRequest(ctx, "studentId must be a positive integer")
			return 0, false
		}
		if !claims.IsSelf(id) && !claims.Can(cap) {
			util.Forbidden(ctx)
			return 0, false
		}
		return id, true
	}
	return claims.UserID, true
}

func programParam(ctx *gin.Context) (uint, bool) {
	id, ok := util.ParseUintParam(ctx.Param("programId"))
	if !ok {
		util.BadRequest(ctx, "programId must be a positive integer")
		return 0, false
	}
	return id, true
}

type EnrollRequest struct {
	ProgramID uint `json:"programId" binding:"required"`
}

// Enroll godoc
// @Summary Enroll a student in a program
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body EnrollRequest true "program to enroll in"
// @Success 201 {object} util.Response{data=model.Enrollment}
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/enrollments [post]
func (c *EnrollmentController) Enroll(ctx *gin.Context) {
	studentID, ok := resolveStudent(ctx, model.CapEdit)
	if !ok {
		return
	}

	var req EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	enrollment, err := c.EnrollmentService.Enroll(ctx.Request.Context(), studentID, req.ProgramID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, enrollment)
}

// Cancel godoc
// @Summary Cancel an enrollment
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param programId path int true "program id"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/enrollments/{programId} [delete]
func (c *EnrollmentController) Cancel(ctx *gin.Context) {
	studentID, ok := resolveStudent(ctx, model.CapEdit)
	if !ok {
		return
	}
	programID, ok := programParam(ctx)
	if !ok {
		return
	}

	if err := c.EnrollmentService.Cancel(ctx.Request.Context(), studentID, programID); err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListMine godoc
// @Summary List the caller's enrollments
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Enrollment}
// @Router /api/enrollments [get]
func (c *EnrollmentController) ListMine(ctx *gin.Context) {
	studentID, ok := resolveStudent(ctx, model.CapView)
	if !ok {
		return
	}

	enrollments, err := c.EnrollmentService.ListForStudent(ctx.Request.Context(), studentID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}

// GetProgress godoc
// @Summary Fetch progress for one program
// @Tags progress
// @Produce json
// @Security ApiKeyAuth
// @Param programId path int true "program id"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response
// @Router /api/progress/{programId} [get]
func (c *EnrollmentController) GetProgress(ctx *gin.Context) {
	studentID, ok := resolveStudent(ctx, model.CapView)
	if !ok {
		return
	}
	programID, ok := programParam(ctx)
	if !ok {
		return
	}

	progress, err := c.EnrollmentService.GetProgress(ctx.Request.Context(), studentID, programID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

type ActivityRequest struct {
	LessonsDelta int `json:"lessonsDelta"`
}

// RecordActivity godoc
// @Summary Record lesson activity for a program
// @Description Applies a lesson delta, refreshes the running score and
// @Description advances the enrollment status when warranted.
// @Tags progress
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param programId path int true "program id"
// @Param body body ActivityRequest true "lesson delta, may be negative"
// @Success 200 {object} util.Response{data=model.Progress}
// @Failure 404 {object} util.Response
// @Router /api/progress/{programId}/activity [post]
func (c *EnrollmentController) RecordActivity(ctx *gin.Context) {
	studentID, ok := resolveStudent(ctx, model.CapEdit)
	if !ok {
		return
	}
	programID, ok := programParam(ctx)
	if !ok {
		return
	}

	var req ActivityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.EnrollmentService.RecordActivity(ctx.Request.Context(), studentID, programID, req.LessonsDelta)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// Recommendations godoc
// @Summary Recommendation history for a student and program
// @Tags recommendations
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path int true "student id"
// @Param programId path int true "program id"
// @Success 200 {object} util.Response{data=[]model.Recommendation}
// @Router /api/recommendations/{studentId}/{programId} [get]
func (c *EnrollmentController) Recommendations(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	studentID, ok := util.ParseUintParam(ctx.Param("studentId"))
	if !ok {
		util.BadRequest(ctx, "studentId must be a positive integer")
		return
	}
	programID, ok := programParam(ctx)
	if !ok {
		return
	}

	if !claims.IsSelf(studentID) && !claims.Can(model.CapView) {
		util.Forbidden(ctx)
		return
	}

	recs, err := c.RecommendationService.History(ctx.Request.Context(), studentID, programID, 20)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, recs)
}

type EvaluateRequest struct {
	StudentID uint `json:"studentId" binding:"required"`
	ProgramID uint `json:"programId" binding:"required"`
}

// Evaluate godoc
// @Summary Run the configured rules against a student's progress
// @Tags recommendations
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body EvaluateRequest true "target pair"
// @Success 200 {object} util.Response{data=model.Recommendation}
// @Failure 404 {object} util.Response
// @Router /api/recommendations/evaluate [post]
func (c *EnrollmentController) Evaluate(ctx *gin.Context) {
	var req EvaluateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rec, err := c.RecommendationService.Evaluate(ctx.Request.Context(), req.StudentID, req.ProgramID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	if rec == nil {
		util.Success(ctx, gin.H{"matched": false})
		return
	}
	util.Success(ctx, rec)
}
