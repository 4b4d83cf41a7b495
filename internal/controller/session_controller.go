package controller

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/service"
	"coachpro_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	SessionService *service.SessionService
	StorageService *service.StorageService
}

func NewSessionController(sessionService *service.SessionService, storageService *service.StorageService) *SessionController {
	return &SessionController{
		SessionService: sessionService,
		StorageService: storageService,
	}
}

// participantOrStaff admits the student or coach named in the triple,
// or anyone holding the given capability.
func participantOrStaff(ctx *gin.Context, studentID, coachID uint, cap model.Capability) bool {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return false
	}
	if claims.IsSelf(studentID) || claims.IsSelf(coachID) || claims.Can(cap) {
		return true
	}
	util.Forbidden(ctx)
	return false
}

type StartSessionRequest struct {
	StudentID uint `json:"studentId" binding:"required"`
	CoachID   uint `json:"coachId" binding:"required"`
	ProgramID uint `json:"programId" binding:"required"`
}

// Start godoc
// @Summary Open a coaching session
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body StartSessionRequest true "session triple"
// @Success 200 {object} util.Response{data=service.SessionHandle}
// @Router /api/sessions/start [post]
func (c *SessionController) Start(ctx *gin.Context) {
	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !participantOrStaff(ctx, req.StudentID, req.CoachID, model.CapEdit) {
		return
	}

	handle := c.SessionService.StartSession(req.StudentID, req.CoachID, req.ProgramID)
	util.Success(ctx, handle)
}

// SendMessage godoc
// @Summary Append a message to a session
// @Tags sessions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.SendMessageRequest true "message payload"
// @Success 201 {object} util.Response{data=model.Session}
// @Failure 400 {object} util.Response
// @Router /api/sessions/messages [post]
func (c *SessionController) SendMessage(ctx *gin.Context) {
	var req service.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if !participantOrStaff(ctx, req.StudentID, req.CoachID, model.CapEdit) {
		return
	}

	msg, err := c.SessionService.SendMessage(ctx.Request.Context(), req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, msg)
}

// ListMessages godoc
// @Summary Page through a session's message history
// @Tags sessions
// @Produce json
// @Security ApiKeyAuth
// @Param studentId query int true "student id"
// @Param programId query int true "program id"
// @Param page query int false "page, from 1"
// @Param limit query int false "page size"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/sessions/messages [get]
func (c *SessionController) ListMessages(ctx *gin.Context) {
	studentID, ok := util.ParseUintParam(ctx.Query("studentId"))
	if !ok {
		util.BadRequest(ctx, "studentId must be a positive integer")
		return
	}
	programID, ok := util.ParseUintParam(ctx.Query("programId"))
	if !ok {
		util.BadRequest(ctx, "programId must be a positive integer")
		return
	}

	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	if !claims.IsSelf(studentID) && !claims.Can(model.CapView) {
		util.Forbidden(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	messages, total, err := c.SessionService.ListMessages(ctx.Request.Context(), studentID, programID, page, limit)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: messages, Total: total, Page: page, Limit: limit})
}

// UploadAttachment godoc
// @Summary Upload a file for use as a message attachment
// @Tags sessions
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param file formData file true "attachment"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/sessions/attachments [post]
func (c *SessionController) UploadAttachment(ctx *gin.Context) {
	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file field is required")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.BadRequest(ctx, "file could not be read")
		return
	}
	defer src.Close()

	url, err := c.StorageService.UploadAttachment(
		ctx.Request.Context(),
		file.Filename,
		src,
		file.Size,
		file.Header.Get("Content-Type"),
	)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"url": url})
}
