package controller

import (
	"coachpro_backend/internal/service"
	"coachpro_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ProgramController struct {
	ProgramService *service.ProgramService
}

func NewProgramController(programService *service.ProgramService) *ProgramController {
	return &ProgramController{ProgramService: programService}
}

// List godoc
// @Summary Page through programs with enrollment counts
// @Tags programs
// @Produce json
// @Security ApiKeyAuth
// @Param page query int false "page, from 1"
// @Param limit query int false "page size"
// @Param search query string false "title filter"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/programs [get]
func (c *ProgramController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	search := ctx.Query("search")

	items, total, err := c.ProgramService.List(ctx.Request.Context(), page, limit, search)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: items, Total: total, Page: page, Limit: limit})
}

// Get godoc
// @Summary Fetch one program
// @Tags programs
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "program id"
// @Success 200 {object} util.Response{data=model.Program}
// @Failure 404 {object} util.Response
// @Router /api/programs/{id} [get]
func (c *ProgramController) Get(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	p, err := c.ProgramService.Get(ctx.Request.Context(), id)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// Create godoc
// @Summary Create a program
// @Tags programs
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ProgramRequest true "program fields"
// @Success 201 {object} util.Response{data=model.Program}
// @Router /api/programs [post]
func (c *ProgramController) Create(ctx *gin.Context) {
	var req service.ProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p, err := c.ProgramService.Create(ctx.Request.Context(), req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Created(ctx, p)
}

// Update godoc
// @Summary Update a program
// @Tags programs
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "program id"
// @Param body body service.ProgramRequest true "program fields"
// @Success 200 {object} util.Response{data=model.Program}
// @Failure 404 {object} util.Response
// @Router /api/programs/{id} [put]
func (c *ProgramController) Update(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	var req service.ProgramRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	p, err := c.ProgramService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, p)
}

// Delete godoc
// @Summary Soft-delete a program
// @Tags programs
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "program id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/programs/{id} [delete]
func (c *ProgramController) Delete(ctx *gin.Context) {
	id, ok := idParam(ctx)
	if !ok {
		return
	}

	if err := c.ProgramService.Delete(ctx.Request.Context(), id); err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
