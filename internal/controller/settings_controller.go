package controller

import (
	"coachpro_backend/internal/service"
	"coachpro_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SettingsController struct {
	SettingsService *service.SettingsService
}

func NewSettingsController(settingsService *service.SettingsService) *SettingsController {
	return &SettingsController{SettingsService: settingsService}
}

// Get godoc
// @Summary Fetch all settings
// @Tags settings
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/settings [get]
func (c *SettingsController) Get(ctx *gin.Context) {
	settings, err := c.SettingsService.GetAll(ctx.Request.Context())
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, settings)
}

// Save godoc
// @Summary Update settings
// @Description Rejects unknown keys and validates the rules document
// @Description before any write happens.
// @Tags settings
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body map[string]string true "key/value pairs"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/settings [put]
func (c *SettingsController) Save(ctx *gin.Context) {
	var values map[string]string
	if err := ctx.ShouldBindJSON(&values); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if len(values) == 0 {
		util.BadRequest(ctx, "no settings given")
		return
	}

	if err := c.SettingsService.Save(ctx.Request.Context(), values); err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
