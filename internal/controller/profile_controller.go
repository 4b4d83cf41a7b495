package controller

import (
	"coachpro_backend/internal/model"
	"coachpro_backend/internal/service"
	"coachpro_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	ProfileService *service.ProfileService
}

func NewProfileController(profileService *service.ProfileService) *ProfileController {
	return &ProfileController{ProfileService: profileService}
}

// targetUserID resolves which user's profile the request addresses. A
// ?userId query targets someone else and needs the given capability;
// otherwise the caller addresses their own profile.
func targetUserID(ctx *gin.Context, cap model.Capability) (uint, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return 0, false
	}

	if raw := ctx.Query("userId"); raw != "" {
		id, ok := util.ParseUintParam(raw)
		if !ok {
			util.BadRequest(ctx, "userId must be a positive integer")
			return 0, false
		}
		if id != claims.UserID && !claims.Can(cap) {
			util.Forbidden(ctx)
			return 0, false
		}
		return id, true
	}
	return claims.UserID, true
}

// GetProfile godoc
// @Summary Fetch a coaching profile
// @Tags profiles
// @Produce json
// @Security ApiKeyAuth
// @Param userId query int false "target user, staff only"
// @Success 200 {object} util.Response{data=model.Profile}
// @Failure 404 {object} util.Response
// @Router /api/profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID, ok := targetUserID(ctx, model.CapView)
	if !ok {
		return
	}

	profile, err := c.ProfileService.Get(ctx.Request.Context(), userID)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}

// SaveProfile godoc
// @Summary Create or update a coaching profile
// @Tags profiles
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param userId query int false "target user, staff only"
// @Param body body service.ProfileRequest true "profile fields"
// @Success 200 {object} util.Response{data=model.Profile}
// @Router /api/profile [put]
func (c *ProfileController) SaveProfile(ctx *gin.Context) {
	userID, ok := targetUserID(ctx, model.CapEdit)
	if !ok {
		return
	}

	var req service.ProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	profile, err := c.ProfileService.Save(ctx.Request.Context(), userID, req)
	if err != nil {
		util.ServiceError(ctx, err)
		return
	}
	util.Success(ctx, profile)
}
