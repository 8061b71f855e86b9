package handlers

import (
	"conduit/helper"
	"conduit/middleware"
	"conduit/models"
	"conduit/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService services.ProfileService
	Helper         *helper.HTTPHelper
}

func NewProfileHandler(profileService services.ProfileService, h *helper.HTTPHelper) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, Helper: h}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	profile, err := h.profileService.GetProfile(c.Request.Context(), c.Param("username"), username)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.ProfileEnvelope{Profile: *profile})
}

func (h *ProfileHandler) Follow(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	profile, err := h.profileService.Follow(c.Request.Context(), c.Param("username"), username)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.ProfileEnvelope{Profile: *profile})
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	profile, err := h.profileService.Unfollow(c.Request.Context(), c.Param("username"), username)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.ProfileEnvelope{Profile: *profile})
}
