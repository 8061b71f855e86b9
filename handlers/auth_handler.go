package handlers

import (
	"conduit/helper"
	"conduit/middleware"
	"conduit/models"
	"conduit/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h}
}

// Register handles POST /users.
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.User)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.UserEnvelope{User: *user})
}

// Login handles POST /users/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.User)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.UserEnvelope{User: *user})
}

// GetCurrentUser handles GET /user.
func (h *AuthHandler) GetCurrentUser(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	user, err := h.authService.CurrentUser(c.Request.Context(), username, middleware.CurrentToken(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.UserEnvelope{User: *user})
}

// UpdateUser handles PUT /user.
func (h *AuthHandler) UpdateUser(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	var req models.UpdateUserRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	user, err := h.authService.UpdateUser(c.Request.Context(), username, *req.User)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.UserEnvelope{User: *user})
}
