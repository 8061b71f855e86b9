package handlers

import (
	"strconv"

	"conduit/helper"
	"conduit/middleware"
	"conduit/models"
	"conduit/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService services.CommentService
	Helper         *helper.HTTPHelper
}

func NewCommentHandler(commentService services.CommentService, h *helper.HTTPHelper) *CommentHandler {
	return &CommentHandler{commentService: commentService, Helper: h}
}

func (h *CommentHandler) AddComment(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	var req models.CreateCommentRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	comment, err := h.commentService.AddComment(c.Request.Context(), c.Param("slug"), req.Comment, username)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.CommentEnvelope{Comment: *comment})
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	comments, err := h.commentService.GetComments(c.Request.Context(), c.Param("slug"), username)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.CommentsEnvelope{Comments: comments})
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		h.Helper.SendNotFoundError(c, "comment", "comment "+c.Param("id")+" not found")
		return
	}

	if err := h.commentService.DeleteComment(c.Request.Context(), c.Param("slug"), uint(id), username); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, gin.H{})
}
