package handlers

import (
	"conduit/helper"
	"conduit/middleware"
	"conduit/models"
	"conduit/services"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService services.ArticleService
	Helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService, h *helper.HTTPHelper) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, Helper: h}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	h.list(c, false)
}

func (h *ArticleHandler) GetFeed(c *gin.Context) {
	h.list(c, true)
}

func (h *ArticleHandler) list(c *gin.Context, feed bool) {
	var params models.ArticleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, "limit and offset must be integers")
		return
	}
	params.Feed = feed

	username, _ := middleware.CurrentUser(c)
	articles, total, err := h.articleService.ListArticles(c.Request.Context(), params, username)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.ArticlesEnvelope{
		Articles:      articles,
		ArticlesCount: total,
	})
}

func (h *ArticleHandler) GetArticle(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	article, err := h.articleService.GetArticle(c.Request.Context(), c.Param("slug"), username)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.ArticleEnvelope{Article: *article})
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	var req models.CreateArticleRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	article, err := h.articleService.CreateArticle(c.Request.Context(), req.Article, username)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.ArticleEnvelope{Article: *article})
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	var req models.UpdateArticleRequest
	if !h.Helper.BindJSON(c, &req) {
		return
	}

	article, err := h.articleService.UpdateArticle(c.Request.Context(), c.Param("slug"), *req.Article, username)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.ArticleEnvelope{Article: *article})
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	if err := h.articleService.DeleteArticle(c.Request.Context(), c.Param("slug"), username); err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, gin.H{})
}

func (h *ArticleHandler) FavoriteArticle(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	article, err := h.articleService.FavoriteArticle(c.Request.Context(), c.Param("slug"), username)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.ArticleEnvelope{Article: *article})
}

func (h *ArticleHandler) UnfavoriteArticle(c *gin.Context) {
	username, _ := middleware.CurrentUser(c)

	article, err := h.articleService.UnfavoriteArticle(c.Request.Context(), c.Param("slug"), username)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	h.Helper.SendSuccess(c, models.ArticleEnvelope{Article: *article})
}
