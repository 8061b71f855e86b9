package handlers

import (
	"net/http"

	"conduit/helper"
	"conduit/middleware"
	"conduit/repositories"
	"conduit/services"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NewRouter wires repositories, services and handlers over db and
// returns the HTTP engine serving the API under /api.
func NewRouter(db *gorm.DB, tokens services.TokenIssuer, log zerolog.Logger) *gin.Engine {
	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokens, log)
	tagService := services.NewTagService(tagRepo)
	articleService := services.NewArticleService(articleRepo, userRepo, tagService, log)
	commentService := services.NewCommentService(commentRepo, articleRepo, userRepo)
	profileService := services.NewProfileService(userRepo)

	// Initialize handlers
	h := helper.NewHTTPHelper(log)
	authHandler := NewAuthHandler(authService, h)
	articleHandler := NewArticleHandler(articleService, h)
	commentHandler := NewCommentHandler(commentService, h)
	profileHandler := NewProfileHandler(profileService, h)
	tagHandler := NewTagHandler(tagService, h)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.CORS())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	api := router.Group("/api")
	api.Use(middleware.OptionalAuth(tokens))
	auth := middleware.RequireAuth(h)
	{
		users := api.Group("/users")
		{
			users.POST("", authHandler.Register)
			users.POST("/login", authHandler.Login)
		}

		user := api.Group("/user", auth)
		{
			user.GET("", authHandler.GetCurrentUser)
			user.PUT("", authHandler.UpdateUser)
		}

		profiles := api.Group("/profiles")
		{
			profiles.GET("/:username", profileHandler.GetProfile)
			profiles.POST("/:username/follow", auth, profileHandler.Follow)
			profiles.DELETE("/:username/follow", auth, profileHandler.Unfollow)
		}

		articles := api.Group("/articles")
		{
			articles.GET("", articleHandler.GetArticles)
			articles.GET("/feed", articleHandler.GetFeed)
			articles.GET("/:slug", articleHandler.GetArticle)
			articles.POST("", auth, articleHandler.CreateArticle)
			articles.PUT("/:slug", auth, articleHandler.UpdateArticle)
			articles.DELETE("/:slug", auth, articleHandler.DeleteArticle)

			articles.POST("/:slug/favorite", auth, articleHandler.FavoriteArticle)
			articles.DELETE("/:slug/favorite", auth, articleHandler.UnfavoriteArticle)

			articles.GET("/:slug/comments", commentHandler.GetComments)
			articles.POST("/:slug/comments", auth, commentHandler.AddComment)
			articles.DELETE("/:slug/comments/:id", auth, commentHandler.DeleteComment)
		}

		api.GET("/tags", tagHandler.GetTags)
	}

	return router
}
