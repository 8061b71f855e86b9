package services

import (
	"context"
	"testing"
	"time"

	"conduit/config"
	"conduit/models"
	"conduit/repositories"

	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testSecret = "test-secret-key-that-is-long-enough-1234"

// setupTestDB creates an in-memory SQLite database with the full schema.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, config.Migrate(db))
	return db
}

func testIssuer() TokenIssuer {
	return NewTokenIssuer(config.JWTConfig{
		Secret:     testSecret,
		Issuer:     "conduit-test",
		Expiration: time.Hour,
	})
}

// testServices bundles every service over one database.
type testServices struct {
	db       *gorm.DB
	tokens   TokenIssuer
	auth     AuthService
	articles ArticleService
	comments CommentService
	profiles ProfileService
	tags     TagService
	clock    *testClock
}

type testClock struct {
	current time.Time
}

// Now advances the clock one second per call so creation order is
// visible in timestamps.
func (c *testClock) Now() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()

	db := setupTestDB(t)
	log := zerolog.Nop()
	tokens := testIssuer()

	userRepo := repositories.NewUserRepository(db)
	articleRepo := repositories.NewArticleRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	tags := NewTagService(tagRepo)
	articles := NewArticleService(articleRepo, userRepo, tags, log)
	clock := &testClock{current: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	articles.(*articleService).now = clock.Now

	return &testServices{
		db:       db,
		tokens:   tokens,
		auth:     NewAuthService(userRepo, tokens, log),
		articles: articles,
		comments: NewCommentService(commentRepo, articleRepo, userRepo),
		profiles: NewProfileService(userRepo),
		tags:     tags,
		clock:    clock,
	}
}

func (s *testServices) register(t *testing.T, username string) *models.UserView {
	t.Helper()
	user, err := s.auth.Register(context.Background(), models.RegisterUser{
		Username: username,
		Email:    username + "@example.com",
		Password: "password",
	})
	require.NoError(t, err)
	return user
}

func (s *testServices) createArticle(t *testing.T, author, title string, tags ...string) *models.ArticleView {
	t.Helper()
	article, err := s.articles.CreateArticle(context.Background(), models.CreateArticle{
		Title:       title,
		Description: "About " + title,
		Body:        "Body of " + title,
		TagList:     tags,
	}, author)
	require.NoError(t, err)
	return article
}
