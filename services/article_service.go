package services

import (
	"context"
	"time"

	"conduit/models"
	"conduit/repositories"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type ArticleService interface {
	ListArticles(ctx context.Context, params models.ArticleListParams, caller string) ([]models.ArticleView, int64, error)
	GetArticle(ctx context.Context, slug, caller string) (*models.ArticleView, error)
	CreateArticle(ctx context.Context, req models.CreateArticle, caller string) (*models.ArticleView, error)
	UpdateArticle(ctx context.Context, slug string, req models.UpdateArticle, caller string) (*models.ArticleView, error)
	DeleteArticle(ctx context.Context, slug, caller string) error
	FavoriteArticle(ctx context.Context, slug, caller string) (*models.ArticleView, error)
	UnfavoriteArticle(ctx context.Context, slug, caller string) (*models.ArticleView, error)
}

type articleService struct {
	articleRepo repositories.ArticleRepository
	userRepo    repositories.UserRepository
	tagService  TagService
	log         zerolog.Logger
	now         func() time.Time
}

func NewArticleService(articleRepo repositories.ArticleRepository, userRepo repositories.UserRepository, tagService TagService, log zerolog.Logger) ArticleService {
	return &articleService{
		articleRepo: articleRepo,
		userRepo:    userRepo,
		tagService:  tagService,
		log:         log.With().Str("component", "articles").Logger(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// GenerateSlug turns a title into its URL form, e.g. "How to train" ->
// "how-to-train".
func GenerateSlug(title string) string {
	return slug.Make(title)
}

func (s *articleService) ListArticles(ctx context.Context, params models.ArticleListParams, caller string) ([]models.ArticleView, int64, error) {
	empty := []models.ArticleView{}

	viewer, err := optionalCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, 0, err
	}

	filter := repositories.ArticleFilter{
		Offset: params.Offset,
		Limit:  params.Limit,
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	if filter.Limit <= 0 {
		filter.Limit = DefaultListLimit
	}
	if filter.Limit > MaxListLimit {
		filter.Limit = MaxListLimit
	}

	// An anonymous feed request is served as the plain listing.
	if params.Feed && viewer != nil {
		filter.FollowerID = &viewer.ID
	}

	if !blank(params.Tag) {
		known, err := s.tagService.TagExists(ctx, params.Tag)
		if err != nil {
			return nil, 0, err
		}
		if !known {
			return empty, 0, nil
		}
		filter.TagID = params.Tag
	}

	if !blank(params.Author) {
		author, err := s.userRepo.GetByUsername(ctx, params.Author)
		if err != nil {
			if isNotFound(err) {
				return empty, 0, nil
			}
			return nil, 0, err
		}
		filter.AuthorID = &author.ID
	}

	if !blank(params.Favorited) {
		favoritedBy, err := s.userRepo.GetByUsername(ctx, params.Favorited)
		if err != nil {
			if isNotFound(err) {
				return empty, 0, nil
			}
			return nil, 0, err
		}
		filter.FavoritedByID = &favoritedBy.ID
	}

	articles, total, err := s.articleRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	views, err := s.buildViews(ctx, articles, viewer)
	if err != nil {
		return nil, 0, err
	}
	return views, total, nil
}

func (s *articleService) GetArticle(ctx context.Context, slug, caller string) (*models.ArticleView, error) {
	viewer, err := optionalCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, err
	}
	return s.readArticle(ctx, slug, viewer)
}

func (s *articleService) CreateArticle(ctx context.Context, req models.CreateArticle, caller string) (*models.ArticleView, error) {
	author, err := requireCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, err
	}

	articleSlug := GenerateSlug(req.Title)
	if articleSlug == "" {
		return nil, models.NewValidationError("title", "must contain at least one letter or digit")
	}
	if err := s.ensureSlugFree(ctx, articleSlug, 0); err != nil {
		return nil, err
	}

	tagIDs, err := s.tagService.EnsureTags(ctx, req.TagList)
	if err != nil {
		return nil, err
	}

	now := s.now()
	article := &models.Article{
		Slug:        articleSlug,
		Title:       req.Title,
		Description: req.Description,
		Body:        req.Body,
		AuthorID:    author.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.articleRepo.Create(ctx, article, tagIDs); err != nil {
		if isDuplicate(err) {
			return nil, models.NewConflictError("slug", "an article with this title already exists")
		}
		return nil, err
	}

	s.log.Info().
		Str("slug", article.Slug).
		Str("author", author.Username).
		Int("tags", len(tagIDs)).
		Msg("Article created")

	return s.readArticle(ctx, article.Slug, author)
}

func (s *articleService) UpdateArticle(ctx context.Context, slug string, req models.UpdateArticle, caller string) (*models.ArticleView, error) {
	editor, err := requireCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, err
	}
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}
	if article.AuthorID != editor.ID {
		return nil, models.NewForbiddenError("only the author can edit this article")
	}

	changed := false
	changed = applyField(&article.Title, req.Title) || changed
	changed = applyField(&article.Description, req.Description) || changed
	changed = applyField(&article.Body, req.Body) || changed

	newSlug := GenerateSlug(article.Title)
	if newSlug == "" {
		return nil, models.NewValidationError("title", "must contain at least one letter or digit")
	}
	if newSlug != article.Slug {
		if err := s.ensureSlugFree(ctx, newSlug, article.ID); err != nil {
			return nil, err
		}
		article.Slug = newSlug
		changed = true
	}

	if changed {
		article.UpdatedAt = s.now()
	}

	if err := s.articleRepo.Update(ctx, article); err != nil {
		if isDuplicate(err) {
			return nil, models.NewConflictError("slug", "an article with this title already exists")
		}
		return nil, err
	}

	return s.readArticle(ctx, article.Slug, editor)
}

func (s *articleService) DeleteArticle(ctx context.Context, slug, caller string) error {
	person, err := requireCaller(ctx, s.userRepo, caller)
	if err != nil {
		return err
	}
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return err
	}
	if article.AuthorID != person.ID {
		return models.NewForbiddenError("only the author can delete this article")
	}

	if err := s.articleRepo.Delete(ctx, article.ID); err != nil {
		return err
	}

	s.log.Info().Str("slug", slug).Msg("Article deleted")
	return nil
}

func (s *articleService) FavoriteArticle(ctx context.Context, slug, caller string) (*models.ArticleView, error) {
	person, err := requireCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, err
	}
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	favorited, err := s.articleRepo.IsFavorited(ctx, article.ID, person.ID)
	if err != nil {
		return nil, err
	}
	if !favorited {
		if err := s.articleRepo.AddFavorite(ctx, article.ID, person.ID); err != nil {
			return nil, err
		}
	}

	return s.readArticle(ctx, article.Slug, person)
}

func (s *articleService) UnfavoriteArticle(ctx context.Context, slug, caller string) (*models.ArticleView, error) {
	person, err := requireCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, err
	}
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}

	favorited, err := s.articleRepo.IsFavorited(ctx, article.ID, person.ID)
	if err != nil {
		return nil, err
	}
	if favorited {
		if err := s.articleRepo.RemoveFavorite(ctx, article.ID, person.ID); err != nil {
			return nil, err
		}
	}

	return s.readArticle(ctx, article.Slug, person)
}

func (s *articleService) findArticle(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, models.NewNotFoundError("article", slug)
		}
		return nil, err
	}
	return article, nil
}

func (s *articleService) ensureSlugFree(ctx context.Context, articleSlug string, excludeID uint) error {
	taken, err := s.articleRepo.SlugExists(ctx, articleSlug, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return models.NewConflictError("slug", "an article with this title already exists")
	}
	return nil
}

// readArticle reloads an article by slug with its full projection.
func (s *articleService) readArticle(ctx context.Context, slug string, viewer *models.Person) (*models.ArticleView, error) {
	article, err := s.findArticle(ctx, slug)
	if err != nil {
		return nil, err
	}
	views, err := s.buildViews(ctx, []models.Article{*article}, viewer)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *articleService) buildViews(ctx context.Context, articles []models.Article, viewer *models.Person) ([]models.ArticleView, error) {
	views := make([]models.ArticleView, 0, len(articles))
	if len(articles) == 0 {
		return views, nil
	}

	ids := make([]uint, 0, len(articles))
	authorIDs := make([]uint, 0, len(articles))
	for _, article := range articles {
		ids = append(ids, article.ID)
		authorIDs = append(authorIDs, article.AuthorID)
	}

	tags, err := s.articleRepo.TagsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	counts, err := s.articleRepo.FavoriteCounts(ctx, ids)
	if err != nil {
		return nil, err
	}
	favorited := map[uint]bool{}
	if viewer != nil {
		favorited, err = s.articleRepo.FavoritedBy(ctx, viewer.ID, ids)
		if err != nil {
			return nil, err
		}
	}
	authors, err := profilesFor(ctx, s.userRepo, uniqueIDs(authorIDs), viewer)
	if err != nil {
		return nil, err
	}

	for _, article := range articles {
		tagList := tags[article.ID]
		if tagList == nil {
			tagList = []string{}
		}
		views = append(views, models.ArticleView{
			Slug:           article.Slug,
			Title:          article.Title,
			Description:    article.Description,
			Body:           article.Body,
			TagList:        tagList,
			CreatedAt:      article.CreatedAt,
			UpdatedAt:      article.UpdatedAt,
			Favorited:      favorited[article.ID],
			FavoritesCount: counts[article.ID],
			Author:         authors[article.AuthorID],
		})
	}
	return views, nil
}

// applyField overwrites dst with a present, non-empty value and reports
// whether the stored value changed.
func applyField(dst *string, value *string) bool {
	if value == nil || *value == "" || *value == *dst {
		return false
	}
	*dst = *value
	return true
}
