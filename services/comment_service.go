package services

import (
	"context"
	"time"

	"conduit/models"
	"conduit/repositories"
)

type CommentService interface {
	AddComment(ctx context.Context, slug string, req models.CreateComment, caller string) (*models.CommentView, error)
	GetComments(ctx context.Context, slug, caller string) ([]models.CommentView, error)
	DeleteComment(ctx context.Context, slug string, id uint, caller string) error
}

type commentService struct {
	commentRepo repositories.CommentRepository
	articleRepo repositories.ArticleRepository
	userRepo    repositories.UserRepository
}

func NewCommentService(commentRepo repositories.CommentRepository, articleRepo repositories.ArticleRepository, userRepo repositories.UserRepository) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		articleRepo: articleRepo,
		userRepo:    userRepo,
	}
}

func (s *commentService) AddComment(ctx context.Context, slug string, req models.CreateComment, caller string) (*models.CommentView, error) {
	author, err := requireCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, err
	}
	article, err := s.article(ctx, slug)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	comment := &models.Comment{
		Body:      req.Body,
		AuthorID:  author.ID,
		ArticleID: article.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	stored, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	views, err := s.buildViews(ctx, []models.Comment{*stored}, author)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *commentService) GetComments(ctx context.Context, slug, caller string) ([]models.CommentView, error) {
	viewer, err := optionalCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, err
	}
	article, err := s.article(ctx, slug)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.GetByArticle(ctx, article.ID)
	if err != nil {
		return nil, err
	}
	return s.buildViews(ctx, comments, viewer)
}

func (s *commentService) DeleteComment(ctx context.Context, slug string, id uint, caller string) error {
	person, err := requireCaller(ctx, s.userRepo, caller)
	if err != nil {
		return err
	}
	article, err := s.article(ctx, slug)
	if err != nil {
		return err
	}

	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return models.NewNotFoundError("comment", id)
		}
		return err
	}
	// A comment addressed through another article's slug does not exist
	// at this path.
	if comment.ArticleID != article.ID {
		return models.NewNotFoundError("comment", id)
	}
	if comment.AuthorID != person.ID {
		return models.NewForbiddenError("only the author can delete this comment")
	}

	return s.commentRepo.Delete(ctx, comment.ID)
}

func (s *commentService) article(ctx context.Context, slug string) (*models.Article, error) {
	article, err := s.articleRepo.GetBySlug(ctx, slug)
	if err != nil {
		if isNotFound(err) {
			return nil, models.NewNotFoundError("article", slug)
		}
		return nil, err
	}
	return article, nil
}

func (s *commentService) buildViews(ctx context.Context, comments []models.Comment, viewer *models.Person) ([]models.CommentView, error) {
	views := make([]models.CommentView, 0, len(comments))
	if len(comments) == 0 {
		return views, nil
	}

	authorIDs := make([]uint, 0, len(comments))
	for _, comment := range comments {
		authorIDs = append(authorIDs, comment.AuthorID)
	}
	authors, err := profilesFor(ctx, s.userRepo, uniqueIDs(authorIDs), viewer)
	if err != nil {
		return nil, err
	}

	for _, comment := range comments {
		views = append(views, models.CommentView{
			ID:        comment.ID,
			CreatedAt: comment.CreatedAt,
			UpdatedAt: comment.UpdatedAt,
			Body:      comment.Body,
			Author:    authors[comment.AuthorID],
		})
	}
	return views, nil
}
