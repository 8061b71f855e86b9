package services

import (
	"context"
	"testing"

	"conduit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func slugsOf(views []models.ArticleView) []string {
	slugs := make([]string, 0, len(views))
	for _, v := range views {
		slugs = append(slugs, v.Slug)
	}
	return slugs
}

func TestGenerateSlug(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"How to train", "how-to-train"},
		{"How to train your dragon", "how-to-train-your-dragon"},
		{"  Spaces   everywhere ", "spaces-everywhere"},
		{"Punctuation, please!", "punctuation-please"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, GenerateSlug(tt.title))
		})
	}
}

func TestCreateArticle_SlugAndTags(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")

	article := s.createArticle(t, "jake", "How to train", "dragons", "training")
	assert.Equal(t, "how-to-train", article.Slug)
	assert.ElementsMatch(t, []string{"dragons", "training"}, article.TagList)
	assert.Equal(t, "jake", article.Author.Username)
	assert.False(t, article.Favorited)
	assert.Equal(t, int64(0), article.FavoritesCount)
	assert.Equal(t, article.CreatedAt, article.UpdatedAt)

	tags, err := s.tags.GetTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dragons", "training"}, tags)

	fetched, err := s.articles.GetArticle(ctx, "how-to-train", "")
	require.NoError(t, err)
	assert.Equal(t, article.Title, fetched.Title)
	assert.ElementsMatch(t, article.TagList, fetched.TagList)
}

func TestCreateArticle_ReusesExistingTagsAndIgnoresDuplicates(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")

	s.createArticle(t, "jake", "First", "go")
	second := s.createArticle(t, "jake", "Second", "go", "go", "", "web")
	assert.ElementsMatch(t, []string{"go", "web"}, second.TagList)

	tags, err := s.tags.GetTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"go", "web"}, tags)
}

func TestCreateArticle_Errors(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")
	s.createArticle(t, "jake", "How to train")

	t.Run("anonymous", func(t *testing.T) {
		_, err := s.articles.CreateArticle(ctx, models.CreateArticle{Title: "x", Description: "d", Body: "b"}, "")
		assert.ErrorIs(t, err, models.ErrUnauthenticated)
	})

	t.Run("slug taken", func(t *testing.T) {
		_, err := s.articles.CreateArticle(ctx, models.CreateArticle{Title: "How To Train", Description: "d", Body: "b"}, "jake")
		assert.ErrorIs(t, err, models.ErrConflict)
	})

	t.Run("title without slug characters", func(t *testing.T) {
		_, err := s.articles.CreateArticle(ctx, models.CreateArticle{Title: "???", Description: "d", Body: "b"}, "jake")
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestGetArticle_NotFound(t *testing.T) {
	s := newTestServices(t)

	_, err := s.articles.GetArticle(context.Background(), "missing", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListArticles_OrderAndCount(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")

	s.createArticle(t, "jake", "One")
	s.createArticle(t, "jake", "Two")
	s.createArticle(t, "jake", "Three")

	all, total, err := s.articles.ListArticles(ctx, models.ArticleListParams{}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"three", "two", "one"}, slugsOf(all))

	page, total, err := s.articles.ListArticles(ctx, models.ArticleListParams{Limit: 1, Offset: 1}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Equal(t, []string{"two"}, slugsOf(page))

	past, total, err := s.articles.ListArticles(ctx, models.ArticleListParams{Limit: 10, Offset: 10}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Empty(t, past)

	negative, _, err := s.articles.ListArticles(ctx, models.ArticleListParams{Limit: 2, Offset: -5}, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"three", "two"}, slugsOf(negative))
}

func TestListArticles_Filters(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")
	s.register(t, "anne")
	s.register(t, "reader")

	s.createArticle(t, "jake", "Dragons", "dragons")
	s.createArticle(t, "anne", "Training", "training")
	s.createArticle(t, "anne", "Both", "dragons", "training")

	_, err := s.articles.FavoriteArticle(ctx, "training", "reader")
	require.NoError(t, err)

	tests := []struct {
		name   string
		params models.ArticleListParams
		want   []string
	}{
		{"by tag", models.ArticleListParams{Tag: "dragons"}, []string{"both", "dragons"}},
		{"by author", models.ArticleListParams{Author: "anne"}, []string{"both", "training"}},
		{"by favorited", models.ArticleListParams{Favorited: "reader"}, []string{"training"}},
		{"tag and author", models.ArticleListParams{Tag: "dragons", Author: "anne"}, []string{"both"}},
		{"unknown tag", models.ArticleListParams{Tag: "unicorns"}, []string{}},
		{"unknown author", models.ArticleListParams{Author: "ghost"}, []string{}},
		{"unknown favorited", models.ArticleListParams{Favorited: "ghost"}, []string{}},
		{"favorited by nobody", models.ArticleListParams{Favorited: "jake"}, []string{}},
		{"unknown tag with known author", models.ArticleListParams{Tag: "unicorns", Author: "anne"}, []string{}},
		{"unknown author with known tag", models.ArticleListParams{Author: "ghost", Tag: "dragons"}, []string{}},
		{"unknown favorited with known tag and author", models.ArticleListParams{Tag: "training", Author: "anne", Favorited: "ghost"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			views, total, err := s.articles.ListArticles(ctx, tt.params, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, slugsOf(views))
			assert.Equal(t, int64(len(tt.want)), total)
		})
	}
}

func TestListArticles_Feed(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")
	s.register(t, "anne")
	s.register(t, "reader")

	s.createArticle(t, "jake", "From Jake")
	s.createArticle(t, "anne", "From Anne")

	_, err := s.profiles.Follow(ctx, "jake", "reader")
	require.NoError(t, err)

	feed, total, err := s.articles.ListArticles(ctx, models.ArticleListParams{Feed: true}, "reader")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, feed, 1)
	assert.Equal(t, "from-jake", feed[0].Slug)
	assert.True(t, feed[0].Author.Following)

	empty, total, err := s.articles.ListArticles(ctx, models.ArticleListParams{Feed: true}, "anne")
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, empty)

	anonymous, total, err := s.articles.ListArticles(ctx, models.ArticleListParams{Feed: true}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, anonymous, 2)
}

func TestUpdateArticle_BodyOnly(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")
	created := s.createArticle(t, "jake", "How to train", "dragons")

	updated, err := s.articles.UpdateArticle(ctx, created.Slug, models.UpdateArticle{Body: strPtr("A new body")}, "jake")
	require.NoError(t, err)
	assert.Equal(t, "how-to-train", updated.Slug)
	assert.Equal(t, created.Title, updated.Title)
	assert.Equal(t, created.Description, updated.Description)
	assert.Equal(t, "A new body", updated.Body)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Equal(t, []string{"dragons"}, updated.TagList)
}

func TestUpdateArticle_TitleRegeneratesSlug(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")
	created := s.createArticle(t, "jake", "How to train")

	updated, err := s.articles.UpdateArticle(ctx, created.Slug, models.UpdateArticle{Title: strPtr("How to fly")}, "jake")
	require.NoError(t, err)
	assert.Equal(t, "how-to-fly", updated.Slug)

	_, err = s.articles.GetArticle(ctx, "how-to-train", "")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateArticle_NoChangeKeepsTimestamp(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")
	created := s.createArticle(t, "jake", "How to train")

	updated, err := s.articles.UpdateArticle(ctx, created.Slug, models.UpdateArticle{
		Title: strPtr(""),
		Body:  strPtr(created.Body),
	}, "jake")
	require.NoError(t, err)
	assert.Equal(t, created.UpdatedAt, updated.UpdatedAt)
	assert.Equal(t, created.Title, updated.Title)
}

func TestUpdateArticle_Errors(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")
	s.register(t, "anne")
	s.createArticle(t, "jake", "How to train")
	s.createArticle(t, "jake", "How to fly")

	_, err := s.articles.UpdateArticle(ctx, "how-to-train", models.UpdateArticle{Body: strPtr("x")}, "anne")
	assert.ErrorIs(t, err, models.ErrForbidden)

	_, err = s.articles.UpdateArticle(ctx, "how-to-train", models.UpdateArticle{Title: strPtr("How to fly")}, "jake")
	assert.ErrorIs(t, err, models.ErrConflict)

	for _, title := range []string{"???", "!!!"} {
		_, err = s.articles.UpdateArticle(ctx, "how-to-train", models.UpdateArticle{Title: strPtr(title)}, "jake")
		assert.ErrorIs(t, err, models.ErrValidation)
	}
	kept, err := s.articles.GetArticle(ctx, "how-to-train", "")
	require.NoError(t, err)
	assert.Equal(t, "How to train", kept.Title)

	_, err = s.articles.UpdateArticle(ctx, "missing", models.UpdateArticle{Body: strPtr("x")}, "jake")
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = s.articles.UpdateArticle(ctx, "how-to-train", models.UpdateArticle{Body: strPtr("x")}, "")
	assert.ErrorIs(t, err, models.ErrUnauthenticated)
}

func TestDeleteArticle_Cascades(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")
	s.register(t, "anne")
	s.createArticle(t, "jake", "How to train", "dragons")

	_, err := s.articles.FavoriteArticle(ctx, "how-to-train", "anne")
	require.NoError(t, err)
	_, err = s.comments.AddComment(ctx, "how-to-train", models.CreateComment{Body: "Nice"}, "anne")
	require.NoError(t, err)

	err = s.articles.DeleteArticle(ctx, "how-to-train", "anne")
	assert.ErrorIs(t, err, models.ErrForbidden)

	require.NoError(t, s.articles.DeleteArticle(ctx, "how-to-train", "jake"))

	_, err = s.articles.GetArticle(ctx, "how-to-train", "")
	assert.ErrorIs(t, err, models.ErrNotFound)

	for _, model := range []interface{}{&models.Comment{}, &models.ArticleFavorite{}, &models.ArticleTag{}} {
		var count int64
		require.NoError(t, s.db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}

	tags, err := s.tags.GetTags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"dragons"}, tags)
}

func TestFavoriteArticle_Idempotent(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")
	s.register(t, "anne")
	s.createArticle(t, "jake", "How to train")

	first, err := s.articles.FavoriteArticle(ctx, "how-to-train", "anne")
	require.NoError(t, err)
	assert.True(t, first.Favorited)
	assert.Equal(t, int64(1), first.FavoritesCount)

	second, err := s.articles.FavoriteArticle(ctx, "how-to-train", "anne")
	require.NoError(t, err)
	assert.True(t, second.Favorited)
	assert.Equal(t, int64(1), second.FavoritesCount)

	var edges int64
	require.NoError(t, s.db.Model(&models.ArticleFavorite{}).Count(&edges).Error)
	assert.Equal(t, int64(1), edges)

	asAuthor, err := s.articles.GetArticle(ctx, "how-to-train", "jake")
	require.NoError(t, err)
	assert.False(t, asAuthor.Favorited)
	assert.Equal(t, int64(1), asAuthor.FavoritesCount)
}

func TestUnfavoriteArticle(t *testing.T) {
	s := newTestServices(t)
	ctx := context.Background()
	s.register(t, "jake")
	s.register(t, "anne")
	s.createArticle(t, "jake", "How to train")

	view, err := s.articles.UnfavoriteArticle(ctx, "how-to-train", "anne")
	require.NoError(t, err)
	assert.False(t, view.Favorited)
	assert.Equal(t, int64(0), view.FavoritesCount)

	_, err = s.articles.FavoriteArticle(ctx, "how-to-train", "anne")
	require.NoError(t, err)

	view, err = s.articles.UnfavoriteArticle(ctx, "how-to-train", "anne")
	require.NoError(t, err)
	assert.False(t, view.Favorited)
	assert.Equal(t, int64(0), view.FavoritesCount)

	_, err = s.articles.FavoriteArticle(ctx, "missing", "anne")
	assert.ErrorIs(t, err, models.ErrNotFound)
}
