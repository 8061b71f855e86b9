package repositories

import (
	"context"

	"conduit/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArticleFilter is the resolved form of a listing request: every
// username has already been turned into a person id.
type ArticleFilter struct {
	FollowerID    *uint
	TagID         string
	AuthorID      *uint
	FavoritedByID *uint
	Offset        int
	Limit         int
}

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article, tagIDs []string) error
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	List(ctx context.Context, filter ArticleFilter) ([]models.Article, int64, error)
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id uint) error
	TagsFor(ctx context.Context, articleIDs []uint) (map[uint][]string, error)
	FavoriteCounts(ctx context.Context, articleIDs []uint) (map[uint]int64, error)
	FavoritedBy(ctx context.Context, personID uint, articleIDs []uint) (map[uint]bool, error)
	IsFavorited(ctx context.Context, articleID, personID uint) (bool, error)
	AddFavorite(ctx context.Context, articleID, personID uint) error
	RemoveFavorite(ctx context.Context, articleID, personID uint) error
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create persists the article and its tag links in one transaction. The
// tags themselves must already exist.
func (r *articleRepository) Create(ctx context.Context, article *models.Article, tagIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(article).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}

		links := make([]models.ArticleTag, 0, len(tagIDs))
		for _, tagID := range tagIDs {
			links = append(links, models.ArticleTag{ArticleID: article.ID, TagID: tagID})
		}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	})
}

func (r *articleRepository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	var article models.Article
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&article).Error
	return &article, err
}

func (r *articleRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Article{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// List applies every set predicate, counts the matches and then returns
// one page ordered newest first.
func (r *articleRepository) List(ctx context.Context, filter ArticleFilter) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Article{})

	if filter.FollowerID != nil {
		query = query.Where("articles.author_id IN (?)",
			r.db.Model(&models.FollowedPeople{}).Select("target_id").Where("observer_id = ?", *filter.FollowerID))
	}

	if filter.TagID != "" {
		query = query.Where("articles.id IN (?)",
			r.db.Model(&models.ArticleTag{}).Select("article_id").Where("tag_id = ?", filter.TagID))
	}

	if filter.AuthorID != nil {
		query = query.Where("articles.author_id = ?", *filter.AuthorID)
	}

	if filter.FavoritedByID != nil {
		query = query.Where("articles.id IN (?)",
			r.db.Model(&models.ArticleFavorite{}).Select("article_id").Where("person_id = ?", *filter.FavoritedByID))
	}

	query = query.Session(&gorm.Session{})

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("articles.created_at desc").
		Order("articles.id desc").
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&articles).Error

	return articles, total, err
}

func (r *articleRepository) Update(ctx context.Context, article *models.Article) error {
	return r.db.WithContext(ctx).Save(article).Error
}

// Delete removes the article together with its comments, favorites and
// tag links.
func (r *articleRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("article_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("article_id = ?", id).Delete(&models.ArticleTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Article{}, id).Error
	})
}

func (r *articleRepository) TagsFor(ctx context.Context, articleIDs []uint) (map[uint][]string, error) {
	tags := make(map[uint][]string)
	if len(articleIDs) == 0 {
		return tags, nil
	}

	var links []models.ArticleTag
	err := r.db.WithContext(ctx).
		Where("article_id IN ?", articleIDs).
		Order("tag_id asc").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	for _, link := range links {
		tags[link.ArticleID] = append(tags[link.ArticleID], link.TagID)
	}
	return tags, nil
}

func (r *articleRepository) FavoriteCounts(ctx context.Context, articleIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64)
	if len(articleIDs) == 0 {
		return counts, nil
	}

	var results []struct {
		ArticleID uint
		Count     int64
	}
	err := r.db.WithContext(ctx).Model(&models.ArticleFavorite{}).
		Select("article_id, COUNT(*) AS count").
		Where("article_id IN ?", articleIDs).
		Group("article_id").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}
	for _, result := range results {
		counts[result.ArticleID] = result.Count
	}
	return counts, nil
}

func (r *articleRepository) FavoritedBy(ctx context.Context, personID uint, articleIDs []uint) (map[uint]bool, error) {
	favorited := make(map[uint]bool)
	if len(articleIDs) == 0 {
		return favorited, nil
	}

	var favorites []models.ArticleFavorite
	err := r.db.WithContext(ctx).
		Where("person_id = ? AND article_id IN ?", personID, articleIDs).
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}
	for _, favorite := range favorites {
		favorited[favorite.ArticleID] = true
	}
	return favorited, nil
}

func (r *articleRepository) IsFavorited(ctx context.Context, articleID, personID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.ArticleFavorite{}).
		Where("article_id = ? AND person_id = ?", articleID, personID).
		Count(&count).Error
	return count > 0, err
}

func (r *articleRepository) AddFavorite(ctx context.Context, articleID, personID uint) error {
	favorite := models.ArticleFavorite{ArticleID: articleID, PersonID: personID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite).Error
}

func (r *articleRepository) RemoveFavorite(ctx context.Context, articleID, personID uint) error {
	return r.db.WithContext(ctx).
		Where("article_id = ? AND person_id = ?", articleID, personID).
		Delete(&models.ArticleFavorite{}).Error
}
