package repositories

import (
	"context"

	"conduit/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TagRepository interface {
	Create(ctx context.Context, tag *models.Tag) error
	Get(ctx context.Context, tagID string) (*models.Tag, error)
	GetAll(ctx context.Context) ([]models.Tag, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

// Create inserts the tag; a tag that already exists is left as is.
func (r *tagRepository) Create(ctx context.Context, tag *models.Tag) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(tag).Error
}

func (r *tagRepository) Get(ctx context.Context, tagID string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.WithContext(ctx).Where("tag_id = ?", tagID).First(&tag).Error
	return &tag, err
}

func (r *tagRepository) GetAll(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.WithContext(ctx).Order("tag_id asc").Find(&tags).Error
	return tags, err
}
