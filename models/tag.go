package models

// Tag is keyed by its own text.
type Tag struct {
	TagID string `gorm:"primaryKey;column:tag_id"`
}

type ArticleTag struct {
	ArticleID uint   `gorm:"primaryKey;autoIncrement:false"`
	TagID     string `gorm:"primaryKey;column:tag_id;index"`
}
