package models

import (
	"time"
)

type Article struct {
	ID          uint      `gorm:"primarykey"`
	Slug        string    `gorm:"uniqueIndex;not null"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	Body        string    `gorm:"type:text;not null"`
	AuthorID    uint      `gorm:"not null;index"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime:false"`
}

// ArticleFavorite records that a person favorited an article.
type ArticleFavorite struct {
	ArticleID uint `gorm:"primaryKey;autoIncrement:false"`
	PersonID  uint `gorm:"primaryKey;autoIncrement:false;index"`
}

type Comment struct {
	ID        uint      `gorm:"primarykey"`
	Body      string    `gorm:"type:text;not null"`
	AuthorID  uint      `gorm:"not null"`
	ArticleID uint      `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
