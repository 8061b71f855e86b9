package models

import (
	"time"
)

// Person is the persisted account behind a user and a profile.
type Person struct {
	ID        uint      `json:"-" gorm:"primarykey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Hash      []byte    `json:"-" gorm:"not null"`
	Salt      []byte    `json:"-" gorm:"not null"`
	Bio       string    `json:"bio"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (Person) TableName() string {
	return "persons"
}

// FollowedPeople is a directed edge: Observer follows Target.
type FollowedPeople struct {
	ObserverID uint `gorm:"primaryKey;autoIncrement:false"`
	TargetID   uint `gorm:"primaryKey;autoIncrement:false;index"`
}

func (FollowedPeople) TableName() string {
	return "followed_people"
}
