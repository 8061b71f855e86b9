package repositories

import (
	"context"

	"conduit/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, person *models.Person) error
	GetByIDs(ctx context.Context, ids []uint) ([]models.Person, error)
	GetByUsername(ctx context.Context, username string) (*models.Person, error)
	GetByEmail(ctx context.Context, email string) (*models.Person, error)
	UsernameExists(ctx context.Context, username string, excludeID uint) (bool, error)
	EmailExists(ctx context.Context, email string, excludeID uint) (bool, error)
	Update(ctx context.Context, person *models.Person) error
	IsFollowing(ctx context.Context, observerID, targetID uint) (bool, error)
	FollowingAmong(ctx context.Context, observerID uint, targetIDs []uint) (map[uint]bool, error)
	Follow(ctx context.Context, observerID, targetID uint) error
	Unfollow(ctx context.Context, observerID, targetID uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, person *models.Person) error {
	return r.db.WithContext(ctx).Create(person).Error
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Person, error) {
	var persons []models.Person
	if len(ids) == 0 {
		return persons, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&persons).Error
	return persons, err
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.Person, error) {
	var person models.Person
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&person).Error
	return &person, err
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.Person, error) {
	var person models.Person
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&person).Error
	return &person, err
}

func (r *userRepository) UsernameExists(ctx context.Context, username string, excludeID uint) (bool, error) {
	return r.exists(ctx, "username = ?", username, excludeID)
}

func (r *userRepository) EmailExists(ctx context.Context, email string, excludeID uint) (bool, error) {
	return r.exists(ctx, "email = ?", email, excludeID)
}

func (r *userRepository) exists(ctx context.Context, cond string, value string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Person{}).Where(cond, value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *userRepository) Update(ctx context.Context, person *models.Person) error {
	return r.db.WithContext(ctx).Save(person).Error
}

func (r *userRepository) IsFollowing(ctx context.Context, observerID, targetID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.FollowedPeople{}).
		Where("observer_id = ? AND target_id = ?", observerID, targetID).
		Count(&count).Error
	return count > 0, err
}

// FollowingAmong returns the subset of targetIDs the observer follows.
func (r *userRepository) FollowingAmong(ctx context.Context, observerID uint, targetIDs []uint) (map[uint]bool, error) {
	following := make(map[uint]bool)
	if len(targetIDs) == 0 {
		return following, nil
	}

	var edges []models.FollowedPeople
	err := r.db.WithContext(ctx).
		Where("observer_id = ? AND target_id IN ?", observerID, targetIDs).
		Find(&edges).Error
	if err != nil {
		return nil, err
	}
	for _, edge := range edges {
		following[edge.TargetID] = true
	}
	return following, nil
}

func (r *userRepository) Follow(ctx context.Context, observerID, targetID uint) error {
	edge := models.FollowedPeople{ObserverID: observerID, TargetID: targetID}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge).Error
}

func (r *userRepository) Unfollow(ctx context.Context, observerID, targetID uint) error {
	return r.db.WithContext(ctx).
		Where("observer_id = ? AND target_id = ?", observerID, targetID).
		Delete(&models.FollowedPeople{}).Error
}
