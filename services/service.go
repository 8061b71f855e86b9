package services

import (
	"context"
	"errors"
	"strings"

	"conduit/models"
	"conduit/repositories"

	"gorm.io/gorm"
)

func isNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// requireCaller loads the person behind an authenticated username. A
// token whose subject no longer exists is treated as no identity.
func requireCaller(ctx context.Context, users repositories.UserRepository, caller string) (*models.Person, error) {
	if caller == "" {
		return nil, models.NewUnauthenticatedError("authentication required")
	}
	person, err := users.GetByUsername(ctx, caller)
	if err != nil {
		if isNotFound(err) {
			return nil, models.NewUnauthenticatedError("authentication required")
		}
		return nil, err
	}
	return person, nil
}

// optionalCaller is requireCaller for endpoints that also serve anonymous
// callers; it returns nil when there is no usable identity.
func optionalCaller(ctx context.Context, users repositories.UserRepository, caller string) (*models.Person, error) {
	if caller == "" {
		return nil, nil
	}
	person, err := users.GetByUsername(ctx, caller)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		return nil, err
	}
	return person, nil
}

func profileOf(person models.Person, following bool) models.Profile {
	return models.Profile{
		Username:  person.Username,
		Bio:       person.Bio,
		Image:     person.Image,
		Following: following,
	}
}

// profilesFor builds author profiles for the given person ids as seen by
// viewer, which may be nil.
func profilesFor(ctx context.Context, users repositories.UserRepository, ids []uint, viewer *models.Person) (map[uint]models.Profile, error) {
	persons, err := users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	following := map[uint]bool{}
	if viewer != nil {
		following, err = users.FollowingAmong(ctx, viewer.ID, ids)
		if err != nil {
			return nil, err
		}
	}

	profiles := make(map[uint]models.Profile, len(persons))
	for _, person := range persons {
		profiles[person.ID] = profileOf(person, following[person.ID])
	}
	return profiles, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
