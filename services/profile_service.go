package services

import (
	"context"

	"conduit/models"
	"conduit/repositories"
)

type ProfileService interface {
	GetProfile(ctx context.Context, username, caller string) (*models.Profile, error)
	Follow(ctx context.Context, username, caller string) (*models.Profile, error)
	Unfollow(ctx context.Context, username, caller string) (*models.Profile, error)
}

type profileService struct {
	userRepo repositories.UserRepository
}

func NewProfileService(userRepo repositories.UserRepository) ProfileService {
	return &profileService{userRepo: userRepo}
}

func (s *profileService) GetProfile(ctx context.Context, username, caller string) (*models.Profile, error) {
	viewer, err := optionalCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, err
	}
	return s.readProfile(ctx, username, viewer)
}

func (s *profileService) Follow(ctx context.Context, username, caller string) (*models.Profile, error) {
	observer, err := requireCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, err
	}
	target, err := s.target(ctx, username)
	if err != nil {
		return nil, err
	}

	following, err := s.userRepo.IsFollowing(ctx, observer.ID, target.ID)
	if err != nil {
		return nil, err
	}
	if !following {
		if err := s.userRepo.Follow(ctx, observer.ID, target.ID); err != nil {
			return nil, err
		}
	}

	return s.readProfile(ctx, username, observer)
}

func (s *profileService) Unfollow(ctx context.Context, username, caller string) (*models.Profile, error) {
	observer, err := requireCaller(ctx, s.userRepo, caller)
	if err != nil {
		return nil, err
	}
	target, err := s.target(ctx, username)
	if err != nil {
		return nil, err
	}

	following, err := s.userRepo.IsFollowing(ctx, observer.ID, target.ID)
	if err != nil {
		return nil, err
	}
	if following {
		if err := s.userRepo.Unfollow(ctx, observer.ID, target.ID); err != nil {
			return nil, err
		}
	}

	return s.readProfile(ctx, username, observer)
}

func (s *profileService) target(ctx context.Context, username string) (*models.Person, error) {
	person, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if isNotFound(err) {
			return nil, models.NewNotFoundError("profile", username)
		}
		return nil, err
	}
	return person, nil
}

func (s *profileService) readProfile(ctx context.Context, username string, viewer *models.Person) (*models.Profile, error) {
	person, err := s.target(ctx, username)
	if err != nil {
		return nil, err
	}

	following := false
	if viewer != nil {
		following, err = s.userRepo.IsFollowing(ctx, viewer.ID, person.ID)
		if err != nil {
			return nil, err
		}
	}

	profile := profileOf(*person, following)
	return &profile, nil
}
