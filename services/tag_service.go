package services

import (
	"context"

	"conduit/models"
	"conduit/repositories"
)

type TagService interface {
	GetTags(ctx context.Context) ([]string, error)
	TagExists(ctx context.Context, name string) (bool, error)
	// EnsureTags returns the tag ids for names, creating any that do not
	// exist yet. Each new tag is persisted before the next name is looked
	// up.
	EnsureTags(ctx context.Context, names []string) ([]string, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

func (s *tagService) GetTags(ctx context.Context) ([]string, error) {
	tags, err := s.tagRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tags))
	for _, tag := range tags {
		names = append(names, tag.TagID)
	}
	return names, nil
}

func (s *tagService) TagExists(ctx context.Context, name string) (bool, error) {
	if _, err := s.tagRepo.Get(ctx, name); err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *tagService) EnsureTags(ctx context.Context, names []string) ([]string, error) {
	seen := make(map[string]bool, len(names))
	ids := make([]string, 0, len(names))

	for _, name := range names {
		if blank(name) || seen[name] {
			continue
		}
		seen[name] = true

		tag, err := s.tagRepo.Get(ctx, name)
		if err != nil {
			if !isNotFound(err) {
				return nil, err
			}
			tag = &models.Tag{TagID: name}
			if err := s.tagRepo.Create(ctx, tag); err != nil {
				return nil, err
			}
		}
		ids = append(ids, tag.TagID)
	}

	return ids, nil
}
