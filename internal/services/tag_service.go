package services

import (
	"resep/internal/models"
	"resep/internal/repositories"
)

// TagService handles business logic related to tags.
type TagService struct {
	repo repositories.TagRepository
}

// NewTagService creates a new TagService.
func NewTagService(repo repositories.TagRepository) *TagService {
	return &TagService{
		repo: repo,
	}
}

// GetAllTags retrieves all tags.
func (s *TagService) GetAllTags() ([]models.Tag, error) {
	return s.repo.GetAll()
}

// GetTagByID retrieves a single tag by its ID.
func (s *TagService) GetTagByID(id string) (*models.Tag, error) {
	return s.repo.GetByID(id)
}

// CreateTag creates a new tag.
func (s *TagService) CreateTag(tag *models.Tag) error {
	return s.repo.Create(tag)
}

// UpdateTag updates an existing tag.
func (s *TagService) UpdateTag(tag *models.Tag) error {
	return s.repo.Update(tag)
}

// DeleteTag deletes a tag by its ID.
func (s *TagService) DeleteTag(id string) error {
	return s.repo.Delete(id)
}
