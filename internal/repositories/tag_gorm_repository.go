package repositories

import (
	"errors"
	"fmt"

	"resep/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMTagRepository is a GORM implementation of TagRepository.
type GORMTagRepository struct {
	db *gorm.DB
}

// NewGORMTagRepository creates a new instance of GORMTagRepository.
func NewGORMTagRepository(db *gorm.DB) *GORMTagRepository {
	return &GORMTagRepository{
		db: db,
	}
}

// GetAll retrieves all tags, unpaginated.
func (r *GORMTagRepository) GetAll() ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to get all tags: %w", err)
	}
	return tags, nil
}

// GetByID retrieves a single tag by its ID.
func (r *GORMTagRepository) GetByID(id string) (*models.Tag, error) {
	var tag models.Tag
	if err := r.db.First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("tag with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tag by ID %s: %w", id, err)
	}
	return &tag, nil
}

// GetByIDs retrieves the tags matching the given IDs. Callers compare the
// result length against the input to detect unknown IDs.
func (r *GORMTagRepository) GetByIDs(ids []string) ([]models.Tag, error) {
	var tags []models.Tag
	if err := r.db.Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to get tags by IDs: %w", err)
	}
	return tags, nil
}

// Create creates a new tag. The slug must be unique.
func (r *GORMTagRepository) Create(tag *models.Tag) error {
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	if err := r.db.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("tag with slug %s: %w", tag.Slug, ErrDuplicate)
		}
		return fmt.Errorf("failed to create tag: %w", err)
	}
	return nil
}

// Update updates an existing tag.
func (r *GORMTagRepository) Update(tag *models.Tag) error {
	res := r.db.Save(tag)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("tag with slug %s: %w", tag.Slug, ErrDuplicate)
		}
		return fmt.Errorf("failed to update tag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("tag with ID %s: %w", tag.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a tag by its ID.
func (r *GORMTagRepository) Delete(id string) error {
	res := r.db.Delete(&models.Tag{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete tag: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("tag with ID %s: %w", id, ErrNotFound)
	}
	return nil
}
