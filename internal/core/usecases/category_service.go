package usecases

import (
	"context"
	"encoding/json"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/core/ports"
)

// CategoryService serves waste-category reference data with a read-through
// cache. Categories change rarely, so cache TTLs are generous.
type CategoryService struct {
	categories ports.WasteCategoryRepository
	cache      ports.CacheService
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categories ports.WasteCategoryRepository, cache ports.CacheService) *CategoryService {
	return &CategoryService{categories: categories, cache: cache}
}

// List returns every selectable waste category.
func (s *CategoryService) List(ctx context.Context) ([]domain.WasteCategory, error) {
	cacheKey := "categories:all"
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var categories []domain.WasteCategory
			if err := json.Unmarshal(data, &categories); err == nil {
				return categories, nil
			}
		}
	}

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}

	// Cache for an hour; reference data changes through migrations.
	if s.cache != nil {
		if data, err := json.Marshal(categories); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 3600)
		}
	}

	return categories, nil
}

// GetByID returns a single waste category.
func (s *CategoryService) GetByID(ctx context.Context, id string) (*domain.WasteCategory, error) {
	cacheKey := "categories:id:" + id
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var category domain.WasteCategory
			if err := json.Unmarshal(data, &category); err == nil {
				return &category, nil
			}
		}
	}

	category, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if data, err := json.Marshal(category); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 3600)
		}
	}

	return category, nil
}
