package usecases

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/core/ports"
	"github.com/jayakulan/TrashRoute1/internal/pkg/geospatial"
)

// CompanyService looks up waste-processing companies.
type CompanyService struct {
	companies ports.CompanyRepository
	cache     ports.CacheService
}

// NewCompanyService creates a new CompanyService.
func NewCompanyService(companies ports.CompanyRepository, cache ports.CacheService) *CompanyService {
	return &CompanyService{companies: companies, cache: cache}
}

// FindNearby returns companies within radiusMeters of the given point,
// closest first.
func (s *CompanyService) FindNearby(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]domain.Company, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	cacheKey := fmt.Sprintf("companies:nearby:%.4f:%.4f:%.0f:%d", lat, lng, radiusMeters, limit)
	if s.cache != nil {
		if data, err := s.cache.Get(ctx, cacheKey); err == nil {
			var companies []domain.Company
			if err := json.Unmarshal(data, &companies); err == nil {
				return companies, nil
			}
		}
	}

	found, err := s.companies.FindNearby(ctx, lat, lng, radiusMeters, limit)
	if err != nil {
		return nil, err
	}

	// A company only serves points within its own service radius, which may
	// be tighter than the search radius.
	companies := make([]domain.Company, 0, len(found))
	for _, c := range found {
		if servesPoint(c, lat, lng) {
			companies = append(companies, c)
		}
	}

	// Cache for 5 minutes
	if s.cache != nil {
		if data, err := json.Marshal(companies); err == nil {
			_ = s.cache.Set(ctx, cacheKey, data, 300)
		}
	}

	return companies, nil
}

// GetByID returns a single company.
func (s *CompanyService) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	return s.companies.GetByID(ctx, id)
}

func servesPoint(c domain.Company, lat, lng float64) bool {
	if c.ServiceRadiusKm <= 0 {
		return true
	}
	meters := 0.0
	switch {
	case c.Distance != nil:
		meters = *c.Distance
	case c.Address.Coordinate != nil:
		meters = geospatial.Haversine(c.Address.Coordinate.Latitude, c.Address.Coordinate.Longitude, lat, lng)
	default:
		return true
	}
	return meters <= c.ServiceRadiusKm*1000
}
