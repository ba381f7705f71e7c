package ports

import (
	"context"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
)

// PickupRequestRepository persists pickup requests.
type PickupRequestRepository interface {
	Create(ctx context.Context, req *domain.PickupRequest) error
	GetByID(ctx context.Context, id string) (*domain.PickupRequest, error)
	// ListByUser returns all requests visible to a user or company.
	// Ordering is not guaranteed; callers sort when order matters.
	ListByUser(ctx context.Context, userID string) ([]domain.PickupRequest, error)
	ListByCompany(ctx context.Context, companyID string) ([]domain.PickupRequest, error)
	ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.PickupRequest, error)
	// UpdateStatus persists a transition already validated by the domain.
	UpdateStatus(ctx context.Context, req *domain.PickupRequest) error
}

// WasteCategoryRepository persists waste-category reference data.
type WasteCategoryRepository interface {
	List(ctx context.Context) ([]domain.WasteCategory, error)
	GetByID(ctx context.Context, id string) (*domain.WasteCategory, error)
}

// CompanyRepository persists waste-processing companies.
type CompanyRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Company, error)
	FindNearby(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]domain.Company, error)
}
