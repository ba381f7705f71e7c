package usecases_test

import (
	"context"
	"errors"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
)

// mockRequestRepo implements ports.PickupRequestRepository with overridable
// func fields. Unset methods fail the call.
type mockRequestRepo struct {
	create        func(ctx context.Context, req *domain.PickupRequest) error
	getByID       func(ctx context.Context, id string) (*domain.PickupRequest, error)
	listByUser    func(ctx context.Context, userID string) ([]domain.PickupRequest, error)
	listByCompany func(ctx context.Context, companyID string) ([]domain.PickupRequest, error)
	listByStatus  func(ctx context.Context, status domain.RequestStatus) ([]domain.PickupRequest, error)
	updateStatus  func(ctx context.Context, req *domain.PickupRequest) error
}

var errNotStubbed = errors.New("method not stubbed")

func (m *mockRequestRepo) Create(ctx context.Context, req *domain.PickupRequest) error {
	if m.create == nil {
		return errNotStubbed
	}
	return m.create(ctx, req)
}

func (m *mockRequestRepo) GetByID(ctx context.Context, id string) (*domain.PickupRequest, error) {
	if m.getByID == nil {
		return nil, errNotStubbed
	}
	return m.getByID(ctx, id)
}

func (m *mockRequestRepo) ListByUser(ctx context.Context, userID string) ([]domain.PickupRequest, error) {
	if m.listByUser == nil {
		return nil, errNotStubbed
	}
	return m.listByUser(ctx, userID)
}

func (m *mockRequestRepo) ListByCompany(ctx context.Context, companyID string) ([]domain.PickupRequest, error) {
	if m.listByCompany == nil {
		return nil, errNotStubbed
	}
	return m.listByCompany(ctx, companyID)
}

func (m *mockRequestRepo) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.PickupRequest, error) {
	if m.listByStatus == nil {
		return nil, errNotStubbed
	}
	return m.listByStatus(ctx, status)
}

func (m *mockRequestRepo) UpdateStatus(ctx context.Context, req *domain.PickupRequest) error {
	if m.updateStatus == nil {
		return errNotStubbed
	}
	return m.updateStatus(ctx, req)
}

// mockPublisher implements ports.EventPublisher. Unset methods are no-ops.
type mockPublisher struct {
	publishSubmitted     func(ctx context.Context, req *domain.PickupRequest) error
	publishStatusChanged func(ctx context.Context, req *domain.PickupRequest, action domain.Action) error
}

func (m *mockPublisher) PublishRequestSubmitted(ctx context.Context, req *domain.PickupRequest) error {
	if m.publishSubmitted == nil {
		return nil
	}
	return m.publishSubmitted(ctx, req)
}

func (m *mockPublisher) PublishStatusChanged(ctx context.Context, req *domain.PickupRequest, action domain.Action) error {
	if m.publishStatusChanged == nil {
		return nil
	}
	return m.publishStatusChanged(ctx, req, action)
}

// mockCategoryRepo implements ports.WasteCategoryRepository.
type mockCategoryRepo struct {
	list    func(ctx context.Context) ([]domain.WasteCategory, error)
	getByID func(ctx context.Context, id string) (*domain.WasteCategory, error)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]domain.WasteCategory, error) {
	if m.list == nil {
		return nil, errNotStubbed
	}
	return m.list(ctx)
}

func (m *mockCategoryRepo) GetByID(ctx context.Context, id string) (*domain.WasteCategory, error) {
	if m.getByID == nil {
		return nil, errNotStubbed
	}
	return m.getByID(ctx, id)
}

// mockCache implements ports.CacheService over a plain map.
type mockCache struct {
	data map[string][]byte
	sets int
	gets int
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

var errCacheMiss = errors.New("cache miss")

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.gets++
	v, ok := m.data[key]
	if !ok {
		return nil, errCacheMiss
	}
	return v, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	m.sets++
	m.data[key] = value
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

// mockCompanyRepo implements ports.CompanyRepository.
type mockCompanyRepo struct {
	getByID    func(ctx context.Context, id string) (*domain.Company, error)
	findNearby func(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]domain.Company, error)
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	if m.getByID == nil {
		return nil, errNotStubbed
	}
	return m.getByID(ctx, id)
}

func (m *mockCompanyRepo) FindNearby(ctx context.Context, lat, lng, radiusMeters float64, limit int) ([]domain.Company, error) {
	if m.findNearby == nil {
		return nil, errNotStubbed
	}
	return m.findNearby(ctx, lat, lng, radiusMeters, limit)
}
