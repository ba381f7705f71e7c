package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"

	handler "github.com/jayakulan/TrashRoute1/internal/adapters/http"
	"github.com/jayakulan/TrashRoute1/internal/adapters/postgres"
	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/core/usecases"
)

// ---- Mock repositories ----

type mockRequestRepo struct {
	createFn        func(ctx context.Context, req *domain.PickupRequest) error
	getByIDFn       func(ctx context.Context, id string) (*domain.PickupRequest, error)
	listByUserFn    func(ctx context.Context, userID string) ([]domain.PickupRequest, error)
	listByCompanyFn func(ctx context.Context, companyID string) ([]domain.PickupRequest, error)
	listByStatusFn  func(ctx context.Context, status domain.RequestStatus) ([]domain.PickupRequest, error)
	updateStatusFn  func(ctx context.Context, req *domain.PickupRequest) error
}

func (m *mockRequestRepo) Create(ctx context.Context, req *domain.PickupRequest) error {
	if m.createFn != nil {
		return m.createFn(ctx, req)
	}
	return nil
}
func (m *mockRequestRepo) GetByID(ctx context.Context, id string) (*domain.PickupRequest, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockRequestRepo) ListByUser(ctx context.Context, userID string) ([]domain.PickupRequest, error) {
	if m.listByUserFn != nil {
		return m.listByUserFn(ctx, userID)
	}
	return nil, nil
}
func (m *mockRequestRepo) ListByCompany(ctx context.Context, companyID string) ([]domain.PickupRequest, error) {
	if m.listByCompanyFn != nil {
		return m.listByCompanyFn(ctx, companyID)
	}
	return nil, nil
}
func (m *mockRequestRepo) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.PickupRequest, error) {
	if m.listByStatusFn != nil {
		return m.listByStatusFn(ctx, status)
	}
	return nil, nil
}
func (m *mockRequestRepo) UpdateStatus(ctx context.Context, req *domain.PickupRequest) error {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(ctx, req)
	}
	return nil
}

type mockCategoryRepo struct {
	listFn    func(ctx context.Context) ([]domain.WasteCategory, error)
	getByIDFn func(ctx context.Context, id string) (*domain.WasteCategory, error)
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]domain.WasteCategory, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockCategoryRepo) GetByID(ctx context.Context, id string) (*domain.WasteCategory, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}

type mockCompanyRepo struct {
	getByIDFn    func(ctx context.Context, id string) (*domain.Company, error)
	findNearbyFn func(ctx context.Context, lat, lng, radius float64, limit int) ([]domain.Company, error)
}

func (m *mockCompanyRepo) GetByID(ctx context.Context, id string) (*domain.Company, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockCompanyRepo) FindNearby(ctx context.Context, lat, lng, radius float64, limit int) ([]domain.Company, error) {
	if m.findNearbyFn != nil {
		return m.findNearbyFn(ctx, lat, lng, radius, limit)
	}
	return nil, nil
}

// ---- Test helpers ----

func testRegion() domain.ServiceRegion {
	region, _ := domain.NewServiceRegion(10.0, 5.7, 82.2, 79.8)
	return region
}

func setupApp(deps *handler.Dependencies) *fiber.App {
	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	handler.SetupRoutes(app, deps)
	return app
}

func makeDeps(opts ...func(*handler.Dependencies)) *handler.Dependencies {
	region := testRegion()
	requests := usecases.NewRequestService(&mockRequestRepo{}, nil)
	d := &handler.Dependencies{
		Requests:   requests,
		Drafts:     usecases.NewDraftService(region, requests, 30*time.Minute),
		Dashboards: usecases.NewDashboardService(&mockRequestRepo{}, 50),
		Categories: usecases.NewCategoryService(&mockCategoryRepo{}, nil),
		Companies:  usecases.NewCompanyService(&mockCompanyRepo{}, nil),
		Region:     region,
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

func readBody(t *testing.T, body io.Reader) []byte {
	t.Helper()
	b, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return b
}

// ---- Health ----

func TestHealthHandler(t *testing.T) {
	app := setupApp(makeDeps())

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/health", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestReadyHandler_NotConfigured(t *testing.T) {
	// No database wired: the service reports not ready.
	app := setupApp(makeDeps())

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/ready", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 503 {
		t.Fatalf("expected 503, got %d", resp.StatusCode)
	}
}

// ---- Region ----

func TestRegionHandler(t *testing.T) {
	app := setupApp(makeDeps())

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/region", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Bounds domain.ServiceRegion `json:"bounds"`
		Center domain.Coordinate    `json:"center"`
	}
	if err := json.Unmarshal(readBody(t, resp.Body), &result); err != nil {
		t.Fatal(err)
	}
	if result.Bounds.North != 10.0 || result.Bounds.West != 79.8 {
		t.Errorf("unexpected bounds: %+v", result.Bounds)
	}
	if result.Center.Latitude != 7.85 || result.Center.Longitude != 81.0 {
		t.Errorf("unexpected center: %+v", result.Center)
	}
}

// ---- Categories ----

func TestListCategories_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Categories = usecases.NewCategoryService(&mockCategoryRepo{
			listFn: func(ctx context.Context) ([]domain.WasteCategory, error) {
				return []domain.WasteCategory{
					{ID: "plastic", Name: "Plastic"},
					{ID: "paper", Name: "Paper & Cardboard"},
				}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/categories", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var categories []domain.WasteCategory
	if err := json.Unmarshal(readBody(t, resp.Body), &categories); err != nil {
		t.Fatal(err)
	}
	if len(categories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(categories))
	}
	if categories[0].ID != "plastic" {
		t.Errorf("expected plastic first, got %s", categories[0].ID)
	}
}

func TestGetCategory_NotFound(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Categories = usecases.NewCategoryService(&mockCategoryRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.WasteCategory, error) {
				return nil, errors.New("no rows in result set")
			},
		}, nil)
	})
	app := setupApp(deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/categories/unobtainium", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

// ---- Companies ----

func TestNearbyCompanies_RequiresCoordinates(t *testing.T) {
	app := setupApp(makeDeps())

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/companies/nearby", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var apiErr handler.APIError
	if err := json.Unmarshal(readBody(t, resp.Body), &apiErr); err != nil {
		t.Fatal(err)
	}
	if apiErr.Code != "bad_request" {
		t.Errorf("expected bad_request code, got %s", apiErr.Code)
	}
}

func TestNearbyCompanies_Success(t *testing.T) {
	var gotRadius float64
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Companies = usecases.NewCompanyService(&mockCompanyRepo{
			findNearbyFn: func(ctx context.Context, lat, lng, radius float64, limit int) ([]domain.Company, error) {
				gotRadius = radius
				return []domain.Company{
					{ID: "c1", Name: "GreenCycle"},
				}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/companies/nearby?lat=6.9271&lng=79.8612", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if gotRadius != 10000 {
		t.Errorf("expected default radius 10000, got %v", gotRadius)
	}

	var companies []domain.Company
	if err := json.Unmarshal(readBody(t, resp.Body), &companies); err != nil {
		t.Fatal(err)
	}
	if len(companies) != 1 || companies[0].Name != "GreenCycle" {
		t.Errorf("unexpected companies: %+v", companies)
	}
}

// ---- Request listing ----

func listFixture() []domain.PickupRequest {
	now := time.Now()
	return []domain.PickupRequest{
		{ID: "r1", UserID: "u1", Status: domain.StatusPending, CreatedAt: now},
		{ID: "r2", UserID: "u1", Status: domain.StatusCompleted, CreatedAt: now.Add(-time.Hour)},
		{ID: "r3", UserID: "u1", Status: domain.StatusPending, CreatedAt: now.Add(-2 * time.Hour)},
	}
}

func TestListRequests_RequiresExactlyOneOwner(t *testing.T) {
	app := setupApp(makeDeps())

	for _, target := range []string{
		"/v1/requests",
		"/v1/requests?user_id=u1&company_id=c1",
	} {
		resp, err := app.Test(httptest.NewRequest("GET", target, nil), -1)
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != 400 {
			t.Errorf("%s: expected 400, got %d", target, resp.StatusCode)
		}
	}
}

func TestListRequests_FiltersByStatus(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Requests = usecases.NewRequestService(&mockRequestRepo{
			listByUserFn: func(ctx context.Context, userID string) ([]domain.PickupRequest, error) {
				return listFixture(), nil
			},
		}, nil)
	})
	app := setupApp(deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/requests?user_id=u1&status=pending", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Data       []domain.PickupRequest `json:"data"`
		Pagination handler.Pagination     `json:"pagination"`
	}
	if err := json.Unmarshal(readBody(t, resp.Body), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Data) != 2 {
		t.Fatalf("expected 2 pending requests, got %d", len(result.Data))
	}
	for _, req := range result.Data {
		if req.Status != domain.StatusPending {
			t.Errorf("expected only pending requests, got %s", req.Status)
		}
	}
	if result.Pagination.Total != 2 {
		t.Errorf("expected total 2, got %d", result.Pagination.Total)
	}
}

func TestListRequests_LegacyAliasDeprecated(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Requests = usecases.NewRequestService(&mockRequestRepo{
			listByUserFn: func(ctx context.Context, userID string) ([]domain.PickupRequest, error) {
				return listFixture(), nil
			},
		}, nil)
	})
	app := setupApp(deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/pickup-requests?user_id=u1", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Deprecation") != "true" {
		t.Error("expected Deprecation header on legacy path")
	}
	if resp.Header.Get("Sunset") == "" {
		t.Error("expected Sunset header on legacy path")
	}
}

// ---- Request lifecycle ----

func TestGetRequest_AllowedActions(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Requests = usecases.NewRequestService(&mockRequestRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.PickupRequest, error) {
				return &domain.PickupRequest{ID: id, UserID: "u1", Status: domain.StatusPending}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/requests/r1", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var result struct {
		Request         domain.PickupRequest `json:"request"`
		CustomerActions []domain.Action      `json:"customer_actions"`
		CompanyActions  []domain.Action      `json:"company_actions"`
	}
	if err := json.Unmarshal(readBody(t, resp.Body), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.CustomerActions) != 1 || result.CustomerActions[0] != domain.ActionCancel {
		t.Errorf("expected customer [cancel], got %v", result.CustomerActions)
	}
	if len(result.CompanyActions) != 1 || result.CompanyActions[0] != domain.ActionAccept {
		t.Errorf("expected company [accept], got %v", result.CompanyActions)
	}
}

func TestAcceptRequest_Success(t *testing.T) {
	var persisted *domain.PickupRequest
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Requests = usecases.NewRequestService(&mockRequestRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.PickupRequest, error) {
				return &domain.PickupRequest{ID: id, UserID: "u1", Status: domain.StatusPending}, nil
			},
			updateStatusFn: func(ctx context.Context, req *domain.PickupRequest) error {
				persisted = req
				return nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("POST", "/v1/requests/r1/accept", strings.NewReader(`{"company_id":"c1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}

	var updated domain.PickupRequest
	if err := json.Unmarshal(readBody(t, resp.Body), &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Status != domain.StatusAccepted || updated.CompanyID != "c1" {
		t.Errorf("unexpected result: %+v", updated)
	}
	if persisted == nil || persisted.Status != domain.StatusAccepted {
		t.Error("expected the transition to be persisted")
	}
}

func TestAcceptRequest_MissingCompanyID(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Requests = usecases.NewRequestService(&mockRequestRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.PickupRequest, error) {
				return &domain.PickupRequest{ID: id, UserID: "u1", Status: domain.StatusPending}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("POST", "/v1/requests/r1/accept", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCompleteRequest_FromPendingConflicts(t *testing.T) {
	updateCalled := false
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Requests = usecases.NewRequestService(&mockRequestRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.PickupRequest, error) {
				return &domain.PickupRequest{ID: id, UserID: "u1", Status: domain.StatusPending}, nil
			},
			updateStatusFn: func(ctx context.Context, req *domain.PickupRequest) error {
				updateCalled = true
				return nil
			},
		}, nil)
	})
	app := setupApp(deps)

	resp, err := app.Test(httptest.NewRequest("POST", "/v1/requests/r1/complete", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 409 {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}

	var apiErr handler.APIError
	if err := json.Unmarshal(readBody(t, resp.Body), &apiErr); err != nil {
		t.Fatal(err)
	}
	if apiErr.Code != "conflict" {
		t.Errorf("expected conflict code, got %s", apiErr.Code)
	}
	if updateCalled {
		t.Error("illegal transition must not be persisted")
	}
}

func TestCancelRequest_RequiresUserID(t *testing.T) {
	app := setupApp(makeDeps())

	req := httptest.NewRequest("POST", "/v1/requests/r1/cancel", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestCancelRequest_OwnerSucceeds(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Requests = usecases.NewRequestService(&mockRequestRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.PickupRequest, error) {
				return &domain.PickupRequest{ID: id, UserID: "u1", Status: domain.StatusAccepted, CompanyID: "c1"}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	req := httptest.NewRequest("POST", "/v1/requests/r1/cancel", strings.NewReader(`{"user_id":"u1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, readBody(t, resp.Body))
	}

	var updated domain.PickupRequest
	if err := json.Unmarshal(readBody(t, resp.Body), &updated); err != nil {
		t.Fatal(err)
	}
	if updated.Status != domain.StatusCancelled {
		t.Errorf("expected cancelled, got %s", updated.Status)
	}
}

// ---- Dashboards ----

func TestCustomerDashboard(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Dashboards = usecases.NewDashboardService(&mockRequestRepo{
			listByUserFn: func(ctx context.Context, userID string) ([]domain.PickupRequest, error) {
				return listFixture(), nil
			},
		}, 50)
	})
	app := setupApp(deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/dashboard/customer/u1", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var view usecases.CustomerDashboard
	if err := json.Unmarshal(readBody(t, resp.Body), &view); err != nil {
		t.Fatal(err)
	}
	if view.Counts[domain.StatusPending] != 2 {
		t.Errorf("expected 2 pending, got %d", view.Counts[domain.StatusPending])
	}
}

// ---- Security headers ----

func TestSecurityHeaders(t *testing.T) {
	app := setupApp(makeDeps())

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/health", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if got := resp.Header.Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff, got %q", got)
	}
	if got := resp.Header.Get("X-API-Version"); got != "1.0.0" {
		t.Errorf("expected API version header, got %q", got)
	}
}

func TestGetCompany_Success(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Companies = usecases.NewCompanyService(&mockCompanyRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Company, error) {
				return &domain.Company{ID: id, Name: "GreenCycle", ServiceRadiusKm: 25}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/companies/c1", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var company domain.Company
	if err := json.Unmarshal(readBody(t, resp.Body), &company); err != nil {
		t.Fatal(err)
	}
	if company.ID != "c1" || company.Name != "GreenCycle" {
		t.Errorf("unexpected company: %+v", company)
	}
}

func TestGetCompany_NotFound(t *testing.T) {
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Companies = usecases.NewCompanyService(&mockCompanyRepo{
			getByIDFn: func(ctx context.Context, id string) (*domain.Company, error) {
				return nil, fmt.Errorf("company %s: %w", id, postgres.ErrNotFound)
			},
		}, nil)
	})
	app := setupApp(deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/companies/ghost", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 404 {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}

	var apiErr handler.APIError
	if err := json.Unmarshal(readBody(t, resp.Body), &apiErr); err != nil {
		t.Fatal(err)
	}
	if apiErr.Code != "not_found" {
		t.Errorf("expected not_found code, got %s", apiErr.Code)
	}
}

func TestListRequests_StatusPoolWithoutOwner(t *testing.T) {
	var gotStatus domain.RequestStatus
	deps := makeDeps(func(d *handler.Dependencies) {
		d.Requests = usecases.NewRequestService(&mockRequestRepo{
			listByStatusFn: func(ctx context.Context, status domain.RequestStatus) ([]domain.PickupRequest, error) {
				gotStatus = status
				return []domain.PickupRequest{
					{ID: "r1", UserID: "u1", Status: status},
					{ID: "r9", UserID: "u2", Status: status},
				}, nil
			},
		}, nil)
	})
	app := setupApp(deps)

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/requests?status=pending", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if gotStatus != domain.StatusPending {
		t.Errorf("expected the pending pool to be queried, got %q", gotStatus)
	}

	var result struct {
		Data []domain.PickupRequest `json:"data"`
	}
	if err := json.Unmarshal(readBody(t, resp.Body), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.Data) != 2 {
		t.Fatalf("expected the cross-owner pool, got %d requests", len(result.Data))
	}
}

func TestListRequests_UnknownStatusPool(t *testing.T) {
	app := setupApp(makeDeps())

	resp, err := app.Test(httptest.NewRequest("GET", "/v1/requests?status=limbo", nil), -1)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != 400 {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}
