package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/core/usecases"
)

func requestsFixture(now time.Time) []domain.PickupRequest {
	return []domain.PickupRequest{
		{ID: "r1", Status: domain.StatusPending, CreatedAt: now.Add(-4 * time.Hour), UpdatedAt: now.Add(-4 * time.Hour)},
		{ID: "r2", Status: domain.StatusAccepted, CreatedAt: now.Add(-3 * time.Hour), UpdatedAt: now.Add(-2 * time.Hour)},
		{ID: "r3", Status: domain.StatusInProgress, CreatedAt: now.Add(-2 * time.Hour), UpdatedAt: now.Add(-1 * time.Hour)},
		{ID: "r4", Status: domain.StatusCompleted, CreatedAt: now.Add(-26 * time.Hour), UpdatedAt: now.Add(-25 * time.Hour)},
		{ID: "r5", Status: domain.StatusCompleted, CreatedAt: now.Add(-6 * time.Hour), UpdatedAt: now.Add(-1 * time.Hour)},
		{ID: "r6", Status: domain.StatusCompleted, CreatedAt: now.Add(-5 * time.Hour), UpdatedAt: now.Add(-30 * time.Minute)},
		{ID: "r7", Status: domain.StatusCancelled, CreatedAt: now.Add(-1 * time.Hour), UpdatedAt: now.Add(-50 * time.Minute)},
	}
}

func TestStatusCounts_PartitionsAllRequests(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	requests := requestsFixture(now)

	counts := usecases.StatusCounts(requests)

	total := 0
	for _, n := range counts {
		total += n
	}
	if total != len(requests) {
		t.Errorf("counts sum to %d, want %d", total, len(requests))
	}
	if counts[domain.StatusCompleted] != 3 {
		t.Errorf("completed = %d, want 3", counts[domain.StatusCompleted])
	}
	if counts[domain.StatusPending] != 1 {
		t.Errorf("pending = %d, want 1", counts[domain.StatusPending])
	}
}

func TestEstimatedRevenue_FlatRatePerCompleted(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	requests := requestsFixture(now)

	if got := usecases.EstimatedRevenue(requests, 50); got != 150 {
		t.Errorf("revenue = %v, want 150", got)
	}
	if got := usecases.EstimatedRevenue(nil, 50); got != 0 {
		t.Errorf("revenue of empty set = %v, want 0", got)
	}
}

func TestCompletedToday_ComparesCalendarDate(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	requests := requestsFixture(now)

	// r5 and r6 completed within today; r4 completed yesterday.
	if got := usecases.CompletedToday(requests, now); got != 2 {
		t.Errorf("completed today = %d, want 2", got)
	}
}

func TestCompletedToday_IgnoresNonCompleted(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	requests := []domain.PickupRequest{
		{ID: "a", Status: domain.StatusInProgress, UpdatedAt: now},
		{ID: "b", Status: domain.StatusCancelled, UpdatedAt: now},
	}
	if got := usecases.CompletedToday(requests, now); got != 0 {
		t.Errorf("completed today = %d, want 0", got)
	}
}

func TestRecent_OrdersByCreatedAtDescending(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	requests := requestsFixture(now)

	recent := usecases.Recent(requests, 3)
	if len(recent) != 3 {
		t.Fatalf("len = %d, want 3", len(recent))
	}
	want := []string{"r7", "r3", "r2"}
	for i, id := range want {
		if recent[i].ID != id {
			t.Errorf("recent[%d] = %s, want %s", i, recent[i].ID, id)
		}
	}
}

func TestRecent_BreaksTiesByID(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	requests := []domain.PickupRequest{
		{ID: "b", CreatedAt: now},
		{ID: "a", CreatedAt: now},
		{ID: "c", CreatedAt: now},
	}

	recent := usecases.Recent(requests, 3)
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if recent[i].ID != id {
			t.Errorf("recent[%d] = %s, want %s", i, recent[i].ID, id)
		}
	}
}

func TestRecent_DoesNotMutateInput(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	requests := requestsFixture(now)
	firstID := requests[0].ID

	_ = usecases.Recent(requests, len(requests))

	if requests[0].ID != firstID {
		t.Error("Recent reordered the caller's slice")
	}
}

func TestDashboardService_CustomerView(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	repo := &mockRequestRepo{
		listByUser: func(ctx context.Context, userID string) ([]domain.PickupRequest, error) {
			if userID != "u1" {
				t.Errorf("userID = %s, want u1", userID)
			}
			return requestsFixture(now), nil
		},
	}
	svc := usecases.NewDashboardService(repo, 50)

	view, err := svc.CustomerView(context.Background(), "u1")
	if err != nil {
		t.Fatalf("customer view: %v", err)
	}
	if view.Role != domain.ActorCustomer {
		t.Errorf("role = %s, want customer", view.Role)
	}
	if view.Counts[domain.StatusCompleted] != 3 {
		t.Errorf("completed count = %d, want 3", view.Counts[domain.StatusCompleted])
	}
	// Upcoming holds only pending and accepted requests.
	for _, req := range view.Upcoming {
		if req.Status != domain.StatusPending && req.Status != domain.StatusAccepted {
			t.Errorf("upcoming contains %s request %s", req.Status, req.ID)
		}
	}
	if len(view.Upcoming) != 2 {
		t.Errorf("upcoming len = %d, want 2", len(view.Upcoming))
	}
}

func TestDashboardService_CompanyView(t *testing.T) {
	now := time.Now()
	repo := &mockRequestRepo{
		listByCompany: func(ctx context.Context, companyID string) ([]domain.PickupRequest, error) {
			return requestsFixture(now), nil
		},
	}
	svc := usecases.NewDashboardService(repo, 50)

	view, err := svc.CompanyView(context.Background(), "c1")
	if err != nil {
		t.Fatalf("company view: %v", err)
	}
	if view.Role != domain.ActorCompany {
		t.Errorf("role = %s, want company", view.Role)
	}
	if view.NewRequests != 1 {
		t.Errorf("new requests = %d, want 1", view.NewRequests)
	}
	if view.InProgress != 1 {
		t.Errorf("in progress = %d, want 1", view.InProgress)
	}
	if view.EstimatedRevenue != 150 {
		t.Errorf("revenue = %v, want 150", view.EstimatedRevenue)
	}
	if view.CompletedToday != 2 {
		t.Errorf("completed today = %d, want 2", view.CompletedToday)
	}
}
