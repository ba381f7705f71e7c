package usecases

import (
	"context"
	"sort"
	"time"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/core/ports"
)

// CountByStatus counts requests in the given status.
func CountByStatus(requests []domain.PickupRequest, status domain.RequestStatus) int {
	n := 0
	for _, req := range requests {
		if req.Status == status {
			n++
		}
	}
	return n
}

// CompletedToday counts requests completed on the given calendar date,
// comparing the date part of UpdatedAt in today's location.
func CompletedToday(requests []domain.PickupRequest, today time.Time) int {
	y, m, d := today.Date()
	n := 0
	for _, req := range requests {
		if req.Status != domain.StatusCompleted {
			continue
		}
		uy, um, ud := req.UpdatedAt.In(today.Location()).Date()
		if uy == y && um == m && ud == d {
			n++
		}
	}
	return n
}

// EstimatedRevenue multiplies the completed count by a flat unit price.
// This is a placeholder linear model, not a pricing engine.
func EstimatedRevenue(requests []domain.PickupRequest, unitPrice float64) float64 {
	return unitPrice * float64(CountByStatus(requests, domain.StatusCompleted))
}

// Recent returns the n most recently created requests, most-recent first,
// breaking CreatedAt ties by ID ascending.
func Recent(requests []domain.PickupRequest, n int) []domain.PickupRequest {
	sorted := make([]domain.PickupRequest, len(requests))
	copy(sorted, requests)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	if n < 0 {
		n = 0
	}
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// StatusCounts returns the per-status breakdown of a request collection.
// The counts always sum to len(requests).
func StatusCounts(requests []domain.PickupRequest) map[domain.RequestStatus]int {
	counts := make(map[domain.RequestStatus]int, len(domain.Statuses))
	for _, status := range domain.Statuses {
		counts[status] = CountByStatus(requests, status)
	}
	return counts
}

// CustomerDashboard is the view a customer renders.
type CustomerDashboard struct {
	Role     domain.Actor                 `json:"role"`
	Counts   map[domain.RequestStatus]int `json:"counts"`
	Recent   []domain.PickupRequest       `json:"recent"`
	Upcoming []domain.PickupRequest       `json:"upcoming"`
}

// CompanyDashboard is the view a company renders.
type CompanyDashboard struct {
	Role             domain.Actor           `json:"role"`
	NewRequests      int                    `json:"new_requests"`
	InProgress       int                    `json:"in_progress"`
	CompletedToday   int                    `json:"completed_today"`
	EstimatedRevenue float64                `json:"estimated_revenue"`
	Pending          []domain.PickupRequest `json:"pending"`
	Active           []domain.PickupRequest `json:"active"`
}

// DashboardService computes role-specific summaries over a user's requests.
// The role only selects which metrics are rendered; it never changes how any
// metric is computed.
type DashboardService struct {
	requests  ports.PickupRequestRepository
	unitPrice float64
}

// NewDashboardService creates a DashboardService. unitPrice feeds the
// placeholder revenue model.
func NewDashboardService(requests ports.PickupRequestRepository, unitPrice float64) *DashboardService {
	return &DashboardService{requests: requests, unitPrice: unitPrice}
}

// CustomerView builds the customer's dashboard.
func (s *DashboardService) CustomerView(ctx context.Context, userID string) (*CustomerDashboard, error) {
	requests, err := s.requests.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var upcoming []domain.PickupRequest
	for _, req := range requests {
		if req.Status == domain.StatusPending || req.Status == domain.StatusAccepted {
			upcoming = append(upcoming, req)
		}
	}

	return &CustomerDashboard{
		Role:     domain.ActorCustomer,
		Counts:   StatusCounts(requests),
		Recent:   Recent(requests, 10),
		Upcoming: Recent(upcoming, 5),
	}, nil
}

// CompanyView builds the company's dashboard.
func (s *DashboardService) CompanyView(ctx context.Context, companyID string) (*CompanyDashboard, error) {
	requests, err := s.requests.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	var pending, active []domain.PickupRequest
	for _, req := range requests {
		switch req.Status {
		case domain.StatusPending:
			pending = append(pending, req)
		case domain.StatusInProgress:
			active = append(active, req)
		}
	}

	return &CompanyDashboard{
		Role:             domain.ActorCompany,
		NewRequests:      CountByStatus(requests, domain.StatusPending),
		InProgress:       CountByStatus(requests, domain.StatusInProgress),
		CompletedToday:   CompletedToday(requests, time.Now()),
		EstimatedRevenue: EstimatedRevenue(requests, s.unitPrice),
		Pending:          Recent(pending, 20),
		Active:           Recent(active, 20),
	}, nil
}
