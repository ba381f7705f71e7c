package usecases

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/core/ports"
)

// RequestService handles pickup-request submission and lifecycle transitions.
type RequestService struct {
	requests  ports.PickupRequestRepository
	publisher ports.EventPublisher
}

// NewRequestService creates a new RequestService.
func NewRequestService(requests ports.PickupRequestRepository, publisher ports.EventPublisher) *RequestService {
	return &RequestService{requests: requests, publisher: publisher}
}

// Submit persists a new request in pending status. A storage failure leaves
// no partial state behind; the caller may retry with the same draft.
func (s *RequestService) Submit(ctx context.Context, req *domain.PickupRequest) error {
	if err := s.requests.Create(ctx, req); err != nil {
		return fmt.Errorf("create pickup request: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRequestSubmitted(ctx, req); err != nil {
			// The request exists regardless; eventing is best-effort.
			slog.Warn("publish request submitted failed", "request_id", req.ID, "error", err)
		}
	}
	return nil
}

// GetByID returns a single request.
func (s *RequestService) GetByID(ctx context.Context, id string) (*domain.PickupRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// ListByUser returns all requests belonging to a customer.
func (s *RequestService) ListByUser(ctx context.Context, userID string) ([]domain.PickupRequest, error) {
	return s.requests.ListByUser(ctx, userID)
}

// ListByCompany returns the requests visible to a company: those it has
// accepted plus the open pending pool.
func (s *RequestService) ListByCompany(ctx context.Context, companyID string) ([]domain.PickupRequest, error) {
	return s.requests.ListByCompany(ctx, companyID)
}

// ListByStatus returns every request in one lifecycle status, regardless of
// owner. Companies browse the pending pool through this.
func (s *RequestService) ListByStatus(ctx context.Context, status domain.RequestStatus) ([]domain.PickupRequest, error) {
	return s.requests.ListByStatus(ctx, status)
}

// Accept assigns a pending request to a company.
func (s *RequestService) Accept(ctx context.Context, requestID, companyID string) (*domain.PickupRequest, error) {
	return s.transition(ctx, requestID, domain.ActionAccept, func(req *domain.PickupRequest, now time.Time) error {
		return req.Accept(companyID, now)
	})
}

// Start marks an accepted request as in progress.
func (s *RequestService) Start(ctx context.Context, requestID string) (*domain.PickupRequest, error) {
	return s.transition(ctx, requestID, domain.ActionStart, (*domain.PickupRequest).Start)
}

// Complete marks an in-progress request as completed.
func (s *RequestService) Complete(ctx context.Context, requestID string) (*domain.PickupRequest, error) {
	return s.transition(ctx, requestID, domain.ActionComplete, (*domain.PickupRequest).Complete)
}

// Cancel withdraws a request on behalf of its customer. Only the owning
// customer may cancel.
func (s *RequestService) Cancel(ctx context.Context, requestID, userID string) (*domain.PickupRequest, error) {
	return s.transition(ctx, requestID, domain.ActionCancel, func(req *domain.PickupRequest, now time.Time) error {
		if req.UserID != userID {
			return fmt.Errorf("%w: request belongs to another user", domain.ErrIllegalTransition)
		}
		return req.Cancel(now)
	})
}

// transition loads, applies, persists, and publishes one lifecycle step.
func (s *RequestService) transition(
	ctx context.Context,
	requestID string,
	action domain.Action,
	apply func(*domain.PickupRequest, time.Time) error,
) (*domain.PickupRequest, error) {
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("load request %s: %w", requestID, err)
	}

	if err := apply(req, time.Now()); err != nil {
		return nil, err
	}

	if err := s.requests.UpdateStatus(ctx, req); err != nil {
		return nil, fmt.Errorf("persist %s transition: %w", action, err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishStatusChanged(ctx, req, action); err != nil {
			slog.Warn("publish status change failed",
				"request_id", req.ID, "action", string(action), "error", err)
		}
	}
	return req, nil
}
