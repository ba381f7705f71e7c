package workflows

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/core/ports"
)

// ReminderActivities holds the activity implementations for the pickup
// reminder workflow.
type ReminderActivities struct {
	Requests  ports.PickupRequestRepository
	Companies ports.CompanyRepository
	Notifier  ports.NotificationService
}

// LoadRequest fetches the request and verifies it is still accepted; a
// cancelled or already-progressed request stops the reminder chain.
func (a *ReminderActivities) LoadRequest(ctx context.Context, requestID string) (*domain.PickupRequest, error) {
	req, err := a.Requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, fmt.Errorf("load request %s: %w", requestID, err)
	}
	return req, nil
}

// GetCompanyName returns the accepting company's display name.
func (a *ReminderActivities) GetCompanyName(ctx context.Context, companyID string) (string, error) {
	company, err := a.Companies.GetByID(ctx, companyID)
	if err != nil {
		return "", fmt.Errorf("get company %s: %w", companyID, err)
	}
	return company.Name, nil
}

// SendAcceptanceNotice tells the customer their request was accepted.
func (a *ReminderActivities) SendAcceptanceNotice(ctx context.Context, userID, companyName string) error {
	title := "Pickup request accepted"
	body := fmt.Sprintf("%s accepted your pickup request.", companyName)
	return a.send(ctx, userID, title, body)
}

// SendPickupReminder reminds the customer the day before the scheduled slot.
func (a *ReminderActivities) SendPickupReminder(ctx context.Context, userID, companyName, slot string) error {
	title := "Pickup reminder"
	body := fmt.Sprintf("%s will collect your waste tomorrow (%s window).", companyName, slot)
	return a.send(ctx, userID, title, body)
}

func (a *ReminderActivities) send(ctx context.Context, userID, title, body string) error {
	if a.Notifier == nil {
		slog.Info("no notifier configured, logging notification", "user_id", userID, "title", title)
		return nil
	}
	return a.Notifier.Send(ctx, userID, title, body)
}
