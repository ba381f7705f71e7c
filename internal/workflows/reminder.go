package workflows

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
)

// ReminderInput is the input for the pickup reminder workflow.
type ReminderInput struct {
	RequestID     string
	UserID        string
	CompanyID     string
	ScheduledDate time.Time
	TimeSlot      string
}

// PickupReminderWorkflow notifies the customer when a company accepts their
// request, then sleeps until the day before the scheduled pickup and sends a
// reminder. The reminder is skipped if the request has since been cancelled
// or already completed.
func PickupReminderWorkflow(ctx workflow.Context, input ReminderInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("Starting pickup reminder workflow", "requestID", input.RequestID)

	actOpts := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, actOpts)

	// Step 1: Acceptance notice
	var companyName string
	if err := workflow.ExecuteActivity(ctx, "GetCompanyName", input.CompanyID).Get(ctx, &companyName); err != nil {
		return err
	}
	if err := workflow.ExecuteActivity(ctx, "SendAcceptanceNotice", input.UserID, companyName).Get(ctx, nil); err != nil {
		return err
	}

	// Step 2: Sleep until the day before pickup
	reminderAt := input.ScheduledDate.AddDate(0, 0, -1).Add(18 * time.Hour) // 18:00 the day before
	delay := reminderAt.Sub(workflow.Now(ctx))
	if delay > 0 {
		if err := workflow.Sleep(ctx, delay); err != nil {
			return err
		}
	}

	// Step 3: Re-check the request before reminding
	var req domain.PickupRequest
	if err := workflow.ExecuteActivity(ctx, "LoadRequest", input.RequestID).Get(ctx, &req); err != nil {
		return err
	}
	if req.Status != domain.StatusAccepted && req.Status != domain.StatusInProgress {
		logger.Info("Skipping reminder, request no longer active", "status", string(req.Status))
		return nil
	}

	if err := workflow.ExecuteActivity(ctx, "SendPickupReminder", input.UserID, companyName, input.TimeSlot).Get(ctx, nil); err != nil {
		return err
	}

	logger.Info("Pickup reminder sent", "requestID", input.RequestID)
	return nil
}
