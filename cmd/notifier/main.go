package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	natsadapter "github.com/jayakulan/TrashRoute1/internal/adapters/nats"
	"github.com/jayakulan/TrashRoute1/internal/adapters/postgres"
	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/pkg/config"
	"github.com/jayakulan/TrashRoute1/internal/pkg/logging"
	"github.com/jayakulan/TrashRoute1/internal/workflows"
)

// The notifier consumes lifecycle events from NATS and drives the pickup
// reminder workflow on Temporal.
func main() {
	cfg, err := config.Load("trashroute-notifier")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := postgres.New(ctx, cfg.Database.DSN(), int32(cfg.Database.MaxConns))
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Connect to Temporal
	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort,
		Namespace: cfg.Temporal.Namespace,
	})
	if err != nil {
		log.Fatalf("temporal client: %v", err)
	}
	defer c.Close()

	w := worker.New(c, cfg.Temporal.TaskQueue, worker.Options{})

	// Register workflow & activities
	w.RegisterWorkflow(workflows.PickupReminderWorkflow)
	w.RegisterActivity(&workflows.ReminderActivities{
		Requests:  postgres.NewRequestRepo(db),
		Companies: postgres.NewCompanyRepo(db),
	})

	sub, err := natsadapter.NewSubscriber(cfg.NATS.URL)
	if err != nil {
		log.Fatalf("nats: %v", err)
	}
	defer sub.Close()

	// Audit log of new submissions; the pending pool is served from postgres,
	// this is for operational visibility only.
	err = sub.SubscribeRequestSubmitted(ctx, func(ctx context.Context, req *domain.PickupRequest) error {
		if req == nil {
			return nil
		}
		slog.Info("pickup request submitted",
			"request_id", req.ID, "user_id", req.UserID, "city", req.Address.City)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe submitted: %v", err)
	}

	// Start reminder workflows off the accept events
	err = sub.SubscribeStatusChanged(ctx, func(ctx context.Context, req *domain.PickupRequest) error {
		if req == nil || req.Status != domain.StatusAccepted {
			return nil
		}
		opts := client.StartWorkflowOptions{
			ID:        "pickup-reminder-" + req.ID,
			TaskQueue: cfg.Temporal.TaskQueue,
		}
		input := workflows.ReminderInput{
			RequestID:     req.ID,
			UserID:        req.UserID,
			CompanyID:     req.CompanyID,
			ScheduledDate: req.Schedule.Date,
			TimeSlot:      string(req.Schedule.TimeSlot),
		}
		if _, err := c.ExecuteWorkflow(ctx, opts, workflows.PickupReminderWorkflow, input); err != nil {
			slog.Error("start reminder workflow failed", "request_id", req.ID, "error", err)
			return err
		}
		slog.Info("reminder workflow started", "request_id", req.ID)
		return nil
	})
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}

	log.Println("notifier worker started")
	if err := w.Run(worker.InterruptCh()); err != nil {
		log.Fatalf("worker: %v", err)
	}
}
