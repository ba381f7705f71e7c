package http

import (
	"github.com/nats-io/nats.go"

	"github.com/jayakulan/TrashRoute1/internal/adapters/postgres"
	"github.com/jayakulan/TrashRoute1/internal/adapters/valkey"
	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/core/usecases"
)

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Requests   *usecases.RequestService
	Drafts     *usecases.DraftService
	Dashboards *usecases.DashboardService
	Categories *usecases.CategoryService
	Companies  *usecases.CompanyService
	Region     domain.ServiceRegion
	NATS       *nats.Conn
	DB         *postgres.DB
	Cache      *valkey.Cache
}
