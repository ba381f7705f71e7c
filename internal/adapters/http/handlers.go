package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/pkg/metrics"
)

// RegionHandler returns the serviceable area and its default map center.
func RegionHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		center := deps.Region.Center()
		return c.JSON(fiber.Map{
			"bounds": deps.Region,
			"center": center,
		})
	}
}

// ListCategoriesHandler returns all waste categories.
func ListCategoriesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		categories, err := deps.Categories.List(c.UserContext())
		if err != nil {
			return errInternal(c, err.Error())
		}
		c.Set("Cache-Control", "public, max-age=3600")
		return c.JSON(categories)
	}
}

// GetCategoryHandler returns a single waste category.
func GetCategoryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "category id is required")
		}
		category, err := deps.Categories.GetByID(c.UserContext(), id)
		if err != nil {
			return errNotFound(c, "category not found")
		}
		return c.JSON(category)
	}
}

// NearbyCompaniesHandler returns companies serving a point.
func NearbyCompaniesHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat := c.QueryFloat("lat", 0)
		lng := c.QueryFloat("lng", 0)
		radius := c.QueryFloat("radius", 10000)
		limit := c.QueryInt("limit", 20)

		if lat == 0 || lng == 0 {
			return errBadRequest(c, "lat and lng are required")
		}
		if radius <= 0 || radius > 100000 {
			return errBadRequest(c, "radius must be between 1 and 100000 meters")
		}

		companies, err := deps.Companies.FindNearby(c.UserContext(), lat, lng, radius, limit)
		if err != nil {
			return errInternal(c, err.Error())
		}

		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(companies)
	}
}

// GetCompanyHandler returns a single company.
func GetCompanyHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "company id is required")
		}
		company, err := deps.Companies.GetByID(c.UserContext(), id)
		if err != nil {
			return mapDomainError(c, err)
		}
		c.Set("Cache-Control", "public, max-age=300")
		return c.JSON(company)
	}
}

// ListRequestsHandler lists pickup requests for a customer or a company.
// Exactly one of user_id or company_id must be given; a bare status query
// returns the open pool in that status instead.
func ListRequestsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Query("user_id")
		companyID := c.Query("company_id")
		status := c.Query("status")

		if userID != "" && companyID != "" {
			return errBadRequest(c, "user_id and company_id are mutually exclusive")
		}

		var requests []domain.PickupRequest
		var err error
		switch {
		case userID != "":
			requests, err = deps.Requests.ListByUser(c.UserContext(), userID)
		case companyID != "":
			requests, err = deps.Requests.ListByCompany(c.UserContext(), companyID)
		case status != "":
			if !domain.ValidStatus(domain.RequestStatus(status)) {
				return errBadRequest(c, "unknown status "+status)
			}
			requests, err = deps.Requests.ListByStatus(c.UserContext(), domain.RequestStatus(status))
		default:
			return errBadRequest(c, "one of user_id, company_id, or status is required")
		}
		if err != nil {
			return errInternal(c, err.Error())
		}

		if status != "" {
			filtered := requests[:0]
			for _, req := range requests {
				if string(req.Status) == status {
					filtered = append(filtered, req)
				}
			}
			requests = filtered
		}

		page, pg := paginate(c, requests)
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: page, Pagination: pg})
	}
}

// GetRequestHandler returns a single pickup request, with the actions each
// actor may take from its current status.
func GetRequestHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "request id is required")
		}
		req, err := deps.Requests.GetByID(c.UserContext(), id)
		if err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(fiber.Map{
			"request":          req,
			"customer_actions": domain.AllowedActions(req.Status, domain.ActorCustomer),
			"company_actions":  domain.AllowedActions(req.Status, domain.ActorCompany),
		})
	}
}

type acceptBody struct {
	CompanyID string `json:"company_id"`
}

// AcceptRequestHandler assigns a pending request to a company.
func AcceptRequestHandler(deps *Dependencies) fiber.Handler {
	return transitionHandler(deps, domain.ActionAccept, func(c *fiber.Ctx, deps *Dependencies, id string) (*domain.PickupRequest, error) {
		var body acceptBody
		if err := c.BodyParser(&body); err != nil {
			return nil, domain.ErrMissingAssignee
		}
		return deps.Requests.Accept(c.UserContext(), id, body.CompanyID)
	})
}

// StartRequestHandler moves an accepted request into in_progress.
func StartRequestHandler(deps *Dependencies) fiber.Handler {
	return transitionHandler(deps, domain.ActionStart, func(c *fiber.Ctx, deps *Dependencies, id string) (*domain.PickupRequest, error) {
		return deps.Requests.Start(c.UserContext(), id)
	})
}

// CompleteRequestHandler finishes an in-progress request.
func CompleteRequestHandler(deps *Dependencies) fiber.Handler {
	return transitionHandler(deps, domain.ActionComplete, func(c *fiber.Ctx, deps *Dependencies, id string) (*domain.PickupRequest, error) {
		return deps.Requests.Complete(c.UserContext(), id)
	})
}

type cancelBody struct {
	UserID string `json:"user_id"`
}

// CancelRequestHandler withdraws a request on behalf of its customer.
func CancelRequestHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "request id is required")
		}
		var body cancelBody
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return errBadRequest(c, "user_id is required")
		}

		req, err := deps.Requests.Cancel(c.UserContext(), id, body.UserID)
		if err != nil {
			if errors.Is(err, domain.ErrIllegalTransition) {
				metrics.IllegalTransitions.WithLabelValues(string(domain.ActionCancel)).Inc()
			}
			return mapDomainError(c, err)
		}

		metrics.StatusTransitions.WithLabelValues(string(domain.ActionCancel), string(req.Status)).Inc()
		return c.JSON(req)
	}
}

func transitionHandler(
	deps *Dependencies,
	action domain.Action,
	apply func(c *fiber.Ctx, deps *Dependencies, id string) (*domain.PickupRequest, error),
) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "request id is required")
		}

		req, err := apply(c, deps, id)
		if err != nil {
			if errors.Is(err, domain.ErrIllegalTransition) {
				metrics.IllegalTransitions.WithLabelValues(string(action)).Inc()
			}
			return mapDomainError(c, err)
		}

		metrics.StatusTransitions.WithLabelValues(string(action), string(req.Status)).Inc()
		return c.JSON(req)
	}
}

// CustomerDashboardHandler returns the customer's dashboard view.
func CustomerDashboardHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := c.Params("userID")
		if userID == "" {
			return errBadRequest(c, "user id is required")
		}
		view, err := deps.Dashboards.CustomerView(c.UserContext(), userID)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(view)
	}
}

// CompanyDashboardHandler returns the company's dashboard view.
func CompanyDashboardHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID := c.Params("companyID")
		if companyID == "" {
			return errBadRequest(c, "company id is required")
		}
		view, err := deps.Dashboards.CompanyView(c.UserContext(), companyID)
		if err != nil {
			return errInternal(c, err.Error())
		}
		return c.JSON(view)
	}
}
