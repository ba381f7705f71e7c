package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jayakulan/TrashRoute1/internal/adapters/postgres"
	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/core/usecases"
)

// APIError is a structured error response.
type APIError struct {
	Status    int    `json:"status"`
	Code      string `json:"code"`    // Error code: bad_request, not_found, internal_error, etc.
	Message   string `json:"message"` // Human-readable message
	RequestID string `json:"request_id,omitempty"`
}

// newError builds a JSON error response with a request ID.
func newError(c *fiber.Ctx, status int, code string, message string) error {
	reqID, _ := c.Locals("requestid").(string)
	return c.Status(status).JSON(APIError{
		Status:    status,
		Code:      code,
		Message:   message,
		RequestID: reqID,
	})
}

// errBadRequest returns a 400 error.
func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, 400, "bad_request", msg)
}

// errNotFound returns a 404 error.
func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, 404, "not_found", msg)
}

// errInternal returns a 500 error.
func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, 500, "internal_error", msg)
}

// errConflict returns a 409 error.
func errConflict(c *fiber.Ctx, msg string) error {
	return newError(c, 409, "conflict", msg)
}

// errUnprocessable returns a 422 error.
func errUnprocessable(c *fiber.Ctx, msg string) error {
	return newError(c, 422, "unprocessable", msg)
}

// mapDomainError translates domain and usecase sentinels into HTTP responses.
func mapDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrOutOfRegion):
		return errUnprocessable(c, err.Error())
	case errors.Is(err, domain.ErrMissingAssignee):
		return errBadRequest(c, err.Error())
	case errors.Is(err, domain.ErrIllegalTransition):
		return errConflict(c, err.Error())
	case errors.Is(err, usecases.ErrNotPlaced),
		errors.Is(err, usecases.ErrStepIncomplete),
		errors.Is(err, usecases.ErrNotAtReview),
		errors.Is(err, usecases.ErrSubmitInFlight):
		return errConflict(c, err.Error())
	case errors.Is(err, usecases.ErrInvalidLineItem),
		errors.Is(err, usecases.ErrInvalidSchedule):
		return errBadRequest(c, err.Error())
	case errors.Is(err, usecases.ErrDraftNotFound),
		errors.Is(err, postgres.ErrNotFound):
		return errNotFound(c, err.Error())
	default:
		return errInternal(c, err.Error())
	}
}
