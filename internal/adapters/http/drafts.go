package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/core/usecases"
	"github.com/jayakulan/TrashRoute1/internal/pkg/metrics"
)

// draftView is the wire representation of a draft session.
type draftView struct {
	ID           string                 `json:"id"`
	UserID       string                 `json:"user_id"`
	Step         int                    `json:"step"`
	StepName     string                 `json:"step_name"`
	Items        []domain.WasteLineItem `json:"items"`
	Address      domain.Address         `json:"address"`
	Schedule     domain.ScheduleSlot    `json:"schedule"`
	MapCenter    domain.Coordinate      `json:"map_center"`
	PinPlaced    bool                   `json:"pin_placed"`
	PinConfirmed bool                   `json:"pin_confirmed"`
	CanAdvance   bool                   `json:"can_advance"`
}

func renderDraft(d *usecases.Draft) draftView {
	step := d.Step()
	center, placed, confirmed := d.Picker()
	return draftView{
		ID:           d.ID(),
		UserID:       d.UserID(),
		Step:         int(step),
		StepName:     usecases.StepNames[step],
		Items:        d.Items(),
		Address:      d.Address(),
		Schedule:     d.Schedule(),
		MapCenter:    center,
		PinPlaced:    placed,
		PinConfirmed: confirmed,
		CanAdvance:   d.StepComplete(step),
	}
}

type createDraftBody struct {
	UserID string `json:"user_id"`
}

// CreateDraftHandler starts a new intake session.
func CreateDraftHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body createDraftBody
		if err := c.BodyParser(&body); err != nil || body.UserID == "" {
			return errBadRequest(c, "user_id is required")
		}
		d := deps.Drafts.Create(body.UserID)
		return c.Status(201).JSON(renderDraft(d))
	}
}

// GetDraftHandler returns a draft's current state.
func GetDraftHandler(deps *Dependencies) fiber.Handler {
	return withDraft(deps, func(c *fiber.Ctx, d *usecases.Draft) error {
		return c.JSON(renderDraft(d))
	})
}

// SetDraftItemHandler adds or updates one waste line item.
func SetDraftItemHandler(deps *Dependencies) fiber.Handler {
	return withDraft(deps, func(c *fiber.Ctx, d *usecases.Draft) error {
		var item domain.WasteLineItem
		if err := c.BodyParser(&item); err != nil {
			return errBadRequest(c, "invalid line item payload")
		}
		if err := d.SetItem(item); err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(renderDraft(d))
	})
}

// RemoveDraftItemHandler drops the line item for a category.
func RemoveDraftItemHandler(deps *Dependencies) fiber.Handler {
	return withDraft(deps, func(c *fiber.Ctx, d *usecases.Draft) error {
		categoryID := c.Params("categoryID")
		if categoryID == "" {
			return errBadRequest(c, "category id is required")
		}
		d.RemoveItem(categoryID)
		return c.JSON(renderDraft(d))
	})
}

type addressBody struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
	Notes   string `json:"notes"`
}

// SetDraftAddressHandler updates the textual address fields.
func SetDraftAddressHandler(deps *Dependencies) fiber.Handler {
	return withDraft(deps, func(c *fiber.Ctx, d *usecases.Draft) error {
		var body addressBody
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid address payload")
		}
		d.SetAddress(body.Street, body.City, body.State, body.ZipCode, body.Country)
		if body.Notes != "" {
			d.SetNotes(body.Notes)
		}
		return c.JSON(renderDraft(d))
	})
}

// DevicePositionHandler applies a device geolocation fix to the picker.
// Out-of-region fixes are ignored, not errors.
func DevicePositionHandler(deps *Dependencies) fiber.Handler {
	return withDraft(deps, func(c *fiber.Ctx, d *usecases.Draft) error {
		var coord domain.Coordinate
		if err := c.BodyParser(&coord); err != nil || !coord.Valid() {
			return errBadRequest(c, "latitude and longitude are required")
		}
		d.InitializeFromDevicePosition(coord)
		return c.JSON(renderDraft(d))
	})
}

// PlacePinHandler places the pickup pin at a clicked coordinate.
func PlacePinHandler(deps *Dependencies) fiber.Handler {
	return withDraft(deps, func(c *fiber.Ctx, d *usecases.Draft) error {
		var coord domain.Coordinate
		if err := c.BodyParser(&coord); err != nil || !coord.Valid() {
			return errBadRequest(c, "latitude and longitude are required")
		}
		if err := d.SelectPoint(coord); err != nil {
			if errors.Is(err, domain.ErrOutOfRegion) {
				metrics.OutOfRegionPicks.Inc()
			}
			return mapDomainError(c, err)
		}
		return c.JSON(renderDraft(d))
	})
}

// ConfirmPinHandler commits the placed pin into the draft's address.
func ConfirmPinHandler(deps *Dependencies) fiber.Handler {
	return withDraft(deps, func(c *fiber.Ctx, d *usecases.Draft) error {
		if _, err := d.ConfirmLocation(); err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(renderDraft(d))
	})
}

// ReopenPinHandler dismisses the confirmation notice, keeping the pin.
func ReopenPinHandler(deps *Dependencies) fiber.Handler {
	return withDraft(deps, func(c *fiber.Ctx, d *usecases.Draft) error {
		d.ReopenLocation()
		return c.JSON(renderDraft(d))
	})
}

type scheduleBody struct {
	Date     string `json:"date"` // YYYY-MM-DD
	TimeSlot string `json:"time_slot"`
}

// SetDraftScheduleHandler sets the pickup date and window.
func SetDraftScheduleHandler(deps *Dependencies) fiber.Handler {
	return withDraft(deps, func(c *fiber.Ctx, d *usecases.Draft) error {
		var body scheduleBody
		if err := c.BodyParser(&body); err != nil {
			return errBadRequest(c, "invalid schedule payload")
		}
		date, err := time.ParseInLocation("2006-01-02", body.Date, time.Local)
		if err != nil {
			return errBadRequest(c, "date must be YYYY-MM-DD")
		}
		if err := d.SetSchedule(date, domain.TimeSlot(body.TimeSlot)); err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(renderDraft(d))
	})
}

// AdvanceDraftHandler moves the flow cursor forward.
func AdvanceDraftHandler(deps *Dependencies) fiber.Handler {
	return withDraft(deps, func(c *fiber.Ctx, d *usecases.Draft) error {
		if err := d.Advance(); err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(renderDraft(d))
	})
}

// BackDraftHandler moves the flow cursor backward.
func BackDraftHandler(deps *Dependencies) fiber.Handler {
	return withDraft(deps, func(c *fiber.Ctx, d *usecases.Draft) error {
		if err := d.Back(); err != nil {
			return mapDomainError(c, err)
		}
		return c.JSON(renderDraft(d))
	})
}

// SubmitDraftHandler turns the draft into a pending pickup request.
func SubmitDraftHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "draft id is required")
		}
		req, err := deps.Drafts.Submit(c.UserContext(), id)
		if err != nil {
			return mapDomainError(c, err)
		}
		metrics.RequestsSubmitted.Inc()
		return c.Status(201).JSON(req)
	}
}

// DiscardDraftHandler abandons a draft without submitting.
func DiscardDraftHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "draft id is required")
		}
		deps.Drafts.Discard(id)
		return c.SendStatus(204)
	}
}

func withDraft(deps *Dependencies, handler func(c *fiber.Ctx, d *usecases.Draft) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if id == "" {
			return errBadRequest(c, "draft id is required")
		}
		d, err := deps.Drafts.Get(id)
		if err != nil {
			return mapDomainError(c, err)
		}
		return handler(c, d)
	}
}
