package usecases

import (
	"errors"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
)

// ErrNotPlaced is returned by Confirm before any pin has been placed.
var ErrNotPlaced = errors.New("no pickup location has been placed")

// LocationPicker reconciles device-reported position, map clicks, and the
// service-region constraint into one confirmed pickup coordinate.
//
// Placement and confirmation are deliberately separate booleans: a user can
// reposition a placed pin before committing, and can dismiss the confirmation
// notice (Reopen) without losing the pin.
type LocationPicker struct {
	region    domain.ServiceRegion
	current   domain.Coordinate
	placed    bool
	confirmed bool
}

// NewLocationPicker creates a picker centered on the region's midpoint with no
// pin placed.
func NewLocationPicker(region domain.ServiceRegion) *LocationPicker {
	return &LocationPicker{region: region, current: region.Center()}
}

// Current returns the coordinate the map should center on or mark.
func (p *LocationPicker) Current() domain.Coordinate { return p.current }

// Placed reports whether a pin is placed.
func (p *LocationPicker) Placed() bool { return p.placed }

// Confirmed reports whether the placed pin has been confirmed.
func (p *LocationPicker) Confirmed() bool { return p.confirmed }

// InitializeFromDevicePosition applies a best-effort device geolocation fix.
// An out-of-region position is silently ignored. A late-arriving fix never
// overrides a pin the user placed by hand.
func (p *LocationPicker) InitializeFromDevicePosition(reported domain.Coordinate) {
	if p.placed {
		return
	}
	if !p.region.Contains(reported) {
		return
	}
	p.current = reported
	p.placed = true
}

// SelectPoint places the pin at a clicked coordinate. A click outside the
// region fails with ErrOutOfRegion and leaves any prior pin untouched.
func (p *LocationPicker) SelectPoint(clicked domain.Coordinate) error {
	if !p.region.Contains(clicked) {
		return domain.ErrOutOfRegion
	}
	p.current = clicked
	p.placed = true
	p.confirmed = false
	return nil
}

// Confirm commits the placed pin and returns it.
func (p *LocationPicker) Confirm() (domain.Coordinate, error) {
	if !p.placed {
		return domain.Coordinate{}, ErrNotPlaced
	}
	p.confirmed = true
	return p.current, nil
}

// Reopen dismisses the confirmation without clearing the pin.
func (p *LocationPicker) Reopen() {
	p.confirmed = false
}
