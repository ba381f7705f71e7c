package usecases_test

import (
	"errors"
	"testing"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/core/usecases"
)

func testRegion(t *testing.T) domain.ServiceRegion {
	t.Helper()
	r, err := domain.NewServiceRegion(10.0, 5.7, 82.2, 79.8)
	if err != nil {
		t.Fatalf("region: %v", err)
	}
	return r
}

func TestLocationPicker_DefaultsToRegionCenter(t *testing.T) {
	p := usecases.NewLocationPicker(testRegion(t))
	if p.Placed() || p.Confirmed() {
		t.Error("fresh picker must be unplaced and unconfirmed")
	}
	c := p.Current()
	if !testRegion(t).Contains(c) {
		t.Errorf("default center %+v outside region", c)
	}
}

func TestLocationPicker_DeviceInitInsideRegion(t *testing.T) {
	p := usecases.NewLocationPicker(testRegion(t))
	colombo := domain.Coordinate{Latitude: 6.9271, Longitude: 79.8612}

	p.InitializeFromDevicePosition(colombo)

	if !p.Placed() {
		t.Fatal("in-region device position should place the pin")
	}
	if p.Current() != colombo {
		t.Errorf("current = %+v, want %+v", p.Current(), colombo)
	}
}

func TestLocationPicker_DeviceInitOutsideRegionIgnored(t *testing.T) {
	p := usecases.NewLocationPicker(testRegion(t))
	center := p.Current()

	p.InitializeFromDevicePosition(domain.Coordinate{Latitude: 51.5, Longitude: -0.12})

	if p.Placed() {
		t.Error("out-of-region device position must not place the pin")
	}
	if p.Current() != center {
		t.Error("out-of-region device position must not move the center")
	}
}

func TestLocationPicker_LateDeviceFixDoesNotOverrideManualPin(t *testing.T) {
	p := usecases.NewLocationPicker(testRegion(t))
	manual := domain.Coordinate{Latitude: 6.9, Longitude: 79.8}
	if err := p.SelectPoint(manual); err != nil {
		t.Fatalf("select: %v", err)
	}

	p.InitializeFromDevicePosition(domain.Coordinate{Latitude: 7.5, Longitude: 80.5})

	if p.Current() != manual {
		t.Errorf("device fix overrode manual pin: %+v", p.Current())
	}
}

func TestLocationPicker_RejectedClickRetainsPriorPin(t *testing.T) {
	p := usecases.NewLocationPicker(testRegion(t))
	pin := domain.Coordinate{Latitude: 6.9, Longitude: 79.8}
	if err := p.SelectPoint(pin); err != nil {
		t.Fatalf("select: %v", err)
	}
	if !p.Placed() {
		t.Fatal("pin should be placed")
	}

	err := p.SelectPoint(domain.Coordinate{Latitude: 40.0, Longitude: -74.0})
	if !errors.Is(err, domain.ErrOutOfRegion) {
		t.Fatalf("expected ErrOutOfRegion, got %v", err)
	}
	if p.Current() != pin {
		t.Errorf("rejected click moved the pin to %+v", p.Current())
	}
	if !p.Placed() {
		t.Error("rejected click cleared placement")
	}
}

func TestLocationPicker_ConfirmBeforePlacement(t *testing.T) {
	p := usecases.NewLocationPicker(testRegion(t))
	if _, err := p.Confirm(); !errors.Is(err, usecases.ErrNotPlaced) {
		t.Fatalf("expected ErrNotPlaced, got %v", err)
	}
}

func TestLocationPicker_ConfirmAndReopen(t *testing.T) {
	p := usecases.NewLocationPicker(testRegion(t))
	pin := domain.Coordinate{Latitude: 7.29, Longitude: 80.63}
	if err := p.SelectPoint(pin); err != nil {
		t.Fatalf("select: %v", err)
	}

	got, err := p.Confirm()
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if got != pin {
		t.Errorf("confirmed %+v, want %+v", got, pin)
	}
	if !p.Confirmed() {
		t.Error("picker should be confirmed")
	}

	p.Reopen()
	if p.Confirmed() {
		t.Error("reopen must clear confirmation")
	}
	if !p.Placed() || p.Current() != pin {
		t.Error("reopen must keep the pin")
	}
}

func TestLocationPicker_RepositionClearsConfirmation(t *testing.T) {
	p := usecases.NewLocationPicker(testRegion(t))
	_ = p.SelectPoint(domain.Coordinate{Latitude: 6.9, Longitude: 79.8})
	if _, err := p.Confirm(); err != nil {
		t.Fatalf("confirm: %v", err)
	}

	if err := p.SelectPoint(domain.Coordinate{Latitude: 7.0, Longitude: 80.0}); err != nil {
		t.Fatalf("reselect: %v", err)
	}
	if p.Confirmed() {
		t.Error("selecting a new point must clear confirmation")
	}
}
