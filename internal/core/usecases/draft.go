package usecases

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jayakulan/TrashRoute1/internal/core/domain"
	"github.com/jayakulan/TrashRoute1/internal/pkg/metrics"
)

// DraftStep is the cursor position in the four-step intake flow.
type DraftStep int

const (
	StepWaste DraftStep = iota
	StepLocation
	StepSchedule
	StepReview
)

// StepNames maps each step to the label the intake flow shows.
var StepNames = map[DraftStep]string{
	StepWaste:    "Select Waste Type",
	StepLocation: "Location Details",
	StepSchedule: "Schedule Pickup",
	StepReview:   "Review & Confirm",
}

var (
	// ErrStepIncomplete blocks Advance while the current step's invariant fails.
	ErrStepIncomplete = errors.New("current step is incomplete")

	// ErrSubmitInFlight rejects a repeated submit while one is already pending.
	ErrSubmitInFlight = errors.New("a submission for this draft is already in flight")

	// ErrNotAtReview rejects submit from any step before review.
	ErrNotAtReview = errors.New("draft must reach the review step before submission")

	// ErrDraftNotFound is returned for unknown or expired draft IDs.
	ErrDraftNotFound = errors.New("draft not found")

	// ErrInvalidLineItem rejects a line item with an unknown unit or negative quantity.
	ErrInvalidLineItem = errors.New("line item must have a known unit and non-negative quantity")

	// ErrInvalidSchedule rejects a past date or unknown time slot.
	ErrInvalidSchedule = errors.New("schedule must name a future-or-present date and a known time slot")
)

// Draft is a session-local, unsubmitted accumulation of a pickup request.
// It is never persisted; submission is the single handoff to storage.
type Draft struct {
	mu sync.Mutex

	id        string
	userID    string
	step      DraftStep
	items     []domain.WasteLineItem
	address   domain.Address
	schedule  domain.ScheduleSlot
	notes     string
	picker    *LocationPicker
	touchedAt time.Time

	submitting bool
}

// ID returns the draft's session identifier.
func (d *Draft) ID() string { return d.id }

// UserID returns the authoring user.
func (d *Draft) UserID() string { return d.userID }

// Step returns the current cursor position.
func (d *Draft) Step() DraftStep {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.step
}

// Items returns a copy of the draft's line items.
func (d *Draft) Items() []domain.WasteLineItem {
	d.mu.Lock()
	defer d.mu.Unlock()
	items := make([]domain.WasteLineItem, len(d.items))
	copy(items, d.items)
	return items
}

// Address returns the draft's pickup address.
func (d *Draft) Address() domain.Address {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.address
}

// Schedule returns the draft's schedule slot.
func (d *Draft) Schedule() domain.ScheduleSlot {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.schedule
}

// SetItem adds or updates the line item for a waste category. Re-selecting a
// category updates its entry in place rather than duplicating it.
func (d *Draft) SetItem(item domain.WasteLineItem) error {
	if item.CategoryID == "" || item.Quantity < 0 || !domain.ValidUnit(item.Unit) {
		return ErrInvalidLineItem
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	for i, existing := range d.items {
		if existing.CategoryID == item.CategoryID {
			d.items[i] = item
			return nil
		}
	}
	d.items = append(d.items, item)
	return nil
}

// RemoveItem drops the line item for a category, if present.
func (d *Draft) RemoveItem(categoryID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	for i, existing := range d.items {
		if existing.CategoryID == categoryID {
			d.items = append(d.items[:i], d.items[i+1:]...)
			return
		}
	}
}

// SetAddress updates the textual address fields. The pinned coordinate is
// managed separately through the location picker.
func (d *Draft) SetAddress(street, city, state, zipCode, country string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	coord := d.address.Coordinate
	d.address = domain.Address{
		Street: street, City: city, State: state,
		ZipCode: zipCode, Country: country,
		Coordinate: coord,
	}
}

// SetNotes attaches free-form notes to the draft.
func (d *Draft) SetNotes(notes string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	d.notes = notes
}

// InitializeFromDevicePosition forwards a device geolocation fix to the picker.
func (d *Draft) InitializeFromDevicePosition(c domain.Coordinate) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	d.picker.InitializeFromDevicePosition(c)
}

// SelectPoint forwards a map click to the picker.
func (d *Draft) SelectPoint(c domain.Coordinate) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	return d.picker.SelectPoint(c)
}

// ConfirmLocation commits the picked pin into the draft's address.
func (d *Draft) ConfirmLocation() (domain.Coordinate, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	coord, err := d.picker.Confirm()
	if err != nil {
		return domain.Coordinate{}, err
	}
	d.address.Coordinate = &coord
	return coord, nil
}

// ReopenLocation dismisses the confirmation notice, keeping the pin.
func (d *Draft) ReopenLocation() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	d.picker.Reopen()
}

// Picker exposes the picker's state for rendering.
func (d *Draft) Picker() (current domain.Coordinate, placed, confirmed bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.picker.Current(), d.picker.Placed(), d.picker.Confirmed()
}

// SetSchedule sets the requested pickup date and window.
func (d *Draft) SetSchedule(date time.Time, slot domain.TimeSlot) error {
	if date.IsZero() || !domain.ValidTimeSlot(slot) || dateOnly(date).Before(dateOnly(time.Now())) {
		return ErrInvalidSchedule
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	d.schedule = domain.ScheduleSlot{Date: dateOnly(date), TimeSlot: slot}
	return nil
}

// stepComplete checks the invariant of a single step. Caller holds d.mu.
func (d *Draft) stepComplete(step DraftStep) bool {
	switch step {
	case StepWaste:
		if len(d.items) == 0 {
			return false
		}
		for _, item := range d.items {
			if item.Quantity <= 0 {
				return false
			}
		}
		return true
	case StepLocation:
		return d.address.Street != "" && d.address.City != "" && d.address.Coordinate != nil
	case StepSchedule:
		return !d.schedule.Date.IsZero() && domain.ValidTimeSlot(d.schedule.TimeSlot)
	default:
		return true
	}
}

// StepComplete reports whether a step's invariant currently holds, for
// enabling or disabling the Next control.
func (d *Draft) StepComplete(step DraftStep) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stepComplete(step)
}

// Advance moves the cursor forward once the current step is complete.
func (d *Draft) Advance() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	if d.step >= StepReview {
		return fmt.Errorf("%w: already at review", ErrStepIncomplete)
	}
	if !d.stepComplete(d.step) {
		return fmt.Errorf("%w: %s", ErrStepIncomplete, StepNames[d.step])
	}
	d.step++
	return nil
}

// Back moves the cursor backward. It always succeeds except from step 0.
func (d *Draft) Back() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.touch()
	if d.step == StepWaste {
		return fmt.Errorf("%w: already at the first step", ErrStepIncomplete)
	}
	d.step--
	return nil
}

// beginSubmit flags the draft as having an in-flight submission.
func (d *Draft) beginSubmit() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.step != StepReview {
		return ErrNotAtReview
	}
	if d.submitting {
		return ErrSubmitInFlight
	}
	d.submitting = true
	return nil
}

// endSubmit clears the in-flight flag after a failed submission, leaving the
// draft intact for a user-initiated retry.
func (d *Draft) endSubmit() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.submitting = false
}

// snapshot builds the request candidate handed to storage. The draft and the
// persisted request are distinct objects.
func (d *Draft) snapshot(now time.Time) *domain.PickupRequest {
	d.mu.Lock()
	defer d.mu.Unlock()
	items := make([]domain.WasteLineItem, len(d.items))
	copy(items, d.items)
	addr := d.address
	if d.address.Coordinate != nil {
		coord := *d.address.Coordinate
		addr.Coordinate = &coord
	}
	return &domain.PickupRequest{
		ID:        uuid.NewString(),
		UserID:    d.userID,
		Status:    domain.StatusPending,
		Items:     items,
		Address:   addr,
		Schedule:  d.schedule,
		Notes:     d.notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d *Draft) touch() { d.touchedAt = time.Now() }

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DraftService owns the in-memory draft sessions. Drafts live only in this
// process and expire after a period of inactivity; navigating away simply
// abandons them.
type DraftService struct {
	mu     sync.RWMutex
	drafts map[string]*Draft

	region   domain.ServiceRegion
	requests *RequestService
	ttl      time.Duration
}

// NewDraftService creates a DraftService. ttl bounds how long an untouched
// draft survives.
func NewDraftService(region domain.ServiceRegion, requests *RequestService, ttl time.Duration) *DraftService {
	return &DraftService{
		drafts:   make(map[string]*Draft),
		region:   region,
		requests: requests,
		ttl:      ttl,
	}
}

// Create starts a fresh draft for a user.
func (s *DraftService) Create(userID string) *Draft {
	d := &Draft{
		id:        uuid.NewString(),
		userID:    userID,
		picker:    NewLocationPicker(s.region),
		touchedAt: time.Now(),
	}
	s.mu.Lock()
	s.drafts[d.id] = d
	s.mu.Unlock()
	metrics.DraftsActive.Inc()
	return d
}

// Get returns a live draft, expiring stale ones on access.
func (s *DraftService) Get(id string) (*Draft, error) {
	s.mu.RLock()
	d, ok := s.drafts[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrDraftNotFound
	}

	d.mu.Lock()
	expired := time.Since(d.touchedAt) > s.ttl
	d.mu.Unlock()
	if expired {
		s.Discard(id)
		return nil, ErrDraftNotFound
	}
	return d, nil
}

// Discard drops a draft without submitting it. It reports whether a draft was
// actually removed, so the active-drafts gauge only moves for real sessions.
func (s *DraftService) Discard(id string) bool {
	s.mu.Lock()
	_, existed := s.drafts[id]
	delete(s.drafts, id)
	s.mu.Unlock()
	if existed {
		metrics.DraftsActive.Dec()
	}
	return existed
}

// Submit turns a completed draft into a pending pickup request. At most one
// submission per draft may be in flight; a failed submission leaves the draft
// intact for resubmission, a successful one discards it. A submission that
// completes after the originating view is gone is still authoritative.
func (s *DraftService) Submit(ctx context.Context, id string) (*domain.PickupRequest, error) {
	d, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := d.beginSubmit(); err != nil {
		return nil, err
	}

	req := d.snapshot(time.Now())
	if err := s.requests.Submit(ctx, req); err != nil {
		d.endSubmit()
		return nil, err
	}

	s.Discard(id)
	return req, nil
}
