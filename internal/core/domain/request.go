package domain

import (
	"errors"
	"time"
)

// RequestStatus is the lifecycle stage of a submitted pickup request.
type RequestStatus string

const (
	StatusPending    RequestStatus = "pending"
	StatusAccepted   RequestStatus = "accepted"
	StatusInProgress RequestStatus = "in_progress"
	StatusCompleted  RequestStatus = "completed"
	StatusCancelled  RequestStatus = "cancelled"
)

// Statuses lists every lifecycle status, in progression order.
var Statuses = []RequestStatus{
	StatusPending, StatusAccepted, StatusInProgress, StatusCompleted, StatusCancelled,
}

// ValidStatus reports whether s is one of the five lifecycle statuses.
func ValidStatus(s RequestStatus) bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions.
func (s RequestStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Actor identifies who is performing a lifecycle transition.
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorCompany  Actor = "company"
)

// Action is a lifecycle transition event.
type Action string

const (
	ActionAccept   Action = "accept"
	ActionStart    Action = "start"
	ActionComplete Action = "complete"
	ActionCancel   Action = "cancel"
)

var (
	// ErrIllegalTransition is returned for any action not legal from the
	// current status for the given actor. State is left unchanged.
	ErrIllegalTransition = errors.New("illegal status transition")

	// ErrMissingAssignee is returned when accept is attempted without a company ID.
	ErrMissingAssignee = errors.New("accept requires a company id")
)

// Unit is the measurement unit of a waste line item.
type Unit string

const (
	UnitKg     Unit = "kg"
	UnitLbs    Unit = "lbs"
	UnitPieces Unit = "pieces"
)

// ValidUnit reports whether u is one of the three accepted units.
func ValidUnit(u Unit) bool {
	return u == UnitKg || u == UnitLbs || u == UnitPieces
}

// WasteLineItem is one waste-category quantity entry within a request.
// A category appears at most once per request.
type WasteLineItem struct {
	CategoryID string  `json:"category_id"`
	Quantity   float64 `json:"quantity"`
	Unit       Unit    `json:"unit"`
}

// Address is a pickup address with an optional pinned coordinate.
type Address struct {
	Street     string      `json:"street"`
	City       string      `json:"city"`
	State      string      `json:"state,omitempty"`
	ZipCode    string      `json:"zip_code,omitempty"`
	Country    string      `json:"country,omitempty"`
	Coordinate *Coordinate `json:"coordinate,omitempty"`
}

// TimeSlot is one of the three pickup windows offered per day.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"   // 8:00–12:00
	SlotAfternoon TimeSlot = "afternoon" // 12:00–16:00
	SlotEvening   TimeSlot = "evening"   // 16:00–20:00
)

// ValidTimeSlot reports whether t is an offered window.
func ValidTimeSlot(t TimeSlot) bool {
	return t == SlotMorning || t == SlotAfternoon || t == SlotEvening
}

// ScheduleSlot is the requested pickup date and window.
// Date carries calendar-date precision only.
type ScheduleSlot struct {
	Date     time.Time `json:"date"`
	TimeSlot TimeSlot  `json:"time_slot"`
}

// PickupRequest is a submitted, persisted pickup request. It is created in
// pending status and only ever transitioned, never deleted.
type PickupRequest struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	CompanyID string          `json:"company_id,omitempty"`
	Status    RequestStatus   `json:"status"`
	Items     []WasteLineItem `json:"items"`
	Address   Address         `json:"address"`
	Schedule  ScheduleSlot    `json:"schedule"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// transition is one legal edge of the lifecycle state machine.
type transition struct {
	from  RequestStatus
	actor Actor
	to    RequestStatus
}

var transitions = map[Action][]transition{
	ActionAccept:   {{StatusPending, ActorCompany, StatusAccepted}},
	ActionStart:    {{StatusAccepted, ActorCompany, StatusInProgress}},
	ActionComplete: {{StatusInProgress, ActorCompany, StatusCompleted}},
	ActionCancel: {
		{StatusPending, ActorCustomer, StatusCancelled},
		{StatusAccepted, ActorCustomer, StatusCancelled},
	},
}

// CanApply reports whether the action is legal from the given status for the actor.
func CanApply(status RequestStatus, action Action, actor Actor) bool {
	for _, t := range transitions[action] {
		if t.from == status && t.actor == actor {
			return true
		}
	}
	return false
}

// AllowedActions returns the actions the actor may perform on a request in the
// given status. The presentation layer uses this to show or hide controls.
func AllowedActions(status RequestStatus, actor Actor) []Action {
	var actions []Action
	for _, a := range []Action{ActionAccept, ActionStart, ActionComplete, ActionCancel} {
		if CanApply(status, a, actor) {
			actions = append(actions, a)
		}
	}
	return actions
}

// apply performs a transition, refreshing UpdatedAt and nothing else.
func (r *PickupRequest) apply(action Action, actor Actor, now time.Time) error {
	for _, t := range transitions[action] {
		if t.from == r.Status && t.actor == actor {
			r.Status = t.to
			r.UpdatedAt = now
			return nil
		}
	}
	return ErrIllegalTransition
}

// Accept assigns the request to a company and moves it to accepted.
func (r *PickupRequest) Accept(companyID string, now time.Time) error {
	if companyID == "" {
		return ErrMissingAssignee
	}
	if err := r.apply(ActionAccept, ActorCompany, now); err != nil {
		return err
	}
	r.CompanyID = companyID
	return nil
}

// Start moves an accepted request to in_progress.
func (r *PickupRequest) Start(now time.Time) error {
	return r.apply(ActionStart, ActorCompany, now)
}

// Complete moves an in-progress request to completed.
func (r *PickupRequest) Complete(now time.Time) error {
	return r.apply(ActionComplete, ActorCompany, now)
}

// Cancel lets the customer withdraw a request before work starts.
func (r *PickupRequest) Cancel(now time.Time) error {
	return r.apply(ActionCancel, ActorCustomer, now)
}
