package domain

import "time"

// WasteCategory is static reference data describing an accepted waste type.
type WasteCategory struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Guidelines       string    `json:"guidelines,omitempty"`
	AcceptedItems    []string  `json:"accepted_items,omitempty"`
	NotAcceptedItems []string  `json:"not_accepted_items,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

// Company is a waste-processing company that accepts pickup requests.
type Company struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone,omitempty"`
	Address            Address   `json:"address"`
	ServiceRadiusKm    float64   `json:"service_radius_km"`
	AcceptedCategories []string  `json:"accepted_categories,omitempty"`
	Rating             float64   `json:"rating"`
	Distance           *float64  `json:"distance,omitempty"` // computed field, meters
	CreatedAt          time.Time `json:"created_at"`
}
