package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRegion is returned when a service region's bounds are inverted.
	ErrInvalidRegion = errors.New("invalid service region: north must exceed south and east must exceed west")

	// ErrOutOfRegion is returned when a coordinate falls outside the active service region.
	ErrOutOfRegion = errors.New("coordinate is outside the service region")
)

// Coordinate is a WGS 84 geographic position.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate is a real lat/lng pair.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// ServiceRegion is a rectangular lat/lng bounding constraint on pickup
// locations. Antimeridian wraparound is not supported.
type ServiceRegion struct {
	North float64 `json:"north"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	West  float64 `json:"west"`
}

// NewServiceRegion validates bounds and builds a region.
func NewServiceRegion(north, south, east, west float64) (ServiceRegion, error) {
	if north <= south || east <= west {
		return ServiceRegion{}, fmt.Errorf("%w: north=%v south=%v east=%v west=%v",
			ErrInvalidRegion, north, south, east, west)
	}
	return ServiceRegion{North: north, South: south, East: east, West: west}, nil
}

// Contains reports whether the coordinate lies within the region.
// All four edges are inclusive.
func (r ServiceRegion) Contains(c Coordinate) bool {
	return c.Latitude >= r.South && c.Latitude <= r.North &&
		c.Longitude >= r.West && c.Longitude <= r.East
}

// Center returns the midpoint of the region, used as the default map center
// before any pin is placed.
func (r ServiceRegion) Center() Coordinate {
	return Coordinate{
		Latitude:  (r.North + r.South) / 2,
		Longitude: (r.East + r.West) / 2,
	}
}
