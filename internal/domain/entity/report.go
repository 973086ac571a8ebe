package entity

import (
	"time"

	"github.com/google/uuid"
)

// ReportCategory enumerates the kinds of environmental incidents a report can describe.
type ReportCategory string

const (
	CategoryAirPollution   ReportCategory = "air-pollution"
	CategoryWaterPollution ReportCategory = "water-pollution"
	CategoryGlobalWarming  ReportCategory = "global-warming"
	CategoryWildfire       ReportCategory = "wildfire"
)

// Valid reports whether the category is one of the known values.
func (c ReportCategory) Valid() bool {
	switch c {
	case CategoryAirPollution, CategoryWaterPollution, CategoryGlobalWarming, CategoryWildfire:
		return true
	}

	return false
}

// ReportStatus enumerates the lifecycle states of a report.
type ReportStatus string

const (
	StatusPending  ReportStatus = "pending"
	StatusResolved ReportStatus = "resolved"
)

// Valid reports whether the status is one of the known values.
func (s ReportStatus) Valid() bool {
	return s == StatusPending || s == StatusResolved
}

// Report is a user-submitted environmental incident.
// Every report belongs to an existing User; the location reference is optional.
type Report struct {
	ID          uuid.UUID
	UserID      uuid.UUID      // The owning user. Must exist at creation time.
	Description string         // Free-text description of the incident.
	Category    ReportCategory // One of the enumerated incident categories.
	Status      ReportStatus   // Defaults to StatusPending on creation.
	ImageURL    string         // URL of the uploaded evidence image. Optional.
	LocationID  *uuid.UUID     // Optional reference to a captured Location.
	Location    *Location      // Populated when the report is loaded with its location.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
