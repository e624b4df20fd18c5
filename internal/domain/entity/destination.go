// Package entity contains the core business objects of the project.
package entity

import (
	"time"
)

// Destination is a trek shown in the browse list or in a user's planned trips.
// It is immutable once created.
type Destination struct {
	ID          string     `json:"id"`                   // Document ID, or a stable "seed-*" ID for static entries.
	Name        string     `json:"name"`                 // Display name, stored upper-cased.
	Location    string     `json:"location"`             // Human readable location label.
	Description string     `json:"description"`          // Long-form description of the trek.
	Image       string     `json:"image"`                // Hero image URI.
	Distance    string     `json:"distance"`             // Trek distance, e.g. "130 km".
	Duration    string     `json:"duration"`             // Trek duration, e.g. "12-14 days".
	Elevation   string     `json:"elevation"`            // Highest elevation, e.g. "5,364 m".
	IsPublic    bool       `json:"is_public"`            // Listed in the public destinations collection.
	IsPlanned   bool       `json:"is_planned"`           // Part of a user's planned trips.
	StartDate   string     `json:"start_date,omitempty"` // Optional planned start date.
	EndDate     string     `json:"end_date,omitempty"`   // Optional planned end date.
	CreatedAt   *time.Time `json:"created_at,omitempty"` // Server-assigned creation time, nil for seeds and pending writes.
	CreatedBy   string     `json:"created_by,omitempty"` // Owner user ID.
}

// CreatedUnix returns the creation time in nanoseconds, treating a missing
// timestamp as the oldest possible value.
func (d *Destination) CreatedUnix() int64 {
	if d.CreatedAt == nil {
		return 0
	}

	return d.CreatedAt.UnixNano()
}

// TrekMetadata is the descriptive data attached to a planned trek.
type TrekMetadata struct {
	Distance    string `json:"distance"`
	Duration    string `json:"duration"`
	Elevation   string `json:"elevation"`
	Description string `json:"description"`
	Image       string `json:"image"`
}
