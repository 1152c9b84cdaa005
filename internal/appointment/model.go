// Package appointment provides showing appointments between clients and
// agents.
package appointment

import "time"

// Status represents where an appointment is in its workflow.
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

// ValidStatus returns true if s is a known appointment status.
func ValidStatus(s string) bool {
	switch Status(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// Appointment holds the columns of an Appointments row.
type Appointment struct {
	ID              int64     `json:"appointment_id"`
	PropertyID      int64     `json:"property_id"`
	ClientID        int64     `json:"client_id"`
	AgentID         int64     `json:"agent_id"`
	Date            time.Time `json:"appointment_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          Status    `json:"status"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
}

// Client is a distinct client who has booked a showing for a property.
// Used to pick the buyer when a deal on the property is recorded.
type Client struct {
	ClientID  int64  `json:"client_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// Summary is one row of an appointment listing: the appointment joined with
// the property's title and city and both participants' names.
type Summary struct {
	ID              int64     `json:"appointment_id"`
	Date            time.Time `json:"appointment_date"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          Status    `json:"status"`
	Notes           string    `json:"notes"`
	PropertyID      int64     `json:"property_id"`
	PropertyTitle   string    `json:"property_title"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	ClientID        int64     `json:"client_id"`
	ClientFirstName string    `json:"client_first_name"`
	ClientLastName  string    `json:"client_last_name"`
	AgentID         int64     `json:"agent_id"`
	AgentFirstName  string    `json:"agent_first_name"`
	AgentLastName   string    `json:"agent_last_name"`
}
