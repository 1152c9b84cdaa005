// Package user provides user accounts and the agent/client profile
// extensions, backed by raw SQL.
package user

import (
	"time"

	"github.com/hearthway/realty/internal/auth"
)

// User represents an account row.
type User struct {
	ID           int64      `json:"user_id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name"`
	Phone        string     `json:"phone"`
	Role         auth.Role  `json:"user_type"`
	IsActive     bool       `json:"is_active"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Identity builds the session identity view for this user.
func (u *User) Identity() auth.Identity {
	return auth.Identity{
		UserID:        u.ID,
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Role:          u.Role,
		Authenticated: true,
	}
}

// Agent is the profile extension for users with the agent role.
// CommissionRate is in hundredths of a percent (300 = 3.00%).
type Agent struct {
	ID              int64   `json:"agent_id"`
	UserID          int64   `json:"user_id"`
	LicenseNumber   string  `json:"license_number"`
	AgencyName      string  `json:"agency_name"`
	CommissionRate  int64   `json:"commission_rate"`
	Specialization  string  `json:"specialization"`
	YearsExperience int     `json:"years_experience"`
	TotalSales      int     `json:"total_sales"`
	Rating          float64 `json:"rating"`

	// Joined from Users for display.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Intent is what a client is in the market for.
type Intent string

const (
	IntentBuy  Intent = "buy"
	IntentRent Intent = "rent"
	IntentSell Intent = "sell"
)

// ValidIntent returns true if s is a known client intent.
func ValidIntent(s string) bool {
	switch Intent(s) {
	case IntentBuy, IntentRent, IntentSell:
		return true
	}
	return false
}

// Client is the profile extension for users with the client role.
// Budget bounds are in cents.
type Client struct {
	ID                     int64  `json:"client_id"`
	UserID                 int64  `json:"user_id"`
	PreferredContactMethod string `json:"preferred_contact_method"`
	BudgetMin              *int64 `json:"budget_min,omitempty"`
	BudgetMax              *int64 `json:"budget_max,omitempty"`
	PreferredLocation      string `json:"preferred_location"`
	LookingFor             Intent `json:"looking_for"`

	// Joined from Users for display.
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}
