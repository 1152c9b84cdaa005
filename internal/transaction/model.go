// Package transaction records completed sales and rentals.
package transaction

import "time"

// Type says whether a transaction is a sale or a rental.
type Type string

const (
	TypeSale   Type = "sale"
	TypeRental Type = "rental"
)

// ValidType returns true if s is a known transaction type.
func ValidType(s string) bool {
	switch Type(s) {
	case TypeSale, TypeRental:
		return true
	}
	return false
}

// PaymentStatus tracks settlement of the transaction.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// ValidPaymentStatus returns true if s is a known payment status.
func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentRefunded:
		return true
	}
	return false
}

// Transaction holds the columns of a Transactions row. FinalPrice and
// CommissionAmount are in cents. CommissionAmount is derived from the
// agent's stored rate at creation time and never recomputed.
type Transaction struct {
	ID               int64         `json:"transaction_id"`
	PropertyID       int64         `json:"property_id"`
	ClientID         int64         `json:"client_id"`
	AgentID          int64         `json:"agent_id"`
	Type             Type          `json:"transaction_type"`
	Date             time.Time     `json:"transaction_date"`
	FinalPrice       int64         `json:"final_price"`
	CommissionAmount int64         `json:"commission_amount"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	LeaseStartDate   *time.Time    `json:"lease_start_date,omitempty"`
	LeaseEndDate     *time.Time    `json:"lease_end_date,omitempty"`
	Notes            string        `json:"notes"`
	CreatedAt        time.Time     `json:"created_at"`
}

// Summary is one row of a transaction listing joined with the property
// title and both parties' names.
type Summary struct {
	ID               int64         `json:"transaction_id"`
	Type             Type          `json:"transaction_type"`
	Date             time.Time     `json:"transaction_date"`
	FinalPrice       int64         `json:"final_price"`
	CommissionAmount int64         `json:"commission_amount"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PropertyID       int64         `json:"property_id"`
	PropertyTitle    string        `json:"property_title"`
	ClientID         int64         `json:"client_id"`
	ClientFirstName  string        `json:"client_first_name"`
	ClientLastName   string        `json:"client_last_name"`
	AgentID          int64         `json:"agent_id"`
	AgentFirstName   string        `json:"agent_first_name"`
	AgentLastName    string        `json:"agent_last_name"`
}

// Detail is the full single-transaction view with the property address and
// both parties' contact fields.
type Detail struct {
	Transaction
	PropertyTitle   string `json:"property_title"`
	StreetAddress   string `json:"street_address"`
	City            string `json:"city"`
	State           string `json:"state"`
	ZipCode         string `json:"zip_code"`
	ClientFirstName string `json:"client_first_name"`
	ClientLastName  string `json:"client_last_name"`
	ClientEmail     string `json:"client_email"`
	AgencyName      string `json:"agency_name"`
	AgentFirstName  string `json:"agent_first_name"`
	AgentLastName   string `json:"agent_last_name"`
	AgentEmail      string `json:"agent_email"`
}
