// Package review provides client reviews of properties and their agents.
package review

import "time"

// Review holds the columns of a Reviews row.
type Review struct {
	ID         int64     `json:"review_id"`
	ClientID   int64     `json:"client_id"`
	PropertyID int64     `json:"property_id"`
	AgentID    int64     `json:"agent_id"`
	Rating     int       `json:"rating"`
	Text       string    `json:"review_text"`
	Date       time.Time `json:"review_date"`
	IsVerified bool      `json:"is_verified"`
}

// View is a review joined with the reviewer's name and the property title.
type View struct {
	Review
	ClientFirstName string `json:"client_first_name"`
	ClientLastName  string `json:"client_last_name"`
	PropertyTitle   string `json:"property_title"`
}
