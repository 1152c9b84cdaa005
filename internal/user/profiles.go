package user

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/hearthway/realty/internal/domain"
)

// CreateAgentProfile creates the agent extension row for a user.
// At most one agent profile may exist per user; the UNIQUE user_id
// constraint enforces it.
func (s *Store) CreateAgentProfile(userID int64, a Agent) (int64, error) {
	if a.LicenseNumber == "" {
		return 0, fmt.Errorf("license number is required: %w", domain.ErrValidation)
	}

	result, err := s.db.Exec(
		`INSERT INTO Agents (user_id, license_number, agency_name, commission_rate, specialization, years_experience)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, a.LicenseNumber, a.AgencyName, a.CommissionRate, a.Specialization, a.YearsExperience,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return 0, fmt.Errorf("agent profile already exists for user %d: %w", userID, domain.ErrValidation)
		}
		return 0, fmt.Errorf("inserting agent profile: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting agent id: %w", err)
	}
	return id, nil
}

// CreateClientProfile creates the client extension row for a user.
func (s *Store) CreateClientProfile(userID int64, c Client) (int64, error) {
	if !ValidIntent(string(c.LookingFor)) {
		return 0, fmt.Errorf("unknown intent %q: %w", c.LookingFor, domain.ErrValidation)
	}

	result, err := s.db.Exec(
		`INSERT INTO Clients (user_id, preferred_contact_method, budget_min, budget_max, preferred_location, looking_for)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		userID, c.PreferredContactMethod, c.BudgetMin, c.BudgetMax, c.PreferredLocation, string(c.LookingFor),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return 0, fmt.Errorf("client profile already exists for user %d: %w", userID, domain.ErrValidation)
		}
		return 0, fmt.Errorf("inserting client profile: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting client id: %w", err)
	}
	return id, nil
}

// GetAgentByUserID returns the agent profile for a user, joined with the
// user's contact fields.
func (s *Store) GetAgentByUserID(userID int64) (*Agent, error) {
	var a Agent
	err := s.db.QueryRow(
		`SELECT a.agent_id, a.user_id, a.license_number, a.agency_name, a.commission_rate,
		        a.specialization, a.years_experience, a.total_sales, a.rating,
		        u.first_name, u.last_name, u.email, u.phone
		 FROM Agents a
		 JOIN Users u ON a.user_id = u.user_id
		 WHERE a.user_id = ?`,
		userID,
	).Scan(&a.ID, &a.UserID, &a.LicenseNumber, &a.AgencyName, &a.CommissionRate,
		&a.Specialization, &a.YearsExperience, &a.TotalSales, &a.Rating,
		&a.FirstName, &a.LastName, &a.Email, &a.Phone)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("agent profile for user %d: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying agent profile: %w", err)
	}
	return &a, nil
}

// GetClientByUserID returns the client profile for a user, joined with the
// user's contact fields.
func (s *Store) GetClientByUserID(userID int64) (*Client, error) {
	var c Client
	var lookingFor string
	err := s.db.QueryRow(
		`SELECT c.client_id, c.user_id, c.preferred_contact_method, c.budget_min, c.budget_max,
		        c.preferred_location, c.looking_for,
		        u.first_name, u.last_name, u.email, u.phone
		 FROM Clients c
		 JOIN Users u ON c.user_id = u.user_id
		 WHERE c.user_id = ?`,
		userID,
	).Scan(&c.ID, &c.UserID, &c.PreferredContactMethod, &c.BudgetMin, &c.BudgetMax,
		&c.PreferredLocation, &lookingFor,
		&c.FirstName, &c.LastName, &c.Email, &c.Phone)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client profile for user %d: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying client profile: %w", err)
	}

	c.LookingFor = Intent(lookingFor)
	return &c, nil
}

// UpdateAgentProfile replaces the mutable agent profile fields.
func (s *Store) UpdateAgentProfile(agentID int64, a Agent) (int64, error) {
	result, err := s.db.Exec(
		`UPDATE Agents
		 SET license_number = ?, agency_name = ?, commission_rate = ?, specialization = ?, years_experience = ?
		 WHERE agent_id = ?`,
		a.LicenseNumber, a.AgencyName, a.CommissionRate, a.Specialization, a.YearsExperience, agentID,
	)
	if err != nil {
		return 0, fmt.Errorf("updating agent profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return 0, fmt.Errorf("agent %d: %w", agentID, domain.ErrNotFound)
	}
	return rows, nil
}

// UpdateClientProfile replaces the mutable client profile fields.
func (s *Store) UpdateClientProfile(clientID int64, c Client) (int64, error) {
	if !ValidIntent(string(c.LookingFor)) {
		return 0, fmt.Errorf("unknown intent %q: %w", c.LookingFor, domain.ErrValidation)
	}

	result, err := s.db.Exec(
		`UPDATE Clients
		 SET preferred_contact_method = ?, budget_min = ?, budget_max = ?, preferred_location = ?, looking_for = ?
		 WHERE client_id = ?`,
		c.PreferredContactMethod, c.BudgetMin, c.BudgetMax, c.PreferredLocation, string(c.LookingFor), clientID,
	)
	if err != nil {
		return 0, fmt.Errorf("updating client profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return 0, fmt.Errorf("client %d: %w", clientID, domain.ErrNotFound)
	}
	return rows, nil
}
