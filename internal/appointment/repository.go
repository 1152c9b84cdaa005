package appointment

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/hearthway/realty/internal/domain"
)

// Repository provides appointment reads and writes.
type Repository struct {
	db *sql.DB
}

// NewRepository creates an appointment repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create books a showing. New appointments always start out scheduled.
func (r *Repository) Create(propertyID, clientID, agentID int64, date time.Time, durationMinutes int, notes string) (int64, error) {
	if durationMinutes <= 0 {
		durationMinutes = 30
	}

	result, err := r.db.Exec(
		`INSERT INTO Appointments (property_id, client_id, agent_id, appointment_date, duration_minutes, status, notes)
		 VALUES (?, ?, ?, ?, ?, 'scheduled', ?)`,
		propertyID, clientID, agentID, date, durationMinutes, notes,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting appointment: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting appointment id: %w", err)
	}
	return id, nil
}

const summaryQuery = `
	SELECT a.appointment_id, a.appointment_date, a.duration_minutes, a.status, a.notes,
	       p.property_id, p.title AS property_title, l.city, l.state,
	       a.client_id, cu.first_name AS client_first_name, cu.last_name AS client_last_name,
	       a.agent_id, au.first_name AS agent_first_name, au.last_name AS agent_last_name
	FROM Appointments a
	JOIN Properties p ON a.property_id = p.property_id
	JOIN Locations l ON p.location_id = l.location_id
	JOIN Clients c ON a.client_id = c.client_id
	JOIN Users cu ON c.user_id = cu.user_id
	JOIN Agents ag ON a.agent_id = ag.agent_id
	JOIN Users au ON ag.user_id = au.user_id`

// ByClient returns a client's appointments, most recent first.
func (r *Repository) ByClient(clientID int64) ([]*Summary, error) {
	return r.listSummaries(summaryQuery+" WHERE a.client_id = ? ORDER BY a.appointment_date DESC", clientID)
}

// ByAgent returns an agent's appointments, most recent first.
func (r *Repository) ByAgent(agentID int64) ([]*Summary, error) {
	return r.listSummaries(summaryQuery+" WHERE a.agent_id = ? ORDER BY a.appointment_date DESC", agentID)
}

// All returns every appointment, most recent first. Admin listing.
func (r *Repository) All() ([]*Summary, error) {
	return r.listSummaries(summaryQuery + " ORDER BY a.appointment_date DESC")
}

func (r *Repository) listSummaries(query string, args ...interface{}) (summaries []*Summary, err error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var s Summary
		var status string
		if err := rows.Scan(
			&s.ID, &s.Date, &s.DurationMinutes, &status, &s.Notes,
			&s.PropertyID, &s.PropertyTitle, &s.City, &s.State,
			&s.ClientID, &s.ClientFirstName, &s.ClientLastName,
			&s.AgentID, &s.AgentFirstName, &s.AgentLastName,
		); err != nil {
			return nil, fmt.Errorf("scanning appointment: %w", err)
		}
		s.Status = Status(status)
		summaries = append(summaries, &s)
	}

	return summaries, rows.Err()
}

// ClientsForProperty returns the distinct clients holding appointments for
// a property. Multiple showings for the same client collapse to one row.
func (r *Repository) ClientsForProperty(propertyID int64) (clients []Client, err error) {
	rows, err := r.db.Query(
		`SELECT DISTINCT c.client_id, u.first_name, u.last_name, u.email
		 FROM Clients c
		 JOIN Users u ON c.user_id = u.user_id
		 JOIN Appointments a ON c.client_id = a.client_id
		 WHERE a.property_id = ?
		 ORDER BY u.last_name, u.first_name`,
		propertyID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing clients for property: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var c Client
		if err := rows.Scan(&c.ClientID, &c.FirstName, &c.LastName, &c.Email); err != nil {
			return nil, fmt.Errorf("scanning client: %w", err)
		}
		clients = append(clients, c)
	}

	return clients, rows.Err()
}

// GetByID returns a single appointment row.
func (r *Repository) GetByID(id int64) (*Appointment, error) {
	var a Appointment
	var status string
	err := r.db.QueryRow(
		`SELECT appointment_id, property_id, client_id, agent_id, appointment_date,
		        duration_minutes, status, notes, created_at
		 FROM Appointments WHERE appointment_id = ?`,
		id,
	).Scan(&a.ID, &a.PropertyID, &a.ClientID, &a.AgentID, &a.Date,
		&a.DurationMinutes, &status, &a.Notes, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("appointment %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying appointment %d: %w", id, err)
	}

	a.Status = Status(status)
	return &a, nil
}

// Update sets an appointment's status and notes.
func (r *Repository) Update(id int64, status Status, notes string) (int64, error) {
	if !ValidStatus(string(status)) {
		return 0, fmt.Errorf("unknown appointment status %q: %w", status, domain.ErrValidation)
	}

	result, err := r.db.Exec(
		`UPDATE Appointments
		 SET status = ?, notes = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE appointment_id = ?`,
		string(status), notes, id,
	)
	if err != nil {
		return 0, fmt.Errorf("updating appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return 0, fmt.Errorf("appointment %d: %w", id, domain.ErrNotFound)
	}
	return rows, nil
}

// Delete removes an appointment by id.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM Appointments WHERE appointment_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
