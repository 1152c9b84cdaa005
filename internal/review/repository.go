package review

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/hearthway/realty/internal/domain"
)

// Repository provides review reads and writes.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a review repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Exists reports whether the client has already reviewed the property.
func (r *Repository) Exists(clientID, propertyID int64) (bool, error) {
	var n int
	err := r.db.QueryRow(
		"SELECT COUNT(*) FROM Reviews WHERE client_id = ? AND property_id = ?",
		clientID, propertyID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking for existing review: %w", err)
	}
	return n > 0, nil
}

// Create inserts a review and returns its id. Each client gets one review
// per property; the unique constraint is the last line of defense against
// concurrent double submits.
func (r *Repository) Create(clientID, propertyID, agentID int64, rating int, text string) (int64, error) {
	if rating < 1 || rating > 5 {
		return 0, fmt.Errorf("rating %d out of range 1-5: %w", rating, domain.ErrValidation)
	}

	exists, err := r.Exists(clientID, propertyID)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, domain.ErrDuplicateReview
	}

	result, err := r.db.Exec(
		`INSERT INTO Reviews (client_id, property_id, agent_id, rating, review_text)
		 VALUES (?, ?, ?, ?, ?)`,
		clientID, propertyID, agentID, rating, text,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return 0, domain.ErrDuplicateReview
		}
		return 0, fmt.Errorf("inserting review: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting review id: %w", err)
	}
	return id, nil
}

const viewQuery = `
	SELECT r.review_id, r.client_id, r.property_id, r.agent_id,
	       r.rating, r.review_text, r.review_date, r.is_verified,
	       u.first_name AS client_first_name, u.last_name AS client_last_name,
	       p.title AS property_title
	FROM Reviews r
	JOIN Clients c ON r.client_id = c.client_id
	JOIN Users u ON c.user_id = u.user_id
	JOIN Properties p ON r.property_id = p.property_id`

// ByProperty returns a property's reviews, newest first.
func (r *Repository) ByProperty(propertyID int64) ([]*View, error) {
	return r.listViews(viewQuery+" WHERE r.property_id = ? ORDER BY r.review_date DESC", propertyID)
}

// ByClient returns a client's reviews, newest first.
func (r *Repository) ByClient(clientID int64) ([]*View, error) {
	return r.listViews(viewQuery+" WHERE r.client_id = ? ORDER BY r.review_date DESC", clientID)
}

func (r *Repository) listViews(query string, args ...interface{}) (views []*View, err error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var v View
		if err := rows.Scan(
			&v.ID, &v.ClientID, &v.PropertyID, &v.AgentID,
			&v.Rating, &v.Text, &v.Date, &v.IsVerified,
			&v.ClientFirstName, &v.ClientLastName,
			&v.PropertyTitle,
		); err != nil {
			return nil, fmt.Errorf("scanning review: %w", err)
		}
		views = append(views, &v)
	}

	return views, rows.Err()
}

// GetByID returns a single review row.
func (r *Repository) GetByID(id int64) (*Review, error) {
	var rv Review
	err := r.db.QueryRow(
		`SELECT review_id, client_id, property_id, agent_id, rating, review_text, review_date, is_verified
		 FROM Reviews WHERE review_id = ?`,
		id,
	).Scan(&rv.ID, &rv.ClientID, &rv.PropertyID, &rv.AgentID,
		&rv.Rating, &rv.Text, &rv.Date, &rv.IsVerified)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("review %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying review %d: %w", id, err)
	}
	return &rv, nil
}

// Delete removes a review by id.
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM Reviews WHERE review_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting review: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("review %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
