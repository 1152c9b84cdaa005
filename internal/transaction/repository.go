package transaction

import (
	"database/sql"
	"fmt"

	"github.com/hearthway/realty/internal/domain"
)

// Repository provides transaction reads and writes.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a transaction repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create records a closed deal as one atomic unit: it inserts the
// transaction row, marks the property sold or rented with the transaction
// date as the sold date, and bumps the agent's sales count. The commission
// is computed here from the agent's stored rate, never taken from the
// caller. Returns the new transaction id.
func (r *Repository) Create(tr Transaction) (transactionID int64, err error) {
	if !ValidType(string(tr.Type)) {
		return 0, fmt.Errorf("unknown transaction type %q: %w", tr.Type, domain.ErrValidation)
	}
	if tr.PaymentStatus == "" {
		tr.PaymentStatus = PaymentCompleted
	}
	if !ValidPaymentStatus(string(tr.PaymentStatus)) {
		return 0, fmt.Errorf("unknown payment status %q: %w", tr.PaymentStatus, domain.ErrValidation)
	}
	if tr.FinalPrice < 0 {
		return 0, fmt.Errorf("negative final price: %w", domain.ErrValidation)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	var rate int64
	err = tx.QueryRow("SELECT commission_rate FROM Agents WHERE agent_id = ?", tr.AgentID).Scan(&rate)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("agent %d: %w", tr.AgentID, domain.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("reading commission rate: %w", err)
	}
	commission := commissionFor(tr.FinalPrice, rate)

	result, err := tx.Exec(
		`INSERT INTO Transactions (
			property_id, client_id, agent_id, transaction_type, transaction_date,
			final_price, commission_amount, payment_status, lease_start_date, lease_end_date, notes
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tr.PropertyID, tr.ClientID, tr.AgentID, string(tr.Type), tr.Date,
		tr.FinalPrice, commission, string(tr.PaymentStatus), tr.LeaseStartDate, tr.LeaseEndDate, tr.Notes,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}
	transactionID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting transaction id: %w", err)
	}

	newStatus := "sold"
	if tr.Type == TypeRental {
		newStatus = "rented"
	}
	if _, err = tx.Exec(
		"UPDATE Properties SET status = ?, sold_date = ?, updated_at = CURRENT_TIMESTAMP WHERE property_id = ?",
		newStatus, tr.Date, tr.PropertyID,
	); err != nil {
		return 0, fmt.Errorf("updating property status: %w", err)
	}

	if _, err = tx.Exec(
		"UPDATE Agents SET total_sales = total_sales + 1 WHERE agent_id = ?",
		tr.AgentID,
	); err != nil {
		return 0, fmt.Errorf("updating agent sales count: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing transaction: %w", err)
	}
	return transactionID, nil
}

// commissionFor computes the commission in cents from a price in cents and
// a rate in hundredths of a percent, rounding half up to the cent. Integer
// arithmetic keeps results exact where float math would drift.
func commissionFor(priceCents, rate int64) int64 {
	return (priceCents*rate + 5000) / 10000
}

const summaryQuery = `
	SELECT t.transaction_id, t.transaction_type, t.transaction_date,
	       t.final_price, t.commission_amount, t.payment_status,
	       t.property_id, p.title AS property_title,
	       t.client_id, cu.first_name AS client_first_name, cu.last_name AS client_last_name,
	       t.agent_id, au.first_name AS agent_first_name, au.last_name AS agent_last_name
	FROM Transactions t
	JOIN Properties p ON t.property_id = p.property_id
	JOIN Clients c ON t.client_id = c.client_id
	JOIN Users cu ON c.user_id = cu.user_id
	JOIN Agents ag ON t.agent_id = ag.agent_id
	JOIN Users au ON ag.user_id = au.user_id`

// ByAgent returns an agent's transactions, most recent first.
func (r *Repository) ByAgent(agentID int64) ([]*Summary, error) {
	return r.listSummaries(summaryQuery+" WHERE t.agent_id = ? ORDER BY t.transaction_date DESC", agentID)
}

// ByClient returns a client's transactions, most recent first.
func (r *Repository) ByClient(clientID int64) ([]*Summary, error) {
	return r.listSummaries(summaryQuery+" WHERE t.client_id = ? ORDER BY t.transaction_date DESC", clientID)
}

// All returns every transaction, most recent first. Admin listing.
func (r *Repository) All() ([]*Summary, error) {
	return r.listSummaries(summaryQuery + " ORDER BY t.transaction_date DESC")
}

func (r *Repository) listSummaries(query string, args ...interface{}) (summaries []*Summary, err error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var s Summary
		var transactionType, paymentStatus string
		if err := rows.Scan(
			&s.ID, &transactionType, &s.Date,
			&s.FinalPrice, &s.CommissionAmount, &paymentStatus,
			&s.PropertyID, &s.PropertyTitle,
			&s.ClientID, &s.ClientFirstName, &s.ClientLastName,
			&s.AgentID, &s.AgentFirstName, &s.AgentLastName,
		); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		s.Type = Type(transactionType)
		s.PaymentStatus = PaymentStatus(paymentStatus)
		summaries = append(summaries, &s)
	}

	return summaries, rows.Err()
}

// GetByID returns a single transaction with the property address and both
// parties' contact fields.
func (r *Repository) GetByID(id int64) (*Detail, error) {
	var d Detail
	var transactionType, paymentStatus string
	var leaseStart, leaseEnd sql.NullTime
	err := r.db.QueryRow(
		`SELECT t.transaction_id, t.property_id, t.client_id, t.agent_id,
		        t.transaction_type, t.transaction_date, t.final_price, t.commission_amount,
		        t.payment_status, t.lease_start_date, t.lease_end_date, t.notes, t.created_at,
		        p.title AS property_title, l.street_address, l.city, l.state, l.zip_code,
		        cu.first_name AS client_first_name, cu.last_name AS client_last_name, cu.email AS client_email,
		        ag.agency_name,
		        au.first_name AS agent_first_name, au.last_name AS agent_last_name, au.email AS agent_email
		 FROM Transactions t
		 JOIN Properties p ON t.property_id = p.property_id
		 JOIN Locations l ON p.location_id = l.location_id
		 JOIN Clients c ON t.client_id = c.client_id
		 JOIN Users cu ON c.user_id = cu.user_id
		 JOIN Agents ag ON t.agent_id = ag.agent_id
		 JOIN Users au ON ag.user_id = au.user_id
		 WHERE t.transaction_id = ?`,
		id,
	).Scan(
		&d.ID, &d.PropertyID, &d.ClientID, &d.AgentID,
		&transactionType, &d.Date, &d.FinalPrice, &d.CommissionAmount,
		&paymentStatus, &leaseStart, &leaseEnd, &d.Notes, &d.CreatedAt,
		&d.PropertyTitle, &d.StreetAddress, &d.City, &d.State, &d.ZipCode,
		&d.ClientFirstName, &d.ClientLastName, &d.ClientEmail,
		&d.AgencyName,
		&d.AgentFirstName, &d.AgentLastName, &d.AgentEmail,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("transaction %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying transaction %d: %w", id, err)
	}

	d.Type = Type(transactionType)
	d.PaymentStatus = PaymentStatus(paymentStatus)
	if leaseStart.Valid {
		d.LeaseStartDate = &leaseStart.Time
	}
	if leaseEnd.Valid {
		d.LeaseEndDate = &leaseEnd.Time
	}
	return &d, nil
}

// TotalCommission sums an agent's commissions over completed transactions,
// in cents.
func (r *Repository) TotalCommission(agentID int64) (int64, error) {
	var total int64
	err := r.db.QueryRow(
		`SELECT COALESCE(SUM(commission_amount), 0)
		 FROM Transactions
		 WHERE agent_id = ? AND payment_status = 'completed'`,
		agentID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("summing commissions: %w", err)
	}
	return total, nil
}

// rollbackOnError rolls the transaction back when the surrounding function
// is returning an error, preserving the original failure.
func rollbackOnError(tx *sql.Tx, err *error) {
	if *err == nil {
		return
	}
	if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
		*err = fmt.Errorf("%w (also failed to roll back: %v)", *err, rbErr)
	}
}
