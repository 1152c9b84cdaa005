// Package analytics computes the admin dashboard snapshot.
package analytics

import (
	"database/sql"
	"fmt"
)

// GroupCount is one row of a grouped property count.
type GroupCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

// Snapshot is the dashboard summary. AveragePriceCents is fractional
// because it averages integer cents; zero when nothing is available.
type Snapshot struct {
	TotalProperties     int64        `json:"total_properties"`
	AvailableProperties int64        `json:"available_properties"`
	SoldProperties      int64        `json:"sold_properties"`
	AveragePriceCents   float64      `json:"average_price_cents"`
	ByType              []GroupCount `json:"properties_by_type"`
	ByCity              []GroupCount `json:"properties_by_city"`
}

// Repository computes analytics over the listing tables.
type Repository struct {
	db *sql.DB
}

// NewRepository creates an analytics repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Snapshot runs the dashboard sub-queries. Each is independent; the counts
// are not required to be mutually consistent under concurrent writes.
func (r *Repository) Snapshot() (*Snapshot, error) {
	var s Snapshot

	if err := r.db.QueryRow("SELECT COUNT(*) FROM Properties").Scan(&s.TotalProperties); err != nil {
		return nil, fmt.Errorf("counting properties: %w", err)
	}
	if err := r.db.QueryRow(
		"SELECT COUNT(*) FROM Properties WHERE status = 'available'",
	).Scan(&s.AvailableProperties); err != nil {
		return nil, fmt.Errorf("counting available properties: %w", err)
	}
	if err := r.db.QueryRow(
		"SELECT COUNT(*) FROM Properties WHERE status = 'sold'",
	).Scan(&s.SoldProperties); err != nil {
		return nil, fmt.Errorf("counting sold properties: %w", err)
	}
	if err := r.db.QueryRow(
		"SELECT COALESCE(AVG(price), 0) FROM Properties WHERE status = 'available'",
	).Scan(&s.AveragePriceCents); err != nil {
		return nil, fmt.Errorf("averaging available prices: %w", err)
	}

	byType, err := r.groupCounts(
		`SELECT pt.type_name, COUNT(*) AS count
		 FROM Properties p
		 JOIN PropertyTypes pt ON p.property_type_id = pt.property_type_id
		 GROUP BY pt.type_name
		 ORDER BY count DESC`)
	if err != nil {
		return nil, fmt.Errorf("grouping by type: %w", err)
	}
	s.ByType = byType

	byCity, err := r.groupCounts(
		`SELECT l.city, COUNT(*) AS count
		 FROM Properties p
		 JOIN Locations l ON p.location_id = l.location_id
		 GROUP BY l.city
		 ORDER BY count DESC
		 LIMIT 10`)
	if err != nil {
		return nil, fmt.Errorf("grouping by city: %w", err)
	}
	s.ByCity = byCity

	return &s, nil
}

func (r *Repository) groupCounts(query string) (counts []GroupCount, err error) {
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var gc GroupCount
		if err := rows.Scan(&gc.Label, &gc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, gc)
	}

	return counts, rows.Err()
}
