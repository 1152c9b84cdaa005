package property

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/hearthway/realty/internal/domain"
)

// Repository provides listing reads and writes.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a property repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const viewColumns = `
	p.property_id, p.location_id, p.property_type_id, p.agent_id, p.title, p.description,
	p.price, p.listing_type, p.bedrooms, p.bathrooms, p.square_feet, p.lot_size, p.year_built,
	p.status, p.listed_date, p.sold_date, p.parking_spaces, p.has_garage, p.has_pool, p.has_garden,
	l.location_id, l.street_address, l.city, l.state, l.zip_code, l.country,
	pt.type_name,
	a.agency_name, a.rating AS agent_rating,
	u.first_name AS agent_first_name, u.last_name AS agent_last_name,
	u.email AS agent_email, u.phone AS agent_phone`

const viewJoins = `
	FROM Properties p
	JOIN Locations l ON p.location_id = l.location_id
	JOIN PropertyTypes pt ON p.property_type_id = pt.property_type_id
	JOIN Agents a ON p.agent_id = a.agent_id
	JOIN Users u ON a.user_id = u.user_id`

// List returns listings matching the filters, most recently listed first.
// Inner joins mean properties with a broken location/type/agent linkage are
// excluded.
func (r *Repository) List(f Filters) (views []*View, err error) {
	query := "SELECT" + viewColumns + viewJoins
	var conditions []string
	var args []interface{}

	if f.Status != "" {
		conditions = append(conditions, "p.status = ?")
		args = append(args, string(f.Status))
	}
	if f.ListingType != "" {
		conditions = append(conditions, "p.listing_type = ?")
		args = append(args, string(f.ListingType))
	}
	if f.MinPrice != nil {
		conditions = append(conditions, "p.price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		conditions = append(conditions, "p.price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.City != "" {
		conditions = append(conditions, "l.city LIKE ?")
		args = append(args, "%"+f.City+"%")
	}
	if f.MinBedrooms != nil {
		conditions = append(conditions, "p.bedrooms >= ?")
		args = append(args, *f.MinBedrooms)
	}
	if f.PropertyTypeID != nil {
		conditions = append(conditions, "p.property_type_id = ?")
		args = append(args, *f.PropertyTypeID)
	}
	if f.AgentID != nil {
		conditions = append(conditions, "p.agent_id = ?")
		args = append(args, *f.AgentID)
	}
	if f.Search != "" {
		conditions = append(conditions, "(p.title LIKE ? OR p.description LIKE ? OR l.city LIKE ?)")
		term := "%" + f.Search + "%"
		args = append(args, term, term, term)
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY p.listed_date DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing properties: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		v, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning property: %w", err)
		}
		views = append(views, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating properties: %w", err)
	}

	return views, nil
}

// ByAgent returns all of an agent's listings, most recently listed first.
func (r *Repository) ByAgent(agentID int64) ([]*View, error) {
	return r.List(Filters{AgentID: &agentID})
}

// GetByID returns a single property with its full joined detail.
func (r *Repository) GetByID(id int64) (*Detail, error) {
	query := "SELECT" + viewColumns + `,
	pt.description AS type_description,
	a.user_id, a.license_number, a.years_experience, a.total_sales` + viewJoins + `
	WHERE p.property_id = ?`

	var d Detail
	var listingType, status string
	var soldDate sql.NullTime
	err := r.db.QueryRow(query, id).Scan(
		&d.ID, &d.LocationID, &d.PropertyTypeID, &d.AgentID, &d.Title, &d.Description,
		&d.Price, &listingType, &d.Bedrooms, &d.Bathrooms, &d.SquareFeet, &d.LotSize, &d.YearBuilt,
		&status, &d.ListedDate, &soldDate, &d.ParkingSpaces, &d.HasGarage, &d.HasPool, &d.HasGarden,
		&d.Location.ID, &d.Location.StreetAddress, &d.Location.City, &d.Location.State,
		&d.Location.ZipCode, &d.Location.Country,
		&d.TypeName,
		&d.AgencyName, &d.AgentRating,
		&d.AgentFirstName, &d.AgentLastName, &d.AgentEmail, &d.AgentPhone,
		&d.TypeDescription,
		&d.AgentUserID, &d.LicenseNumber, &d.YearsExperience, &d.TotalSales,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("property %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying property %d: %w", id, err)
	}

	d.ListingType = ListingType(listingType)
	d.Status = Status(status)
	if soldDate.Valid {
		d.SoldDate = &soldDate.Time
	}
	return &d, nil
}

// Create inserts a location and its property as one atomic unit and returns
// the new property id. The listing's agent_id is always the agentID passed
// by the caller's own resolved profile, never untrusted input.
func (r *Repository) Create(p Property, loc Location, agentID int64) (propertyID int64, err error) {
	if !ValidListingType(string(p.ListingType)) {
		return 0, fmt.Errorf("unknown listing type %q: %w", p.ListingType, domain.ErrValidation)
	}
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	if !ValidStatus(string(p.Status)) {
		return 0, fmt.Errorf("unknown status %q: %w", p.Status, domain.ErrValidation)
	}
	if loc.Country == "" {
		loc.Country = "USA"
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	result, err := tx.Exec(
		`INSERT INTO Locations (street_address, city, state, zip_code, country)
		 VALUES (?, ?, ?, ?, ?)`,
		loc.StreetAddress, loc.City, loc.State, loc.ZipCode, loc.Country,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting location: %w", err)
	}
	locationID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting location id: %w", err)
	}

	result, err = tx.Exec(
		`INSERT INTO Properties (
			location_id, property_type_id, agent_id, title, description,
			price, listing_type, bedrooms, bathrooms, square_feet, lot_size,
			year_built, status, listed_date, parking_spaces, has_garage, has_pool, has_garden
		 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		locationID, p.PropertyTypeID, agentID, p.Title, p.Description,
		p.Price, string(p.ListingType), p.Bedrooms, p.Bathrooms, p.SquareFeet, p.LotSize,
		p.YearBuilt, string(p.Status), p.ListedDate, p.ParkingSpaces, p.HasGarage, p.HasPool, p.HasGarden,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting property: %w", err)
	}
	propertyID, err = result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting property id: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing property: %w", err)
	}
	return propertyID, nil
}

// Update rewrites a property and its location as one atomic unit and
// returns the number of property rows affected. The existing location_id is
// resolved first; an unknown property id fails with ErrNotFound before any
// write.
func (r *Repository) Update(propertyID int64, p Property, loc Location) (rowsAffected int64, err error) {
	if !ValidListingType(string(p.ListingType)) {
		return 0, fmt.Errorf("unknown listing type %q: %w", p.ListingType, domain.ErrValidation)
	}
	if !ValidStatus(string(p.Status)) {
		return 0, fmt.Errorf("unknown status %q: %w", p.Status, domain.ErrValidation)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer rollbackOnError(tx, &err)

	var locationID int64
	err = tx.QueryRow("SELECT location_id FROM Properties WHERE property_id = ?", propertyID).Scan(&locationID)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("property %d: %w", propertyID, domain.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("resolving location: %w", err)
	}

	if _, err = tx.Exec(
		`UPDATE Locations
		 SET street_address = ?, city = ?, state = ?, zip_code = ?
		 WHERE location_id = ?`,
		loc.StreetAddress, loc.City, loc.State, loc.ZipCode, locationID,
	); err != nil {
		return 0, fmt.Errorf("updating location: %w", err)
	}

	result, err := tx.Exec(
		`UPDATE Properties
		 SET property_type_id = ?, title = ?, description = ?, price = ?,
		     listing_type = ?, bedrooms = ?, bathrooms = ?, square_feet = ?,
		     lot_size = ?, year_built = ?, status = ?, parking_spaces = ?,
		     has_garage = ?, has_pool = ?, has_garden = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE property_id = ?`,
		p.PropertyTypeID, p.Title, p.Description, p.Price,
		string(p.ListingType), p.Bedrooms, p.Bathrooms, p.SquareFeet,
		p.LotSize, p.YearBuilt, string(p.Status), p.ParkingSpaces,
		p.HasGarage, p.HasPool, p.HasGarden, propertyID,
	)
	if err != nil {
		return 0, fmt.Errorf("updating property: %w", err)
	}
	rowsAffected, err = result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing update: %w", err)
	}
	return rowsAffected, nil
}

// Delete removes a property by id. Images cascade; the location row stays
// (it is unreferenced afterwards, matching the source schema's behavior).
func (r *Repository) Delete(id int64) error {
	result, err := r.db.Exec("DELETE FROM Properties WHERE property_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting property: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("property %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Types returns the property type catalog ordered by name.
func (r *Repository) Types() (types []Type, err error) {
	rows, err := r.db.Query(
		"SELECT property_type_id, type_name, description FROM PropertyTypes ORDER BY type_name",
	)
	if err != nil {
		return nil, fmt.Errorf("listing property types: %w", err)
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing rows: %w", closeErr)
		}
	}()

	for rows.Next() {
		var t Type
		if err := rows.Scan(&t.ID, &t.Name, &t.Description); err != nil {
			return nil, fmt.Errorf("scanning property type: %w", err)
		}
		types = append(types, t)
	}

	return types, rows.Err()
}

// scanView scans one joined listing row.
func scanView(row interface{ Scan(...interface{}) error }) (*View, error) {
	var v View
	var listingType, status string
	var soldDate sql.NullTime

	err := row.Scan(
		&v.ID, &v.LocationID, &v.PropertyTypeID, &v.AgentID, &v.Title, &v.Description,
		&v.Price, &listingType, &v.Bedrooms, &v.Bathrooms, &v.SquareFeet, &v.LotSize, &v.YearBuilt,
		&status, &v.ListedDate, &soldDate, &v.ParkingSpaces, &v.HasGarage, &v.HasPool, &v.HasGarden,
		&v.Location.ID, &v.Location.StreetAddress, &v.Location.City, &v.Location.State,
		&v.Location.ZipCode, &v.Location.Country,
		&v.TypeName,
		&v.AgencyName, &v.AgentRating,
		&v.AgentFirstName, &v.AgentLastName, &v.AgentEmail, &v.AgentPhone,
	)
	if err != nil {
		return nil, err
	}

	v.ListingType = ListingType(listingType)
	v.Status = Status(status)
	if soldDate.Valid {
		v.SoldDate = &soldDate.Time
	}
	return &v, nil
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
