package db

import (
	"database/sql"
	"fmt"
)

// migrations is an ordered list of SQL statements to run.
//
// Money columns (price, budget, final_price, commission_amount) hold integer
// cents. Agents.commission_rate holds hundredths of a percent (300 = 3.00%)
// so commission math stays exact.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS Users (
		user_id       INTEGER PRIMARY KEY AUTOINCREMENT,
		email         TEXT    NOT NULL UNIQUE,
		password_hash TEXT    NOT NULL,
		first_name    TEXT    NOT NULL,
		last_name     TEXT    NOT NULL,
		phone         TEXT    NOT NULL DEFAULT '',
		user_type     TEXT    NOT NULL CHECK (user_type IN ('client', 'agent', 'admin')),
		is_active     INTEGER NOT NULL DEFAULT 1,
		last_login    DATETIME,
		created_at    DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at    DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS Agents (
		agent_id         INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id          INTEGER NOT NULL UNIQUE REFERENCES Users(user_id),
		license_number   TEXT    NOT NULL,
		agency_name      TEXT    NOT NULL DEFAULT '',
		commission_rate  INTEGER NOT NULL DEFAULT 300,
		specialization   TEXT    NOT NULL DEFAULT '',
		years_experience INTEGER NOT NULL DEFAULT 0,
		total_sales      INTEGER NOT NULL DEFAULT 0,
		rating           REAL    NOT NULL DEFAULT 0,
		created_at       DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS Clients (
		client_id                INTEGER PRIMARY KEY AUTOINCREMENT,
		user_id                  INTEGER NOT NULL UNIQUE REFERENCES Users(user_id),
		preferred_contact_method TEXT    NOT NULL DEFAULT 'email',
		budget_min               INTEGER,
		budget_max               INTEGER,
		preferred_location       TEXT    NOT NULL DEFAULT '',
		looking_for              TEXT    NOT NULL CHECK (looking_for IN ('buy', 'rent', 'sell')),
		created_at               DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS Locations (
		location_id    INTEGER PRIMARY KEY AUTOINCREMENT,
		street_address TEXT NOT NULL,
		city           TEXT NOT NULL,
		state          TEXT NOT NULL,
		zip_code       TEXT NOT NULL,
		country        TEXT NOT NULL DEFAULT 'USA'
	)`,
	`CREATE TABLE IF NOT EXISTS PropertyTypes (
		property_type_id INTEGER PRIMARY KEY AUTOINCREMENT,
		type_name        TEXT NOT NULL UNIQUE,
		description      TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS Properties (
		property_id      INTEGER PRIMARY KEY AUTOINCREMENT,
		location_id      INTEGER NOT NULL REFERENCES Locations(location_id),
		property_type_id INTEGER NOT NULL REFERENCES PropertyTypes(property_type_id),
		agent_id         INTEGER NOT NULL REFERENCES Agents(agent_id),
		title            TEXT    NOT NULL,
		description      TEXT    NOT NULL DEFAULT '',
		price            INTEGER NOT NULL,
		listing_type     TEXT    NOT NULL CHECK (listing_type IN ('sale', 'rent')),
		bedrooms         INTEGER NOT NULL DEFAULT 0,
		bathrooms        REAL    NOT NULL DEFAULT 0,
		square_feet      INTEGER,
		lot_size         REAL,
		year_built       INTEGER,
		status           TEXT    NOT NULL DEFAULT 'available'
			CHECK (status IN ('available', 'pending', 'sold', 'rented', 'off_market')),
		listed_date      DATE    NOT NULL,
		sold_date        DATE,
		parking_spaces   INTEGER NOT NULL DEFAULT 0,
		has_garage       INTEGER NOT NULL DEFAULT 0,
		has_pool         INTEGER NOT NULL DEFAULT 0,
		has_garden       INTEGER NOT NULL DEFAULT 0,
		created_at       DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at       DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS Appointments (
		appointment_id   INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id      INTEGER NOT NULL REFERENCES Properties(property_id),
		client_id        INTEGER NOT NULL REFERENCES Clients(client_id),
		agent_id         INTEGER NOT NULL REFERENCES Agents(agent_id),
		appointment_date DATETIME NOT NULL,
		duration_minutes INTEGER  NOT NULL DEFAULT 30,
		status           TEXT     NOT NULL DEFAULT 'scheduled'
			CHECK (status IN ('scheduled', 'completed', 'cancelled', 'no_show')),
		notes            TEXT     NOT NULL DEFAULT '',
		created_at       DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at       DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS Transactions (
		transaction_id    INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id       INTEGER NOT NULL REFERENCES Properties(property_id),
		client_id         INTEGER NOT NULL REFERENCES Clients(client_id),
		agent_id          INTEGER NOT NULL REFERENCES Agents(agent_id),
		transaction_type  TEXT    NOT NULL CHECK (transaction_type IN ('sale', 'rental')),
		transaction_date  DATE    NOT NULL,
		final_price       INTEGER NOT NULL,
		commission_amount INTEGER NOT NULL,
		payment_status    TEXT    NOT NULL DEFAULT 'completed',
		lease_start_date  DATE,
		lease_end_date    DATE,
		notes             TEXT    NOT NULL DEFAULT '',
		created_at        DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS Reviews (
		review_id   INTEGER PRIMARY KEY AUTOINCREMENT,
		client_id   INTEGER NOT NULL REFERENCES Clients(client_id),
		property_id INTEGER NOT NULL REFERENCES Properties(property_id),
		agent_id    INTEGER NOT NULL REFERENCES Agents(agent_id),
		rating      INTEGER NOT NULL CHECK (rating >= 1 AND rating <= 5),
		review_text TEXT    NOT NULL DEFAULT '',
		review_date DATETIME DEFAULT CURRENT_TIMESTAMP,
		is_verified INTEGER NOT NULL DEFAULT 0,
		UNIQUE (client_id, property_id)
	)`,
	`CREATE TABLE IF NOT EXISTS PropertyImages (
		image_id      INTEGER PRIMARY KEY AUTOINCREMENT,
		property_id   INTEGER NOT NULL REFERENCES Properties(property_id) ON DELETE CASCADE,
		image_url     TEXT    NOT NULL,
		caption       TEXT    NOT NULL DEFAULT '',
		is_primary    INTEGER NOT NULL DEFAULT 0,
		display_order INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS Sessions (
		id         TEXT     PRIMARY KEY,
		user_id    INTEGER  NOT NULL,
		email      TEXT     NOT NULL,
		first_name TEXT     NOT NULL DEFAULT '',
		last_name  TEXT     NOT NULL DEFAULT '',
		user_type  TEXT     NOT NULL,
		expires_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
}

// propertyTypeSeeds are the catalog rows the listing forms select from.
var propertyTypeSeeds = []struct {
	name, description string
}{
	{"House", "Single-family detached home"},
	{"Apartment", "Unit in a multi-family building"},
	{"Condo", "Individually owned unit with shared facilities"},
	{"Townhouse", "Multi-floor home sharing walls with neighbors"},
	{"Land", "Undeveloped lot"},
	{"Commercial", "Office, retail, or industrial space"},
}

// Migrate runs all migrations in order and seeds the property type catalog.
func Migrate(db *sql.DB) error {
	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}

	for _, seed := range propertyTypeSeeds {
		if _, err := db.Exec(
			"INSERT OR IGNORE INTO PropertyTypes (type_name, description) VALUES (?, ?)",
			seed.name, seed.description,
		); err != nil {
			return fmt.Errorf("seeding property type %s: %w", seed.name, err)
		}
	}

	return nil
}
