package appointment

import (
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hearthway/realty/internal/db"
	"github.com/hearthway/realty/internal/domain"
)

func testRepo(t *testing.T) (*Repository, *sql.DB) {
	t.Helper()

	database, err := db.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Errorf("closing test database: %v", err)
		}
	})

	return NewRepository(database), database
}

// seedParticipants inserts a client, an agent, and one of the agent's
// properties directly, returning their ids.
func seedParticipants(t *testing.T, database *sql.DB) (clientID, agentID, propertyID int64) {
	t.Helper()

	exec := func(query string, args ...interface{}) int64 {
		t.Helper()
		result, err := database.Exec(query, args...)
		if err != nil {
			t.Fatalf("seeding: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			t.Fatalf("seed id: %v", err)
		}
		return id
	}

	clientUser := exec(`INSERT INTO Users (email, password_hash, first_name, last_name, user_type)
		VALUES ('client@example.com', 'x', 'Casey', 'Lee', 'client')`)
	agentUser := exec(`INSERT INTO Users (email, password_hash, first_name, last_name, user_type)
		VALUES ('agent@example.com', 'x', 'Dana', 'Reyes', 'agent')`)

	clientID = exec(`INSERT INTO Clients (user_id, looking_for) VALUES (?, 'buy')`, clientUser)
	agentID = exec(`INSERT INTO Agents (user_id, license_number) VALUES (?, 'LIC-1')`, agentUser)

	locationID := exec(`INSERT INTO Locations (street_address, city, state, zip_code)
		VALUES ('123 Main St', 'Springfield', 'IL', '62701')`)
	var typeID int64
	if err := database.QueryRow("SELECT property_type_id FROM PropertyTypes LIMIT 1").Scan(&typeID); err != nil {
		t.Fatalf("seed type: %v", err)
	}
	propertyID = exec(`INSERT INTO Properties (location_id, property_type_id, agent_id, title, price, listing_type, listed_date)
		VALUES (?, ?, ?, 'Sunny Craftsman', 25000000, 'sale', '2025-03-01')`,
		locationID, typeID, agentID)

	return clientID, agentID, propertyID
}

func at(day, hour int) time.Time {
	return time.Date(2025, time.April, day, hour, 0, 0, 0, time.UTC)
}

func TestCreateAndGetByID(t *testing.T) {
	repo, database := testRepo(t)
	clientID, agentID, propertyID := seedParticipants(t, database)

	id, err := repo.Create(propertyID, clientID, agentID, at(10, 14), 45, "bring floor plans")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	a, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if a.Status != StatusScheduled {
		t.Errorf("status = %q, want scheduled", a.Status)
	}
	if a.DurationMinutes != 45 || a.Notes != "bring floor plans" {
		t.Errorf("appointment = %+v", a)
	}
	if a.PropertyID != propertyID || a.ClientID != clientID || a.AgentID != agentID {
		t.Errorf("linkage = %d %d %d", a.PropertyID, a.ClientID, a.AgentID)
	}
}

func TestListingsByParticipant(t *testing.T) {
	repo, database := testRepo(t)
	clientID, agentID, propertyID := seedParticipants(t, database)

	older, err := repo.Create(propertyID, clientID, agentID, at(10, 9), 30, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	newer, err := repo.Create(propertyID, clientID, agentID, at(12, 9), 30, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	byClient, err := repo.ByClient(clientID)
	if err != nil {
		t.Fatalf("by client: %v", err)
	}
	if len(byClient) != 2 {
		t.Fatalf("client listing = %d rows, want 2", len(byClient))
	}
	// Most recent first.
	if byClient[0].ID != newer || byClient[1].ID != older {
		t.Errorf("order = [%d %d]", byClient[0].ID, byClient[1].ID)
	}
	if byClient[0].AgentFirstName != "Dana" || byClient[0].PropertyTitle != "Sunny Craftsman" {
		t.Errorf("summary = %+v", byClient[0])
	}

	byAgent, err := repo.ByAgent(agentID)
	if err != nil {
		t.Fatalf("by agent: %v", err)
	}
	if len(byAgent) != 2 {
		t.Fatalf("agent listing = %d rows, want 2", len(byAgent))
	}
	if byAgent[0].ClientFirstName != "Casey" {
		t.Errorf("client name = %q", byAgent[0].ClientFirstName)
	}

	all, err := repo.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("admin listing = %d rows, want 2", len(all))
	}
}

func TestClientsForProperty(t *testing.T) {
	repo, database := testRepo(t)
	clientID, agentID, propertyID := seedParticipants(t, database)

	exec := func(query string, args ...interface{}) int64 {
		t.Helper()
		result, err := database.Exec(query, args...)
		if err != nil {
			t.Fatalf("seeding: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			t.Fatalf("seed id: %v", err)
		}
		return id
	}

	secondUser := exec(`INSERT INTO Users (email, password_hash, first_name, last_name, user_type)
		VALUES ('second@example.com', 'x', 'Avery', 'Brown', 'client')`)
	secondClient := exec(`INSERT INTO Clients (user_id, looking_for) VALUES (?, 'buy')`, secondUser)

	otherLocation := exec(`INSERT INTO Locations (street_address, city, state, zip_code)
		VALUES ('9 Oak Ave', 'Shelbyville', 'IL', '62565')`)
	var typeID int64
	if err := database.QueryRow("SELECT property_type_id FROM PropertyTypes LIMIT 1").Scan(&typeID); err != nil {
		t.Fatalf("seed type: %v", err)
	}
	otherProperty := exec(`INSERT INTO Properties (location_id, property_type_id, agent_id, title, price, listing_type, listed_date)
		VALUES (?, ?, ?, 'Quiet Ranch', 18000000, 'sale', '2025-03-02')`,
		otherLocation, typeID, agentID)

	// Two showings for the first client collapse to one row; the third
	// client only toured the other property.
	for _, booking := range []struct {
		client, property int64
		day              int
	}{
		{clientID, propertyID, 10},
		{clientID, propertyID, 12},
		{secondClient, propertyID, 14},
		{secondClient, otherProperty, 16},
	} {
		if _, err := repo.Create(booking.property, booking.client, agentID, at(booking.day, 10), 30, ""); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	clients, err := repo.ClientsForProperty(propertyID)
	if err != nil {
		t.Fatalf("clients for property: %v", err)
	}
	if len(clients) != 2 {
		t.Fatalf("clients = %d rows, want 2", len(clients))
	}
	// Ordered by last name.
	if clients[0].LastName != "Brown" || clients[1].LastName != "Lee" {
		t.Errorf("order = [%q %q]", clients[0].LastName, clients[1].LastName)
	}
	if clients[1].ClientID != clientID || clients[1].Email != "client@example.com" {
		t.Errorf("client = %+v", clients[1])
	}

	other, err := repo.ClientsForProperty(otherProperty)
	if err != nil {
		t.Fatalf("clients for property: %v", err)
	}
	if len(other) != 1 || other[0].ClientID != secondClient {
		t.Errorf("other property clients = %+v", other)
	}
}

func TestUpdateStatus(t *testing.T) {
	repo, database := testRepo(t)
	clientID, agentID, propertyID := seedParticipants(t, database)

	id, err := repo.Create(propertyID, clientID, agentID, at(10, 14), 30, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	rows, err := repo.Update(id, StatusCompleted, "went well")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows affected = %d, want 1", rows)
	}

	a, err := repo.GetByID(id)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if a.Status != StatusCompleted || a.Notes != "went well" {
		t.Errorf("appointment = %+v", a)
	}
}

func TestUpdateInvalidStatus(t *testing.T) {
	repo, database := testRepo(t)
	clientID, agentID, propertyID := seedParticipants(t, database)

	id, err := repo.Create(propertyID, clientID, agentID, at(10, 14), 30, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := repo.Update(id, Status("postponed"), ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	repo, _ := testRepo(t)

	if _, err := repo.Update(9999, StatusCancelled, ""); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	repo, database := testRepo(t)
	clientID, agentID, propertyID := seedParticipants(t, database)

	id, err := repo.Create(propertyID, clientID, agentID, at(10, 14), 30, "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := repo.GetByID(id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err after delete = %v, want ErrNotFound", err)
	}
	if err := repo.Delete(id); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete err = %v, want ErrNotFound", err)
	}
}
