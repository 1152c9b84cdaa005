package user

import (
	"errors"
	"testing"

	"github.com/hearthway/realty/internal/auth"
	"github.com/hearthway/realty/internal/domain"
)

func createUser(t *testing.T, store *Store, email string, role auth.Role) int64 {
	t.Helper()

	id, err := store.Create(email, "secret123", "Test", "User", "", role)
	if err != nil {
		t.Fatalf("creating user %s: %v", email, err)
	}
	return id
}

func TestAgentProfileRoundTrip(t *testing.T) {
	store := testStore(t)
	userID := createUser(t, store, "agent@example.com", auth.RoleAgent)

	agentID, err := store.CreateAgentProfile(userID, Agent{
		LicenseNumber:   "LIC-1234",
		AgencyName:      "Hearthway Realty",
		CommissionRate:  325, // 3.25%
		Specialization:  "residential",
		YearsExperience: 8,
	})
	if err != nil {
		t.Fatalf("create agent profile: %v", err)
	}

	a, err := store.GetAgentByUserID(userID)
	if err != nil {
		t.Fatalf("get agent: %v", err)
	}
	if a.ID != agentID {
		t.Errorf("agent id = %d, want %d", a.ID, agentID)
	}
	if a.CommissionRate != 325 {
		t.Errorf("commission rate = %d, want 325", a.CommissionRate)
	}
	if a.TotalSales != 0 {
		t.Errorf("total sales = %d, want 0", a.TotalSales)
	}
	if a.FirstName != "Test" || a.Email != "agent@example.com" {
		t.Errorf("joined user fields = %q %q", a.FirstName, a.Email)
	}
}

func TestAgentProfileRequiresLicense(t *testing.T) {
	store := testStore(t)
	userID := createUser(t, store, "agent@example.com", auth.RoleAgent)

	_, err := store.CreateAgentProfile(userID, Agent{})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestAgentProfileOnePerUser(t *testing.T) {
	store := testStore(t)
	userID := createUser(t, store, "agent@example.com", auth.RoleAgent)

	if _, err := store.CreateAgentProfile(userID, Agent{LicenseNumber: "LIC-1"}); err != nil {
		t.Fatalf("first profile: %v", err)
	}
	if _, err := store.CreateAgentProfile(userID, Agent{LicenseNumber: "LIC-2"}); err == nil {
		t.Fatal("expected error creating second agent profile for same user")
	}
}

func TestClientProfileRoundTrip(t *testing.T) {
	store := testStore(t)
	userID := createUser(t, store, "client@example.com", auth.RoleClient)

	budgetMin := int64(10_000_000) // $100,000
	budgetMax := int64(25_000_000)
	clientID, err := store.CreateClientProfile(userID, Client{
		PreferredContactMethod: "phone",
		BudgetMin:              &budgetMin,
		BudgetMax:              &budgetMax,
		PreferredLocation:      "Springfield",
		LookingFor:             IntentBuy,
	})
	if err != nil {
		t.Fatalf("create client profile: %v", err)
	}

	c, err := store.GetClientByUserID(userID)
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if c.ID != clientID {
		t.Errorf("client id = %d, want %d", c.ID, clientID)
	}
	if c.BudgetMin == nil || *c.BudgetMin != budgetMin {
		t.Errorf("budget min = %v", c.BudgetMin)
	}
	if c.LookingFor != IntentBuy {
		t.Errorf("looking for = %q, want buy", c.LookingFor)
	}
}

func TestClientProfileInvalidIntent(t *testing.T) {
	store := testStore(t)
	userID := createUser(t, store, "client@example.com", auth.RoleClient)

	_, err := store.CreateClientProfile(userID, Client{LookingFor: Intent("browse")})
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestUpdateAgentProfile(t *testing.T) {
	store := testStore(t)
	userID := createUser(t, store, "agent@example.com", auth.RoleAgent)

	agentID, err := store.CreateAgentProfile(userID, Agent{LicenseNumber: "LIC-1", CommissionRate: 300})
	if err != nil {
		t.Fatalf("create profile: %v", err)
	}

	rows, err := store.UpdateAgentProfile(agentID, Agent{
		LicenseNumber:   "LIC-1",
		AgencyName:      "New Agency",
		CommissionRate:  250,
		YearsExperience: 3,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if rows != 1 {
		t.Errorf("rows affected = %d, want 1", rows)
	}

	a, err := store.GetAgentByUserID(userID)
	if err != nil {
		t.Fatalf("get agent: %v", err)
	}
	if a.AgencyName != "New Agency" || a.CommissionRate != 250 {
		t.Errorf("agent after update = %+v", a)
	}
}

func TestUpdateClientProfileNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.UpdateClientProfile(9999, Client{LookingFor: IntentRent})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestGetAgentByUserIDNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.GetAgentByUserID(9999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
