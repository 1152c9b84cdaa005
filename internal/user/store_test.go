package user

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/hearthway/realty/internal/auth"
	"github.com/hearthway/realty/internal/db"
	"github.com/hearthway/realty/internal/domain"
)

func testStore(t *testing.T) *Store {
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

	return NewStore(database)
}

func TestCreateAndGet(t *testing.T) {
	store := testStore(t)

	id, err := store.Create("dana@example.com", "secret123", "Dana", "Reyes", "555-0101", auth.RoleAgent)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if id == 0 {
		t.Fatal("expected non-zero user id")
	}

	u, err := store.GetByID(id)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if u.Email != "dana@example.com" {
		t.Errorf("email = %q", u.Email)
	}
	if u.Role != auth.RoleAgent {
		t.Errorf("role = %q, want agent", u.Role)
	}
	if !u.IsActive {
		t.Error("new user should be active")
	}
	if u.LastLogin != nil {
		t.Error("new user should not have a last login")
	}
	if u.PasswordHash != "" {
		t.Error("GetByID should not return the password hash")
	}
}

func TestCreateNormalizesEmail(t *testing.T) {
	store := testStore(t)

	id, err := store.Create("  Dana@Example.COM ", "secret123", "Dana", "Reyes", "", auth.RoleClient)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	u, err := store.GetByID(id)
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if u.Email != "dana@example.com" {
		t.Errorf("email = %q, want lowercase trimmed", u.Email)
	}
}

func TestCreateDuplicateEmail(t *testing.T) {
	store := testStore(t)

	if _, err := store.Create("dana@example.com", "secret123", "Dana", "Reyes", "", auth.RoleClient); err != nil {
		t.Fatalf("first create: %v", err)
	}

	_, err := store.Create("dana@example.com", "other-pass", "Other", "Person", "", auth.RoleAgent)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Errorf("err = %v, want ErrDuplicateEmail", err)
	}
}

func TestCreateInvalidRole(t *testing.T) {
	store := testStore(t)

	_, err := store.Create("dana@example.com", "secret123", "Dana", "Reyes", "", auth.Role("landlord"))
	if !errors.Is(err, domain.ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestAuthenticate(t *testing.T) {
	store := testStore(t)

	if _, err := store.Create("dana@example.com", "secret123", "Dana", "Reyes", "", auth.RoleClient); err != nil {
		t.Fatalf("create: %v", err)
	}

	u, err := store.Authenticate("dana@example.com", "secret123")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if u.LastLogin == nil {
		t.Error("authenticate should set last login")
	}

	ident := u.Identity()
	if !ident.Authenticated || ident.Role != auth.RoleClient || ident.Email != "dana@example.com" {
		t.Errorf("identity = %+v", ident)
	}
}

// Wrong password, unknown email, and inactive account must be
// indistinguishable to the caller.
func TestAuthenticateUniformFailure(t *testing.T) {
	store := testStore(t)

	id, err := store.Create("dana@example.com", "secret123", "Dana", "Reyes", "", auth.RoleClient)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := store.Authenticate("dana@example.com", "wrong-pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := store.Authenticate("nobody@example.com", "secret123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}

	if _, err := store.db.Exec("UPDATE Users SET is_active = 0 WHERE user_id = ?", id); err != nil {
		t.Fatalf("deactivating user: %v", err)
	}
	if _, err := store.Authenticate("dana@example.com", "secret123"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("inactive account: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestExists(t *testing.T) {
	store := testStore(t)

	taken, err := store.Exists("dana@example.com")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if taken {
		t.Error("email should not exist yet")
	}

	if _, err := store.Create("dana@example.com", "secret123", "Dana", "Reyes", "", auth.RoleClient); err != nil {
		t.Fatalf("create: %v", err)
	}

	taken, err = store.Exists("Dana@Example.com")
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !taken {
		t.Error("email should exist regardless of case")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	store := testStore(t)

	_, err := store.GetByID(9999)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
