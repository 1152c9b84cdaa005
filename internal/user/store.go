package user

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/hearthway/realty/internal/auth"
	"github.com/hearthway/realty/internal/domain"
)

// Store provides account operations over the Users table.
type Store struct {
	db *sql.DB
}

// NewStore creates a user store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Create registers a new user and returns its id. The password is hashed
// before it touches storage. Returns domain.ErrDuplicateEmail when the email
// is already taken; the UNIQUE constraint on Users.email is authoritative
// even when two registrations race past the Exists pre-check.
func (s *Store) Create(email, password, firstName, lastName, phone string, role auth.Role) (int64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return 0, fmt.Errorf("email and password are required: %w", domain.ErrValidation)
	}
	if !auth.ValidRole(string(role)) {
		return 0, fmt.Errorf("unknown role %q: %w", role, domain.ErrValidation)
	}

	taken, err := s.Exists(email)
	if err != nil {
		return 0, err
	}
	if taken {
		return 0, domain.ErrDuplicateEmail
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return 0, fmt.Errorf("hashing password: %w", err)
	}

	result, err := s.db.Exec(
		`INSERT INTO Users (email, password_hash, first_name, last_name, phone, user_type)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		email, hash, firstName, lastName, phone, string(role),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") {
			return 0, domain.ErrDuplicateEmail
		}
		return 0, fmt.Errorf("inserting user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting user id: %w", err)
	}

	return id, nil
}

// Authenticate verifies an email/password pair against the active account.
//
// Every failure mode (unknown email, inactive account, wrong password)
// returns domain.ErrInvalidCredentials so callers cannot tell them apart.
// On success last_login is updated and the user record returned.
func (s *Store) Authenticate(email, password string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u User
	var role string
	err := s.db.QueryRow(
		`SELECT user_id, email, password_hash, first_name, last_name, phone, user_type, is_active, last_login, created_at
		 FROM Users WHERE email = ? AND is_active = 1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &role, &u.IsActive, &u.LastLogin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}

	if !auth.VerifyPassword(u.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	if _, err := s.db.Exec("UPDATE Users SET last_login = ? WHERE user_id = ?", now, u.ID); err != nil {
		return nil, fmt.Errorf("updating last login: %w", err)
	}
	u.LastLogin = &now
	u.Role = auth.Role(role)

	return &u, nil
}

// GetByID returns a user by id, without the password hash.
func (s *Store) GetByID(id int64) (*User, error) {
	var u User
	var role string
	err := s.db.QueryRow(
		`SELECT user_id, email, first_name, last_name, phone, user_type, is_active, last_login, created_at
		 FROM Users WHERE user_id = ?`,
		id,
	).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &role, &u.IsActive, &u.LastLogin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying user %d: %w", id, err)
	}

	u.Role = auth.Role(role)
	return &u, nil
}

// GetByEmail returns a user by email, without the password hash.
func (s *Store) GetByEmail(email string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var u User
	var role string
	err := s.db.QueryRow(
		`SELECT user_id, email, first_name, last_name, phone, user_type, is_active, last_login, created_at
		 FROM Users WHERE email = ?`,
		email,
	).Scan(&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.Phone, &role, &u.IsActive, &u.LastLogin, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("querying user %s: %w", email, err)
	}

	u.Role = auth.Role(role)
	return &u, nil
}

// Exists reports whether an account with this email exists.
func (s *Store) Exists(email string) (bool, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM Users WHERE email = ?",
		strings.ToLower(strings.TrimSpace(email)),
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking email: %w", err)
	}
	return count > 0, nil
}
