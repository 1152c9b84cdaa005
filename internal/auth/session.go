package auth

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"
)

const (
	defaultSessionTTL = 30 * 24 * time.Hour
	cookieName        = "realty_session"
)

// SessionStore manages server-side sessions in SQLite.
//
// Each session row carries the full identity (user id, email, name, role)
// so rebuilding an Identity between requests never queries business tables.
// The cookie holds only an opaque random id.
type SessionStore struct {
	db  *sql.DB
	ttl time.Duration
}

// NewSessionStore creates a session store. A zero ttl uses the default.
func NewSessionStore(db *sql.DB, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionStore{db: db, ttl: ttl}
}

// Create stores a session for the given identity and sets the cookie.
func (s *SessionStore) Create(w http.ResponseWriter, ident Identity) error {
	if !ident.Authenticated {
		return fmt.Errorf("refusing to create session for anonymous identity")
	}

	id, err := generateSessionID()
	if err != nil {
		return fmt.Errorf("generating session ID: %w", err)
	}

	expiresAt := time.Now().Add(s.ttl)

	if _, err := s.db.Exec(
		`INSERT INTO Sessions (id, user_id, email, first_name, last_name, user_type, expires_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, ident.UserID, ident.Email, ident.FirstName, ident.LastName, string(ident.Role), expiresAt,
	); err != nil {
		return fmt.Errorf("storing session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    id,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Validate checks the session cookie and rebuilds the caller's Identity.
// Missing, unknown, or expired sessions yield the anonymous identity with
// a non-nil error.
func (s *SessionStore) Validate(r *http.Request) (Identity, error) {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return Anonymous(), fmt.Errorf("no session cookie")
	}

	var ident Identity
	var role string
	var expiresAt time.Time

	err = s.db.QueryRow(
		`SELECT user_id, email, first_name, last_name, user_type, expires_at
		 FROM Sessions WHERE id = ?`,
		cookie.Value,
	).Scan(&ident.UserID, &ident.Email, &ident.FirstName, &ident.LastName, &role, &expiresAt)
	if err == sql.ErrNoRows {
		return Anonymous(), fmt.Errorf("invalid session")
	}
	if err != nil {
		return Anonymous(), fmt.Errorf("querying session: %w", err)
	}

	if time.Now().After(expiresAt) {
		// Clean up expired session
		if _, delErr := s.db.Exec("DELETE FROM Sessions WHERE id = ?", cookie.Value); delErr != nil {
			return Anonymous(), fmt.Errorf("deleting expired session: %w", delErr)
		}
		return Anonymous(), fmt.Errorf("session expired")
	}

	ident.Role = Role(role)
	ident.Authenticated = true
	return ident, nil
}

// Destroy removes the session and clears the cookie. This is logout: all
// session state goes with it.
func (s *SessionStore) Destroy(w http.ResponseWriter, r *http.Request) error {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil // no session to destroy
	}

	if _, err := s.db.Exec("DELETE FROM Sessions WHERE id = ?", cookie.Value); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Cleanup removes expired sessions.
func (s *SessionStore) Cleanup() (int64, error) {
	result, err := s.db.Exec("DELETE FROM Sessions WHERE expires_at < ?", time.Now())
	if err != nil {
		return 0, fmt.Errorf("cleaning up sessions: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return removed, nil
}

func generateSessionID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
