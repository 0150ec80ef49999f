package auth

import (
	"time"

	"campusboard/database/repository"
	"campusboard/models"
)

// Session is server-held proof that a client authenticated as the seed
// admin. Expiry is measured from issuance; sessions do not extend on use.
type Session struct {
	Token     string      `json:"token"`
	User      models.User `json:"user"`
	IssuedAt  time.Time   `json:"issuedAt"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Expired reports whether the session is past its TTL.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}

// SessionStore holds live sessions keyed by their opaque token.
// Get returns (nil, nil) for unknown or expired tokens.
type SessionStore interface {
	Save(session *Session) error
	Get(token string) (*Session, error)
	Delete(token string) error
}

// AuthService authenticates the single administrator and resolves the
// identity bound to a session cookie.
type AuthService interface {
	// Bootstrap ensures the seed admin identity exists. Idempotent.
	Bootstrap() error

	// Login verifies credentials and, on success, issues a new session.
	// It returns the session and the signed cookie value to hand to the
	// client. Failures are ErrInvalidCredentials or ErrAdminMissing.
	Login(username, password string) (*Session, string, error)

	// Logout destroys the session named by the cookie value. Unknown or
	// tampered cookies are a no-op.
	Logout(cookieValue string) error

	// CurrentUser resolves the cookie value to the bound user, or
	// (nil, nil) for anonymous, expired, or tampered sessions. It never
	// errors just because the caller is anonymous.
	CurrentUser(cookieValue string) (*models.User, error)
}

// DefaultAuthService is the production implementation.
type DefaultAuthService struct {
	Repo         repository.RecordRepository
	Store        SessionStore
	Username     string
	PasswordHash string
	Secret       string
	TTL          time.Duration
}
