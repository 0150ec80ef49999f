package auth

import (
	"crypto/subtle"
	"fmt"
	"time"

	"campusboard/models"
	"campusboard/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Seed admin identity. The email doubles as the idempotency marker the
// bootstrap checks before inserting.
const (
	SeedAdminID    = "admin"
	SeedAdminEmail = "admin@example.com"
)

// ResolvePasswordHash returns the bcrypt hash to verify logins against.
// Deployments should set a precomputed hash; when only a plaintext
// password is configured the hash is derived at startup so plaintext is
// never compared directly.
func ResolvePasswordHash(password, hash string) (string, error) {
	if hash != "" {
		return hash, nil
	}
	derived, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash admin password: %w", err)
	}
	return string(derived), nil
}

// Bootstrap ensures exactly one seed admin identity exists in the record
// store. Safe to run on every startup.
func (s *DefaultAuthService) Bootstrap() error {
	existing, err := s.Repo.FindUsersByField("email", SeedAdminEmail)
	if err != nil {
		return fmt.Errorf("bootstrap: failed to check for seed admin: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}
	if _, err := s.Repo.UpsertUser(models.UpsertUser{
		ID:        SeedAdminID,
		Email:     SeedAdminEmail,
		FirstName: "Admin",
	}); err != nil {
		return fmt.Errorf("bootstrap: failed to seed admin user: %w", err)
	}
	utils.GetLogger().Info("seeded admin user", zap.String("id", SeedAdminID))
	return nil
}

// Login verifies the configured admin credentials and issues a session.
func (s *DefaultAuthService) Login(username, password string) (*Session, string, error) {
	// Evaluate both checks so a failed username costs roughly the same
	// as a failed password.
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.Username)) == 1
	passOK := bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(password)) == nil
	if !userOK || !passOK {
		return nil, "", ErrInvalidCredentials
	}

	admin, err := s.Repo.GetUser(SeedAdminID)
	if err != nil {
		return nil, "", fmt.Errorf("login: failed to load admin user: %w", err)
	}
	if admin == nil {
		utils.GetLogger().Error("seed admin missing from record store; check bootstrap and DB_PATH",
			zap.String("id", SeedAdminID))
		return nil, "", ErrAdminMissing
	}

	now := time.Now()
	session := &Session{
		Token:     uuid.NewString(),
		User:      *admin,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.TTL),
	}
	if err := s.Store.Save(session); err != nil {
		return nil, "", fmt.Errorf("login: failed to save session: %w", err)
	}
	return session, SignToken(session.Token, s.Secret), nil
}

// Logout destroys the session, if any, named by the cookie value.
func (s *DefaultAuthService) Logout(cookieValue string) error {
	token, ok := VerifyToken(cookieValue, s.Secret)
	if !ok {
		return nil
	}
	return s.Store.Delete(token)
}

// CurrentUser resolves the cookie value to the authenticated user.
// Anonymous callers get (nil, nil), never an error.
func (s *DefaultAuthService) CurrentUser(cookieValue string) (*models.User, error) {
	if cookieValue == "" {
		return nil, nil
	}
	token, ok := VerifyToken(cookieValue, s.Secret)
	if !ok {
		return nil, nil
	}
	session, err := s.Store.Get(token)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session: %w", err)
	}
	if session == nil {
		return nil, nil
	}
	usr := session.User
	return &usr, nil
}
