package services

import (
	"errors"
	"time"

	jwtutil "github.com/Niffb/Livwishlist/pkg/jwt"
	"github.com/sirupsen/logrus"
)

// ErrInvalidPassword is surfaced inline on the login form; there is no
// lockout and the form stays open for retry.
var ErrInvalidPassword = errors.New("incorrect password")

// AuthService is the admin gate: a single shared secret guarding the
// destructive operations. This is a personal single-tenant tool, so there is
// deliberately no hashing, rate limiting or session expiry beyond the token's.
type AuthService struct {
	adminPassword string
	jwtSecret     string
	tokenExpiry   time.Duration
}

func NewAuthService(adminPassword, jwtSecret string, tokenExpiry time.Duration) *AuthService {
	return &AuthService{
		adminPassword: adminPassword,
		jwtSecret:     jwtSecret,
		tokenExpiry:   tokenExpiry,
	}
}

// Login checks the shared secret and mints the session token that persists
// the gated state across reloads.
func (s *AuthService) Login(password string) (string, error) {
	if password != s.adminPassword {
		logrus.Warn("Rejected admin login attempt")
		return "", ErrInvalidPassword
	}

	token, err := jwtutil.GenerateToken("admin", "admin", s.jwtSecret, s.tokenExpiry)
	if err != nil {
		return "", err
	}

	logrus.Info("Admin logged in")
	return token, nil
}
