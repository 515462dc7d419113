package services

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"drivedash/metrics"
	"drivedash/models"
	"drivedash/utils"

	"go.uber.org/zap"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// AuthService holds the current session. It never obtains credentials
// itself; a token arrives from the environment, the token file or SignIn.
type AuthService struct {
	mu        sync.RWMutex
	token     string
	user      models.User
	tokenFile string
	now       func() time.Time
}

// NewAuthService starts a session from token, or from tokenFile when token
// is empty. A missing file means signed out.
func NewAuthService(token, tokenFile string) *AuthService {
	s := &AuthService{tokenFile: tokenFile, now: time.Now}

	if token == "" && tokenFile != "" {
		data, err := os.ReadFile(tokenFile)
		if err == nil {
			token = strings.TrimSpace(string(data))
		} else if !errors.Is(err, os.ErrNotExist) {
			utils.LogWarning("could not read token file", zap.String("path", tokenFile), zap.Error(err))
		}
	}

	if token != "" {
		s.setToken(token)
	}
	return s
}

func (s *AuthService) setToken(token string) {
	user, err := utils.ParseSessionToken(token)
	if err != nil {
		// Opaque tokens are passed through; identity and expiry are unknown.
		utils.LogDebug("session token is not a JWT", zap.Error(err))
		user = models.User{}
	}

	s.mu.Lock()
	s.token = token
	s.user = user
	s.mu.Unlock()

	metrics.SetSessionValid(!utils.SessionExpired(user, s.now()))
}

// Token returns the bearer token, or "" when signed out or expired.
func (s *AuthService) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || utils.SessionExpired(s.user, s.now()) {
		return ""
	}
	return s.token
}

// LoggedIn reports whether a usable session is held.
func (s *AuthService) LoggedIn() bool {
	return s.Token() != ""
}

// Expired reports whether a session is held whose token has expired.
func (s *AuthService) Expired() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && utils.SessionExpired(s.user, s.now())
}

// CurrentUser returns the identity in the session token.
func (s *AuthService) CurrentUser() (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return models.User{}, utils.ErrNotLoggedIn
	}
	if utils.SessionExpired(s.user, s.now()) {
		return s.user, ErrInvalidToken
	}
	return s.user, nil
}

// SignIn replaces the session and persists the token to the token file.
func (s *AuthService) SignIn(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return ErrInvalidToken
	}
	if user, err := utils.ParseSessionToken(token); err == nil && utils.SessionExpired(user, s.now()) {
		return ErrInvalidToken
	}

	s.setToken(token)

	if s.tokenFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.tokenFile), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	if err := os.WriteFile(s.tokenFile, []byte(token+"\n"), 0o600); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// SignOut drops the session and removes the saved token.
func (s *AuthService) SignOut() error {
	s.mu.Lock()
	s.token = ""
	s.user = models.User{}
	s.mu.Unlock()

	metrics.SetSessionValid(false)

	if s.tokenFile == "" {
		return nil
	}
	if err := os.Remove(s.tokenFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	utils.LogInfo("signed out")
	return nil
}
