package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Biskuitttt/Suratt/internal/dependencies/clock"
	"github.com/Biskuitttt/Suratt/internal/model"
)

// Errors
var (
	ErrInvalidSession    = errors.New("invalid or expired session")
	ErrInvalidDebugToken = errors.New("invalid debug token")
	ErrDebugDisabled     = errors.New("debug access disabled")
)

// Session binds a visitor who passed the gate to their resolved identity
type Session struct {
	Token     string
	Identity  model.ResolvedIdentity
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Service handles visitor sessions and debug access
type Service struct {
	clock  clock.Clock
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session

	sessionDuration time.Duration
	debugTokenHash  []byte
}

// Config holds configuration for the auth service
type Config struct {
	SessionDuration time.Duration
	// DebugTokenHash is a bcrypt hash; empty disables debug access
	DebugTokenHash string
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		SessionDuration: 24 * time.Hour,
	}
}

// New creates a new AuthService
func New(clock clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.SessionDuration == 0 {
		cfg.SessionDuration = DefaultConfig().SessionDuration
	}
	return &Service{
		clock:           clock,
		logger:          logger.With(slog.String("component", "auth-service")),
		sessions:        make(map[string]*Session),
		sessionDuration: cfg.SessionDuration,
		debugTokenHash:  []byte(cfg.DebugTokenHash),
	}
}

// HashDebugToken produces a hash suitable for Config.DebugTokenHash
func HashDebugToken(token string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckDebugToken verifies a bearer token for the debug endpoints
func (s *Service) CheckDebugToken(token string) error {
	if len(s.debugTokenHash) == 0 {
		return ErrDebugDisabled
	}
	if token == "" {
		return ErrInvalidDebugToken
	}
	if err := bcrypt.CompareHashAndPassword(s.debugTokenHash, []byte(token)); err != nil {
		s.logger.Warn("debug token rejected")
		return ErrInvalidDebugToken
	}
	return nil
}

// CreateSession opens a session for a visitor who passed the gate
func (s *Service) CreateSession(identity model.ResolvedIdentity) *Session {
	token := s.generateID("sess_")
	now := s.clock.Now()

	session := &Session{
		Token:     token,
		Identity:  identity,
		CreatedAt: now,
		ExpiresAt: now.Add(s.sessionDuration),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return session
}

// ValidateSession checks if a session token is valid and returns the session
func (s *Service) ValidateSession(token string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrInvalidSession
	}

	if s.clock.Now().After(session.ExpiresAt) {
		s.mu.Lock()
		delete(s.sessions, token)
		s.mu.Unlock()
		return nil, ErrInvalidSession
	}

	return session, nil
}

// InvalidateSession removes a session
func (s *Service) InvalidateSession(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// generateID generates a random ID with a prefix
func (s *Service) generateID(prefix string) string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return prefix + base64.RawURLEncoding.EncodeToString(b)
}

// CleanExpiredSessions removes expired sessions (call periodically)
func (s *Service) CleanExpiredSessions() int {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, session := range s.sessions {
		if now.After(session.ExpiresAt) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}
