package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/Biskuitttt/Suratt/internal/dependencies/mocks"
	"github.com/Biskuitttt/Suratt/internal/model"
	"github.com/Biskuitttt/Suratt/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	clock   *mocks.MockClock
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2024, 7, 18, 12, 0, 0, 0, time.UTC))
	s.service = New(s.clock, DefaultConfig(), testutil.NopLogger())
}

func (s *ServiceSuite) identity(name string) model.ResolvedIdentity {
	return model.ResolvedIdentity{Input: name, Key: name, CanonicalName: name, DisplayName: name, Found: true}
}

// Session tests

func (s *ServiceSuite) TestCreateSessionSucceeds() {
	session := s.service.CreateSession(s.identity("Kevin"))

	s.NotEmpty(session.Token)
	s.Contains(session.Token, "sess_")
	s.Equal("Kevin", session.Identity.DisplayName)
	s.Equal(s.clock.Now().Add(24*time.Hour), session.ExpiresAt)
}

func (s *ServiceSuite) TestSessionTokensAreUnique() {
	a := s.service.CreateSession(s.identity("Kevin"))
	b := s.service.CreateSession(s.identity("Kevin"))
	s.NotEqual(a.Token, b.Token)
}

func (s *ServiceSuite) TestValidateSession() {
	session := s.service.CreateSession(s.identity("Kevin"))

	validated, err := s.service.ValidateSession(session.Token)
	s.Require().NoError(err)
	s.Equal(session.Identity, validated.Identity)
}

func (s *ServiceSuite) TestValidateSessionUnknownToken() {
	_, err := s.service.ValidateSession("sess_unknown")
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionExpired() {
	session := s.service.CreateSession(s.identity("Kevin"))

	s.clock.Advance(25 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestValidateSessionAtExactExpiry() {
	session := s.service.CreateSession(s.identity("Kevin"))

	s.clock.Advance(24 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestInvalidateSession() {
	session := s.service.CreateSession(s.identity("Kevin"))

	s.service.InvalidateSession(session.Token)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

func (s *ServiceSuite) TestCleanExpiredSessions() {
	old := s.service.CreateSession(s.identity("Kevin"))
	s.clock.Advance(20 * time.Hour)
	fresh := s.service.CreateSession(s.identity("Angeline"))
	s.clock.Advance(5 * time.Hour)

	s.Equal(1, s.service.CleanExpiredSessions())

	_, err := s.service.ValidateSession(old.Token)
	s.ErrorIs(err, ErrInvalidSession)
	_, err = s.service.ValidateSession(fresh.Token)
	s.NoError(err)
}

func (s *ServiceSuite) TestCustomSessionDuration() {
	s.service = New(s.clock, Config{SessionDuration: time.Hour}, testutil.NopLogger())
	session := s.service.CreateSession(s.identity("Kevin"))

	s.clock.Advance(2 * time.Hour)

	_, err := s.service.ValidateSession(session.Token)
	s.ErrorIs(err, ErrInvalidSession)
}

// Debug token tests

func (s *ServiceSuite) TestDebugDisabledWithoutHash() {
	s.ErrorIs(s.service.CheckDebugToken("anything"), ErrDebugDisabled)
}

func (s *ServiceSuite) TestCheckDebugToken() {
	hash, err := bcrypt.GenerateFromPassword([]byte("letmein"), bcrypt.MinCost)
	s.Require().NoError(err)
	s.service = New(s.clock, Config{DebugTokenHash: string(hash)}, testutil.NopLogger())

	s.NoError(s.service.CheckDebugToken("letmein"))
	s.ErrorIs(s.service.CheckDebugToken("wrong"), ErrInvalidDebugToken)
	s.ErrorIs(s.service.CheckDebugToken(""), ErrInvalidDebugToken)
}

func (s *ServiceSuite) TestHashDebugTokenRoundTrip() {
	hash, err := HashDebugToken("letmein")
	s.Require().NoError(err)
	s.service = New(s.clock, Config{DebugTokenHash: hash}, testutil.NopLogger())

	s.NoError(s.service.CheckDebugToken("letmein"))
}
