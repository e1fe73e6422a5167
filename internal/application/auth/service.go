package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	domoutbox "github.com/waveshop/waveshop/internal/domain/outbox"
	"github.com/waveshop/waveshop/internal/domain/user"
	"github.com/waveshop/waveshop/internal/pkg/logging"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredential covers a missing, malformed, or revoked session
	// credential, and a login with a wrong password or unknown email. The
	// caller cannot distinguish which, on purpose.
	ErrInvalidCredential = errors.New("auth: invalid credential")
	ErrNotAdmin          = errors.New("auth: admin role required")
	ErrResetExpired      = errors.New("auth: reset token expired")
	ErrInvalidInput      = errors.New("auth: invalid input")
)

// TokenIssuer mints and verifies the signed credentials stored on users.
type TokenIssuer interface {
	IssueSession(userID string) (string, error)
	IssueReset(userID string) (string, time.Time, error)
	Verify(token string) (userID string, err error)
}

type IDGenerator interface {
	NewID() string
}

// AuthenticatedUser is the explicit identity produced by Resolve and
// threaded into handlers; nothing downstream re-reads the credential.
type AuthenticatedUser struct {
	UserID   string
	Email    string
	Name     string
	Lastname string
	Role     user.Role
	Cart     []user.CartEntry
	History  []user.HistoryEntry
}

func (a *AuthenticatedUser) IsAdmin() bool { return a.Role == user.RoleAdmin }

type Service struct {
	users  user.Repository
	tokens TokenIssuer
	ids    IDGenerator
	bus    domoutbox.Publisher
	now    func() time.Time
}

func NewService(users user.Repository, tokens TokenIssuer, ids IDGenerator, bus domoutbox.Publisher) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		ids:    ids,
		bus:    bus,
		now:    time.Now,
	}
}

// WithClock pins the service clock for expiry tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

type RegisterInput struct {
	Email    string
	Password string
	Name     string
	Lastname string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*user.User, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "auth_service"))

	if in.Email == "" || in.Name == "" || in.Lastname == "" {
		return nil, fmt.Errorf("%w: email, name and lastname are required", ErrInvalidInput)
	}
	if len(in.Password) < 5 {
		return nil, fmt.Errorf("%w: password must be at least 5 characters", ErrInvalidInput)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash password: %w", err)
	}

	u, err := user.New(s.ids.NewID(), in.Email, string(hash), in.Name, in.Lastname)
	if err != nil {
		return nil, err
	}
	if err := s.users.Insert(ctx, u); err != nil {
		return nil, err
	}

	s.publish(ctx, user.NewRegisteredEvent(u))
	logger.Info("user_registered", zap.String("user_id", u.ID))
	return u, nil
}

// Login verifies the password, mints a fresh session credential and
// stores it on the user. Storing overwrites any previous credential, so
// only the newest session stays valid.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	logger := logging.FromContext(ctx).With(zap.String("component", "auth_service"))

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredential
		}
		return "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", ErrInvalidCredential
	}

	session, err := s.tokens.IssueSession(u.ID)
	if err != nil {
		return "", fmt.Errorf("auth: issue session: %w", err)
	}
	if err := s.users.SetSessionToken(ctx, u.ID, session); err != nil {
		return "", err
	}

	logger.Info("user_logged_in", zap.String("user_id", u.ID))
	return session, nil
}

// Logout clears the stored session credential, revoking it everywhere.
func (s *Service) Logout(ctx context.Context, userID string) error {
	return s.users.SetSessionToken(ctx, userID, "")
}

// Resolve validates a session credential: signature, referenced user,
// and that the stored token still matches (logout revokes by clearing
// it). Every mutating cart/order operation passes through here first.
func (s *Service) Resolve(ctx context.Context, credential string) (*AuthenticatedUser, error) {
	if credential == "" {
		return nil, ErrInvalidCredential
	}
	userID, err := s.tokens.Verify(credential)
	if err != nil {
		return nil, ErrInvalidCredential
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrInvalidCredential
	}
	if u.SessionToken == "" || u.SessionToken != credential {
		return nil, ErrInvalidCredential
	}

	return &AuthenticatedUser{
		UserID:   u.ID,
		Email:    u.Email,
		Name:     u.Name,
		Lastname: u.Lastname,
		Role:     u.Role,
		Cart:     u.Cart,
		History:  u.History,
	}, nil
}

// RequireAdmin gates administrative operations.
func (s *Service) RequireAdmin(ident *AuthenticatedUser) error {
	if ident == nil || !ident.IsAdmin() {
		return ErrNotAdmin
	}
	return nil
}

type ProfileUpdate struct {
	Email    string
	Name     string
	Lastname string
}

// UpdateProfile changes identity fields, rejecting an email another user
// already owns.
func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*user.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Lastname != "" {
		u.Lastname = in.Lastname
	}
	u.Touch()
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// RequestPasswordReset issues a reset credential valid until the end of
// the day following issuance and emits the reset mail event.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) error {
	logger := logging.FromContext(ctx).With(zap.String("component", "auth_service"))

	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	reset, exp, err := s.tokens.IssueReset(u.ID)
	if err != nil {
		return fmt.Errorf("auth: issue reset token: %w", err)
	}
	if err := s.users.SetResetToken(ctx, u.ID, reset, exp); err != nil {
		return err
	}

	s.publish(ctx, user.NewResetRequestedEvent(u, reset))
	logger.Info("password_reset_requested", zap.String("user_id", u.ID))
	return nil
}

// ResetPassword redeems a reset credential. Expiry is checked at use
// time against the stored deadline.
func (s *Service) ResetPassword(ctx context.Context, credential, newPassword string) error {
	if len(newPassword) < 5 {
		return fmt.Errorf("%w: password must be at least 5 characters", ErrInvalidInput)
	}
	userID, err := s.tokens.Verify(credential)
	if err != nil {
		return ErrInvalidCredential
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return ErrInvalidCredential
	}
	if u.ResetToken == "" || u.ResetToken != credential {
		return ErrInvalidCredential
	}
	if s.now().UTC().After(u.ResetTokenExp) {
		return ErrResetExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	u.ResetToken = ""
	u.ResetTokenExp = time.Time{}
	u.SessionToken = "" // force a fresh login after reset
	u.Touch()
	return s.users.Update(ctx, u)
}

func (s *Service) publish(ctx context.Context, e domoutbox.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed",
			zap.String("event", e.EventName()),
			zap.Error(err),
		)
	}
}
