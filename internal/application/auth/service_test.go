package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/waveshop/waveshop/internal/domain/user"
	"github.com/waveshop/waveshop/internal/infrastructure/id"
	"github.com/waveshop/waveshop/internal/infrastructure/memory"
	"github.com/waveshop/waveshop/internal/infrastructure/token"
)

type fixture struct {
	users *memory.UserRepository
	svc   *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	users := memory.NewUserRepository()
	return &fixture{
		users: users,
		svc:   NewService(users, token.NewJWT("test-secret"), id.NewUUIDGenerator(), nil),
	}
}

func (f *fixture) register(t *testing.T, email string) *user.User {
	t.Helper()
	u, err := f.svc.Register(context.Background(), RegisterInput{
		Email:    email,
		Password: "secret123",
		Name:     "Jimi",
		Lastname: "Hendrix",
	})
	require.NoError(t, err)
	return u
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "1234", Name: "A", Lastname: "B"})
	assert.ErrorIs(t, err, ErrInvalidInput, "short password is rejected")

	_, err = f.svc.Register(ctx, RegisterInput{Password: "secret123", Name: "A", Lastname: "B"})
	assert.ErrorIs(t, err, ErrInvalidInput)

	f.register(t, "a@example.com")
	_, err = f.svc.Register(ctx, RegisterInput{Email: "a@example.com", Password: "secret123", Name: "A", Lastname: "B"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)
}

func TestRegisterHashesPassword(t *testing.T) {
	f := newFixture(t)
	u := f.register(t, "a@example.com")
	assert.NotEqual(t, "secret123", u.PasswordHash)
	assert.Equal(t, user.RoleCustomer, u.Role, "new accounts are customers")
}

func TestLoginAndResolve(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	registered := f.register(t, "a@example.com")

	session, err := f.svc.Login(ctx, "a@example.com", "secret123")
	require.NoError(t, err)
	require.NotEmpty(t, session)

	ident, err := f.svc.Resolve(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, ident.UserID)
	assert.Equal(t, "a@example.com", ident.Email)
	assert.False(t, ident.IsAdmin())
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "a@example.com")

	_, err := f.svc.Login(ctx, "a@example.com", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = f.svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredential, "unknown email answers the same as a wrong password")
}

func TestLogoutRevokesSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "a@example.com")

	session, err := f.svc.Login(ctx, "a@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, u.ID))

	_, err = f.svc.Resolve(ctx, session)
	assert.ErrorIs(t, err, ErrInvalidCredential, "a revoked token fails even with a valid signature")
}

func TestLoginInvalidatesPreviousSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "a@example.com")

	first, err := f.svc.Login(ctx, "a@example.com", "secret123")
	require.NoError(t, err)
	second, err := f.svc.Login(ctx, "a@example.com", "secret123")
	require.NoError(t, err)

	_, err = f.svc.Resolve(ctx, second)
	require.NoError(t, err)
	if first != second {
		_, err = f.svc.Resolve(ctx, first)
		assert.ErrorIs(t, err, ErrInvalidCredential, "only the newest session survives")
	}
}

func TestResolveRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.svc.Resolve(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidCredential)

	_, err = f.svc.Resolve(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestRequireAdmin(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.svc.RequireAdmin(nil), ErrNotAdmin)
	assert.ErrorIs(t, f.svc.RequireAdmin(&AuthenticatedUser{Role: user.RoleCustomer}), ErrNotAdmin)
	assert.NoError(t, f.svc.RequireAdmin(&AuthenticatedUser{Role: user.RoleAdmin}))
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "a@example.com")
	u2 := f.register(t, "b@example.com")

	_, err := f.svc.UpdateProfile(ctx, u2.ID, ProfileUpdate{Email: "a@example.com"})
	assert.ErrorIs(t, err, user.ErrEmailTaken)

	updated, err := f.svc.UpdateProfile(ctx, u2.ID, ProfileUpdate{Name: "Stevie"})
	require.NoError(t, err)
	assert.Equal(t, "Stevie", updated.Name)
	assert.Equal(t, "b@example.com", updated.Email, "blank fields keep their value")
}

func TestPasswordResetFlow(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "a@example.com")

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "a@example.com"))

	stored, err := f.users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.ResetToken)

	require.NoError(t, f.svc.ResetPassword(ctx, stored.ResetToken, "new-secret"))

	_, err = f.svc.Login(ctx, "a@example.com", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredential, "the old password stops working")

	_, err = f.svc.Login(ctx, "a@example.com", "new-secret")
	assert.NoError(t, err)

	// The token is single use.
	err = f.svc.ResetPassword(ctx, stored.ResetToken, "another-one")
	assert.ErrorIs(t, err, ErrInvalidCredential)
}

func TestPasswordResetRevokesSession(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	u := f.register(t, "a@example.com")

	session, err := f.svc.Login(ctx, "a@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, f.svc.RequestPasswordReset(ctx, "a@example.com"))
	stored, err := f.users.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NoError(t, f.svc.ResetPassword(ctx, stored.ResetToken, "new-secret"))

	_, err = f.svc.Resolve(ctx, session)
	assert.ErrorIs(t, err, ErrInvalidCredential, "a reset forces a fresh login")
}

func TestPasswordResetExpiry(t *testing.T) {
	ctx := context.Background()

	issuedAt := time.Date(2024, time.March, 10, 15, 0, 0, 0, time.UTC)
	users := memory.NewUserRepository()
	tokens := token.NewJWTAt("test-secret", func() time.Time { return issuedAt })
	svc := NewService(users, tokens, id.NewUUIDGenerator(), nil)

	u, err := svc.Register(ctx, RegisterInput{
		Email: "a@example.com", Password: "secret123", Name: "Jimi", Lastname: "Hendrix",
	})
	require.NoError(t, err)
	require.NoError(t, svc.RequestPasswordReset(ctx, "a@example.com"))

	stored, err := users.FindByID(ctx, u.ID)
	require.NoError(t, err)

	// Still valid at the very end of the following day.
	svc.WithClock(func() time.Time {
		return time.Date(2024, time.March, 11, 23, 0, 0, 0, time.UTC)
	})
	require.NoError(t, svc.ResetPassword(ctx, stored.ResetToken, "new-secret"))

	// Re-issue and jump past the deadline.
	require.NoError(t, svc.RequestPasswordReset(ctx, "a@example.com"))
	stored, err = users.FindByID(ctx, u.ID)
	require.NoError(t, err)

	svc.WithClock(func() time.Time {
		return time.Date(2024, time.March, 12, 0, 0, 1, 0, time.UTC)
	})
	err = svc.ResetPassword(ctx, stored.ResetToken, "too-late")
	assert.ErrorIs(t, err, ErrResetExpired)
}

func TestResetExpiredWhenUnknownEmail(t *testing.T) {
	f := newFixture(t)
	err := f.svc.RequestPasswordReset(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)
}
