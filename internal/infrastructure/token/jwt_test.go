package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	j := NewJWT("secret")

	signed, err := j.IssueSession("user-1")
	require.NoError(t, err)

	userID, err := j.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	signed, err := NewJWT("secret-a").IssueSession("user-1")
	require.NoError(t, err)

	_, err = NewJWT("secret-b").Verify(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	j := NewJWT("secret")

	_, err := j.Verify("")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = j.Verify("header.payload.signature")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestIssueResetExpiry(t *testing.T) {
	issuedAt := time.Date(2024, time.March, 10, 15, 42, 0, 0, time.UTC)
	j := NewJWTAt("secret", func() time.Time { return issuedAt })

	signed, exp, err := j.IssueReset("user-1")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	// Valid until the end of the day after issuance, regardless of the
	// time of day it was requested.
	wantDeadline := time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond)
	assert.Equal(t, wantDeadline, exp)

	userID, err := j.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}
