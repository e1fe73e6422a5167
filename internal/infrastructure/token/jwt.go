package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("token: invalid or malformed token")

// JWT mints and verifies HS256 credentials whose subject is the user id.
// Session and reset tokens carry no embedded expiry: sessions live until
// logout clears the stored copy, and reset expiry is persisted on the
// user and checked at redemption time.
type JWT struct {
	secret []byte
	now    func() time.Time
}

func NewJWT(secret string) *JWT {
	return &JWT{secret: []byte(secret), now: time.Now}
}

// NewJWTAt pins the clock; tests use this to exercise expiry boundaries.
func NewJWTAt(secret string, now func() time.Time) *JWT {
	return &JWT{secret: []byte(secret), now: now}
}

func (j *JWT) IssueSession(userID string) (string, error) {
	return j.sign(userID, "session")
}

// IssueReset returns the reset credential and its expiry: the end of the
// day following issuance.
func (j *JWT) IssueReset(userID string) (string, time.Time, error) {
	signed, err := j.sign(userID, "reset")
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, endOfNextDay(j.now().UTC()), nil
}

// Verify checks the signature and returns the user id the credential
// refers to.
func (j *JWT) Verify(tokenString string) (string, error) {
	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	subject, err := parsed.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrInvalidToken
	}
	return subject, nil
}

func (j *JWT) sign(userID, audience string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:  userID,
		Audience: jwt.ClaimStrings{audience},
		IssuedAt: jwt.NewNumericDate(j.now().UTC()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
}

func endOfNextDay(now time.Time) time.Time {
	startOfToday := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return startOfToday.AddDate(0, 0, 2).Add(-time.Nanosecond)
}
