package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"photoshare/internal/model"
)

func TestIssueAndVerifyRoundtrip(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue(42, model.RoleAdmin)
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	require.Equal(t, int64(42), claims.UserID)
	require.Equal(t, model.RoleAdmin, claims.Role)
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestVerifyExpiredToken(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(7, model.RoleUser)
	require.NoError(t, err)

	_, err = svc.Verify(token)
	require.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestVerifyTamperedSignature(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue(7, model.RoleUser)
	require.NoError(t, err)

	// Flip one character of the signature segment, keeping it valid
	// base64url so the failure is classified as a signature mismatch.
	flipped := byte('A')
	if token[len(token)-1] == 'A' {
		flipped = 'B'
	}
	tampered := token[:len(token)-1] + string(flipped)

	_, err = svc.Verify(tampered)
	require.ErrorIs(t, err, model.ErrTokenSignatureInvalid)
}

func TestVerifyWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewTokenService("right-secret", time.Hour).Issue(7, model.RoleUser)
	require.NoError(t, err)

	_, err = NewTokenService("wrong-secret", time.Hour).Verify(token)
	require.ErrorIs(t, err, model.ErrTokenSignatureInvalid)
}

func TestVerifyMalformedToken(t *testing.T) {
	t.Parallel()

	svc := NewTokenService("test-secret", time.Hour)

	for _, raw := range []string{"", "garbage", "not.a.jwt", strings.Repeat("x", 64)} {
		_, err := svc.Verify(raw)
		require.ErrorIs(t, err, model.ErrTokenMalformed, "input %q", raw)
	}
}
