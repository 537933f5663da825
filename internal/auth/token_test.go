package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndValidateRoundtrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, exp, err := tm.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	subject, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)
}

func TestValidateRejectsTamperedSignature(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	token, _, err := tm.Issue("alice")
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = tm.Validate(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsWrongKey(t *testing.T) {
	issuer := NewTokenManager("secret-one", time.Hour)
	verifier := NewTokenManager("secret-two", time.Hour)

	token, _, err := issuer.Issue("alice")
	require.NoError(t, err)

	_, err = verifier.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Second)

	token, _, err := tm.Issue("alice")
	require.NoError(t, err)

	time.Sleep(2 * time.Second)

	_, err = tm.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)

	for _, garbage := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Validate(garbage)
		assert.ErrorIs(t, err, ErrInvalidToken, "input %q", garbage)
	}
}
