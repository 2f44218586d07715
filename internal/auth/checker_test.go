package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 5, 14, 9, 0, 0, 0, time.UTC)

func signed(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func testChecker() *Checker {
	return &Checker{now: func() time.Time { return fixedNow }}
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name    string
		creds   *Credentials
		state   State
		subject string
	}{
		{
			name:  "missing",
			creds: nil,
			state: StateMissing,
		},
		{
			name: "valid",
			creds: &Credentials{AccessToken: signed(t, jwt.RegisteredClaims{
				Subject:   "anna",
				ExpiresAt: jwt.NewNumericDate(fixedNow.Add(time.Hour)),
			})},
			state:   StateValid,
			subject: "anna",
		},
		{
			name: "no expiry",
			creds: &Credentials{AccessToken: signed(t, jwt.RegisteredClaims{
				Subject: "anna",
			})},
			state:   StateValid,
			subject: "anna",
		},
		{
			name: "expired",
			creds: &Credentials{AccessToken: signed(t, jwt.RegisteredClaims{
				Subject:   "anna",
				ExpiresAt: jwt.NewNumericDate(fixedNow.Add(-time.Minute)),
			})},
			state:   StateExpired,
			subject: "anna",
		},
		{
			name:  "garbage",
			creds: &Credentials{AccessToken: "not-a-jwt"},
			state: StateInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := testChecker().Inspect(tt.creds)
			assert.Equal(t, tt.state, status.State)
			assert.Equal(t, tt.subject, status.Subject)
			assert.NotEmpty(t, status.Summary)
		})
	}
}

func TestInspectPrefersStoredUsername(t *testing.T) {
	status := testChecker().Inspect(&Credentials{
		Username:    "anna.k",
		AccessToken: signed(t, jwt.RegisteredClaims{Subject: "42"}),
	})
	assert.Equal(t, "anna.k", status.Username)
	assert.Equal(t, "42", status.Subject)
	assert.Equal(t, "Logged in as anna.k", status.Summary)
}

func TestCheck(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "token.yaml"))

	status, err := testChecker().Check(store)
	require.NoError(t, err)
	assert.Equal(t, StateMissing, status.State)
	assert.Equal(t, store.Path(), status.Path)

	require.NoError(t, store.Save(&Credentials{
		AccessToken: signed(t, jwt.RegisteredClaims{Subject: "anna", ExpiresAt: jwt.NewNumericDate(fixedNow.Add(2 * time.Hour))}),
		Username:    "anna",
	}))
	status, err = testChecker().Check(store)
	require.NoError(t, err)
	assert.Equal(t, StateValid, status.State)
	assert.True(t, fixedNow.Add(2*time.Hour).Equal(status.ExpiresAt))
	assert.Equal(t, "valid", status.State.String())
}
