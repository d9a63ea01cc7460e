package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestIssueVerify(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	tests := []struct {
		name    string
		userID  int64
		isAdmin bool
	}{
		{name: "regular user", userID: 1, isAdmin: false},
		{name: "admin", userID: 42, isAdmin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := m.Issue(tt.userID, tt.isAdmin)
			require.NoError(t, err)

			claims, err := m.Verify(token)
			require.NoError(t, err)
			assert.Equal(t, tt.userID, claims.UserID)
			assert.Equal(t, tt.isAdmin, claims.IsAdmin)
			require.NotNil(t, claims.ExpiresAt)
			assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
		})
	}
}

func TestVerify_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-25 * time.Hour)
	issuer := NewTokenManager(testSecret, 24*time.Hour).WithClock(func() time.Time { return issuedAt })

	token, err := issuer.Issue(1, false)
	require.NoError(t, err)

	claims, err := NewTokenManager(testSecret, 24*time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.Nil(t, claims)
}

func TestVerify_ValidUntilTTL(t *testing.T) {
	issuedAt := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewTokenManager(testSecret, 24*time.Hour).WithClock(func() time.Time { return issuedAt })
	token, err := m.Issue(3, false)
	require.NoError(t, err)

	_, err = m.WithClock(func() time.Time { return issuedAt.Add(23 * time.Hour) }).Verify(token)
	assert.NoError(t, err)

	_, err = m.WithClock(func() time.Time { return issuedAt.Add(25 * time.Hour) }).Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestVerify_Malformed(t *testing.T) {
	m := NewTokenManager(testSecret, time.Hour)

	foreign, err := NewTokenManager("other-secret", time.Hour).Issue(1, true)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"user_id": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "garbage", token: "invalid.token.here"},
		{name: "empty", token: ""},
		{name: "wrong secret", token: foreign},
		{name: "missing exp", token: noExp},
		{name: "alg none", token: unsigned},
		{name: "unexpected algorithm", token: hs512},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := m.Verify(tt.token)
			assert.ErrorIs(t, err, ErrTokenMalformed)
			assert.Nil(t, claims)
		})
	}
}

func TestExtractBearer(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "absent", header: "", wantErr: ErrMissingCredential},
		{name: "basic scheme", header: "Basic dXNlcjpwdw==", wantErr: ErrTokenMalformed},
		{name: "prefix only", header: "Bearer ", wantErr: ErrTokenMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearer(tt.header)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
