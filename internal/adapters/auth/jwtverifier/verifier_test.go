package jwtverifier

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, method jwt.SigningMethod, key any, c tokenClaims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, c).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestVerify_ValidToken(t *testing.T) {
	v := New("secret")
	tok := sign(t, jwt.SigningMethodHS256, []byte("secret"), tokenClaims{
		Email: "ana@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	claims, err := v.Verify(context.Background(), tok)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
}

func TestVerify_Rejects(t *testing.T) {
	now := time.Now()
	cases := map[string]struct {
		v     *Verifier
		token string
		want  error
	}{
		"not configured": {v: New(""), token: "x", want: ErrNotConfigured},
		"empty token":    {v: New("secret"), token: "  ", want: ErrTokenEmpty},
		"wrong secret": {v: New("secret"), token: sign(t, jwt.SigningMethodHS256, []byte("other"), tokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u"},
		})},
		"expired": {v: New("secret"), token: sign(t, jwt.SigningMethodHS256, []byte("secret"), tokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u", ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute))},
		})},
		"other alg": {v: New("secret"), token: sign(t, jwt.SigningMethodHS512, []byte("secret"), tokenClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "u"},
		})},
		"missing sub": {v: New("secret"), token: sign(t, jwt.SigningMethodHS256, []byte("secret"), tokenClaims{}), want: ErrMissingUserID},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tc.v.Verify(context.Background(), tc.token)
			require.Error(t, err)
			if tc.want != nil {
				assert.ErrorIs(t, err, tc.want)
			}
		})
	}
}
