package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAccessToken_Claims(t *testing.T) {
	secret := "test-secret"
	at, err := NewAccessToken(secret, 42, 7, "RECEPTIONIST", 15)
	require.NoError(t, err)
	require.NotEmpty(t, at.Token)

	tok, err := jwt.Parse(at.Token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, tok.Valid)

	claims, ok := tok.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(42), claims["sub"])
	assert.Equal(t, float64(7), claims["hotel"])
	assert.Equal(t, "RECEPTIONIST", claims["role"])
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), at.Exp, 5*time.Second)
}

func TestNewRefreshToken_HashStable(t *testing.T) {
	rt, err := NewRefreshToken(30)
	require.NoError(t, err)
	assert.Len(t, rt.Raw, 96) // 48 random bytes hex-encoded

	h1 := HashRefreshRaw(rt.Raw)
	h2 := HashRefreshRaw(rt.Raw)
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, rt.Raw, h1)
	assert.Len(t, h1, 64)
}

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("front-desk-123", 4)
	require.NoError(t, err)
	assert.True(t, VerifyPassword(hash, "front-desk-123"))
	assert.False(t, VerifyPassword(hash, "front-desk-124"))
}

func TestNewReservationCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := NewReservationCode()
		require.NoError(t, err)
		require.True(t, strings.HasPrefix(code, "RES-"))
		require.Len(t, code, 10)
		assert.NotContains(t, code[4:], "0")
		assert.NotContains(t, code[4:], "O")
		seen[code] = true
	}
	// 32^6 possibilities; 50 draws colliding would indicate broken randomness
	assert.Greater(t, len(seen), 45)
}

func TestNewInvoiceNumber(t *testing.T) {
	assert.Equal(t, "INV-000007", NewInvoiceNumber(7))
	assert.Equal(t, "INV-001042", NewInvoiceNumber(1042))
}
