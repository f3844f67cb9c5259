package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestDecodeJWT(t *testing.T) {
	secret := []byte("secret")

	t.Run("valid token", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
			"id":       "5d6a3f3e-7a5e-4c56-9d6c-2b1f0f3c4b11",
			"username": "leo",
			"exp":      time.Now().Add(time.Hour).Unix(),
		})

		claims, err := DecodeJWT(token, secret)
		require.NoError(t, err)
		assert.Equal(t, "leo", claims["username"])
	})

	t.Run("wrong secret", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{"username": "leo"})

		_, err := DecodeJWT(token, secret)
		assert.Error(t, err)
	})

	t.Run("expired", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodHS256, secret, jwt.MapClaims{
			"username": "leo",
			"exp":      time.Now().Add(-time.Minute).Unix(),
		})

		_, err := DecodeJWT(token, secret)
		assert.Error(t, err)
	})

	t.Run("unsigned", func(t *testing.T) {
		token := sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, jwt.MapClaims{"username": "leo"})

		_, err := DecodeJWT(token, secret)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := DecodeJWT("not-a-token", secret)
		assert.Error(t, err)
	})
}
