package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "secreto-de-prueba"

func TestGenerateParse_RoundTrip(t *testing.T) {
	tok, err := Generate(secret, 42, "mquispe", "Colaborador", "expedientes-api", 60)
	require.NoError(t, err)

	c, err := Parse(secret, tok)
	require.NoError(t, err)
	assert.Equal(t, int64(42), c.UserID)
	assert.Equal(t, "mquispe", c.Usuario)
	assert.Equal(t, "Colaborador", c.Rol)
	assert.Equal(t, "42", c.Subject)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := Generate(secret, 1, "admin", "Administrador", "x", 60)
	require.NoError(t, err)
	_, err = Parse("otro", tok)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	tok, err := Generate(secret, 1, "admin", "Administrador", "x", -1)
	require.NoError(t, err)
	_, err = Parse(secret, tok)
	assert.ErrorIs(t, err, gojwt.ErrTokenExpired)
}

func TestParse_MetodoNoHMAC(t *testing.T) {
	claims := Claims{
		RegisteredClaims: gojwt.RegisteredClaims{ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           1,
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, claims).SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = Parse(secret, tok)
	assert.Error(t, err)
}

func TestSecretVacio(t *testing.T) {
	_, err := Generate("", 1, "a", "b", "c", 1)
	assert.Error(t, err)
	_, err = Parse("", "x")
	assert.Error(t, err)
}
