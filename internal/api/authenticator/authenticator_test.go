package authenticator

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adilsaaly/trackport/internal/config"
	"github.com/adilsaaly/trackport/internal/services/user"
)

func newTestAuthenticator(secret string) *Authenticator {
	return New(&config.Config{JWT_SECRET: secret})
}

func TestTokenRoundTrip(t *testing.T) {
	a := newTestAuthenticator("test-secret")

	token, err := a.GenerateToken("jo@example.com", user.RoleSoftwareEngineer)
	require.NoError(t, err)

	claims, err := a.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jo@example.com", claims.Email)
	assert.Equal(t, user.RoleSoftwareEngineer, claims.Role)
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	a := newTestAuthenticator("right-secret")
	token, err := a.GenerateToken("jo@example.com", user.RoleAdmin)
	require.NoError(t, err)

	other := newTestAuthenticator("wrong-secret")
	_, err = other.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenExpired(t *testing.T) {
	a := newTestAuthenticator("secret")

	now := time.Now().UTC()
	claims := Claims{
		Email: "jo@example.com",
		Role:  user.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = a.VerifyToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenMissing(t *testing.T) {
	a := newTestAuthenticator("secret")

	_, err := a.VerifyToken("")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, err = a.VerifyToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireRole(t *testing.T) {
	a := newTestAuthenticator("secret")
	claims := &Claims{Email: "jo@example.com", Role: user.RoleViewer}

	assert.NoError(t, a.RequireRole(claims, user.RoleViewer, user.RoleAdmin))
	assert.Error(t, a.RequireRole(claims, user.RoleAdmin))
	assert.Error(t, a.RequireRole(nil, user.RoleAdmin))
}
