package authenticator

import (
	"errors"
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/valyala/fasthttp"

	"github.com/adilsaaly/trackport/internal/config"
	"github.com/adilsaaly/trackport/internal/services/user"
)

// CookieName is the session cookie carrying the signed token.
const CookieName = "AUTH_TOKEN"

// TokenTTL is the fixed validity window for issued session tokens.
const TokenTTL = 30 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing session token")
)

// Claims is the payload embedded in every session token. Verification is
// isolated behind VerifyToken so a storage-backed session store could be
// substituted without touching callers.
type Claims struct {
	Email string    `json:"email"`
	Role  user.Role `json:"role"`
	jwt.RegisteredClaims
}

type Authenticator struct {
	secret []byte
}

func New(conf *config.Config) *Authenticator {
	return &Authenticator{secret: []byte(conf.JWT_SECRET)}
}

// GenerateToken issues a signed session token embedding the user's email and
// role with the fixed 30-day expiry.
func (a *Authenticator) GenerateToken(email string, role user.Role) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// VerifyToken validates the signature and expiry and returns the embedded
// claims. Any failure means "not authenticated"; callers must not treat it
// as fatal to the request pipeline.
func (a *Authenticator) VerifyToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// RequireRole reports whether the session role is inside the allowed set.
func (a *Authenticator) RequireRole(claims *Claims, allowed ...user.Role) error {
	if claims == nil {
		return ErrMissingToken
	}
	if !slices.Contains(allowed, claims.Role) {
		return errors.New("role not permitted for this resource")
	}
	return nil
}

// SetSessionCookie attaches the token as an http-only, secure, strict
// same-site cookie with the token's validity window.
func SetSessionCookie(ctx *fasthttp.RequestCtx, token string) {
	var cookie fasthttp.Cookie
	cookie.SetKey(CookieName)
	cookie.SetValue(token)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetSecure(true)
	cookie.SetSameSite(fasthttp.CookieSameSiteStrictMode)
	cookie.SetMaxAge(int(TokenTTL.Seconds()))
	ctx.Response.Header.SetCookie(&cookie)
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(ctx *fasthttp.RequestCtx) {
	var cookie fasthttp.Cookie
	cookie.SetKey(CookieName)
	cookie.SetValue("")
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetExpire(time.Now().Add(-1 * time.Hour))
	ctx.Response.Header.SetCookie(&cookie)
}
