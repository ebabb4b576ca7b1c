package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const AdminCookieName = "admin_session"

type adminClaims struct {
	Flag string `json:"flag"`
	jwt.RegisteredClaims
}

// AdminCookie issues and checks the long-lived signed admin flag cookie.
type AdminCookie struct {
	secret []byte
	flag   string
	ttl    time.Duration
}

func NewAdminCookie(secret []byte, flag string, ttl time.Duration) *AdminCookie {
	return &AdminCookie{
		secret: secret,
		flag:   flag,
		ttl:    ttl,
	}
}

// TTL is how long an issued cookie stays valid.
func (a *AdminCookie) TTL() time.Duration {
	return a.ttl
}

// Issue signs a cookie value carrying the "logged in" flag.
func (a *AdminCookie) Issue(now time.Time) (string, error) {
	if len(a.secret) == 0 {
		return "", errors.New("admin cookie secret is not configured")
	}
	claims := adminClaims{
		Flag: a.flag,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Valid reports whether value is an unexpired cookie signed with our secret
// whose flag matches. Anything malformed is simply not valid.
func (a *AdminCookie) Valid(value string) bool {
	if value == "" || len(a.secret) == 0 {
		return false
	}
	var claims adminClaims
	token, err := jwt.ParseWithClaims(value, &claims, func(t *jwt.Token) (any, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return false
	}
	return claims.Flag == a.flag
}
