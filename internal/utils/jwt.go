package utils // package utils provides helper functions for token creation and hashing

import (
	"time" // time utilities for generating expirations

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AdminToken represents a signed JWT handed to the admin client after a
// successful login. The Token field contains the JWT string; Exp stores
// the expiration timestamp. The token proves who the bearer is, while
// the session guard separately decides whether the session is still
// alive, so the two expire on the same schedule.
type AdminToken struct {
	Token string    // the serialized JWT string
	Exp   time.Time // the UTC expiration time
}

// NewAdminToken builds and signs an HS256 JWT for the admin. It takes the
// signing secret, the admin email and a TTL in hours, and returns an
// AdminToken with the signed string and its expiry. Claims: subject
// (sub), role, expiration (exp) and issued at (iat).
func NewAdminToken(secret, email string, ttlHours int) (AdminToken, error) {
	exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
	claims := jwt.MapClaims{
		"sub":  email,
		"role": "ADMIN",
		"exp":  exp.Unix(),
		"iat":  time.Now().UTC().Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AdminToken{}, err
	}
	return AdminToken{Token: signed, Exp: exp}, nil
}
