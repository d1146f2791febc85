package domain

import "github.com/golang-jwt/jwt/v5"

// AccessClaims is the payload carried by an access token. Only the
// user id matters to the backend; role and everything else are looked
// up fresh from the users table on every request, so a token never
// outlives a role change.
type AccessClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}
