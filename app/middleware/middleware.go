package appMiddleware

import (
	"os"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const UserIDKey contextKey = "userID"
const UserScopeKey contextKey = "userScope"

type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Scope    string `json:"scope"`
	jwt.RegisteredClaims
}

// JwtSecretKey returns the HMAC signing secret from the environment.
// Empty means auth is misconfigured; Authenticate rejects all requests
// rather than accepting unsigned tokens.
func JwtSecretKey() []byte {
	return []byte(os.Getenv("JWT_SECRET_KEY"))
}
