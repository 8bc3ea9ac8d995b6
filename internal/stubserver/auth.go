package stubserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const claimsKey = "claims"

type accessClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// issueToken signs a short-lived HS256 access token for the given account.
func issueToken(secret, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "rekatrack-stub",
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// bearerAuth validates the Authorization header and stores the parsed
// claims on the context. Missing, malformed and expired tokens all yield
// the same 401 so clients cannot probe token state.
func bearerAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			claims := &accessClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthenticated")
			}

			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

// claimsFrom retrieves the authenticated claims set by bearerAuth.
func claimsFrom(c echo.Context) (*accessClaims, bool) {
	claims, ok := c.Get(claimsKey).(*accessClaims)
	return claims, ok
}
