package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/clientwatch-team/clientwatch/pkg/jwt"
)

// EchoAuth returns an Echo middleware that validates the bearer token and
// sets "user_id" (uuid.UUID), "user_email" and "user_pod" into Echo context
func EchoAuth(jwtManager *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing authorization token")
			}

			claims, err := jwtManager.ValidateAccessToken(token)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set("user_id", claims.UserID)
			c.Set("user_email", claims.Email)
			c.Set("user_pod", claims.Pod)

			return next(c)
		}
	}
}

func extractToken(c echo.Context) string {
	// Authorization header first
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	// cookie as fallback
	if cookie, err := c.Cookie("access_token"); err == nil {
		return cookie.Value
	}

	return ""
}
