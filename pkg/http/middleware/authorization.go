package middleware

import (
	"errors"
	"strings"

	"github.com/go-arcade/authcenter/pkg/http"
	"github.com/go-arcade/authcenter/pkg/http/jwt"
	"github.com/go-arcade/authcenter/pkg/log"
	"github.com/gofiber/fiber/v2"
	goJwt "github.com/golang-jwt/jwt/v5"
)

// ClaimsKey is the fiber locals key holding the parsed principal claims.
const ClaimsKey = "claims"

// AuthorizationMiddleware validates the bearer token and stores the
// principal identity in request locals. Credentials themselves are never
// re-verified here; the token is trusted once its signature checks out.
func AuthorizationMiddleware(secretKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		aToken := c.Get("Authorization")
		if aToken == "" {
			return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
		}

		parts := strings.SplitN(aToken, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return http.WithRepErrMsg(c, http.TokenBeEmpty.Code, http.TokenBeEmpty.Msg, c.Path())
		}

		claims, err := jwt.ParseToken(parts[1], secretKey)
		if err != nil {
			if errors.Is(err, goJwt.ErrTokenExpired) {
				return http.WithRepErrMsg(c, http.TokenExpired.Code, http.TokenExpired.Msg, c.Path())
			}
			log.Errorf("parse token failed: %v", err)
			return http.WithRepErrMsg(c, http.InvalidToken.Code, http.InvalidToken.Msg, c.Path())
		}

		c.Locals(ClaimsKey, claims)
		return c.Next()
	}
}
