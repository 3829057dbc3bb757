package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpx "github.com/go-arcade/authcenter/pkg/http"
	"github.com/go-arcade/authcenter/pkg/http/jwt"
)

const testSecret = "unit-test-secret"

func newAuthApp() *fiber.App {
	app := fiber.New()
	app.Get("/whoami", AuthorizationMiddleware(testSecret), func(c *fiber.Ctx) error {
		claims := c.Locals(ClaimsKey).(*jwt.AuthClaims)
		return httpx.WithRepJSON(c, fiber.Map{"userId": claims.UserId})
	})
	return app
}

func decodeRep(t *testing.T, app *fiber.App, token string) httpx.Response {
	t.Helper()
	req := httptest.NewRequest("GET", "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var rep httpx.Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rep))
	return rep
}

func TestAuthorizationMiddlewarePassesValidToken(t *testing.T) {
	app := newAuthApp()
	tenantId := int64(5)

	token, err := jwt.GenToken(7, &tenantId, []byte(testSecret), time.Hour)
	require.NoError(t, err)

	rep := decodeRep(t, app, token)
	assert.Equal(t, httpx.Success.Code, rep.Code)
	detail, ok := rep.Detail.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(7), detail["userId"])
}

func TestAuthorizationMiddlewareRejectsMissingToken(t *testing.T) {
	rep := decodeRep(t, newAuthApp(), "")
	assert.Equal(t, httpx.TokenBeEmpty.Code, rep.Code)
}

func TestAuthorizationMiddlewareRejectsExpiredToken(t *testing.T) {
	app := newAuthApp()

	token, err := jwt.GenToken(7, nil, []byte(testSecret), -time.Minute)
	require.NoError(t, err)

	rep := decodeRep(t, app, token)
	assert.Equal(t, httpx.TokenExpired.Code, rep.Code)
}
