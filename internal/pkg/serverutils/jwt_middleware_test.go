package serverutils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGuardedApp() *fiber.App {
	app := fiber.New()
	app.Get("/guarded", JwtMiddleware, func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func signedToken(t *testing.T, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, jwt.MapClaims{
		"user_id": "7c9a1a70-1111-4f7e-9c70-000000000001",
	}).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJwtMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app := newGuardedApp()

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "valid HS256 token",
			authHeader: "Bearer " + signedToken(t, jwt.SigningMethodHS256, []byte("test-secret")),
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "wrong secret",
			authHeader: "Bearer " + signedToken(t, jwt.SigningMethodHS256, []byte("other-secret")),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "unsigned token rejected by method check",
			authHeader: "Bearer " + signedToken(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType),
			wantStatus: fiber.StatusUnauthorized,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: fiber.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/guarded", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			res, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.wantStatus, res.StatusCode)
		})
	}
}
