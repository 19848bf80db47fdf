package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
)

const testSecret = "test-secret"

func identityApp() *fiber.App {
	app := fiber.New()
	app.Use(Identity(testSecret))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": UserID(c), "username": Username(c)})
	})
	app.Get("/page", RequireLogin("/auth/login"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/api", RequireUser(), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestIdentityFromBearer(t *testing.T) {
	token, err := SignToken(testSecret, "user-1", "hanson", time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	app := identityApp()
	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with bearer token, got %v %v", resp.StatusCode, err)
	}
}

func TestIdentityFromCookie(t *testing.T) {
	token, err := SignToken(testSecret, "user-1", "hanson", time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	app := identityApp()
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.AddCookie(&http.Cookie{Name: cookieName, Value: token})
	resp, err := app.Test(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with cookie token, got %v %v", resp.StatusCode, err)
	}
}

func TestRequireLoginRedirectsAnonymous(t *testing.T) {
	app := identityApp()
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected redirect, got %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/auth/login?next=/page" {
		t.Fatalf("unexpected redirect location %q", loc)
	}
}

func TestRequireUserRejectsAnonymous(t *testing.T) {
	app := identityApp()
	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestInvalidTokenIsAnonymous(t *testing.T) {
	app := identityApp()
	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for invalid token, got %d", resp.StatusCode)
	}
}

func TestExpiredTokenIsAnonymous(t *testing.T) {
	token, err := SignToken(testSecret, "user-1", "hanson", -time.Minute)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	app := identityApp()
	req := httptest.NewRequest(http.MethodGet, "/page", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("test request: %v", err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("expected login redirect for expired token, got %d", resp.StatusCode)
	}
}

func TestBearerFromHeader(t *testing.T) {
	if got := bearerFromHeader("Bearer abc"); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
	if got := bearerFromHeader("Basic abc"); got != "" {
		t.Fatalf("expected empty for basic auth, got %q", got)
	}
	if got := bearerFromHeader(""); got != "" {
		t.Fatalf("expected empty for missing header, got %q", got)
	}
}
