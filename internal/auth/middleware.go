package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

const cookieName = "access_token"

// Identity resolves the caller from a bearer token or the access_token
// cookie and stores user_id and username in locals. Anonymous and
// invalid-token requests pass through with no identity set; whether that
// matters is decided by RequireLogin or RequireUser downstream.
func Identity(secret string) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		token := bearerFromHeader(c.Get("Authorization"))
		if token == "" {
			token = c.Cookies(cookieName)
		}
		if token == "" {
			return c.Next()
		}

		claims, err := parseToken(secretBytes, token)
		if err != nil {
			return c.Next()
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("username", claims.Username)
		return c.Next()
	}
}

// RequireLogin guards browser-shaped pages: anonymous callers are redirected
// to the login page with the original path in the next parameter.
func RequireLogin(loginURL string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return c.Redirect(loginURL+"?next="+c.Path(), fiber.StatusFound)
		}
		return c.Next()
	}
}

// RequireUser guards API-shaped endpoints: anonymous callers get 401.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		return c.Next()
	}
}

func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals("user_id").(string)
	return id
}

func Username(c *fiber.Ctx) string {
	name, _ := c.Locals("username").(string)
	return name
}

func bearerFromHeader(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}
