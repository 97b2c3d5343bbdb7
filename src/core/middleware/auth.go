package middleware

import (
	"OperatorsClub/src/core/config"
	"OperatorsClub/src/core/helpers"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Protected resolves the caller's session before any store access. Tokens are
// verified against the identity provider's shared JWT secret and can arrive
// either as a bearer header (API calls) or as the browser session cookie
// (page-rendered calls).
func Protected() fiber.Handler {
	jwtSecret := config.Config("JWT_SECRET")
	if jwtSecret == "" {
		panic("JWT_SECRET is not set in the environment variables") // Panic to prevent startup
	}

	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(jwtSecret)},
		// Custom TokenLookup resets the default auth scheme, so restate it or
		// the header extractor treats "Bearer <token>" as the token itself
		TokenLookup:  "header:Authorization,cookie:sb-access-token",
		AuthScheme:   "Bearer",
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			// Extract user claims and attach the caller's identity to the context
			user := c.Locals("user").(*jwt.Token)
			claims := user.Claims.(jwt.MapClaims)
			sub, _ := claims["sub"].(string)
			email, _ := claims["email"].(string)
			if sub == "" && email == "" {
				return helpers.HandleError(c, fiber.StatusUnauthorized, "User identity missing in token", nil)
			}
			c.Locals("user_id", sub)
			c.Locals("user_email", email)
			return c.Next()
		},
	})
}

// UserIdentity returns the stable identity a like record is keyed by: the
// email claim when the provider supplies one, otherwise the subject id.
func UserIdentity(c *fiber.Ctx) string {
	if email, ok := c.Locals("user_email").(string); ok && email != "" {
		return email
	}
	if sub, ok := c.Locals("user_id").(string); ok {
		return sub
	}
	return ""
}

// jwtError handles JWT-related errors
func jwtError(c *fiber.Ctx, err error) error {
	return helpers.HandleError(c, fiber.StatusUnauthorized, "Missing or invalid session", err)
}
