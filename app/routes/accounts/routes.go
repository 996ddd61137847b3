package accounts

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
)

func SetupAccountsRoutes(app *fiber.App) {
	accounts := app.Group("/api/accounts")

	// Public routes
	accounts.Post("/login/", LoginAPI)
	accounts.Post("/logout/", LogoutAPI)
	accounts.Post("/password-reset-request/", PasswordResetRequestAPI)
	accounts.Post("/password-reset-confirm/", PasswordResetConfirmAPI)

	// Protected routes
	accounts.Post("/create-user/", AuthMiddleware, RoleMiddleware(models.RoleAdmin), CreateUserAPI)
}

// AuthMiddleware validates the JWT and sets the current user on the context.
// The user is always passed down explicitly via c.Locals("user"), never read
// from package state.
func AuthMiddleware(c *fiber.Ctx) error {
	var tokenString string

	// First try cookie
	tokenString = c.Cookies("jwt_token")

	// If no cookie, try Authorization header
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid token"})
	}

	user := &models.User{
		ID:        claims.UserID,
		Email:     claims.Email,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Role:      claims.Role,
		IsActive:  true,
	}

	c.Locals("user_id", user.ID)
	c.Locals("user", user)

	return c.Next()
}

// RoleMiddleware rejects callers whose role is not in allowedRoles.
func RoleMiddleware(allowedRoles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals("user").(*models.User)

		for _, allowed := range allowedRoles {
			if user.Role == allowed {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}

// CurrentUser pulls the authenticated user set by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	return c.Locals("user").(*models.User)
}
