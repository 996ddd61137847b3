package accounts

import (
	"database/sql"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/config"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/database"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/logger"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
)

var validate = validator.New()

// CreateUserAPI creates a TEACHER or PARENT account. Student accounts are
// created through student registration, admins through cmd/add_admin.
func CreateUserAPI(c *fiber.Ctx) error {
	type CreateUserRequest struct {
		Email     string `json:"email" validate:"required,email"`
		Password  string `json:"password" validate:"required,min=8"`
		FirstName string `json:"first_name" validate:"required"`
		LastName  string `json:"last_name" validate:"required"`
		Role      string `json:"role" validate:"required"`
	}

	var req CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	role := models.Role(strings.ToUpper(req.Role))
	if role != models.RoleTeacher && role != models.RoleParent {
		return c.Status(400).JSON(fiber.Map{"error": "Role must be one of [TEACHER PARENT]"})
	}

	user := &models.User{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      role,
	}

	if err := database.CreateUser(config.GetDB(), user); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return c.Status(400).JSON(fiber.Map{"error": "A user with this email already exists"})
		}
		logger.Log.Error().Err(err).Msg("failed to create user")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create user"})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "User created successfully",
		"user":    user,
	})
}

func LoginAPI(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}

	user, err := database.GetUserByEmail(config.GetDB(), req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	if !CheckPasswordHash(req.Password, user.Password) {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid credentials"})
	}
	user.Password = ""

	token, err := GenerateJWT(user)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to generate token"})
	}

	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    token,
		Expires:  time.Now().Add(24 * time.Hour),
		HTTPOnly: true,
		SameSite: "Lax",
	})

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func LogoutAPI(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "jwt_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})

	return c.JSON(fiber.Map{"message": "Logout successful"})
}

// PasswordResetRequestAPI hands out a single-use token for a known email.
// Mail delivery is a collaborator concern; the token is returned in the body.
func PasswordResetRequestAPI(c *fiber.Ctx) error {
	type ResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	var req ResetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := database.GetUserByEmail(config.GetDB(), req.Email)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(400).JSON(fiber.Map{"error": "User with this email does not exist"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	token := uuid.New().String()
	expiresAt := time.Now().Add(1 * time.Hour)
	if err := database.CreatePasswordReset(config.GetDB(), token, user.ID, expiresAt); err != nil {
		logger.Log.Error().Err(err).Msg("failed to store password reset token")
		return c.Status(500).JSON(fiber.Map{"error": "Failed to create reset token"})
	}

	return c.JSON(fiber.Map{
		"message": "Password reset token generated successfully",
		"token":   token,
	})
}

func PasswordResetConfirmAPI(c *fiber.Ctx) error {
	type ConfirmRequest struct {
		Token       string `json:"token" validate:"required"`
		NewPassword string `json:"new_password" validate:"required,min=8"`
	}

	var req ConfirmRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	db := config.GetDB()
	reset, err := database.GetPasswordReset(db, req.Token)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid or expired token"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to hash password"})
	}
	if err := database.UpdateUserPassword(db, reset.UserID, hashed); err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update password"})
	}
	if err := database.DeletePasswordReset(db, req.Token); err != nil {
		logger.Log.Warn().Err(err).Msg("failed to delete used reset token")
	}

	return c.JSON(fiber.Map{"message": "Password reset successful"})
}
