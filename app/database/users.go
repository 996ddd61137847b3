package database

import (
	"database/sql"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
)

// hashPassword hashes a password using bcrypt
func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 14)
	return string(bytes), err
}

func GetUserByEmail(db *sql.DB, email string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, role, is_active, created_at, updated_at
			  FROM users WHERE email = $1 AND is_active = true`

	err := db.QueryRow(query, email).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	user := &models.User{}
	query := `SELECT id, email, password, first_name, last_name, role, is_active, created_at, updated_at
			  FROM users WHERE id = $1 AND is_active = true`

	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Email, &user.Password, &user.FirstName,
		&user.LastName, &user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUser stores a new account with a hashed password. The caller is
// responsible for role validation; the row comes back with id and timestamps.
func CreateUser(db *sql.DB, user *models.User) error {
	hashedPassword, err := hashPassword(user.Password)
	if err != nil {
		return err
	}

	query := `INSERT INTO users (email, password, first_name, last_name, role, is_active, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, true, NOW(), NOW())
			  RETURNING id, created_at, updated_at`

	err = db.QueryRow(query, user.Email, hashedPassword, user.FirstName, user.LastName, user.Role).Scan(
		&user.ID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return err
	}

	user.IsActive = true
	user.Password = ""
	return nil
}

func UpdateUserPassword(db *sql.DB, userID string, hashedPassword string) error {
	query := `UPDATE users SET password = $1, updated_at = NOW() WHERE id = $2`
	_, err := db.Exec(query, hashedPassword, userID)
	return err
}

func CreatePasswordReset(db *sql.DB, token, userID string, expiresAt time.Time) error {
	query := `INSERT INTO password_resets (token, user_id, expires_at, created_at) VALUES ($1, $2, $3, NOW())`
	_, err := db.Exec(query, token, userID, expiresAt)
	return err
}

func GetPasswordReset(db *sql.DB, token string) (*models.PasswordReset, error) {
	reset := &models.PasswordReset{}
	query := `SELECT token, user_id, expires_at, created_at FROM password_resets
			  WHERE token = $1 AND expires_at > NOW()`

	err := db.QueryRow(query, token).Scan(
		&reset.Token, &reset.UserID, &reset.ExpiresAt, &reset.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return reset, nil
}

func DeletePasswordReset(db *sql.DB, token string) error {
	query := `DELETE FROM password_resets WHERE token = $1`
	_, err := db.Exec(query, token)
	return err
}
