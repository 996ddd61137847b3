package main

import (
	"flag"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/config"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/database"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/logger"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/models"
)

// Creates an ADMIN account from the command line. Admin accounts cannot be
// created through the API; this is the bootstrap path.
func main() {
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password (min 8 characters)")
	firstName := flag.String("first-name", "Admin", "first name")
	lastName := flag.String("last-name", "User", "last name")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		logger.Log.Fatal().Msg("usage: add_admin -email <email> -password <min 8 chars>")
	}

	if err := config.Load(); err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to load configuration")
	}
	db := config.GetDB()
	defer db.Close()

	user := &models.User{
		Email:     *email,
		Password:  *password,
		FirstName: *firstName,
		LastName:  *lastName,
		Role:      models.RoleAdmin,
	}

	if err := database.CreateUser(db, user); err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to create admin user")
	}
	logger.Log.Info().Str("id", user.ID).Str("email", user.Email).Msg("admin user created")
}
