package main

import (
	"github.com/Tejasgow/SMART-EDU-TRACK/app/config"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/database"
	"github.com/Tejasgow/SMART-EDU-TRACK/app/logger"
)

func main() {
	if err := config.Load(); err != nil {
		logger.Log.Fatal().Err(err).Msg("failed to load configuration")
	}
	db := config.GetDB()
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		logger.Log.Fatal().Err(err).Msg("migration failed")
	}
	logger.Log.Info().Msg("migration completed successfully")
}
