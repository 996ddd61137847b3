package config

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/Tejasgow/SMART-EDU-TRACK/app/logger"
)

type Config struct {
	DB        *sql.DB
	JWTSecret string
	UploadDir string
	Port      string
}

var AppConfig *Config

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads .env (when present), connects to Postgres and fills AppConfig.
func Load() error {
	if err := godotenv.Load(); err != nil {
		logger.Log.Debug().Msg("no .env file found, using process environment")
	}

	host := getenv("DB_HOST", "localhost")
	port, err := strconv.Atoi(getenv("DB_PORT", "5432"))
	if err != nil {
		return fmt.Errorf("invalid DB_PORT: %w", err)
	}
	user := getenv("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	dbname := getenv("DB_NAME", "smartedutrack")
	sslmode := getenv("DB_SSLMODE", "disable")

	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s",
		host, port, user, dbname, sslmode)
	if password != "" {
		psqlInfo += " password=" + password
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	logger.Log.Info().Str("host", host).Int("port", port).Str("db", dbname).
		Msg("testing database connection")
	if err = db.Ping(); err != nil {
		return fmt.Errorf("cannot establish database connection: %w", err)
	}

	AppConfig = &Config{
		DB:        db,
		JWTSecret: getenv("JWT_SECRET", "smart-edu-track-secret-key"),
		UploadDir: getenv("UPLOAD_DIR", "uploads"),
		Port:      getenv("PORT", "8080"),
	}
	logger.Log.Info().Msg("database connected successfully")
	return nil
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
