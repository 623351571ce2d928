package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB    *sql.DB
	Mail  MailConfig
	Port  string
	Terms TermConfig
}

// MailConfig holds the outbound notification settings. When APIKey is empty
// the notifier falls back to console output.
type MailConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
}

// TermConfig names the academic term stamped on enrollment records.
type TermConfig struct {
	Current string
}

var AppConfig *Config

// InitDB loads the environment and opens the database pool.
func InitDB() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	host := envOr("DB_HOST", "localhost")
	port := envIntOr("DB_PORT", 5432)
	user := envOr("DB_USER", "postgres")
	password := os.Getenv("DB_PASSWORD")
	dbname := envOr("DB_NAME", "sanisidro")
	sslmode := envOr("DB_SSLMODE", "disable")

	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s dbname=%s sslmode=%s connect_timeout=10",
		host, port, user, dbname, sslmode)
	if password != "" {
		psqlInfo += " password=" + password
	}

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatalf("Cannot establish database connection to %s:%d/%s: %v", host, port, dbname, err)
	}

	AppConfig = &Config{
		DB:   db,
		Port: envOr("PORT", "8080"),
		Mail: MailConfig{
			APIKey:    os.Getenv("SENDGRID_API_KEY"),
			FromName:  envOr("MAIL_FROM_NAME", "San Isidro College Registrar"),
			FromEmail: envOr("MAIL_FROM_EMAIL", "registrar@sanisidro.edu.ph"),
		},
		Terms: TermConfig{
			Current: envOr("CURRENT_TERM", "2026-2027-1"),
		},
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
		log.Printf("Invalid %s=%q, using %d", key, os.Getenv(key), fallback)
	}
	return fallback
}
