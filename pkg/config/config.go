package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rotaworks/shift_roster_app/internal/core/domain"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	MigrationsPath    string
	PayPeriodsFile    string
	FCMServerKey      string
	CORSOrigins       []string
}

// LoadConfig loads configuration from environment variables and .env file if
// present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "12h")
	viper.SetDefault("JWT_ISSUER", "shift-roster-app")
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("PAY_PERIODS_FILE", "config/payroll_calendar.json")
	viper.SetDefault("FCM_SERVER_KEY", "")
	viper.SetDefault("CORS_ORIGINS", "*")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}

	jwtExpiryStr := viper.GetString("JWT_EXPIRY_DURATION")
	jwtExpiryDuration, err := time.ParseDuration(jwtExpiryStr)
	if err != nil {
		jwtExpiryDuration = 12 * time.Hour
		log.Printf("Warning: Invalid value for JWT_EXPIRY_DURATION (%q). Defaulting to %s.\n", jwtExpiryStr, jwtExpiryDuration)
	}
	cfg.JWTExpiryDuration = jwtExpiryDuration

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.PayPeriodsFile = viper.GetString("PAY_PERIODS_FILE")

	cfg.FCMServerKey = viper.GetString("FCM_SERVER_KEY")
	if cfg.FCMServerKey == "" {
		log.Println("Warning: FCM_SERVER_KEY not set. Push notifications are disabled.")
	}

	cfg.CORSOrigins = viper.GetStringSlice("CORS_ORIGINS")

	return cfg, nil
}

// LoadPayPeriodCalendar reads the pay-period calendar JSON referenced by
// PayPeriodsFile. A missing file yields an empty calendar, not an error, so
// the payroll period endpoints degrade to empty results.
func (c *Config) LoadPayPeriodCalendar() (domain.PayPeriodCalendar, error) {
	data, err := os.ReadFile(c.PayPeriodsFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("Warning: pay periods file %q not found. Payroll periods are empty.\n", c.PayPeriodsFile)
			return domain.PayPeriodCalendar{}, nil
		}
		return domain.PayPeriodCalendar{}, fmt.Errorf("failed to read pay periods file: %w", err)
	}

	var periods []domain.PayPeriod
	if err := json.Unmarshal(data, &periods); err != nil {
		return domain.PayPeriodCalendar{}, fmt.Errorf("failed to parse pay periods file: %w", err)
	}
	return domain.PayPeriodCalendar{Periods: periods}, nil
}
