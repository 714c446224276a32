package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Shop is printed on invoices and reminder messages.
type Shop struct {
	Name    string
	Address string
	Phone   string
}

type Config struct {
	Port     string
	Env      string
	LogLevel string

	DBDriver     string
	DBURL        string
	DBReset      bool
	SeedDemoData bool

	JWTSecret     string
	JWTExpiry     time.Duration
	AdminPassword string

	UploadDir   string
	CORSOrigins []string

	LoginRatePerSec float64
	LoginBurst      int

	ReminderCron      string
	ReminderDaysAhead int
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioFrom        string

	Shop Shop
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBDriver:     strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBURL:        getEnv("DB_URL", "carwash.db"),
		DBReset:      getBool("DB_RESET", false),
		SeedDemoData: getBool("SEED_DEMO_DATA", false),

		JWTSecret:     os.Getenv("JWT_SECRET"),
		JWTExpiry:     time.Duration(getInt("JWT_EXPIRY_HOURS", 24)) * time.Hour,
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),

		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173")),

		LoginRatePerSec: getFloat("LOGIN_RATE_PER_SEC", 0.2),
		LoginBurst:      getInt("LOGIN_BURST", 5),

		ReminderCron:      getEnv("REMINDER_CRON", "0 8 * * *"),
		ReminderDaysAhead: getInt("REMINDER_DAYS_AHEAD", 3),
		TwilioAccountSID:  os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:   os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:        os.Getenv("TWILIO_PHONE_NUMBER"),

		Shop: Shop{
			Name:    getEnv("SHOP_NAME", "Car Wash"),
			Address: os.Getenv("SHOP_ADDRESS"),
			Phone:   os.Getenv("SHOP_PHONE"),
		},
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "dev-secret-change-me"
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		return nil, errors.New("DB_DRIVER must be sqlite or postgres")
	}
	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// TwilioEnabled reports whether SMS credentials are configured.
func (c *Config) TwilioEnabled() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioFrom != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
