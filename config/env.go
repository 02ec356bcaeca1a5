package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	JWTSecret           string
	TokenExpiryDuration string
	LogLevel            string

	DBDriver   string
	DBDSN      string
	DBLogLevel string

	// Offset used to decide which calendar day a check-in belongs to.
	AttendanceUTCOffset string

	IdentityBaseURL string
	IdentityAPIKey  string
	IdentityTimeout string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPTimeout  string

	SchedulerEnabled  bool
	AbsenceCron       string
	PayrollReportCron string
}

var (
	AppConfig Config
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	AppConfig = Config{
		Port:                getEnvOrDefault("PORT", "3000"),
		JWTSecret:           mustGetEnv("JWT_SECRET"),
		TokenExpiryDuration: getEnvOrDefault("TOKEN_EXPIRY", "24h"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		DBDriver:            getEnvOrDefault("DB_DRIVER", "sqlite"),
		DBDSN:               getEnvOrDefault("DB_DSN", "company.db"),
		DBLogLevel:          getEnvOrDefault("DB_LOG_LEVEL", "warn"),
		AttendanceUTCOffset: getEnvOrDefault("ATTENDANCE_UTC_OFFSET", "+05:30"),
		IdentityBaseURL:     os.Getenv("IDENTITY_BASE_URL"),
		IdentityAPIKey:      os.Getenv("IDENTITY_API_KEY"),
		IdentityTimeout:     getEnvOrDefault("IDENTITY_TIMEOUT", "10s"),
		SMTPHost:            os.Getenv("SMTP_HOST"),
		SMTPPort:            getEnvOrDefault("SMTP_PORT", "587"),
		SMTPUsername:        os.Getenv("SMTP_USERNAME"),
		SMTPPassword:        os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:            os.Getenv("SMTP_FROM"),
		SMTPTimeout:         getEnvOrDefault("SMTP_TIMEOUT", "10s"),
		SchedulerEnabled:    getBoolOrDefault("SCHEDULER_ENABLED", true),
		AbsenceCron:         getEnvOrDefault("ABSENCE_CRON", "55 23 * * *"),
		PayrollReportCron:   getEnvOrDefault("PAYROLL_REPORT_CRON", "0 6 1 * *"),
	}
}

// TokenExpiry falls back to 24h when TOKEN_EXPIRY does not parse.
func (c Config) TokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiryDuration)
	if err != nil || d <= 0 {
		return 24 * time.Hour
	}
	return d
}

func (c Config) IdentityRequestTimeout() time.Duration {
	d, err := time.ParseDuration(c.IdentityTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// SMTPSendTimeout bounds one whole SMTP conversation.
func (c Config) SMTPSendTimeout() time.Duration {
	d, err := time.ParseDuration(c.SMTPTimeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// AttendanceLocation returns the fixed zone for AttendanceUTCOffset.
func (c Config) AttendanceLocation() (*time.Location, error) {
	return ParseUTCOffset(c.AttendanceUTCOffset)
}

// ParseUTCOffset turns "+05:30", "-04:00" or "Z" into a fixed zone.
func ParseUTCOffset(offset string) (*time.Location, error) {
	offset = strings.TrimSpace(offset)
	if offset == "" || offset == "Z" || offset == "UTC" {
		return time.UTC, nil
	}

	sign := 1
	switch offset[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return nil, fmt.Errorf("invalid utc offset %q: must start with + or -", offset)
	}

	parts := strings.Split(offset[1:], ":")
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid utc offset %q: expected +HH:MM", offset)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil || hours < 0 || hours > 14 {
		return nil, fmt.Errorf("invalid utc offset %q: bad hours", offset)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil || minutes < 0 || minutes > 59 {
		return nil, fmt.Errorf("invalid utc offset %q: bad minutes", offset)
	}

	seconds := sign * (hours*3600 + minutes*60)
	return time.FixedZone("UTC"+offset, seconds), nil
}

func mustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Warning: %s=%q is not a boolean, using %v", key, value, defaultValue)
		return defaultValue
	}
	return b
}
