package config

import (
	"fmt"
	"os"
	"strings"
)

// Data source kinds
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds application configuration
type Config struct {
	Port     string
	LogLevel string

	DataSource     string
	DataDir        string
	DBConn         string
	ReloadSchedule string

	JWTSecret      string
	AdminKeyHash   string
	AllowedOrigins []string

	SpendingMonthPolicy string
	SpendingMonth       string
	SavingsMonthPolicy  string
	SavingsMonth        string
	CurrencySymbol      string

	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
	AlertEmail   string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "5000"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),

		DataSource:     strings.ToLower(getEnv("DATA_SOURCE", SourceFile)),
		DataDir:        getEnv("DATA_DIR", "data"),
		DBConn:         getEnv("DB_CONN", ""),
		ReloadSchedule: getEnv("RELOAD_SCHEDULE", ""),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		AdminKeyHash:   getEnv("ADMIN_KEY_HASH", ""),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),

		SpendingMonthPolicy: strings.ToLower(getEnv("SPENDING_MONTH_POLICY", "fixed")),
		SpendingMonth:       strings.ToLower(getEnv("SPENDING_MONTH", "august")),
		SavingsMonthPolicy:  strings.ToLower(getEnv("SAVINGS_MONTH_POLICY", "fixed")),
		SavingsMonth:        strings.ToLower(getEnv("SAVINGS_MONTH", "january")),
		CurrencySymbol:      getEnv("CURRENCY_SYMBOL", "$"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", ""),
		AlertEmail:   getEnv("ALERT_EMAIL", ""),
	}

	switch cfg.DataSource {
	case SourceFile:
		if cfg.DataDir == "" {
			return nil, fmt.Errorf("DATA_DIR is required for the file data source")
		}
	case SourcePostgres:
		if cfg.DBConn == "" {
			return nil, fmt.Errorf("DB_CONN is required for the postgres data source")
		}
	default:
		return nil, fmt.Errorf("unknown DATA_SOURCE %q", cfg.DataSource)
	}
	if err := validPolicy("SPENDING_MONTH_POLICY", cfg.SpendingMonthPolicy); err != nil {
		return nil, err
	}
	if err := validPolicy("SAVINGS_MONTH_POLICY", cfg.SavingsMonthPolicy); err != nil {
		return nil, err
	}
	if cfg.AlertEmail != "" && (cfg.SMTPHost == "" || cfg.SenderEmail == "") {
		return nil, fmt.Errorf("SMTP_HOST and SENDER_EMAIL are required when ALERT_EMAIL is set")
	}

	return cfg, nil
}

// AlertsEnabled reports whether reload failures should be mailed
func (c *Config) AlertsEnabled() bool {
	return c.AlertEmail != ""
}

func validPolicy(key, value string) error {
	switch value {
	case "fixed", "previous":
		return nil
	}
	return fmt.Errorf("%s must be \"fixed\" or \"previous\", got %q", key, value)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
