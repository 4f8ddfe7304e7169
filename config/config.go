package config

import (
	"log"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

// EmailConfig holds SMTP settings for admin notification mail.
type EmailConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"` // normally injected via SMTP_PASSWORD
	From         string `mapstructure:"from"`
	AdminAddress string `mapstructure:"admin_address"`
}

// PushConfig holds credentials for the push messaging service.
type PushConfig struct {
	APIKey string `mapstructure:"api_key"` // normally injected via FCM_API_KEY
}

// ScheduleConfig holds the cron expressions and timezone for the time-triggered jobs.
type ScheduleConfig struct {
	Timezone         string `mapstructure:"timezone"`
	DailyDigestSpec  string `mapstructure:"daily_digest_spec"`
	WeeklyReportSpec string `mapstructure:"weekly_report_spec"`
	CleanupSpec      string `mapstructure:"cleanup_spec"`
}

// AuthConfig holds identity-token verification settings.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"` // normally injected via AUTH_JWT_SECRET
}

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string
	}
	Database struct {
		DSN string // "memory" or file path for SQLite
	}
	Email    EmailConfig    `mapstructure:"email"`
	Push     PushConfig     `mapstructure:"push"`
	Schedule ScheduleConfig `mapstructure:"schedule"`
	Auth     AuthConfig     `mapstructure:"auth"`
}

// AppConfig is the global configuration instance.
var AppConfig Config

// LoadConfig loads configuration from file and environment variables.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../config")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("database.dsn", "memory")
	viper.SetDefault("email.port", 587)
	// Schedules follow the production deployment: digest twice a day,
	// weekly report Monday morning, retention cleanup Sunday night.
	viper.SetDefault("schedule.timezone", "America/Sao_Paulo")
	viper.SetDefault("schedule.daily_digest_spec", "0 9,15 * * *")
	viper.SetDefault("schedule.weekly_report_spec", "0 9 * * 1")
	viper.SetDefault("schedule.cleanup_spec", "0 2 * * 0")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Println("WARN: [Config] Configuration file (config.yaml) not found. Using environment variables and defaults.")
		} else {
			log.Fatalf("FATAL: [Config] Error reading configuration file: %v", err)
		}
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("FATAL: [Config] Failed to unmarshal configuration into AppConfig struct: %v", err)
	}

	// Environment variable overrides for deploy-time and secret values.
	if port := os.Getenv("SERVER_PORT"); port != "" {
		AppConfig.Server.Port = port
		log.Printf("INFO: [Config] Server port overridden by environment variable SERVER_PORT: %s", port)
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		AppConfig.Database.DSN = dsn
	}
	if host := os.Getenv("SMTP_HOST"); host != "" {
		AppConfig.Email.Host = host
	}
	if portStr := os.Getenv("SMTP_PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			AppConfig.Email.Port = p
		} else {
			log.Printf("WARN: [Config] Invalid SMTP_PORT value '%s', keeping configured port %d.", portStr, AppConfig.Email.Port)
		}
	}
	if pass := os.Getenv("SMTP_PASSWORD"); pass != "" {
		AppConfig.Email.Password = pass
	}
	if key := os.Getenv("FCM_API_KEY"); key != "" {
		AppConfig.Push.APIKey = key
	}
	if secret := os.Getenv("AUTH_JWT_SECRET"); secret != "" {
		AppConfig.Auth.JWTSecret = secret
	}

	if AppConfig.Email.AdminAddress == "" {
		log.Println("WARN: [Config] Admin email address is not configured; admin notification mail will be skipped.")
	}
	if AppConfig.Push.APIKey == "" {
		log.Println("WARN: [Config] Push API key is not configured; push notifications will be skipped.")
	}

	log.Println("INFO: [Config] Configuration loading complete.")
}
