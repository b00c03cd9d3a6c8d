package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL       string
	Port              string
	IsProduction      bool
	EnableDBCheck     bool
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string
	AllowedOrigins    []string
	FrontendURL       string

	// Uploads
	UploadDir     string
	MaxUploadSize int64

	// Password reset and login throttling
	PasswordResetExpiry time.Duration
	LoginRateLimit      string

	// Email transport (Resend)
	ResendAPIKey    string `mapstructure:"RESEND_API_KEY"`
	ResendFromEmail string `mapstructure:"RESEND_FROM_EMAIL"`
	ResendFromName  string `mapstructure:"RESEND_FROM_NAME"`
	ResendBaseURL   string `mapstructure:"RESEND_BASE_URL"`

	// Weekly report trigger
	WeeklyReportEnabled    bool
	WeeklyReportDay        string
	WeeklyReportHour       int
	WeeklyReportTimezone   string
	WeeklyReportRecipients []string

	// Realtime backplane
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// External services
	CompaniesAPIURL     string
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	PosthogAPIKey       string

	// External OAuth Providers
	GoogleClientID     string `mapstructure:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `mapstructure:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `mapstructure:"GOOGLE_REDIRECT_URL"`
}

// CloudinaryEnabled reports whether attachment uploads should go to Cloudinary.
func (c *Config) CloudinaryEnabled() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "30m")
	viper.SetDefault("JWT_ISSUER", "flowhive-backend")
	viper.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	viper.SetDefault("FRONTEND_URL", "http://localhost:5173")
	viper.SetDefault("UPLOAD_DIR", "uploads")
	viper.SetDefault("MAX_UPLOAD_SIZE", 10*1024*1024)
	viper.SetDefault("PASSWORD_RESET_EXPIRY", "1h")
	viper.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	viper.SetDefault("RESEND_API_KEY", "")
	viper.SetDefault("RESEND_FROM_EMAIL", "onboarding@resend.dev")
	viper.SetDefault("RESEND_FROM_NAME", "Flowhive")
	viper.SetDefault("RESEND_BASE_URL", "https://api.resend.com")
	viper.SetDefault("WEEKLY_REPORT_ENABLED", true)
	viper.SetDefault("WEEKLY_REPORT_DAY", "sun")
	viper.SetDefault("WEEKLY_REPORT_HOUR", 17)
	viper.SetDefault("WEEKLY_REPORT_TIMEZONE", "UTC")
	viper.SetDefault("WEEKLY_REPORT_RECIPIENTS", "")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("COMPANIES_API_URL", "https://company.sajsoft.co.ke/?action=getareportscompanies")
	viper.SetDefault("CLOUDINARY_CLOUD_NAME", "")
	viper.SetDefault("CLOUDINARY_API_KEY", "")
	viper.SetDefault("CLOUDINARY_API_SECRET", "")
	viper.SetDefault("POSTHOG_API_KEY", "")
	viper.SetDefault("GOOGLE_CLIENT_ID", "")
	viper.SetDefault("GOOGLE_CLIENT_SECRET", "")
	viper.SetDefault("GOOGLE_REDIRECT_URL", "")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8000"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", 30*time.Minute)
	cfg.PasswordResetExpiry = durationOrDefault("PASSWORD_RESET_EXPIRY", time.Hour)

	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "flowhive-backend"
		log.Printf("Warning: JWT_ISSUER not set. Defaulting to %s.\n", cfg.JWTIssuer)
	}

	cfg.WeeklyReportHour = viper.GetInt("WEEKLY_REPORT_HOUR")
	if cfg.WeeklyReportHour < 0 || cfg.WeeklyReportHour > 23 {
		log.Printf("Warning: Invalid value for WEEKLY_REPORT_HOUR (%d). Defaulting to 17.\n", cfg.WeeklyReportHour)
		cfg.WeeklyReportHour = 17
	}

	cfg.MaxUploadSize = viper.GetInt64("MAX_UPLOAD_SIZE")
	if cfg.MaxUploadSize <= 0 {
		cfg.MaxUploadSize = 10 * 1024 * 1024
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.AllowedOrigins = splitList(viper.GetString("ALLOWED_ORIGINS"))
	cfg.FrontendURL = strings.TrimRight(viper.GetString("FRONTEND_URL"), "/")
	cfg.UploadDir = viper.GetString("UPLOAD_DIR")
	cfg.LoginRateLimit = viper.GetString("LOGIN_RATE_LIMIT")
	cfg.ResendAPIKey = viper.GetString("RESEND_API_KEY")
	cfg.ResendFromEmail = viper.GetString("RESEND_FROM_EMAIL")
	cfg.ResendFromName = viper.GetString("RESEND_FROM_NAME")
	cfg.ResendBaseURL = viper.GetString("RESEND_BASE_URL")
	cfg.WeeklyReportEnabled = viper.GetBool("WEEKLY_REPORT_ENABLED")
	cfg.WeeklyReportDay = strings.ToLower(viper.GetString("WEEKLY_REPORT_DAY"))
	cfg.WeeklyReportTimezone = viper.GetString("WEEKLY_REPORT_TIMEZONE")
	cfg.WeeklyReportRecipients = splitList(viper.GetString("WEEKLY_REPORT_RECIPIENTS"))
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.RedisPassword = viper.GetString("REDIS_PASSWORD")
	cfg.RedisDB = viper.GetInt("REDIS_DB")
	cfg.CompaniesAPIURL = viper.GetString("COMPANIES_API_URL")
	cfg.CloudinaryCloudName = viper.GetString("CLOUDINARY_CLOUD_NAME")
	cfg.CloudinaryAPIKey = viper.GetString("CLOUDINARY_API_KEY")
	cfg.CloudinaryAPISecret = viper.GetString("CLOUDINARY_API_SECRET")
	cfg.PosthogAPIKey = viper.GetString("POSTHOG_API_KEY")
	cfg.GoogleClientID = viper.GetString("GOOGLE_CLIENT_ID")
	cfg.GoogleClientSecret = viper.GetString("GOOGLE_CLIENT_SECRET")
	cfg.GoogleRedirectURL = viper.GetString("GOOGLE_REDIRECT_URL")

	if cfg.ResendAPIKey == "" {
		log.Println("Warning: RESEND_API_KEY not set. Report and password reset emails will fail.")
	}
	if cfg.GoogleClientID == "" {
		log.Println("Warning: GOOGLE_CLIENT_ID not set. Google sign-in will not function.")
	}

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		}
		return def
	}
	return d
}

// splitList parses a comma separated list, dropping blanks.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
