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

// Config holds all configuration for the application
type Config struct {
	AppMode   string
	Port      string
	Database  DatabaseConfig
	JWT       JWTConfig
	Cookie    CookieConfig
	Auth      AuthConfig
	Notify    NotifyConfig
	RateLimit RateLimitConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds the single static signing secret and the token lifetime
type JWTConfig struct {
	Secret            string
	ExpirationMinutes int
}

// CookieConfig holds cookie configuration
type CookieConfig struct {
	Secure   bool
	SameSite string
	Domain   string
}

// AuthConfig holds the path policy used by the authentication middleware
type AuthConfig struct {
	ProtectedPrefixes []string
	PublicPaths       []string
	APIPrefix         string
	LoginPath         string
	DashboardPath     string
}

// NotifyConfig holds configuration for the external email service
type NotifyConfig struct {
	EmailServiceURL   string
	TimeoutSeconds    int
	AdminDigestEmail  string
	PendingDigestCron string
}

// RateLimitConfig holds per-IP request limits per minute; 0 disables a limit
type RateLimitConfig struct {
	General int
	Auth    int
}

const defaultPublicPaths = "/,/index,/home,/login,/register,/logout,/validate-session," +
	"/api/admin/login,/api/admin/register,/api/admin/logout,/api/admin/validate-session," +
	"/css/,/js/,/images/,/swagger/,/health"

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", cfg.AppMode)
	return cfg, nil
}

// FromEnv builds the configuration from the current process environment only
func FromEnv() (*Config, error) {
	// Trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	jwtCfg, err := loadJWTConfig(appMode)
	if err != nil {
		return nil, err
	}

	return &Config{
		AppMode:   appMode,
		Port:      getEnv("PORT", "8082"),
		Database:  loadDatabaseConfig(appMode),
		JWT:       jwtCfg,
		Cookie:    loadCookieConfig(appMode),
		Auth:      loadAuthConfig(),
		Notify:    loadNotifyConfig(),
		RateLimit: loadRateLimitConfig(),
	}, nil
}

func modePrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := modePrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "myfinbank"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) (JWTConfig, error) {
	prefix := modePrefix(mode)

	minutes, err := strconv.Atoi(getEnv("JWT_EXPIRATION_MINUTES", "1440"))
	if err != nil {
		return JWTConfig{}, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %w", err)
	}
	if minutes <= 0 {
		return JWTConfig{}, fmt.Errorf("invalid JWT_EXPIRATION_MINUTES: %d (must be positive)", minutes)
	}

	return JWTConfig{
		Secret:            getEnv(prefix+"JWT_SECRET", "myfinbank-admin-default-secret-key"),
		ExpirationMinutes: minutes,
	}, nil
}

// loadCookieConfig loads cookie config based on mode
func loadCookieConfig(mode string) CookieConfig {
	prefix := modePrefix(mode)

	secure, _ := strconv.ParseBool(getEnv(prefix+"COOKIE_SECURE", "false"))

	return CookieConfig{
		Secure:   secure,
		SameSite: getEnv("COOKIE_SAMESITE", "lax"),
		Domain:   getEnv("COOKIE_DOMAIN", ""),
	}
}

func loadAuthConfig() AuthConfig {
	return AuthConfig{
		ProtectedPrefixes: splitList(getEnv("PROTECTED_PREFIXES", "/admin/,/api/admin/")),
		PublicPaths:       splitList(getEnv("PUBLIC_PATHS", defaultPublicPaths)),
		APIPrefix:         getEnv("API_PREFIX", "/api/"),
		LoginPath:         getEnv("LOGIN_PATH", "/login"),
		DashboardPath:     getEnv("DASHBOARD_PATH", "/admin/dashboard"),
	}
}

func loadNotifyConfig() NotifyConfig {
	timeout, err := strconv.Atoi(getEnv("NOTIFY_TIMEOUT_SECONDS", "5"))
	if err != nil || timeout <= 0 {
		timeout = 5
	}

	return NotifyConfig{
		EmailServiceURL:   strings.TrimRight(getEnv("EMAIL_SERVICE_URL", ""), "/"),
		TimeoutSeconds:    timeout,
		AdminDigestEmail:  getEnv("ADMIN_DIGEST_EMAIL", ""),
		PendingDigestCron: getEnv("PENDING_DIGEST_CRON", "30 8 * * *"),
	}
}

func loadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		General: getEnvInt("RATE_LIMIT_GENERAL", 100),
		Auth:    getEnvInt("RATE_LIMIT_AUTH", 5),
	}
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(defaultValue)))
	if err != nil || v < 0 {
		return defaultValue
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// TokenTTL returns the identity token lifetime
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.JWT.ExpirationMinutes) * time.Minute
}

// NotifyTimeout returns the upper bound for a single notification attempt
func (c *Config) NotifyTimeout() time.Duration {
	return time.Duration(c.Notify.TimeoutSeconds) * time.Second
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		// Default production origins
		return "https://admin.myfinbank.com"
	}
	return origins
}
