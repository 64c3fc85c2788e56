package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/inotebook/backend/internal/constants"
)

// AppConfig represents the entire application configuration.
type AppConfig struct {
	App          AppSettings      `yaml:"app"`
	Database     DatabaseSettings `yaml:"database"`
	Server       ServerSettings   `yaml:"server"`
	Auth         AuthSettings     `yaml:"auth"`
	SMTP         SMTPSettings     `yaml:"smtp"`
	Logging      LoggingSettings  `yaml:"logging"`
	CORS         CORSSettings     `yaml:"cors"`
	PasswordHash HashSettings     `yaml:"password_hash"`
}

// AppSettings contains general application settings.
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`

	// ClientURL is the public base URL of the frontend, used when
	// building password-reset links for outbound email.
	ClientURL string `yaml:"client_url" env:"CLIENT_URL"`
}

// DatabaseSettings contains PostgreSQL connection settings.
type DatabaseSettings struct {
	Host     string `yaml:"host" env:"DB_HOST"`
	Port     int    `yaml:"port" env:"DB_PORT"`
	Name     string `yaml:"name" env:"DB_NAME"`
	User     string `yaml:"user" env:"DB_USER"`
	Password string `yaml:"password" env:"DB_PASSWORD"`
	SSLMode  string `yaml:"ssl_mode" env:"DB_SSL_MODE"`
	MaxConns int    `yaml:"max_conns" env:"DB_MAX_CONNS"`
	MinConns int    `yaml:"min_conns" env:"DB_MIN_CONNS"`
}

// ServerSettings contains HTTP server settings.
type ServerSettings struct {
	Host            string        `yaml:"host" env:"SERVER_HOST"`
	Port            int           `yaml:"port" env:"SERVER_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
}

// AuthSettings contains session token and password-reset settings.
// The user and admin namespaces carry distinct signing secrets so a
// token from one namespace can never be replayed against the other.
type AuthSettings struct {
	UserSecret    string        `yaml:"user_secret" env:"SESSION_SECRET"`
	AdminSecret   string        `yaml:"admin_secret" env:"ADMIN_SESSION_SECRET"`
	SessionExpiry time.Duration `yaml:"session_expiry" env:"SESSION_EXPIRY"`
	ResetTokenTTL time.Duration `yaml:"reset_token_ttl" env:"RESET_TOKEN_TTL"`
}

// SMTPSettings contains the outbound email transport configuration.
type SMTPSettings struct {
	Host     string `yaml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" env:"SMTP_PORT"`
	Username string `yaml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" env:"SMTP_FROM"`
}

// LoggingSettings contains logging configuration.
type LoggingSettings struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// CORSSettings contains CORS configuration.
type CORSSettings struct {
	AllowedOrigins   []string `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"`
	AllowCredentials bool     `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS"`
}

// HashSettings contains password hashing settings.
type HashSettings struct {
	Cost int `yaml:"cost" env:"BCRYPT_COST"`
}

// ConnectionString returns the PostgreSQL connection string.
func (dbs *DatabaseSettings) ConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		dbs.Host, dbs.Port, dbs.User, dbs.Password, dbs.Name, dbs.SSLMode,
	)
}

// ServerAddress returns the complete server address.
func (ss *ServerSettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ss.Host, ss.Port)
}

// IsDevelopment checks if the application is running in development mode.
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode.
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// Load loads the configuration from a config file and environment variables.
// Environment variables take precedence over values from the file.
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	// Set defaults for missing values
	setDefaults(config)

	// Validate the configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Log the configuration (but hide sensitive values)
	logConfig(config)

	return config, nil
}

// setDefaults sets default values for any missing configuration.
func setDefaults(config *AppConfig) {
	// App defaults
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = "inotebook-api"
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}
	if config.App.ClientURL == "" {
		config.App.ClientURL = constants.DefaultPublicClientURL
	}

	if config.Server.Host == "" {
		config.Server.Host = constants.DefaultServerHost
	}
	if config.Server.Port == 0 {
		config.Server.Port = constants.DefaultServerPort
	}
	if config.Server.ReadTimeout == 0 {
		config.Server.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.Server.WriteTimeout == 0 {
		config.Server.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = constants.DefaultShutdownTimeout
	}

	if config.Database.Port == 0 {
		config.Database.Port = constants.DefaultDBPort
	}
	if config.Database.SSLMode == "" {
		config.Database.SSLMode = constants.DefaultDBSSLMode
	}
	if config.Database.MaxConns == 0 {
		config.Database.MaxConns = constants.DefaultDBMaxConnections
	}
	if config.Database.MinConns == 0 {
		config.Database.MinConns = constants.DefaultDBMinConnections
	}

	// Auth defaults
	if config.Auth.SessionExpiry == 0 {
		config.Auth.SessionExpiry = constants.DefaultSessionExpiry
	}
	if config.Auth.ResetTokenTTL == 0 {
		config.Auth.ResetTokenTTL = constants.DefaultResetTokenTTL
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	// CORS defaults match the local frontend dev servers
	if len(config.CORS.AllowedOrigins) == 0 {
		config.CORS.AllowedOrigins = []string{"http://localhost:5173", "http://localhost:5174"}
	}

	if config.PasswordHash.Cost == 0 {
		config.PasswordHash.Cost = constants.DefaultBcryptCost
	}
}

// validateConfig validates that the configuration has all required values.
func validateConfig(config *AppConfig) error {
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		return fmt.Errorf("invalid environment: %s", config.App.Environment)
	}

	// In production, ensure we have proper signing secrets
	if config.App.IsProduction() {
		if config.Auth.UserSecret == "" || config.Auth.UserSecret == "changeme" {
			return fmt.Errorf("session signing secret must be set in production")
		}
		if config.Auth.AdminSecret == "" || config.Auth.AdminSecret == "changeme" {
			return fmt.Errorf("admin session signing secret must be set in production")
		}
	}

	if config.Database.User == "" {
		return fmt.Errorf("database user must be set")
	}

	switch strings.ToLower(config.Logging.Level) {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// logConfig logs the current configuration, masking sensitive values.
func logConfig(config *AppConfig) {
	log.Info().
		Str("environment", config.App.Environment).
		Str("version", config.App.Version).
		Str("server", config.Server.ServerAddress()).
		Str("db_host", config.Database.Host).
		Int("db_port", config.Database.Port).
		Str("db_name", config.Database.Name).
		Str("client_url", config.App.ClientURL).
		Str("log_level", config.Logging.Level).
		Msg("Configuration loaded")
}
