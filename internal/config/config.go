// Package config loads runtime settings from the environment, an
// optional .env file and an optional config file.
package config

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/01moynul/containerhub-golang/internal/database"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string `mapstructure:"http_port"`

	DBDriver      string `mapstructure:"db_driver"`
	DBDSN         string `mapstructure:"db_dsn"`
	// DBDSNReadOnly is the AI assistant's connection. Its user needs SELECT
	// grants only and no access to users.password_hash.
	DBDSNReadOnly string `mapstructure:"db_dsn_readonly"`

	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTTTL    time.Duration `mapstructure:"jwt_ttl"`

	// ApprovalPolicy is "importer" or "admin".
	ApprovalPolicy string `mapstructure:"approval_policy"`

	CORSOrigin string `mapstructure:"cors_origin"`
	UploadDir  string `mapstructure:"upload_dir"`
	BaseURL    string `mapstructure:"base_url"`

	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	GeminiModel  string `mapstructure:"gemini_model"`

	SeedAdminEmail    string `mapstructure:"seed_admin_email"`
	SeedAdminPassword string `mapstructure:"seed_admin_password"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http_port", "8080")
	v.SetDefault("db_driver", "mysql")
	v.SetDefault("db_dsn", "")
	v.SetDefault("db_dsn_readonly", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("jwt_ttl", "72h")
	v.SetDefault("approval_policy", "importer")
	v.SetDefault("cors_origin", "http://localhost:5173")
	v.SetDefault("upload_dir", "./uploads")
	v.SetDefault("base_url", "http://localhost:8080")
	v.SetDefault("gemini_api_key", "")
	v.SetDefault("gemini_model", "gemini-2.5-flash")
	v.SetDefault("seed_admin_email", "")
	v.SetDefault("seed_admin_password", "")
	v.SetDefault("config_file", "")
}

// Load reads .env (if present) into the process environment and then
// builds the configuration.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}
	return Read()
}

// Read builds the configuration from environment variables, falling back
// to CONFIG_FILE and then to defaults.
func Read() (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("config_file"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error

	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL must be positive"))
	}
	if _, err := database.DialectFor(c.DBDriver); err != nil {
		errs = append(errs, err)
	}
	if c.DBDSN == "" {
		errs = append(errs, errors.New("DB_DSN is required"))
	}
	if c.ApprovalPolicy != "importer" && c.ApprovalPolicy != "admin" {
		errs = append(errs, fmt.Errorf("APPROVAL_POLICY must be importer or admin, got %q", c.ApprovalPolicy))
	}
	if (c.SeedAdminEmail == "") != (c.SeedAdminPassword == "") {
		errs = append(errs, errors.New("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set together"))
	}

	return errors.Join(errs...)
}

// AIEnabled reports whether the assistant has what it needs to start.
func (c *Config) AIEnabled() bool {
	return c.GeminiAPIKey != "" && c.DBDSNReadOnly != ""
}
