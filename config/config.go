package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	JWT          JWTConfig          `mapstructure:"jwt"`
	OAuth        OAuthConfig        `mapstructure:"oauth"`
	Cloudinary   CloudinaryConfig   `mapstructure:"cloudinary"`
	Firebase     FirebaseConfig     `mapstructure:"firebase"`
	Redis        RedisConfig        `mapstructure:"redis"`
	Mail         MailConfig         `mapstructure:"mail"`
	Logger       LoggerConfig       `mapstructure:"logger"`
	Applications ApplicationsConfig `mapstructure:"applications"`
	Reminders    ReminderConfig     `mapstructure:"reminders"`
	RateLimit    RateLimitConfig    `mapstructure:"rate_limit"`
	Cache        CacheConfig        `mapstructure:"cache"`
	Admin        AdminConfig        `mapstructure:"admin"`
}

type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	Env          string        `mapstructure:"env"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // mysql | postgres | sqlite
	DSN             string        `mapstructure:"dsn"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

type JWTConfig struct {
	AccessSecret  string        `mapstructure:"access_secret"`
	RefreshSecret string        `mapstructure:"refresh_secret"`
	AccessExpiry  time.Duration `mapstructure:"access_expiry"`
	RefreshExpiry time.Duration `mapstructure:"refresh_expiry"`
	Issuer        string        `mapstructure:"issuer"`
}

type OAuthConfig struct {
	GoogleClientID     string `mapstructure:"google_client_id"`
	GoogleClientSecret string `mapstructure:"google_client_secret"`
	GoogleRedirectURL  string `mapstructure:"google_redirect_url"`
}

type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name"`
	APIKey    string `mapstructure:"api_key"`
	APISecret string `mapstructure:"api_secret"`
	Folder    string `mapstructure:"folder"`
}

type FirebaseConfig struct {
	ServiceAccountPath string `mapstructure:"service_account_path"`
}

// RedisConfig points at the instance that carries the outgoing email queue.
// An empty URL makes the server log emails instead of queueing them.
type RedisConfig struct {
	URL string `mapstructure:"url"`
}

type MailConfig struct {
	QueueKey   string `mapstructure:"queue_key"`
	AppBaseURL string `mapstructure:"app_base_url"`
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputFile string `mapstructure:"output_file"`
}

// ApplicationsConfig.EnforceTransitions switches application status updates from
// free-form writes to the transition table in internal/domain.
type ApplicationsConfig struct {
	EnforceTransitions bool `mapstructure:"enforce_transitions"`
}

type ReminderConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Spec    string        `mapstructure:"spec"`
	Window  time.Duration `mapstructure:"window"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CacheConfig struct {
	UserTTL time.Duration `mapstructure:"user_ttl"`
}

// AdminConfig seeds the first admin account on startup when both fields are set.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

const defaultConfigPath = "./configs/config.yaml"

var envBindings = map[string]string{
	"server.port":                      "PORT",
	"server.env":                       "APP_ENV",
	"database.driver":                  "DB_DRIVER",
	"database.dsn":                     "DB_DSN",
	"jwt.access_secret":                "JWT_ACCESS_SECRET",
	"jwt.refresh_secret":               "JWT_REFRESH_SECRET",
	"oauth.google_client_id":           "GOOGLE_CLIENT_ID",
	"oauth.google_client_secret":       "GOOGLE_CLIENT_SECRET",
	"oauth.google_redirect_url":        "GOOGLE_REDIRECT_URL",
	"cloudinary.cloud_name":            "CLOUDINARY_CLOUD_NAME",
	"cloudinary.api_key":               "CLOUDINARY_API_KEY",
	"cloudinary.api_secret":            "CLOUDINARY_API_SECRET",
	"firebase.service_account_path":    "FIREBASE_SERVICE_ACCOUNT_PATH",
	"redis.url":                        "REDIS_URL",
	"mail.app_base_url":                "APP_BASE_URL",
	"logger.level":                     "LOG_LEVEL",
	"applications.enforce_transitions": "ENFORCE_STATUS_TRANSITIONS",
	"admin.email":                      "ADMIN_EMAIL",
	"admin.password":                   "ADMIN_PASSWORD",
}

// Load reads .env, an optional YAML file (CONFIG_PATH) and the environment, in
// increasing order of precedence.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	path := defaultConfigPath
	if p, ok := os.LookupEnv("CONFIG_PATH"); ok {
		path = p
	}
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8099")
	v.SetDefault("server.env", "development")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "hireboard.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("jwt.access_secret", "change-me-in-production")
	v.SetDefault("jwt.refresh_secret", "change-me-refresh")
	v.SetDefault("jwt.access_expiry", 15*time.Minute)
	v.SetDefault("jwt.refresh_expiry", 168*time.Hour)
	v.SetDefault("jwt.issuer", "hireboard")

	v.SetDefault("cloudinary.folder", "hireboard")

	v.SetDefault("mail.queue_key", "hireboard:mail:outbox")
	v.SetDefault("mail.app_base_url", "http://localhost:3000")

	v.SetDefault("logger.level", "INFO")

	v.SetDefault("applications.enforce_transitions", false)

	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.spec", "@every 15m")
	v.SetDefault("reminders.window", 24*time.Hour)

	v.SetDefault("rate_limit.requests_per_second", 5.0)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("cache.user_ttl", 10*time.Minute)

	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
}

func (c *Config) IsProduction() bool { return c.Server.Env == "production" }

func (c *Config) validate() error {
	var errs []error
	if err := c.Database.validate(); err != nil {
		errs = append(errs, fmt.Errorf("database: %w", err))
	}
	if err := c.JWT.validate(c.IsProduction()); err != nil {
		errs = append(errs, fmt.Errorf("jwt: %w", err))
	}
	if c.Reminders.Enabled && c.Reminders.Spec == "" {
		errs = append(errs, errors.New("reminders: spec is required when enabled"))
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		errs = append(errs, errors.New("rate_limit: requests_per_second and burst must be positive"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

func (d DatabaseConfig) validate() error {
	switch d.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported driver %q", d.Driver)
	}
	if d.DSN == "" {
		return errors.New("missing dsn")
	}
	return nil
}

func (j JWTConfig) validate(production bool) error {
	if j.AccessSecret == "" || j.RefreshSecret == "" {
		return errors.New("access and refresh secrets are required")
	}
	if production && strings.HasPrefix(j.AccessSecret, "change-me") {
		return errors.New("default access secret used in production")
	}
	return nil
}
