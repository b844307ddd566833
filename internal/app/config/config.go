package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const DefaultSourceURL = "https://jsonplaceholder.typicode.com/users"

type Config struct {
	App       AppConfig       `mapstructure:"app"`
	Source    SourceConfig    `mapstructure:"source"`
	Panel     PanelConfig     `mapstructure:"panel"`
	Routing   RoutingConfig   `mapstructure:"routing"`
	Reload    ReloadConfig    `mapstructure:"reload"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-"`
}

type AppConfig struct {
	Port int    `mapstructure:"port" validate:"min=1,max=65535"`
	Host string `mapstructure:"host"`
}

type SourceConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

type PanelConfig struct {
	Title     string `mapstructure:"title" validate:"required"`
	StaggerMS int    `mapstructure:"staggerMs" validate:"min=0"`
}

type RoutingConfig struct {
	PublicDir string `mapstructure:"publicDir"`
}

type ReloadConfig struct {
	Limit         int `mapstructure:"limit" validate:"min=0"`
	WindowSeconds int `mapstructure:"windowSeconds" validate:"min=1"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint" validate:"omitempty,url"`
	ServiceName string `mapstructure:"serviceName" validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from defaults, an optional YAML file and
// USERPANEL_* environment variables, in increasing order of precedence.
// A .env file in the working directory is loaded into the environment first.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("userpanel")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/userpanel")
	}

	v.SetEnvPrefix("USERPANEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if envPath := os.Getenv("USERPANEL_CONFIG"); envPath != "" && configPath == "" {
		v.SetConfigFile(envPath)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("error reading env config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", 3000)
	v.SetDefault("app.host", "0.0.0.0")

	v.SetDefault("source.url", DefaultSourceURL)

	v.SetDefault("panel.title", "User Directory")
	v.SetDefault("panel.staggerMs", 100)

	v.SetDefault("routing.publicDir", "./public")

	v.SetDefault("reload.limit", 30)
	v.SetDefault("reload.windowSeconds", 60)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.serviceName", "userpanel")
}

func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Telemetry.Enabled && c.Telemetry.Endpoint == "" {
		return fmt.Errorf("invalid config: telemetry.endpoint is required when telemetry is enabled")
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.App.Host, c.App.Port)
}

// Stagger is the delay between consecutive card reveals.
func (c *Config) Stagger() time.Duration {
	return time.Duration(c.Panel.StaggerMS) * time.Millisecond
}

func (c *Config) ReloadWindow() time.Duration {
	return time.Duration(c.Reload.WindowSeconds) * time.Second
}
