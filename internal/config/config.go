// Package config loads application configuration from a yaml file and the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override. Nested keys are separated
// by a double underscore: HOTELDESK_STORAGE__DATA_DIR sets storage.data_dir.
const EnvPrefix = "HOTELDESK_"

// Config is the application configuration.
type Config struct {
	Log       LogConfig       `koanf:"log"`
	Storage   StorageConfig   `koanf:"storage"`
	Bootstrap BootstrapConfig `koanf:"bootstrap"`
	Auth      AuthConfig      `koanf:"auth"`
	Metrics   MetricsConfig   `koanf:"metrics"`
}

// LogConfig configures slog output.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// StorageConfig locates the account stores and booking ledgers.
type StorageConfig struct {
	DataDir      string `koanf:"data_dir" validate:"required"`
	AdminFile    string `koanf:"admin_file" validate:"required"`
	StaffFile    string `koanf:"staff_file" validate:"required"`
	CustomerFile string `koanf:"customer_file" validate:"required"`
	RoomsFile    string `koanf:"rooms_file" validate:"required"`
	FoodFile     string `koanf:"food_file" validate:"required"`
	EventsFile   string `koanf:"events_file" validate:"required"`
}

// BootstrapConfig holds the default admin created on first start.
type BootstrapConfig struct {
	AdminUsername string `koanf:"admin_username" validate:"required,excludesall=0x2C"`
	AdminPassword string `koanf:"admin_password" validate:"required"`
}

// AuthConfig configures password storage and login throttling.
type AuthConfig struct {
	PasswordScheme string  `koanf:"password_scheme" validate:"oneof=plaintext bcrypt"`
	BcryptCost     int     `koanf:"bcrypt_cost" validate:"gte=0,lte=31"`
	LoginRate      float64 `koanf:"login_rate" validate:"gte=0"`
	LoginBurst     int     `koanf:"login_burst" validate:"gte=0"`
}

// MetricsConfig configures the optional Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `koanf:"enabled"`
	Host    string `koanf:"host"`
	Port    string `koanf:"port" validate:"required_if=Enabled true"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Storage: StorageConfig{
			DataDir:      "data",
			AdminFile:    "admins.txt",
			StaffFile:    "staff.txt",
			CustomerFile: "users.txt",
			RoomsFile:    "bookings.txt",
			FoodFile:     "food.txt",
			EventsFile:   "event.txt",
		},
		Bootstrap: BootstrapConfig{
			AdminUsername: "admin",
			AdminPassword: "admin123",
		},
		Auth: AuthConfig{
			PasswordScheme: "plaintext",
			LoginRate:      1,
			LoginBurst:     5,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    "9090",
		},
	}
}

// Load reads configuration from path (optional, may be empty) and then
// from HOTELDESK_ environment variables.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}
