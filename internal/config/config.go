package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

type SessionBackend string

const (
	SessionBackendDatabase SessionBackend = "database"
	SessionBackendRedis    SessionBackend = "redis"
	SessionBackendMemory   SessionBackend = "memory"
	SessionBackendNone     SessionBackend = "none"
)

// Config holds the configuration for workoutlog.
type Config struct {
	// LogLevel is the default log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// Listen is the address the HTTP API listens on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// Timezone is the IANA time zone used to decide the calendar day of a toggle.
	// Empty means the local time zone of the host.
	Timezone string `yaml:"timezone" mapstructure:"timezone"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// Session holds the configuration of the durable session slot.
	Session *SessionConfig `yaml:"session" mapstructure:"session"`
	// Auth holds the password settings.
	Auth *AuthConfig `yaml:"auth" mapstructure:"auth"`
	// Workouts is the fixed exercise catalog, grouped by workout day.
	Workouts []WorkoutDay `yaml:"workouts" mapstructure:"workouts"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// SessionConfig holds the configuration of the session key-value backend.
type SessionConfig struct {
	// Backend is one of "database", "redis", "memory" or "none".
	Backend SessionBackend `yaml:"backend" mapstructure:"backend"`
	// RedisURL is the address of the redis server when using the redis backend.
	RedisURL string `yaml:"redis_url" mapstructure:"redis_url"`
}

// AuthConfig holds the password settings.
type AuthConfig struct {
	// BcryptCost is the bcrypt work factor used to hash passwords.
	BcryptCost int `yaml:"bcrypt_cost" mapstructure:"bcrypt_cost"`
	// MinPasswordLength is the minimum accepted password length on registration.
	MinPasswordLength int `yaml:"min_password_length" mapstructure:"min_password_length"`
}

// WorkoutDay groups the exercises of one workout day.
type WorkoutDay struct {
	// Day is the short identifier of the day (e.g. "a").
	Day string `yaml:"day" mapstructure:"day" json:"day"`
	// Name is the display name of the day.
	Name string `yaml:"name" mapstructure:"name" json:"name"`
	// Exercises is the list of exercises of this day.
	Exercises []Exercise `yaml:"exercises" mapstructure:"exercises" json:"exercises"`
}

// Exercise is a single entry of the catalog.
type Exercise struct {
	ID   string `yaml:"id" mapstructure:"id" json:"id"`
	Name string `yaml:"name" mapstructure:"name" json:"name"`
	Sets int    `yaml:"sets" mapstructure:"sets" json:"sets"`
	Reps string `yaml:"reps" mapstructure:"reps" json:"reps"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
// A missing config file is not an error, defaults are used instead.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.MustBindEnv("session.redis_url", "WORKOUTLOG_SESSION_REDIS_URL")

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("WORKOUTLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var configFileFound bool
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.workoutlog")
		v.AddConfigPath("/etc/workoutlog")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		configFileFound = true
	}

	if configFileFound {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	sanitizeConfig(&c)

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// Default returns the configuration used when no config file is present.
func Default() *Config {
	c := &Config{
		LogLevel: "info",
		Listen:   "127.0.0.1:3030",
		Database: &DatabaseConfig{Path: "./data/workoutlog.db"},
		Session:  &SessionConfig{Backend: SessionBackendDatabase},
		Auth:     &AuthConfig{BcryptCost: 10, MinPasswordLength: 6},
		Workouts: DefaultWorkouts(),
	}
	return c
}

// DefaultWorkouts returns the built-in three day catalog.
func DefaultWorkouts() []WorkoutDay {
	return []WorkoutDay{
		{
			Day:  "a",
			Name: "Day A - Push",
			Exercises: []Exercise{
				{ID: "pushups", Name: "Push-ups", Sets: 3, Reps: "12"},
				{ID: "dips", Name: "Dips", Sets: 3, Reps: "10"},
				{ID: "pike-pushups", Name: "Pike push-ups", Sets: 3, Reps: "8"},
			},
		},
		{
			Day:  "b",
			Name: "Day B - Pull",
			Exercises: []Exercise{
				{ID: "pullups", Name: "Pull-ups", Sets: 3, Reps: "6"},
				{ID: "rows", Name: "Inverted rows", Sets: 3, Reps: "10"},
				{ID: "plank", Name: "Plank", Sets: 3, Reps: "45s"},
			},
		},
		{
			Day:  "c",
			Name: "Day C - Legs",
			Exercises: []Exercise{
				{ID: "squats", Name: "Squats", Sets: 4, Reps: "15"},
				{ID: "lunges", Name: "Lunges", Sets: 3, Reps: "12"},
				{ID: "calf-raises", Name: "Calf raises", Sets: 3, Reps: "20"},
			},
		},
	}
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("listen", d.Listen)
	v.SetDefault("timezone", "")

	// Database defaults
	v.SetDefault("database.path", d.Database.Path)

	// Session defaults
	v.SetDefault("session.backend", d.Session.Backend)

	// Auth defaults
	v.SetDefault("auth.bcrypt_cost", d.Auth.BcryptCost)
	v.SetDefault("auth.min_password_length", d.Auth.MinPasswordLength)
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing workoutlog config")
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.Timezone != "" {
		if _, err := time.LoadLocation(c.Timezone); err != nil {
			return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
		}
	}

	if c.Session == nil {
		c.Session = &SessionConfig{Backend: SessionBackendDatabase}
	}
	switch c.Session.Backend {
	case SessionBackendDatabase, SessionBackendMemory, SessionBackendNone:
	case SessionBackendRedis:
		if c.Session.RedisURL == "" {
			return fmt.Errorf("redis URL is required when the redis session backend is enabled")
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}

	if c.Auth == nil {
		c.Auth = Default().Auth
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		return fmt.Errorf("bcrypt cost must be between 4 and 31")
	}
	if c.Auth.MinPasswordLength < 1 {
		return fmt.Errorf("min password length must be at least 1")
	}

	seen := make(map[string]string)
	for _, day := range c.Workouts {
		if day.Day == "" {
			return fmt.Errorf("workout day identifier is required")
		}
		for _, ex := range day.Exercises {
			if ex.ID == "" {
				return fmt.Errorf("workout day %q: exercise id is required", day.Day)
			}
			if other, ok := seen[ex.ID]; ok {
				return fmt.Errorf("exercise %q is defined in day %q and day %q", ex.ID, other, day.Day)
			}
			seen[ex.ID] = day.Day
		}
	}

	return nil
}

// sanitizeConfig sanitizes the configuration values.
func sanitizeConfig(c *Config) {
	if c == nil {
		return
	}

	c.Listen = strings.TrimSpace(c.Listen)
	c.Timezone = strings.TrimSpace(c.Timezone)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.Database != nil {
		c.Database.Path = strings.TrimSpace(c.Database.Path)
	}

	if c.Session != nil {
		c.Session.Backend = SessionBackend(strings.ToLower(strings.TrimSpace(string(c.Session.Backend))))
		c.Session.RedisURL = strings.TrimSpace(c.Session.RedisURL)
	}

	if len(c.Workouts) == 0 {
		c.Workouts = DefaultWorkouts()
	}
	for i := range c.Workouts {
		c.Workouts[i].Day = strings.ToLower(strings.TrimSpace(c.Workouts[i].Day))
		for j := range c.Workouts[i].Exercises {
			c.Workouts[i].Exercises[j].ID = strings.TrimSpace(c.Workouts[i].Exercises[j].ID)
		}
	}
}

// Location returns the time zone used to compute calendar days.
func (c *Config) Location() *time.Location {
	if c == nil || c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// GetBackend returns the session backend with proper defaults.
func (s *SessionConfig) GetBackend() SessionBackend {
	if s == nil || s.Backend == "" {
		return SessionBackendDatabase
	}
	return s.Backend
}
