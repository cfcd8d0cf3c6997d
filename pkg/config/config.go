package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required,oneof=development staging production"`
	Timezone    string `yaml:"timezone" default:"Asia/Riyadh" validate:"required"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080" validate:"gte=1,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"15s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
		SlowRequest     time.Duration `yaml:"slow_request" default:"500ms"`
		AdminToken      string        `yaml:"admin_token"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout" validate:"required"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path" default:"/metrics" validate:"startswith=/"`
	} `yaml:"metrics"`
	ClickHouse struct {
		Host             string        `yaml:"host" default:"localhost" validate:"required"`
		Port             int           `yaml:"port" default:"9000" validate:"gte=1,lte=65535"`
		Database         string        `yaml:"database" default:"astro" validate:"required"`
		User             string        `yaml:"user" default:"default"`
		Password         string        `yaml:"password"`
		UseHTTP          bool          `yaml:"use_http"`
		DialTimeout      time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout      time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout     time.Duration `yaml:"write_timeout" default:"30s"`
		MaxExecutionTime time.Duration `yaml:"max_execution_time" default:"60s"`
		NatalTable       string        `yaml:"natal_table" default:"natal_positions" validate:"required"`
		TransitTable     string        `yaml:"transit_table" default:"transit_samples" validate:"required"`
		MoonTable        string        `yaml:"moon_table" default:"moon_samples" validate:"required"`
		BreakerFailures  uint32        `yaml:"breaker_failures" default:"3" validate:"gte=1"`
		BreakerCooldown  time.Duration `yaml:"breaker_cooldown" default:"30s"`
	} `yaml:"clickhouse"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr" default:"localhost:6379" validate:"required_if=Enabled true"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db" validate:"gte=0"`
		Prefix   string `yaml:"prefix" default:"astrotrade"`
	} `yaml:"redis"`
	Kafka struct {
		Enabled      bool     `yaml:"enabled"`
		Brokers      []string `yaml:"brokers" validate:"required_if=Enabled true"`
		Topic        string   `yaml:"topic" default:"astro.moon.alerts" validate:"required"`
		RequiredAcks int      `yaml:"required_acks" default:"-1" validate:"oneof=-1 0 1"`
		Compression  string   `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
		Producer     struct {
			MaxAttempts  int           `yaml:"max_attempts" default:"3" validate:"gte=1"`
			Linger       time.Duration `yaml:"linger" default:"200ms"`
			BatchBytes   int           `yaml:"batch_bytes" default:"1048576"`
			BatchSize    int           `yaml:"batch_size" default:"100"`
			WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
			ReadTimeout  time.Duration `yaml:"read_timeout" default:"10s"`
			Async        bool          `yaml:"async"`
		} `yaml:"producer"`
	} `yaml:"kafka"`
	Scheduler struct {
		Enabled    bool          `yaml:"enabled"`
		ReloadSpec string        `yaml:"reload_spec" default:"0 0 */6 * * *"`
		AlertSpec  string        `yaml:"alert_spec" default:"0 5 0 * * *"`
		JobTimeout time.Duration `yaml:"job_timeout" default:"2m"`
	} `yaml:"scheduler"`
	Cache struct {
		AspectCapacity int           `yaml:"aspect_capacity" default:"2000" validate:"gte=1"`
		ResponseTTL    time.Duration `yaml:"response_ttl" default:"30s"`
	} `yaml:"cache"`
	RateLimit struct {
		RPS   float64 `yaml:"rps" default:"5" validate:"gt=0"`
		Burst int     `yaml:"burst" default:"10" validate:"gte=1"`
	} `yaml:"rate_limit"`
	Astro struct {
		Benefic    []string `yaml:"benefic" default:"[\"Venus\",\"Jupiter\"]" validate:"dive,required"`
		Malefic    []string `yaml:"malefic" default:"[\"Mars\",\"Saturn\",\"Pluto\"]" validate:"dive,required"`
		MoonColumn string   `yaml:"moon_column" default:"Moon Lng" validate:"required"`
	} `yaml:"astro"`
}

var validate = validator.New()

// Default returns a configuration holding only default values.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("config defaults: %w", err)
	}
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := parse(path)
	if err != nil {
		return nil, err
	}

	c.applyEnv(os.Getenv)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func parse(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	c, err := Default()
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return c, nil
}

func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("ASTRO_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := getenv("ADMIN_TOKEN"); v != "" {
		c.Server.AdminToken = v
	}
	if v := getenv("CLICKHOUSE_HOST"); v != "" {
		c.ClickHouse.Host = v
	}
	if v := getenv("CLICKHOUSE_PASSWORD"); v != "" {
		c.ClickHouse.Password = v
	}
	if v := getenv("REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := getenv("KAFKA_TOPIC"); v != "" {
		c.Kafka.Topic = v
	}
}

// Validate checks struct constraints and the timezone name.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the configured timezone. Call after Validate.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
