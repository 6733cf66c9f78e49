// Package config loads service configuration.
//
// Values come from three layers, later ones winning: built-in defaults, an
// optional TOML file, and BANNERS_* environment variables. The merged result
// is validated before use.
package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "BANNERS_"

// Config is the full service configuration.
type Config struct {
	Log      LogConfig      `toml:"log"`
	Server   ServerConfig   `toml:"server"`
	Cache    CacheConfig    `toml:"cache"`
	Store    StoreConfig    `toml:"store"`
	Upstream UpstreamConfig `toml:"upstream"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `toml:"level" validate:"oneof=debug info warn error"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Addr            string        `toml:"addr" validate:"required"`
	ReadTimeout     time.Duration `toml:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `toml:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" validate:"gt=0"`
}

// CacheConfig configures the entity cache.
type CacheConfig struct {
	Driver        string        `toml:"driver" validate:"oneof=none memory file redis"`
	EntityTTL     time.Duration `toml:"entity_ttl" validate:"gt=0"`
	ServerTTL     time.Duration `toml:"server_ttl" validate:"gt=0"`
	Prefix        string        `toml:"prefix"`
	SweepInterval time.Duration `toml:"sweep_interval" validate:"gte=0"`
	Dir           string        `toml:"dir" validate:"required_if=Driver file"`
	RedisAddr     string        `toml:"redis_addr" validate:"required_if=Driver redis"`
	RedisPassword string        `toml:"redis_password"`
	RedisDB       int           `toml:"redis_db" validate:"gte=0"`
}

// StoreConfig configures saved-banner persistence.
type StoreConfig struct {
	Driver          string `toml:"driver" validate:"oneof=memory mongo"`
	MongoURI        string `toml:"mongo_uri" validate:"required_if=Driver mongo"`
	MongoDatabase   string `toml:"mongo_database" validate:"required_if=Driver mongo"`
	MongoCollection string `toml:"mongo_collection"`
}

// UpstreamConfig configures the marketplace clients.
type UpstreamConfig struct {
	Timeout       time.Duration `toml:"timeout" validate:"gt=0"`
	Attempts      int           `toml:"attempts" validate:"gte=1,lte=5"`
	RetryDelay    time.Duration `toml:"retry_delay" validate:"gte=0"`
	Rate          float64       `toml:"rate" validate:"gte=0"`
	Burst         int           `toml:"burst" validate:"gte=0"`
	MaxImageBytes int64         `toml:"max_image_bytes" validate:"gt=0"`

	OreAPIKey        string `toml:"ore_api_key"`
	CurseForgeAPIKey string `toml:"curseforge_api_key"`
	BuiltByBitToken  string `toml:"builtbybit_token"`

	// BaseURLs overrides API roots by backend name, plus "mcapi" for the
	// server-ping service.
	BaseURLs map[string]string `toml:"base_urls" validate:"dive,url"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Cache: CacheConfig{
			Driver:        "memory",
			EntityTTL:     10 * time.Minute,
			ServerTTL:     time.Minute,
			SweepInterval: 5 * time.Minute,
		},
		Store: StoreConfig{
			Driver:        "memory",
			MongoDatabase: "banners",
		},
		Upstream: UpstreamConfig{
			Timeout:       10 * time.Second,
			Attempts:      1,
			RetryDelay:    250 * time.Millisecond,
			Rate:          5,
			Burst:         10,
			MaxImageBytes: 2 << 20,
		},
	}
}

// Load reads path (if non-empty) over the defaults, applies environment
// overrides and validates the result. A missing file is an error only when
// required is set.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !stderrors.Is(err, fs.ErrNotExist) || required {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		}
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes TOML data over the defaults without touching the environment.
func Parse(data string) (*Config, error) {
	cfg := Default()
	if _, err := toml.Decode(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	var errs []error
	dur := func(name string, dst *time.Duration) {
		if v, ok := lookup(EnvPrefix + name); ok {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = d
		}
	}
	integer := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}

	str("LOG_LEVEL", &c.Log.Level)
	str("ADDR", &c.Server.Addr)
	str("CACHE_DRIVER", &c.Cache.Driver)
	str("CACHE_DIR", &c.Cache.Dir)
	str("CACHE_PREFIX", &c.Cache.Prefix)
	dur("CACHE_TTL", &c.Cache.EntityTTL)
	dur("CACHE_SWEEP_INTERVAL", &c.Cache.SweepInterval)
	str("REDIS_ADDR", &c.Cache.RedisAddr)
	str("REDIS_PASSWORD", &c.Cache.RedisPassword)
	integer("REDIS_DB", &c.Cache.RedisDB)
	str("STORE_DRIVER", &c.Store.Driver)
	str("MONGO_URI", &c.Store.MongoURI)
	str("MONGO_DATABASE", &c.Store.MongoDatabase)
	dur("UPSTREAM_TIMEOUT", &c.Upstream.Timeout)
	integer("UPSTREAM_ATTEMPTS", &c.Upstream.Attempts)
	str("ORE_API_KEY", &c.Upstream.OreAPIKey)
	str("CURSEFORGE_API_KEY", &c.Upstream.CurseForgeAPIKey)
	str("BUILTBYBIT_TOKEN", &c.Upstream.BuiltByBitToken)

	if v, ok := lookup(EnvPrefix + "MCAPI_URL"); ok {
		if c.Upstream.BaseURLs == nil {
			c.Upstream.BaseURLs = map[string]string{}
		}
		c.Upstream.BaseURLs["mcapi"] = v
	}
	return stderrors.Join(errs...)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("toml"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks every field constraint and reports all violations.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !stderrors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", strings.TrimPrefix(e.Namespace(), "Config."), friendly(e)))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func friendly(e validator.FieldError) string {
	switch e.Tag() {
	case "required", "required_if":
		return "is required"
	case "oneof":
		return "must be one of " + e.Param()
	case "gt":
		return "must be greater than " + e.Param()
	case "gte":
		return "must be at least " + e.Param()
	case "lte":
		return "must be at most " + e.Param()
	case "url":
		return "must be a valid URL"
	default:
		return "failed " + e.Tag()
	}
}
