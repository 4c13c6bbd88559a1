package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
}

type ServerConfig struct {
	Environment     string        `mapstructure:"environment"`
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// Timezone is the location "today" is taken in when a predicate needs the current date.
	Timezone string `mapstructure:"timezone"`
}

// RedisConfig is optional. An empty Addr keeps rate limiting process-local.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type AuthConfig struct {
	SigningKey     string        `mapstructure:"signing_key"`
	AccessTokenTTL time.Duration `mapstructure:"access_token_ttl"`

	// SDKKeys are the API keys reward-issuance clients present in X-Loyalty-Key.
	SDKKeys []string `mapstructure:"sdk_keys"`
	DevMode bool     `mapstructure:"dev_mode"`
}

type RateLimitConfig struct {
	RequestsPerSecond int `mapstructure:"requests_per_second"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.environment", "dev")
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.timezone", "UTC")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.access_token_ttl", 15*time.Minute)
	v.SetDefault("auth.sdk_keys", []string{})
	v.SetDefault("auth.dev_mode", false)
	v.SetDefault("ratelimit.requests_per_second", 50)
}

func Load() *Config {
	cfg, err := LoadFrom(viper.New(), ".", "./config")
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadFrom reads config.yaml from the given paths, then applies LOYALTY_* environment overrides.
func LoadFrom(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("LOYALTY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if _, err := time.LoadLocation(c.Server.Timezone); err != nil {
		return errors.New("server.timezone is invalid: " + err.Error())
	}
	if c.Auth.SigningKey == "" && !c.Auth.DevMode {
		return errors.New("auth.signing_key is required outside dev mode")
	}
	return nil
}
