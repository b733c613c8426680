package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type AppCfg struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type LogCfg struct {
	Level string `mapstructure:"level"`
}

type DatabaseCfg struct {
	// Driver is "postgres" or "sqlite"
	Driver      string `mapstructure:"driver"`
	DSN         string `mapstructure:"dsn"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxIdle     int    `mapstructure:"max_idle"`
	EnableTLS   bool   `mapstructure:"enable_tls"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisCfg struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	PoolSize  int    `mapstructure:"pool_size"`
	EnableTLS bool   `mapstructure:"enable_tls"`
}

type RoutingKeyCfg struct {
	IdeaPromoted         string `mapstructure:"idea_promoted"`
	ProjectStatusChanged string `mapstructure:"project_status_changed"`
	ProjectDeleted       string `mapstructure:"project_deleted"`
}

type RabbitMQCfg struct {
	// URL empty disables domain events
	URL        string        `mapstructure:"url"`
	EnableTLS  bool          `mapstructure:"enable_tls"`
	Exchange   string        `mapstructure:"exchange"`
	RoutingKey RoutingKeyCfg `mapstructure:"routing_key"`
}

type AuthCfg struct {
	AccessSecret   string        `mapstructure:"access_secret"`
	RefreshSecret  string        `mapstructure:"refresh_secret"`
	AccessTTL      time.Duration `mapstructure:"access_ttl"`
	RefreshTTL     time.Duration `mapstructure:"refresh_ttl"`
	PasswordPepper string        `mapstructure:"password_pepper"`
	CookieSecure   bool          `mapstructure:"cookie_secure"`
}

type ProviderCfg struct {
	APIKey               string        `mapstructure:"api_key"`
	BaseURL              string        `mapstructure:"base_url"`
	Model                string        `mapstructure:"model"`
	Timeout              time.Duration `mapstructure:"timeout"`
	FeasibilityMaxTokens int           `mapstructure:"feasibility_max_tokens"`
}

type LLMCfg struct {
	// BaseURL is where the API process reaches the gateway
	BaseURL     string        `mapstructure:"base_url"`
	InternalKey string        `mapstructure:"internal_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
	GatewayPort int           `mapstructure:"gateway_port"`
	Provider    ProviderCfg   `mapstructure:"provider"`
}

type PredictorCfg struct {
	BaseURL     string        `mapstructure:"base_url"`
	InternalKey string        `mapstructure:"internal_key"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type CORSCfg struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

type TelemetryCfg struct {
	Enabled      bool    `mapstructure:"enabled"`
	OtlpEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRatio  float64 `mapstructure:"sample_ratio"`
}

type Config struct {
	App       AppCfg       `mapstructure:"app"`
	Log       LogCfg       `mapstructure:"log"`
	Database  DatabaseCfg  `mapstructure:"database"`
	Redis     RedisCfg     `mapstructure:"redis"`
	RabbitMQ  RabbitMQCfg  `mapstructure:"rabbitmq"`
	Auth      AuthCfg      `mapstructure:"auth"`
	LLM       LLMCfg       `mapstructure:"llm"`
	Predictor PredictorCfg `mapstructure:"predictor"`
	CORS      CORSCfg      `mapstructure:"cors"`
	Telemetry TelemetryCfg `mapstructure:"telemetry"`
}

const envPrefix = "GAMEFORGE"

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "gameforge-api")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 5000)

	v.SetDefault("log.level", "info")

	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.dsn", "host=localhost user=gameforge password=gameforge dbname=gameforge port=5432 sslmode=disable")
	v.SetDefault("database.max_open", 20)
	v.SetDefault("database.max_idle", 5)
	v.SetDefault("database.enable_tls", false)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.enable_tls", false)

	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("rabbitmq.enable_tls", false)
	v.SetDefault("rabbitmq.exchange", "gameforge.events")
	v.SetDefault("rabbitmq.routing_key.idea_promoted", "idea.promoted")
	v.SetDefault("rabbitmq.routing_key.project_status_changed", "project.status_changed")
	v.SetDefault("rabbitmq.routing_key.project_deleted", "project.deleted")

	v.SetDefault("auth.access_secret", "")
	v.SetDefault("auth.refresh_secret", "")
	v.SetDefault("auth.access_ttl", 15*time.Minute)
	v.SetDefault("auth.refresh_ttl", 7*24*time.Hour)
	v.SetDefault("auth.password_pepper", "")
	v.SetDefault("auth.cookie_secure", false)

	v.SetDefault("llm.base_url", "http://localhost:7000")
	v.SetDefault("llm.internal_key", "")
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("llm.gateway_port", 7000)
	v.SetDefault("llm.provider.api_key", "")
	v.SetDefault("llm.provider.base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("llm.provider.model", "llama-3.1-8b-instant")
	v.SetDefault("llm.provider.timeout", 25*time.Second)
	v.SetDefault("llm.provider.feasibility_max_tokens", 3000)

	v.SetDefault("predictor.base_url", "http://localhost:8000")
	v.SetDefault("predictor.internal_key", "")
	v.SetDefault("predictor.timeout", 30*time.Second)

	v.SetDefault("cors.allow_origins", []string{"http://localhost:5173", "http://127.0.0.1:5173"})

	v.SetDefault("telemetry.enabled", false)
	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.sample_ratio", 1.0)
}

// Load reads config.yaml (optional) and GAMEFORGE_* environment overrides.
// The file path comes from GAMEFORGE_CONFIG when set.
func Load() (*Config, error) {
	return LoadFile(os.Getenv(envPrefix + "_CONFIG"))
}

func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings the API server cannot start without.
func (c *Config) Validate() error {
	if c.Auth.AccessSecret == "" || c.Auth.RefreshSecret == "" {
		return errors.New("auth.access_secret and auth.refresh_secret must be set")
	}
	if c.Auth.AccessSecret == c.Auth.RefreshSecret {
		return errors.New("auth.access_secret and auth.refresh_secret must differ")
	}
	return nil
}
