package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the OmniMind backend.
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	Databases DatabasesConfig `mapstructure:"databases"`
	Sources   SourcesConfig   `mapstructure:"sources"`
	Vault     VaultConfig     `mapstructure:"vault"`
	Trending  TrendingConfig  `mapstructure:"trending"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug     bool   `mapstructure:"debug"`
	LogLevel  string `mapstructure:"log_level"`
	JWTSecret string `mapstructure:"jwt_secret"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Listen      string `mapstructure:"listen"`
	FrontendURL string `mapstructure:"frontend_url"`
	JWTSecret   string `mapstructure:"jwt_secret"`
}

// DatabasesConfig groups backing-store connections.
type DatabasesConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// PostgresConfig contains relational storage settings.
type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN renders the connection string, preferring an explicit URL.
func (p PostgresConfig) DSN() string {
	if strings.TrimSpace(p.URL) != "" {
		return p.URL
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl)
}

func (p PostgresConfig) Validate() error {
	if strings.TrimSpace(p.URL) != "" {
		return nil
	}
	if strings.TrimSpace(p.Host) == "" {
		return fmt.Errorf("databases.postgres.host required when url is not provided")
	}
	if strings.TrimSpace(p.DBName) == "" {
		return fmt.Errorf("databases.postgres.dbname required when url is not provided")
	}
	return nil
}

// RedisConfig contains cache/lock settings. Redis is optional: an
// empty host disables the trending cache and refresher.
type RedisConfig struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
	Pass string `mapstructure:"pass"`
	DB   int    `mapstructure:"db"`
}

// Enabled reports whether a redis instance is configured.
func (r RedisConfig) Enabled() bool { return strings.TrimSpace(r.Host) != "" }

// Addr renders host:port for the redis client.
func (r RedisConfig) Addr() string {
	port := r.Port
	if port == "" {
		port = "6379"
	}
	return fmt.Sprintf("%s:%s", r.Host, port)
}

// SourcesConfig contains per-provider search settings. An empty API
// key means the provider is not configured and its fetcher yields an
// empty result without a network call.
type SourcesConfig struct {
	NewsAPI   NewsAPIConfig   `mapstructure:"newsapi"`
	WebSearch WebSearchConfig `mapstructure:"web_search"`
	Academic  AcademicConfig  `mapstructure:"academic"`
}

// NewsAPIConfig contains NewsAPI settings.
type NewsAPIConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// WebSearchConfig contains web search provider settings.
// Provider selects the backend: "brave" or "serper".
type WebSearchConfig struct {
	Provider string        `mapstructure:"provider"`
	APIKey   string        `mapstructure:"api_key"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// AcademicConfig contains academic paper search settings.
type AcademicConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// VaultConfig contains personal vault encryption settings.
type VaultConfig struct {
	EncryptionKey string `mapstructure:"encryption_key"`
}

func (v VaultConfig) Validate() error {
	if len(v.EncryptionKey) < 16 {
		return fmt.Errorf("vault.encryption_key must be at least 16 characters")
	}
	return nil
}

// TrendingConfig controls the trending news cache and its refresher.
type TrendingConfig struct {
	Schedule string        `mapstructure:"schedule"`
	TTL      time.Duration `mapstructure:"ttl"`
	Regions  []string      `mapstructure:"regions"`
	Limit    int           `mapstructure:"limit"`
}

// Normalize applies defaults for unset trending values.
func (t TrendingConfig) Normalize() TrendingConfig {
	if strings.TrimSpace(t.Schedule) == "" {
		t.Schedule = "@hourly"
	}
	if t.TTL <= 0 {
		t.TTL = 2 * time.Hour
	}
	if len(t.Regions) == 0 {
		t.Regions = []string{"global"}
	}
	if t.Limit <= 0 {
		t.Limit = 10
	}
	return t
}

// LoadConfig loads config from an optional json file plus OMNIMIND_*
// environment variables. A missing file is not an error; everything
// has a default or can come from the environment.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")

	v.SetDefault("server.listen", ":8000")
	v.SetDefault("server.frontend_url", "http://localhost:3000")
	v.SetDefault("sources.newsapi.endpoint", "https://newsapi.org/v2/everything")
	v.SetDefault("sources.newsapi.timeout", 15*time.Second)
	v.SetDefault("sources.web_search.provider", "brave")
	v.SetDefault("sources.web_search.timeout", 15*time.Second)
	v.SetDefault("sources.academic.endpoint", "https://api.semanticscholar.org/graph/v1/paper/search")
	v.SetDefault("sources.academic.timeout", 15*time.Second)
	v.SetDefault("trending.schedule", "@hourly")
	v.SetDefault("trending.ttl", 2*time.Hour)

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("OMNIMIND")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || path != "" {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.Trending = cfg.Trending.Normalize()
	return &cfg, nil
}
