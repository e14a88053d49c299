package config

import (
	"time"

	"github.com/weiawesome/wes-storefront-gateway/internal/ai"
	"github.com/weiawesome/wes-storefront-gateway/internal/notify"
	"github.com/weiawesome/wes-storefront-gateway/internal/ratelimit"
	"github.com/weiawesome/wes-storefront-gateway/internal/shopify"
	pkgconfig "github.com/weiawesome/wes-storefront-gateway/pkg/config"
	"github.com/weiawesome/wes-storefront-gateway/pkg/database"
)

type Config struct {
	Server    ServerConfig
	Shopify   shopify.Config
	Gemini    ai.GeminiConfig
	Resolver  ai.ResolverConfig
	Search    SearchConfig
	RateLimit ratelimit.Config `mapstructure:"rate_limit"`
	Redis     RedisConfig
	Database  database.Config
	Mail      notify.Config
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type SearchConfig struct {
	CatalogTTL time.Duration `mapstructure:"catalog_ttl"`
	PageSize   int           `mapstructure:"page_size"`
	ResultTTL  time.Duration `mapstructure:"result_ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
	EvictBatch int           `mapstructure:"evict_batch"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type LogConfig struct {
	Level  string
	Pretty bool
}

func Load() (*Config, error) {
	v, err := pkgconfig.Load("./config", "config")
	if err != nil {
		return nil, err
	}

	// Set defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("shopify.api_version", "2024-10")
	v.SetDefault("shopify.timeout", "30s")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
	v.SetDefault("resolver.max_attempts", 3)
	v.SetDefault("resolver.base_backoff", "1s")
	v.SetDefault("resolver.attempt_timeout", "30s")
	v.SetDefault("search.catalog_ttl", "10m")
	v.SetDefault("search.page_size", 250)
	v.SetDefault("search.result_ttl", "5m")
	v.SetDefault("search.max_entries", 100)
	v.SetDefault("search.evict_batch", 20)
	v.SetDefault("rate_limit.driver", "memory")
	v.SetDefault("rate_limit.requests", 10)
	v.SetDefault("rate_limit.window", "1m")
	v.SetDefault("rate_limit.prefix", "ratelimit:search")
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.file_path", "gateway.db")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.conn_max_lifetime", 30)
	v.SetDefault("database.log_level", "warn")
	v.SetDefault("mail.provider", "log")
	v.SetDefault("mail.from", "Storefront <noreply@example.com>")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// Bind environment variables
	v.BindEnv("server.port", "PORT")
	v.BindEnv("shopify.shop_domain", "SHOPIFY_SHOP")
	v.BindEnv("shopify.access_token", "SHOPIFY_ACCESS_TOKEN")
	v.BindEnv("shopify.api_version", "SHOPIFY_API_VERSION")
	v.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	v.BindEnv("gemini.model", "GEMINI_MODEL")
	v.BindEnv("rate_limit.driver", "RATE_LIMIT_DRIVER")
	v.BindEnv("rate_limit.requests", "RATE_LIMIT_REQUESTS")
	v.BindEnv("rate_limit.window", "RATE_LIMIT_WINDOW")
	v.BindEnv("redis.address", "REDIS_ADDRESS")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("database.driver", "DB_DRIVER")
	v.BindEnv("database.host", "DB_HOST")
	v.BindEnv("database.port", "DB_PORT")
	v.BindEnv("database.user", "DB_USER")
	v.BindEnv("database.password", "DB_PASSWORD")
	v.BindEnv("database.dbname", "DB_NAME")
	v.BindEnv("database.file_path", "DB_FILE_PATH")
	v.BindEnv("mail.provider", "MAIL_PROVIDER")
	v.BindEnv("mail.api_key", "MAIL_API_KEY")
	v.BindEnv("mail.from", "MAIL_FROM")
	v.BindEnv("mail.admin_email", "ADMIN_EMAIL")
	v.BindEnv("log.level", "LOG_LEVEL")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
