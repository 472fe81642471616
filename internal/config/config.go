package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const EnvPrefix = "TEAMTASKS"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Storage   StorageConfig   `mapstructure:"storage"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Worker    WorkerConfig    `mapstructure:"worker"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
}

type LoggingConfig struct {
	Development bool   `mapstructure:"development"`
	Level       string `mapstructure:"level"`
}

type StorageConfig struct {
	Type     string         `mapstructure:"type"` // file, memory, sqlite, postgres или redis
	Key      string         `mapstructure:"key"`
	File     FileConfig     `mapstructure:"file"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type FileConfig struct {
	Dir string `mapstructure:"dir"` // пусто - каталог конфигурации пользователя
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
}

type PostgresConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int32         `mapstructure:"max_connections"`
	MinConnections int32         `mapstructure:"min_connections"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	Migrate        bool          `mapstructure:"migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Prefix   string `mapstructure:"prefix"`
}

type RateLimitConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	TrustHeaders bool          `mapstructure:"trust_headers"`
	Interval     time.Duration `mapstructure:"interval"`
	Burst        int           `mapstructure:"burst"`
	CacheSize    int           `mapstructure:"cache_size"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

type WorkerConfig struct {
	Interval time.Duration `mapstructure:"interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 15*time.Second)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("logging.development", false)
	v.SetDefault("logging.level", "")

	v.SetDefault("storage.type", "file")
	v.SetDefault("storage.key", "tasks")
	v.SetDefault("storage.file.dir", "")
	v.SetDefault("storage.sqlite.path", "tasks.db")
	v.SetDefault("storage.postgres.url", "")
	v.SetDefault("storage.postgres.max_connections", 10)
	v.SetDefault("storage.postgres.min_connections", 2)
	v.SetDefault("storage.postgres.idle_timeout", 5*time.Minute)
	v.SetDefault("storage.postgres.migrate", true)
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.prefix", "teamtasks:")

	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.trust_headers", false)
	v.SetDefault("ratelimit.interval", 600*time.Millisecond)
	v.SetDefault("ratelimit.burst", 100)
	v.SetDefault("ratelimit.cache_size", 1024)
	v.SetDefault("ratelimit.cache_ttl", 10*time.Minute)

	v.SetDefault("worker.interval", time.Minute)
}

// Load читает настройки из файла path (если он задан) или из config.yml в текущем каталоге.
// Переменные окружения TEAMTASKS_* перекрывают значения из файла, например TEAMTASKS_STORAGE_TYPE
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("не могу прочитать %s: %w", path, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("ошибка парсинга config.yml: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("ошибка разбора настроек: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "file", "memory", "sqlite", "redis":
	case "postgres":
		if c.Storage.Postgres.URL == "" {
			return errors.New("storage.postgres.url обязателен для хранилища postgres")
		}
	default:
		return fmt.Errorf("неизвестный тип хранилища %q", c.Storage.Type)
	}
	if c.Storage.Key == "" {
		return errors.New("storage.key не может быть пустым")
	}
	if c.Worker.Interval <= 0 {
		return fmt.Errorf("worker.interval должен быть положительным, получено %s", c.Worker.Interval)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}
