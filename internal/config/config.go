package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server        Server        `toml:"server"`
	Database      Database      `toml:"database"`
	Redis         Redis         `toml:"redis"`
	Logs          Logs          `toml:"logs"`
	Metrics       Metrics       `toml:"metrics"`
	Auth          Auth          `toml:"auth"`
	Booking       Booking       `toml:"booking"`
	Notifications Notifications `toml:"notifications"`
	Mailer        Mailer        `toml:"mailer"`
	RateLimit     RateLimit     `toml:"ratelimit"`
}

// Server настройки HTTP сервера, таймауты в секундах
type Server struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// Database настройки подключения к PostgreSQL
type Database struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d Database) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Redis общий Redis для кэша мастерских и очереди asynq
type Redis struct {
	Addr         string `toml:"addr"`
	Password     string `toml:"password"`
	DB           int    `toml:"db"`
	QueueDB      int    `toml:"queue_db"`
	CacheEnabled bool   `toml:"cache_enabled"`
	ShopCacheTTL int    `toml:"shop_cache_ttl"` // секунды
}

// Logs настройки логирования
type Logs struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Metrics настройки Prometheus
type Metrics struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// Auth настройки аутентификации владельцев мастерских.
// Пустой JWTSecret отключает проверку Bearer токенов
type Auth struct {
	JWTSecret         string `toml:"jwt_secret"`
	AllowUserIDHeader bool   `toml:"allow_user_id_header"`
}

// Booking настройки движка бронирования
type Booking struct {
	// Timezone часовой пояс, в котором считаются "сегодня" и "сейчас"
	Timezone string `toml:"timezone"`
}

// Location загружает часовой пояс бронирований
func (b Booking) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// Notifications настройки очереди уведомлений
type Notifications struct {
	Enabled     bool   `toml:"enabled"`
	Queue       string `toml:"queue"`
	MaxRetry    int    `toml:"max_retry"`
	TaskTimeout int    `toml:"task_timeout"` // секунды
	Concurrency int    `toml:"concurrency"`
}

// Mailer настройки HTTP API почтового сервиса
type Mailer struct {
	BaseURL string `toml:"base_url"`
	APIKey  string `toml:"api_key"`
	From    string `toml:"from"`
	Timeout int    `toml:"timeout"` // секунды
}

// RateLimit ограничение частоты создания бронирований на клиента
type RateLimit struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	Burst             int     `toml:"burst"`
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: Server{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: Database{
			Host:            "localhost",
			Port:            5432,
			User:            "fixwise",
			DBName:          "fixwise",
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Redis: Redis{
			Addr:         "localhost:6379",
			QueueDB:      1,
			CacheEnabled: true,
			ShopCacheTTL: 300,
		},
		Logs: Logs{
			Level: "info",
		},
		Metrics: Metrics{
			Enabled:     true,
			ServiceName: "fixwise-booking",
			Path:        "/metrics",
		},
		Auth: Auth{
			AllowUserIDHeader: true,
		},
		Booking: Booking{
			Timezone: "UTC",
		},
		Notifications: Notifications{
			Enabled:     true,
			Queue:       "notifications",
			MaxRetry:    5,
			TaskTimeout: 30,
			Concurrency: 10,
		},
		Mailer: Mailer{
			Timeout: 10,
		},
		RateLimit: RateLimit{
			Enabled:           true,
			RequestsPerSecond: 1,
			Burst:             5,
		},
	}
}

// Load читает TOML файл поверх значений по умолчанию, затем применяет
// переменные окружения и валидирует результат
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyEnv переопределяет секреты и адреса из окружения
func (c *Config) applyEnv() error {
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
	setString(&c.Logs.Level, "LOG_LEVEL")
	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Booking.Timezone, "BOOKING_TIMEZONE")
	setString(&c.Mailer.BaseURL, "MAILER_BASE_URL")
	setString(&c.Mailer.APIKey, "MAILER_API_KEY")
	setString(&c.Mailer.From, "MAILER_FROM")

	if err := setInt(&c.Database.Port, "DB_PORT"); err != nil {
		return err
	}
	return setInt(&c.Server.HTTPPort, "HTTP_PORT")
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
	}
	if c.Redis.Addr == "" && (c.Redis.CacheEnabled || c.Notifications.Enabled) {
		return fmt.Errorf("%w: redis.addr is required for cache and notifications", ErrInvalidConfig)
	}
	if _, err := c.Booking.Location(); err != nil {
		return fmt.Errorf("%w: booking.timezone: %v", ErrInvalidConfig, err)
	}
	if c.Metrics.Enabled && c.Metrics.Path == "" {
		return fmt.Errorf("%w: metrics.path is required when metrics are enabled", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" && !c.Auth.AllowUserIDHeader {
		return fmt.Errorf("%w: auth needs jwt_secret or allow_user_id_header", ErrInvalidConfig)
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0) {
		return fmt.Errorf("%w: ratelimit requires positive requests_per_second and burst", ErrInvalidConfig)
	}
	return nil
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
	}
	*dst = n
	return nil
}
