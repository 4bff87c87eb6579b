// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// EnvLocal — окружение разработчика. Только в нём допускается dev-ключ подписи.
const EnvLocal = "local"

// DevSigningKey — ключ подписи токенов для локальной разработки.
// Никогда не используется вне env: local.
const DevSigningKey = "dev-only-insecure-signing-key-do-not-use-in-production"

// ErrSigningKeyMissing возвращается, если SECRET_KEY не задан вне локального окружения.
var ErrSigningKeyMissing = errors.New("SECRET_KEY is not set")

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	BasicAuth               `yaml:"basic_auth"`
	RabbitMQ                `yaml:"rabbitmq"`
	Telegram                `yaml:"telegram"`

	// DevSigningKeyInUse выставляется, когда JWTSecretKey подменён на DevSigningKey.
	DevSigningKeyInUse bool `yaml:"-"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string `yaml:"jwt_secret_key" env:"SECRET_KEY"`
}

// BasicAuth — учётные данные для служебных эндпоинтов (бот, админка, вебхук).
type BasicAuth struct {
	APIUser string `yaml:"api_user" env:"API_USER"`
	APIPass string `yaml:"api_pass" env:"API_PASS"`
}

// RabbitMQ структура для подключения к брокеру сообщений
type RabbitMQ struct {
	RabbitMQURL        string        `yaml:"url" env:"RABBITMQ_URL"`
	RabbitMQMaxRetries int           `yaml:"max_retries" env-default:"5"`
	RabbitMQRetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Telegram структура для отправки уведомлений в Telegram
type Telegram struct {
	BotToken       string        `yaml:"bot_token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID         string        `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
	APIURL         string        `yaml:"api_url" env-default:"https://api.telegram.org"`
	RequestTimeout time.Duration `yaml:"request_timeout" env-default:"10s"`
}

// MustLoad функция для загрузки конфига, возвращает конфиг, сгенерированный из файла CONFIG_PATH
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// Load читает конфиг из файла и переменных окружения и применяет
// политику ключа подписи.
func Load(path string) (*Config, error) {
	const op = "config.Load"
	var cfg Config

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.resolveSigningKey(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

func (c *Config) resolveSigningKey() error {
	if c.JWTSecretKey != "" {
		return nil
	}
	if c.Env != EnvLocal {
		return ErrSigningKeyMissing
	}
	c.JWTSecretKey = DevSigningKey
	c.DevSigningKeyInUse = true
	return nil
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"MigrationsPath: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  User: %s\n"+
			"  DB: %d\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"JWTToken:\n"+
			"  JWTSecretKey: %s\n"+
			"BasicAuth:\n"+
			"  APIUser: %s\n"+
			"  APIPass: %s\n"+
			"RabbitMQ:\n"+
			"  MaxRetries: %d\n"+
			"Telegram:\n"+
			"  ChatID: %s\n",
		c.Env,
		mask(c.StorageConnectionString),
		c.MigrationsPath,
		c.AddressRedis,
		c.RedisConnection.User,
		c.DB,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		mask(c.JWTSecretKey),
		c.APIUser,
		mask(c.APIPass),
		c.RabbitMQMaxRetries,
		c.ChatID,
	)
}

func mask(secret string) string {
	if secret == "" {
		return "<unset>"
	}
	return "***"
}
