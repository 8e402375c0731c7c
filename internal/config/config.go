// Package config предоставляет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"development"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	HTTPServer              `yaml:"http_server"`
	JWTToken                `yaml:"jwttoken"`
	AIProvider              `yaml:"ai_provider"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"0.0.0.0:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"10s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// JWTToken структура для работы с jwt-токеном
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"168h"`
}

// AIProvider структура с настройками доступа к внешнему AI-сервису
type AIProvider struct {
	OpenRouterAPIKey string `yaml:"openrouter_api_key" env:"OPENROUTER_API_KEY"`
	OpenRouterURL    string `yaml:"openrouter_url" env-default:"https://openrouter.ai/api/v1"`
	Model            string `yaml:"model" env-default:"deepseek/deepseek-r1-0528:free"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и валидирует обязательные
// параметры. Процесс завершается сразу, если отсутствует секрет подписи токенов,
// строка подключения к базе или ключ AI-провайдера.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if cfg.JWTSecretKey == "" {
		log.Fatal("jwt_secret_key is required")
	}
	if cfg.StorageConnectionString == "" {
		log.Fatal("storage_connection_string is required")
	}
	if cfg.OpenRouterAPIKey == "" {
		log.Fatal("openrouter_api_key is required")
	}
	return &cfg
}
