package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr       string // Адрес HTTP-сервера
	DSN        string // Путь к файлу базы SQLite
	SchemaPath string // Путь к файлу схемы
	HTMLDir    string // Каталог HTML-шаблонов
	StaticDir  string // Каталог статики
	MediaDir   string // Каталог загруженных изображений
}

// Load читает настройки из окружения (и .env, если он есть)
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:       getEnv("ADDR", ":4000"),
		DSN:        getEnv("DSN", "./blogicum.db"),
		SchemaPath: getEnv("SCHEMA_PATH", "./blogicum.sql"),
		HTMLDir:    getEnv("HTML_DIR", "./ui/html"),
		StaticDir:  getEnv("STATIC_DIR", "./ui/static"),
		MediaDir:   getEnv("MEDIA_DIR", "./media"),
	}
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
