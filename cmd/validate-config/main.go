package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/recipe-planner/internal/config"
)

func main() {
	fmt.Println("🔍 Проверка конфигурации...")

	// Загружаем .env файл если есть
	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️  .env файл не найден: %v\n", err)
	}

	// Загружаем и валидируем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Ошибка валидации конфигурации:\n%v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Конфигурация валидна!")
	fmt.Printf("📋 Детали конфигурации:\n")
	fmt.Printf("  - HTTP Port: %s\n", cfg.HTTPPort)
	fmt.Printf("  - JWT Secret: %s\n", maskSecret(cfg.JWTSecret))
	fmt.Printf("  - Storage: %s\n", cfg.Storage)
	fmt.Printf("  - Telegram Token: %s\n", maskSecret(cfg.TelegramToken))
	if cfg.Storage == config.StoragePostgres {
		fmt.Printf("  - DB: %s@%s:%s/%s (sslmode=%s)\n", cfg.DB.User, cfg.DB.Host, cfg.DB.Port, cfg.DB.DBName, cfg.DB.SSLMode)
	}
	fmt.Printf("  - Redis: %s\n", orUnset(cfg.Redis.Addr))
	fmt.Printf("  - Log Level: %s\n", cfg.Logger.LoggerSettings().Level)
	fmt.Printf("  - Log Output: %s\n", cfg.Logger.OutputPath)
	fmt.Printf("  - Log Format: %s\n", cfg.Logger.Format)
}

func orUnset(v string) string {
	if v == "" {
		return "<не установлен>"
	}
	return v
}

func maskSecret(secret string) string {
	if secret == "" {
		return "<не установлен>"
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
