package main

import (
	"database/sql"
	"log"
	"time"

	"tg_chats/internal/auth"
	"tg_chats/internal/config"
	"tg_chats/internal/middleware"
	tghandlers "tg_chats/internal/telegram"
	"tg_chats/pkg/storage"
	tgsvc "tg_chats/pkg/telegram"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализация подключения к БД
	dbConn, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer dbConn.Close()

	// Проверка подключения
	if err := dbConn.Ping(); err != nil {
		log.Fatalf("Database ping failed: %v", err)
	}

	db := storage.NewDB(dbConn)

	var proxy *tgsvc.Proxy
	if cfg.Telegram.ProxyAddr != "" {
		proxy = &tgsvc.Proxy{
			Addr:     cfg.Telegram.ProxyAddr,
			Login:    cfg.Telegram.ProxyLogin,
			Password: cfg.Telegram.ProxyPassword,
		}
	}
	service := tgsvc.NewService(cfg.Telegram.APIID, cfg.Telegram.APIHash, proxy)

	// Настройка роутера
	r := setupRouter(cfg, db, service)

	// Запуск сервера
	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// Настройка маршрутов
func setupRouter(cfg *config.Config, db *storage.DB, service *tgsvc.Service) *gin.Engine {
	r := gin.Default()
	secret := []byte(cfg.JWTSecret)

	// Публичные роуты регистрации и входа
	authGroup := r.Group("/auth")
	auth.SetupRoutes(authGroup, db, secret)

	// Роуты Telegram-интеграции, доступны только с Bearer-токеном
	timeout := time.Duration(cfg.Telegram.RequestTimeout) * time.Second
	h := tghandlers.NewHandler(service, db, secret, timeout)
	telegramGroup := r.Group("/telegram")
	telegramGroup.Use(middleware.AuthRequired(db, secret))
	tghandlers.SetupRoutes(telegramGroup, h)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Логирование зарегистрированных роутов
	log.Printf("[ROUTER] Routes initialized:")
	log.Printf("[ROUTER] POST /auth/register")
	log.Printf("[ROUTER] POST /auth/login")
	log.Printf("[ROUTER] POST /telegram/auth/start")
	log.Printf("[ROUTER] POST /telegram/auth/verify-code")
	log.Printf("[ROUTER] POST /telegram/auth/verify-2fa")
	log.Printf("[ROUTER] GET /telegram/disconnect")
	log.Printf("[ROUTER] GET /telegram/chats")
	log.Printf("[ROUTER] GET /telegram/chats/:chat_id/messages")
	log.Printf("[ROUTER] GET /health")

	return r
}
