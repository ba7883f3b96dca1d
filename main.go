package main

import (
	"database/sql"
	"log"
	"time"

	"homestock/internal/config"
	"homestock/internal/database"
	"homestock/internal/email"
	"homestock/internal/handlers"
	"homestock/internal/inventory"
	"homestock/internal/logger"
	"homestock/internal/middleware"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Initialize(logger.ParseLevel(cfg.LogLevel))

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	emailService := email.NewService(cfg)
	if emailService.IsEnabled() {
		log.Println("Email service enabled with Mailgun")
	} else {
		log.Println("Email service disabled - Mailgun not configured")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.SecurityHeaders(cfg))
	r.Use(middleware.RateLimit(cfg))

	handlers.SetupRoutes(r, db, emailService)

	if emailService.IsEnabled() && cfg.DigestRecipient != "" {
		go runDigestLoop(cfg, db, emailService)
	}

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}

// runDigestLoop wakes up hourly and sends the low-stock digest once per day
// when the local hour matches the configured digest hour.
func runDigestLoop(cfg *config.Config, db *sql.DB, emailService *email.Service) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	var lastSent time.Time
	for now := range ticker.C {
		if now.Hour() != cfg.DigestHour {
			continue
		}
		if lastSent.Year() == now.Year() && lastSent.YearDay() == now.YearDay() {
			continue
		}

		items, err := database.LoadInventory(db)
		if err != nil {
			logger.Error("Digest: failed to load inventory", "error", err)
			continue
		}
		low := inventory.LowStock(items)
		out := inventory.OutOfStock(items)
		if len(low) == 0 && len(out) == 0 {
			continue
		}

		settings, err := database.LoadSettings(db)
		if err != nil {
			logger.Error("Digest: failed to load settings", "error", err)
			continue
		}

		if err := emailService.SendLowStockDigest(cfg.DigestRecipient, low, out, settings); err != nil {
			logger.Error("Digest: failed to send", "error", err)
			continue
		}
		lastSent = now
	}
}
