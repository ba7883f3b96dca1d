package middleware

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"sync"
	"time"

	"homestock/internal/config"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

type rateLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

var (
	clients = make(map[string]*rateLimiter)
	mu      sync.Mutex
)

func RateLimit(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip rate limiting in development mode
		if cfg.IsDevelopment() {
			c.Next()
			return
		}

		ip := c.ClientIP()

		mu.Lock()
		defer mu.Unlock()

		if limiter, exists := clients[ip]; exists {
			limiter.lastSeen = time.Now()
			if !limiter.limiter.Allow() {
				c.JSON(http.StatusTooManyRequests, gin.H{"error": "Rate limit exceeded"})
				c.Abort()
				return
			}
		} else {
			clients[ip] = &rateLimiter{
				limiter:  rate.NewLimiter(rate.Every(time.Second/20), 20),
				lastSeen: time.Now(),
			}
		}

		cleanupOldClients()
		c.Next()
	}
}

func cleanupOldClients() {
	for ip, client := range clients {
		if time.Since(client.lastSeen) > 10*time.Minute {
			delete(clients, ip)
		}
	}
}

func CORS(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin {
				allowed = true
				break
			}
		}

		if allowed {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}

		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SecurityHeaders(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Skip security headers in development mode to allow browser automation tools
		if cfg.IsDevelopment() {
			c.Next()
			return
		}

		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("X-XSS-Protection", "1; mode=block")
		c.Next()
	}
}

func LogRequests() gin.HandlerFunc {
	return gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		return fmt.Sprintf("[%s] %s %s %d %s %s\n",
			param.TimeStamp.Format("2006/01/02 15:04:05"),
			param.Method,
			param.Path,
			param.StatusCode,
			param.Latency,
			param.ClientIP,
		)
	})
}

func AddDBContext(db *sql.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.WithValue(c.Request.Context(), "db", db)
		c.Request = c.Request.WithContext(ctx)
		c.Set("db", db)
		c.Next()
	}
}
