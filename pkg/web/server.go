// Package web exposes the bot's HTTP API: status endpoints, read-only guild
// configuration views, and a websocket feed of live activity.
package web

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ParangStudios/ParangBotGo/pkg/logger"
)

// Server represents the web server.
type Server struct {
	engine *gin.Engine
}

var server *Server

// Init initializes the global web server.
func Init() *Server {
	server = NewServer()
	return server
}

// Get returns the global web server.
func Get() *Server {
	return server
}

// NewServer creates a new web server.
func NewServer() *Server {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{engine: engine}

	s.engine.Use(s.logsMiddleware())
	s.engine.Use(s.rateLimitMiddleware())

	s.setupErrorHandlers()

	return s
}

// Engine returns the underlying Gin engine.
func (s *Server) Engine() *gin.Engine {
	return s.engine
}

// logsMiddleware logs all incoming requests.
func (s *Server) logsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger.Debug(fmt.Sprintf("요청 수신: %s %s | %s", c.Request.Method, c.Request.URL.Path, c.ClientIP()), "WebServer")
		c.Next()
	}
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	WindowMs    time.Duration
	MaxRequests int
}

// rateLimitMiddleware implements a simple per-IP rate limiter.
func (s *Server) rateLimitMiddleware() gin.HandlerFunc {
	type clientInfo struct {
		count   int
		resetAt time.Time
	}
	var mu sync.RWMutex
	clients := make(map[string]*clientInfo)

	config := RateLimitConfig{
		WindowMs:    60 * time.Second,
		MaxRequests: 100,
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		now := time.Now()

		mu.RLock()
		info, exists := clients[ip]
		mu.RUnlock()

		if !exists || now.After(info.resetAt) {
			mu.Lock()
			clients[ip] = &clientInfo{
				count:   1,
				resetAt: now.Add(config.WindowMs),
			}
			mu.Unlock()
			c.Next()
			return
		}

		mu.Lock()
		info.count++
		count := info.count
		mu.Unlock()

		if count > config.MaxRequests {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// setupErrorHandlers sets up error handling routes.
func (s *Server) setupErrorHandlers() {
	s.engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not Found",
			"message": "요청한 경로가 존재하지 않습니다.",
			"status":  404,
		})
	})

	s.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"error":   "Method Not Allowed",
			"message": "이 경로에서 허용되지 않는 HTTP 메서드입니다.",
			"status":  405,
		})
	})
}

// Start starts the web server.
func (s *Server) Start(port string) error {
	logger.Info(fmt.Sprintf("🚀 웹 서버 실행: http://localhost:%s", port), "WebServer")
	return s.engine.Run(":" + port)
}

// StartAsync starts the web server in a goroutine.
func (s *Server) StartAsync(port string) {
	go func() {
		if err := s.Start(port); err != nil {
			logger.Error(fmt.Sprintf("웹 서버 실행 실패: %v", err), "WebServer")
		}
	}()
}

// Group creates a new router group.
func (s *Server) Group(path string, handlers ...gin.HandlerFunc) *gin.RouterGroup {
	return s.engine.Group(path, handlers...)
}
