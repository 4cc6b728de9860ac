package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/devfolio/devfolio/backend/handlers"
	"github.com/devfolio/devfolio/backend/internal/admin"
	"github.com/devfolio/devfolio/backend/internal/assets"
	"github.com/devfolio/devfolio/backend/internal/chatbot"
	"github.com/devfolio/devfolio/backend/internal/config"
	"github.com/devfolio/devfolio/backend/internal/contact"
	"github.com/devfolio/devfolio/backend/internal/database"
	"github.com/devfolio/devfolio/backend/internal/mailer"
	"github.com/devfolio/devfolio/backend/internal/portfolio"
	"github.com/devfolio/devfolio/backend/internal/storage"
	"github.com/devfolio/devfolio/backend/internal/verify"
	"github.com/devfolio/devfolio/backend/pkg/logger"
	"github.com/devfolio/devfolio/backend/pkg/metrics"
	"github.com/devfolio/devfolio/backend/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v mail=%v verify=%v llm=%v",
		cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Mail.APIKey != "", cfg.Verify.APIKey != "", cfg.LLM.APIKey != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple — production should use a stricter policy.)
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate limiter and the chatbot context cache
	// can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("connected to Redis at %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Rate limiting applies to the unauthenticated write endpoints only
	if cfg.RateLimit.Enabled {
		var rl gin.HandlerFunc
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			rl = middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			rl = middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
		limited := map[string]bool{"/api/contact": true, "/api/chatbot": true}
		r.Use(func(c *gin.Context) {
			if c.Request.Method == http.MethodPost && limited[c.Request.URL.Path] {
				rl(c)
				return
			}
			c.Next()
		})
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races
	ctx := context.Background()
	const maxAttempts = 5
	backoff := time.Second
	var client *mongo.Client
	var errConn error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		client, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
		if errConn == nil {
			break
		}
		logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
		if attempt < maxAttempts {
			time.Sleep(backoff)
			backoff *= 2
		}
	}
	if errConn != nil {
		logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
	}
	defer func() { _ = client.Disconnect(ctx) }()
	db := client.Database(cfg.MongoDB.Database)

	// Optional object storage archive for uploaded blobs
	var archive *storage.MinIOStorage
	if cfg.MinIO.Endpoint != "" {
		archive, err = storage.NewMinIOStorage(storage.Config{
			Endpoint:  cfg.MinIO.Endpoint,
			AccessKey: cfg.MinIO.AccessKey,
			SecretKey: cfg.MinIO.SecretKey,
			UseSSL:    cfg.MinIO.UseSSL,
			Bucket:    cfg.MinIO.Bucket,
		})
		if err != nil {
			logger.Warnf("object storage unavailable, uploads will not be archived: %v", err)
			archive = nil
		}
	}

	// Services
	adminSvc := admin.NewService(admin.NewMongoRepository(db.Collection("admins")), cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL)
	authMW := middleware.AuthMiddleware(admin.NewTokenVerifier(cfg.Auth.JWTSecret))

	portfolioSvc := portfolio.NewService(
		portfolio.NewMongoProjectRepository(db.Collection("projects")),
		portfolio.NewMongoExperienceRepository(db.Collection("experience")),
		portfolio.NewMongoBlogRepository(db.Collection("blog_posts")),
	)

	var sender mailer.Sender
	if cfg.Mail.APIKey != "" {
		sender = mailer.NewClient(cfg.Mail.APIKey, cfg.Mail.BaseURL)
	} else {
		logger.Warnf("RESEND_API_KEY not set, contact notifications are disabled")
	}
	contactSvc := contact.NewService(
		contact.NewMongoRepository(db.Collection("messages")),
		verify.NewClient(cfg.Verify.APIKey, cfg.Verify.BaseURL),
		sender,
		cfg.Mail.From,
		cfg.Mail.Operator,
	)

	chatbotSvc := chatbot.NewService(
		chatbot.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL),
		portfolioSvc,
		redisClient,
		cfg.LLM.Models,
		cfg.Mail.Operator,
		cfg.LLM.APIKey != "",
	)

	var archiver assets.Archiver
	if archive != nil {
		archiver = archive
	}
	assetsSvc := assets.NewService(assets.NewMongoRepository(db.Collection("files")), archiver, cfg.Assets.ResumePath)

	// Routes
	admin.NewHandler(adminSvc).Register(r)
	contact.NewHandler(contactSvc).Register(r, authMW)
	chatbot.NewHandler(chatbotSvc).Register(r)
	portfolio.NewHandler(portfolioSvc).Register(r, authMW)
	assets.NewHandler(assetsSvc).Register(r, authMW)
	handlers.RegisterSwagger(r)
	handlers.RegisterDiagnostics(r, client, archive)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness reports required and optional dependencies; only the database
	// gates readiness
	r.GET("/ready", func(c *gin.Context) {
		deps := map[string]bool{
			"mongo":   true,
			"redis":   redisClient != nil,
			"mail":    sender != nil,
			"chatbot": cfg.LLM.APIKey != "",
			"archive": archive != nil,
		}
		pingCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			deps["mongo"] = false
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not_ready", "deps": deps, "uptime": time.Since(startTime).String()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "deps": deps, "uptime": time.Since(startTime).String()})
	})

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("starting portfolio backend on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
