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

	"github.com/patitas/patitas/backend/api/handlers"
	"github.com/patitas/patitas/backend/api/internal/appointments"
	"github.com/patitas/patitas/backend/api/internal/config"
	"github.com/patitas/patitas/backend/api/internal/content"
	"github.com/patitas/patitas/backend/api/internal/database"
	"github.com/patitas/patitas/backend/api/internal/models"
	"github.com/patitas/patitas/backend/api/internal/pets"
	"github.com/patitas/patitas/backend/api/internal/reviews"
	"github.com/patitas/patitas/backend/api/internal/sessions"
	"github.com/patitas/patitas/backend/api/internal/storage"
	"github.com/patitas/patitas/backend/api/internal/tokens"
	"github.com/patitas/patitas/backend/api/internal/users"
	"github.com/patitas/patitas/backend/api/pkg/logger"
	"github.com/patitas/patitas/backend/api/pkg/metrics"
	"github.com/patitas/patitas/backend/api/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging level is controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v jwt_secret_set=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.JWT.Secret != "")

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	// (Keep this intentionally simple; production should use a stricter policy.)
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

	// Global middlewares: logging + recovery
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the blacklist and rate limiter can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password})
		if err := redisClient.Ping(context.Background()).Err(); err == nil {
			sessions.SetBlacklistClient(redisClient)
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		} else {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// shared runtime vars used by handlers/readiness
	var userSvc *users.Service
	var sessionsSvc *sessions.Service
	var mongoDB *mongo.Database

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness returns 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["mongodb"] = mongoDB != nil
		if mongoDB == nil {
			ready = false
		}
		deps["sessions"] = sessionsSvc != nil
		if sessionsSvc == nil {
			ready = false
		}
		if cfg.Redis.Host != "" {
			deps["redis"] = redisClient != nil
			if redisClient == nil {
				ready = false
			}
		}

		status := gin.H{"deps": deps, "uptime": time.Since(startTime).String()}
		if !ready {
			status["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["status"] = "ready"
		c.JSON(http.StatusOK, status)
	})

	ctx := context.Background()

	// Prefer Redis-based sessions when available (fast, in-memory)
	if redisClient != nil {
		srepo := sessions.NewRedisRepository(redisClient, "session:")
		sessionsSvc = sessions.NewService(srepo)
		logger.Infof("Using Redis for session storage")
	}

	// MongoDB connection with retry/backoff to tolerate startup races
	if cfg.MongoDB.URI != "" {
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
		mongoDB = client.Database(cfg.MongoDB.Database)

		// unique email + unique active (date,time) slot live in the database,
		// not just in application code
		if err := database.EnsureIndexes(ctx, mongoDB); err != nil {
			logger.Fatalf("failed to ensure indexes: %v", err)
		}

		userSvc = users.NewService(users.NewMongoUserRepository(mongoDB.Collection("users")))
		if sessionsSvc == nil {
			sessionsSvc = sessions.NewService(sessions.NewMongoRepository(mongoDB.Collection("sessions")))
		}
	} else {
		logger.Fatalf("MONGODB_URI is required")
	}

	// Object storage for pet photos (optional)
	var media *storage.MediaStore
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		media, err = storage.NewMediaStore(mcfg)
		if err != nil {
			logger.Warnf("object storage unavailable, photo endpoints disabled: %v", err)
			media = nil
		} else {
			logger.Infof("Connected to object storage: %s (bucket %s)", mcfg.Endpoint, mcfg.Bucket)
		}
	}

	// Domain services
	petsRepo := pets.NewMongoRepository(mongoDB.Collection("pets"))
	petsSvc := pets.NewService(petsRepo)
	apptSvc := appointments.NewService(appointments.NewMongoRepository(mongoDB.Collection("appointments")), petsRepo)
	revSvc := reviews.NewService(reviews.NewMongoRepository(mongoDB), cfg.Reviews.AutoApprove)
	contentSvc := content.NewService(content.NewMongoRepository(mongoDB))

	// Public surface: auth, marketing content, reviews, swagger
	handlers.NewAuthHandler(cfg, userSvc, sessionsSvc).Register(r.Group("/"))
	public := r.Group("/api")
	handlers.NewContentHandler(contentSvc).Register(public)
	revHandler := handlers.NewReviewsHandler(revSvc)
	revHandler.RegisterPublic(public)
	handlers.RegisterSwagger(r)

	// Authenticated portal under /api/v1
	verifier := tokens.NewVerifier(cfg.JWT.Secret)
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(verifier))

	api.GET("/me", func(c *gin.Context) {
		u, err := userSvc.GetByID(c.Request.Context(), c.GetString("userID"))
		if err == nil && u != nil {
			c.JSON(http.StatusOK, gin.H{"user": u})
			return
		}
		claims, _ := c.Get("claims")
		c.JSON(http.StatusOK, gin.H{"claims": claims})
	})

	handlers.NewPetsHandler(petsSvc, media).Register(api)
	handlers.NewAppointmentsHandler(apptSvc).Register(api)

	admin := api.Group("/admin")
	admin.Use(middleware.RequireRole(string(models.RoleAdmin)))
	revHandler.RegisterAdmin(admin)

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting patitas api on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
