package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"matchpoint/backend/internal/api/handler"
	"matchpoint/backend/internal/auth"
	"matchpoint/backend/internal/chathub"
	"matchpoint/backend/internal/config"
	"matchpoint/backend/internal/logger"
	"matchpoint/backend/internal/models"
	"matchpoint/backend/internal/sms"
	"matchpoint/backend/internal/storage"
	"matchpoint/backend/internal/upload"
)

func setupDependencies(cfg *config.Config, zlog *zap.Logger) (*gorm.DB, *redis.Client) {
	db, err := gorm.Open(postgres.Open(cfg.DBURI), &gorm.Config{})
	if err != nil {
		zlog.Fatal("failed to connect PostgreSQL", zap.Error(err))
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		zlog.Fatal("failed to connect Redis", zap.Error(err))
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Match{},
		&models.Message{},
		&models.Asset{},
	)
	if err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	zlog.Info("database and redis connections established, migrations complete")
	return db, rdb
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("warning: no .env file loaded")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()

	db, rdb := setupDependencies(cfg, zlog)
	store := storage.NewService(db, rdb)

	var uploader upload.Uploader
	if cfg.AWSBucket != "" {
		s3up, err := upload.NewS3Uploader(context.Background(), cfg.AWSRegion, cfg.AWSBucket)
		if err != nil {
			zlog.Fatal("failed to initialize S3 uploader", zap.Error(err))
		}
		uploader = s3up
	} else {
		zlog.Warn("AWS_BUCKET not set, file uploads disabled")
	}

	var smsSender sms.Sender
	if cfg.TwilioAccountSID != "" {
		smsSender = sms.NewTwilioClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	} else {
		zlog.Warn("Twilio not configured, OTP delivery disabled")
	}

	presence := chathub.NewRegistry()
	hub := chathub.NewHub(zlog)
	router := chathub.NewRouter(hub, presence, store, uploader, zlog)
	router.OpTimeout = cfg.SocketOpTimeout
	router.OfflineOnDisconnect = cfg.PresenceOfflineOnDisconnect

	go hub.Run()

	h := handler.NewHandler(store, hub, router, uploader, smsSender, cfg, zlog)

	if cfg.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	// Public routes.
	r.POST("/signup", h.Signup)
	r.POST("/generate-otp", h.GenerateOTP)
	r.POST("/login", h.Login)
	r.GET("/token-is-valid", h.TokenIsValid)
	r.GET("/ws", h.ServeWebSocket)

	// Routes behind the auth middleware.
	authorized := r.Group("/", auth.Middleware([]byte(cfg.JWTSecret)))
	authorized.POST("/create-match", h.CreateMatch)
	authorized.POST("/reject-match", h.RejectMatch)
	authorized.GET("/match-profile", h.MatchProfiles)
	authorized.POST("/get-message-between-two-users", h.MessagesBetweenUsers)
	authorized.POST("/unseen-messages-count", h.UnseenMessagesCount)
	authorized.POST("/update-seen-messages", h.UpdateSeenMessages)
	authorized.GET("/profile", h.GetProfile)
	authorized.PUT("/profile", h.UpdateProfile)
	authorized.POST("/assets/upload", h.UploadAssets)
	authorized.GET("/assets", h.GetAssets)

	server := &http.Server{
		Addr:           cfg.HTTPAddr,
		Handler:        r,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	zlog.Info("starting server", zap.String("addr", cfg.HTTPAddr))
	zlog.Fatal("server exited", zap.Error(server.ListenAndServe()))
}
