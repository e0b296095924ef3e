package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bitfantasy/eqms/internal/cache"
	"github.com/bitfantasy/eqms/internal/config"
	"github.com/bitfantasy/eqms/internal/eqms/entity"
	"github.com/bitfantasy/eqms/internal/eqms/handler"
	"github.com/bitfantasy/eqms/internal/eqms/repository"
	"github.com/bitfantasy/eqms/internal/eqms/service"
	"github.com/bitfantasy/eqms/internal/middleware"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting eqms service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.Part{},
		&entity.Inventory{},
		&entity.PartPrice{},
		&entity.Supplier{},
		&entity.Inbound{},
		&entity.Outbound{},
		&entity.User{},
	); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}

	// 레디스가 설정된 경우에만 공유 캐시. 아니면 프로세스 내 캐시.
	var store cache.Store
	if cfg.Redis.Enabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		store = cache.NewRedis(rdb)
		zapLogger.Info("Using redis cache", zap.String("host", cfg.Redis.Host))
	} else {
		store = cache.NewMemory()
		zapLogger.Info("Using in-memory cache")
	}

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, store, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		// 로그인만 인증 없이 열어 둔다.
		v1.POST("/auth/login", h.Auth.Login)

		authed := v1.Group("")
		authed.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authed.GET("/auth/me", h.Auth.Me)

			// 조회는 모든 역할
			authed.GET("/parts", h.Part.List)
			authed.GET("/parts/:id", h.Part.Get)
			authed.GET("/parts/:id/prices", h.Part.Prices)
			authed.GET("/part-categories", h.Part.Categories)

			authed.GET("/inventory", h.Inventory.List)
			authed.GET("/inventory/low-stock", h.Inventory.LowStock)
			authed.GET("/inventory/analysis", h.Inventory.Analysis)

			authed.GET("/suppliers", h.Supplier.List)
			authed.GET("/suppliers/:id", h.Supplier.Get)

			authed.GET("/inbound", h.Transaction.ListInbound)
			authed.GET("/outbound", h.Transaction.ListOutbound)
			authed.GET("/reports/inout", h.Transaction.InOutReport)

			authed.GET("/exports/inventory", h.Export.Inventory)
			authed.GET("/exports/inbound", h.Export.Inbound)
			authed.GET("/exports/outbound", h.Export.Outbound)

			// 변경은 관리자 이상
			admin := authed.Group("")
			admin.Use(middleware.RequireRole(entity.RoleAdmin))
			{
				admin.POST("/parts", h.Part.Create)
				admin.PUT("/parts/:id", h.Part.Update)
				admin.DELETE("/parts/:id", h.Part.Delete)
				admin.POST("/parts/:id/prices", h.Part.AddPrice)

				admin.PUT("/inventory/:id", h.Inventory.Adjust)

				admin.POST("/suppliers", h.Supplier.Create)
				admin.PUT("/suppliers/:id", h.Supplier.Update)
				admin.DELETE("/suppliers/:id", h.Supplier.Delete)

				admin.POST("/inbound", h.Transaction.CreateInbound)
				admin.POST("/outbound", h.Transaction.CreateOutbound)
			}

			// 계정 관리는 시스템 관리자만
			sysadmin := authed.Group("/users")
			sysadmin.Use(middleware.RequireRole(entity.RoleSystemAdmin))
			{
				sysadmin.GET("", h.User.List)
				sysadmin.GET("/:id", h.User.Get)
				sysadmin.POST("", h.User.Create)
				sysadmin.PUT("/:id", h.User.Update)
				sysadmin.DELETE("/:id", h.User.Delete)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"code": 40400, "message": "Not found"})
	})
}
