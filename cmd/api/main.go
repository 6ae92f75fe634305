package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/apexauto/garage-api/internal/audit"
	"github.com/apexauto/garage-api/internal/cache"
	"github.com/apexauto/garage-api/internal/config"
	dbpkg "github.com/apexauto/garage-api/internal/db"
	"github.com/apexauto/garage-api/internal/logger"
	"github.com/apexauto/garage-api/internal/middleware"
	"github.com/apexauto/garage-api/internal/routes"
)

func main() {

	_ = godotenv.Load()

	cfg := config.Load()

	if err := logger.Init(cfg.Env); err != nil {
		panic(err)
	}
	defer logger.Sync()

	db := dbpkg.NewDB(cfg)
	redisCache := cache.NewRedis(cfg)

	auditDispatcher := audit.NewDispatcher(audit.New(db))
	defer auditDispatcher.Close()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, redisCache, auditDispatcher)

	logger.L().Info("server running", zap.String("addr", cfg.Addr()))
	if err := r.Run(cfg.Addr()); err != nil {
		logger.L().Fatal("failed to start server", zap.Error(err))
	}
}
