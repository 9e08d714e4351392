package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"birthday-reminder/config"
	"birthday-reminder/models"
	"birthday-reminder/routes"
	"birthday-reminder/services"
)

const port = "4000"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, err := config.InitLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	if err := config.ConnectDB(cfg.DBURL); err != nil {
		logger.Fatal("failed to connect database", zap.Error(err))
	}

	if err := config.DB.AutoMigrate(&models.User{}); err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}

	notifier := services.NewEmailNotifier(cfg.EmailServiceURL, cfg.SendTimeout)
	delivery := services.NewDeliveryService(config.DB, notifier, cfg, logger)

	scheduler := delivery.StartScheduler(cfg.SchedulerInterval)

	r := routes.SetupRouter(delivery)
	printRoutes(r)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	scheduler.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

func printRoutes(r *gin.Engine) {
	routes := r.Routes()
	for _, route := range routes {
		fmt.Printf("%-6s %s\n", route.Method, route.Path)
	}
}
