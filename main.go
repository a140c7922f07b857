// File: slotify/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"slotify/config"
	"slotify/database"
	appointmentRepo "slotify/database/repository/appointment"
	providerRepo "slotify/database/repository/provider"
	"slotify/handlers"
	"slotify/middleware"
	"slotify/routes"
	"slotify/services/events"
	"slotify/services/notifier"
	"slotify/services/scheduling"
	"slotify/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	provRepo := providerRepo.NewMongoProviderRepo()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := apptRepo.EnsureIndexes(ctx); err != nil {
		logger.Sugar().Fatalf("main: failed to ensure appointment indexes: %v", err)
	}
	cancel()

	// outbound events: enqueue from the engine, deliver in the worker.
	queueClient := events.NewQueueClient()
	defer queueClient.Close()
	events.InitEventWorker(&notifier.LogDispatcher{}, &events.LogRecomputer{})

	// services.
	schedulingEngine := &scheduling.DefaultEngine{
		Appointments: apptRepo,
		Providers:    provRepo,
		Optimizer:    &scheduling.GapMinimizingOptimizer{},
		Events:       events.NewAsynqDispatcher(queueClient),
	}
	handlers.SchedulingService = schedulingEngine

	queueRedis := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueRedis.Close()
	utils.StartHealthMonitor(database.MongoClient, utils.GetCacheClient(), queueRedis)

	// Register routes.
	routes.RegisterRoutes(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
