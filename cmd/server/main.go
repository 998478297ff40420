package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	config "github.com/taskplanner/task-planner/configs"
	"github.com/taskplanner/task-planner/internal/application/services"
	"github.com/taskplanner/task-planner/internal/core/ports"
	"github.com/taskplanner/task-planner/internal/infrastructure/email"
	"github.com/taskplanner/task-planner/internal/infrastructure/health"
	"github.com/taskplanner/task-planner/internal/infrastructure/httpserver"
	"github.com/taskplanner/task-planner/internal/infrastructure/repositories"
	"github.com/taskplanner/task-planner/internal/infrastructure/scheduler"
	"github.com/taskplanner/task-planner/internal/infrastructure/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting Task Planner...")

	// Initialize the file-backed store
	store, err := storage.NewStore(cfg.Storage.DataDir, logger)
	if err != nil {
		logger.Fatal("Failed to initialize store:", err)
	}

	logger.Infof("Using data directory %s", store.Dir())

	// Initialize repositories
	taskRepo := repositories.NewTaskRepository(store, logger)
	subscriptionRepo := repositories.NewSubscriptionRepository(store, logger)

	// Initialize email service
	emailConfig := &email.EmailConfig{
		SendGridAPIKey: cfg.Email.SendGridAPIKey,
		FromEmail:      cfg.Email.FromEmail,
		FromName:       cfg.Email.FromName,
		BaseURL:        cfg.Email.BaseURL,
		TemplateDir:    cfg.Email.TemplateDir,
	}
	emailService, err := email.NewEmailService(emailConfig, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email service:", err)
	}

	// Wire services
	taskService := services.NewTaskService(taskRepo, logger)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, emailService, cfg.Subscription.CodeTTL, logger)
	reminderService := services.NewReminderService(taskService, subscriptionService, emailService, cfg.Email.BaseURL, logger)

	// Start the reminder sweep
	reminderScheduler := scheduler.NewReminderScheduler(cfg.Reminder.Interval, reminderService, logger)
	reminderScheduler.Start()

	hcSlice := []ports.HealthChecker{health.NewStorageHealthChecker(store)}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:               cfg.Server.Host,
		Port:               cfg.Server.Port,
		ReadTimeout:        cfg.Server.ReadTimeout,
		WriteTimeout:       cfg.Server.WriteTimeout,
		IdleTimeout:        cfg.Server.IdleTimeout,
		TLSCertFile:        cfg.Server.TLSCertFile,
		TLSKeyFile:         cfg.Server.TLSKeyFile,
		TemplateDir:        cfg.Server.TemplateDir,
		SubscribePerSecond: cfg.RateLimit.SubscribePerSecond,
		SubscribeBurst:     cfg.RateLimit.SubscribeBurst,
	}

	deps := httpserver.ServerDeps{
		TaskService:         taskService,
		SubscriptionService: subscriptionService,
		HealthCheckers:      hcSlice,
	}

	server, err := httpserver.NewServer(serverConfig, logger, deps)
	if err != nil {
		logger.Fatal("Failed to initialize HTTP server:", err)
	}

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	reminderScheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
