package httpserver

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/taskplanner/task-planner/internal/core/ports"
	customMiddleware "github.com/taskplanner/task-planner/internal/infrastructure/httpserver/middleware"
)

type ServerConfig struct {
	Host               string
	Port               string
	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	TLSCertFile        string
	TLSKeyFile         string
	TemplateDir        string
	SubscribePerSecond float64
	SubscribeBurst     int
}

type ServerDeps struct {
	TaskService         ports.TaskService
	SubscriptionService ports.SubscriptionService
	HealthCheckers      []ports.HealthChecker
}

type Server struct {
	echo            *echo.Echo
	config          *ServerConfig
	logger          *logrus.Logger
	taskService     ports.TaskService
	subscriptionSvc ports.SubscriptionService
	middleware      *customMiddleware.MiddlewareCollection
	healthCheckers  []ports.HealthChecker
}

func NewServer(serverConfig *ServerConfig, logger *logrus.Logger, deps ServerDeps) (*Server, error) {
	e := echo.New()

	renderer, err := NewTemplateRenderer(serverConfig.TemplateDir)
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	server := &Server{
		echo:            e,
		config:          serverConfig,
		logger:          logger,
		taskService:     deps.TaskService,
		subscriptionSvc: deps.SubscriptionService,
		healthCheckers:  deps.HealthCheckers,
		middleware: customMiddleware.NewMiddlewareCollection(
			logger,
			GetRequestsTotal(),
			GetRequestDuration(),
			serverConfig.SubscribePerSecond,
			serverConfig.SubscribeBurst,
		),
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server, nil
}
