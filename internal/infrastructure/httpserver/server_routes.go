package httpserver

func (s *Server) setupRoutes() {
	s.echo.GET("/health", s.healthCheck)
	s.echo.GET("/metrics", s.metricsEndpoint)

	// HTML pages
	s.echo.GET("/", s.indexPage)
	s.echo.POST("/tasks", s.addTaskForm)
	s.echo.POST("/tasks/:id/toggle", s.toggleTaskForm)
	s.echo.POST("/tasks/:id/delete", s.deleteTaskForm)
	s.echo.POST("/subscribe", s.subscribeForm, s.middleware.RateLimit.Handler())

	// Emailed callback links
	s.echo.GET("/verify", s.verifyPage)
	s.echo.GET("/unsubscribe", s.unsubscribePage)

	// JSON API
	api := s.echo.Group("/api/v1")

	tasks := api.Group("/tasks")
	tasks.GET("", s.listTasks)
	tasks.POST("", s.createTask)
	tasks.GET("/pending", s.listPendingTasks)
	tasks.PATCH("/:id", s.updateTask)
	tasks.DELETE("/:id", s.deleteTask)

	subscriptions := api.Group("/subscriptions")
	subscriptions.POST("", s.createSubscription, s.middleware.RateLimit.Handler())
	subscriptions.POST("/verify", s.verifySubscription)
	subscriptions.DELETE("/:email", s.deleteSubscription)
}
