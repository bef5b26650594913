package api

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/example/kanban-backend/modules/auth"
	"github.com/go-monolith/mono"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// APIModule is the HTTP boundary: it resolves the principal through the auth
// middleware and forwards requests to the domain modules' services.
type APIModule struct {
	app  *fiber.App
	addr string

	authContainer         mono.ServiceContainer
	boardContainer        mono.ServiceContainer
	taskContainer         mono.ServiceContainer
	memberContainer       mono.ServiceContainer
	notificationContainer mono.ServiceContainer
	activityContainer     mono.ServiceContainer
	authAdapter           auth.AuthPort
}

// Compile-time interface checks.
var _ mono.Module = (*APIModule)(nil)
var _ mono.DependentModule = (*APIModule)(nil)
var _ mono.HealthCheckableModule = (*APIModule)(nil)

// NewModule creates a new APIModule.
func NewModule() *APIModule {
	addr := os.Getenv("KANBAN_HTTP_ADDR")
	if addr == "" {
		addr = ":3000"
	}
	return &APIModule{addr: addr}
}

// Name returns the module name.
func (m *APIModule) Name() string {
	return "api"
}

// Dependencies returns the modules whose services this one calls.
func (m *APIModule) Dependencies() []string {
	return []string{"auth", "board", "task", "member", "notification", "activity"}
}

// SetDependencyServiceContainer receives service containers from dependencies.
func (m *APIModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	switch dependency {
	case "auth":
		m.authContainer = container
		m.authAdapter = auth.NewAuthAdapter(container)
	case "board":
		m.boardContainer = container
	case "task":
		m.taskContainer = container
	case "member":
		m.memberContainer = container
	case "notification":
		m.notificationContainer = container
	case "activity":
		m.activityContainer = container
	}
}

// Start initializes the Fiber HTTP server.
func (m *APIModule) Start(_ context.Context) error {
	for name, container := range map[string]mono.ServiceContainer{
		"auth":         m.authContainer,
		"board":        m.boardContainer,
		"task":         m.taskContainer,
		"member":       m.memberContainer,
		"notification": m.notificationContainer,
		"activity":     m.activityContainer,
	} {
		if container == nil {
			return fmt.Errorf("%s dependency not set", name)
		}
	}

	m.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          customErrorHandler,
	})

	m.app.Use(recover.New())
	m.app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))
	m.app.Use(cors.New())

	m.setupRoutes()

	go func() {
		if err := m.app.Listen(m.addr); err != nil {
			log.Printf("[api] HTTP server error: %v", err)
		}
	}()

	log.Printf("[api] HTTP server started on %s", m.addr)
	return nil
}

// Stop shuts down the Fiber HTTP server.
func (m *APIModule) Stop(_ context.Context) error {
	if m.app == nil {
		return nil
	}
	log.Println("[api] Shutting down HTTP server...")
	return m.app.Shutdown()
}

// Health returns the health status of the module.
func (m *APIModule) Health(_ context.Context) mono.HealthStatus {
	return mono.HealthStatus{
		Healthy: m.app != nil,
		Message: "operational",
		Details: map[string]any{
			"addr": m.addr,
		},
	}
}

// setupRoutes configures all API routes.
func (m *APIModule) setupRoutes() {
	handlers := NewHandlers(m)

	m.app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"module": "api",
		})
	})

	v1 := m.app.Group("/api/v1")

	// Public auth routes.
	authRoutes := v1.Group("/auth")
	authRoutes.Post("/register", handlers.Register)
	authRoutes.Post("/login", handlers.Login)
	authRoutes.Post("/refresh", handlers.Refresh)

	// Everything else sits behind the bearer-token middleware.
	protected := v1.Group("")
	protected.Use(RequireAuth(m.authAdapter))

	protected.Get("/auth/me", handlers.Me)
	protected.Delete("/users/:id", handlers.DeleteUser)

	protected.Post("/boards", handlers.CreateBoard)
	protected.Get("/boards", handlers.ListBoards)
	protected.Get("/boards/:id", handlers.GetBoard)
	protected.Put("/boards/:id", handlers.UpdateBoard)
	protected.Delete("/boards/:id", handlers.DeleteBoard)

	protected.Post("/columns", handlers.CreateColumn)
	protected.Get("/columns", handlers.ListColumns)
	protected.Get("/columns/:id", handlers.GetColumn)
	protected.Put("/columns/:id", handlers.UpdateColumn)
	protected.Put("/columns/:id/position", handlers.MoveColumn)
	protected.Delete("/columns/:id", handlers.DeleteColumn)

	protected.Post("/tasks", handlers.CreateTask)
	protected.Get("/tasks", handlers.ListTasks)
	protected.Get("/tasks/by-status", handlers.ListTasksByStatus)
	protected.Get("/tasks/:id", handlers.GetTask)
	protected.Put("/tasks/:id", handlers.UpdateTask)
	protected.Delete("/tasks/:id", handlers.DeleteTask)

	protected.Post("/board-members", handlers.AddMember)
	protected.Get("/board-members", handlers.ListMembers)
	protected.Post("/board-members/request", handlers.RequestMembership)
	protected.Post("/board-members/accept-invitation/:notification_id", handlers.AcceptInvitation)
	protected.Get("/board-members/:id", handlers.GetMember)
	protected.Put("/board-members/:id", handlers.UpdateMember)
	protected.Delete("/board-members/:id", handlers.RemoveMember)

	protected.Get("/activity", handlers.RecentActivity)

	protected.Post("/notifications", handlers.CreateNotification)
	protected.Get("/notifications", handlers.ListNotifications)
	protected.Get("/notifications/:id", handlers.GetNotification)
	protected.Put("/notifications/:id", handlers.UpdateNotification)
	protected.Put("/notifications/:id/read", handlers.MarkNotificationRead)
	protected.Delete("/notifications/:id", handlers.DeleteNotification)
}

// customErrorHandler handles Fiber errors.
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(ErrorResponse{
		Error:   "server_error",
		Message: message,
	})
}
