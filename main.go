package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/example/kanban-backend/modules/activity"
	"github.com/example/kanban-backend/modules/api"
	"github.com/example/kanban-backend/modules/auth"
	"github.com/example/kanban-backend/modules/board"
	"github.com/example/kanban-backend/modules/member"
	"github.com/example/kanban-backend/modules/notification"
	"github.com/example/kanban-backend/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== Kanban Board Backend ===")

	// Load .env if present; real environment variables win.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded configuration from .env")
	}

	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Registration order follows the dependency graph: auth owns users,
	// board and notification build on it, member joins all three, and the
	// api module fronts everything over HTTP.
	app.Register(auth.NewModule())
	app.Register(board.NewModule())
	app.Register(notification.NewModule())
	app.Register(task.NewModule())
	app.Register(member.NewModule())
	app.Register(activity.NewModule())
	app.Register(api.NewModule())

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("REST API Endpoints (http://localhost:3000):")
	log.Println("")
	log.Println("  Public Endpoints:")
	log.Println("  POST   /api/v1/auth/register                 - Register a new user")
	log.Println("  POST   /api/v1/auth/login                    - Login and get tokens")
	log.Println("  POST   /api/v1/auth/refresh                  - Refresh access token")
	log.Println("  GET    /health                               - Health check")
	log.Println("")
	log.Println("  Protected Endpoints (require Bearer token):")
	log.Println("  GET    /api/v1/auth/me                       - Current user")
	log.Println("  CRUD   /api/v1/boards                        - Boards (default columns + owner membership)")
	log.Println("  CRUD   /api/v1/columns                       - Columns, PUT /:id/position to reorder")
	log.Println("  CRUD   /api/v1/tasks                         - Tasks, GET /by-status?status= to filter")
	log.Println("  CRUD   /api/v1/board-members                 - Memberships and invitations")
	log.Println("  POST   /api/v1/board-members/request         - Invite a user by email")
	log.Println("  POST   /api/v1/board-members/accept-invitation/:notification_id")
	log.Println("  CRUD   /api/v1/notifications                 - Notifications, PUT /:id/read to mark read")
	log.Println("  GET    /api/v1/activity?limit=               - Recent activity feed")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
