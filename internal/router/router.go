// Package router wires handlers to routes. Every route under the task
// namespace, plus the profile route, sits behind the bearer-token gate.
package router

import (
	"github.com/gofiber/fiber/v2"

	handlers "github.com/taskhive/taskhive-backend/internal/http"
)

type Router struct {
	AuthHandler *handlers.AuthHandler
	TaskHandler *handlers.TaskHandler
	AuthMW      fiber.Handler
}

func (r *Router) RegisterRoutes(app *fiber.App) {
	app.Post("/api/auth/register", r.AuthHandler.Register)
	app.Post("/api/auth/login", r.AuthHandler.Login)
	app.Get("/api/auth/profile", r.AuthMW, r.AuthHandler.Profile)

	app.Get("/api/tasks", r.AuthMW, r.TaskHandler.List)
	app.Post("/api/tasks", r.AuthMW, r.TaskHandler.Create)
	app.Put("/api/tasks/:id", r.AuthMW, r.TaskHandler.Update)
	app.Delete("/api/tasks/:id", r.AuthMW, r.TaskHandler.Delete)
}
