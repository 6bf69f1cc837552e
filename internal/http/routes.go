package http

import (
	"context"

	"screen_navigator/internal/http/handlers"
	"screen_navigator/internal/http/middleware"

	"github.com/go-chi/chi/v5"
)

func initRoutes(_ context.Context, r *Router, deps *Dependencies, maxArtifactBytes int64) {
	r.httpRouter.Use(middleware.MetricsMiddleware)
	r.httpRouter.Use(middleware.RequestIDLoggerMiddleware(r.log))

	agents := handlers.NewAgentsHandler(deps.Dispatcher, r.log)
	artifacts := handlers.NewArtifactsHandler(deps.Artifacts, maxArtifactBytes, r.log)
	tools := handlers.NewToolHandler(deps.Dispatcher, deps.Artifacts, r.log)

	// Routes
	r.httpRouter.Get("/ready", handlers.NewReadyHandler(deps.Dispatcher).Handle)
	r.httpRouter.Get("/agents", agents.List)
	r.httpRouter.Get("/agents/{agent}", agents.Get)
	r.httpRouter.Route("/sessions/{session}", func(sr chi.Router) {
		sr.Get("/artifacts", artifacts.List)
		sr.Delete("/artifacts", artifacts.Clear)
		sr.Put("/artifacts/{name}", artifacts.Put)
		sr.Post("/agents/{agent}/tools/{tool}", tools.Handle)
	})
}
