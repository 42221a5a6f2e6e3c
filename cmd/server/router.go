package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskhub/taskhub-api/internal/api"
	apiMiddleware "github.com/taskhub/taskhub-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
// Blog and agent routes are only mounted when their backing service exists.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if timeout := app.config.Server.RequestTimeout(); timeout > 0 {
		r.Use(apiMiddleware.Deadline(timeout))
	}
	r.Use(apiMiddleware.TraceMiddleware)

	taskHandler := api.NewTaskHandler(app.taskService, app.logger)
	pokemonHandler := api.NewPokemonHandler(app.creatures, app.logger)
	authHandler := api.NewAuthHandler(app.accountService, app.logger)
	userHandler := api.NewUserHandler(app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", taskHandler.ListTasks)
		r.Post("/", taskHandler.CreateTask)
		r.Get("/{id}", taskHandler.GetTask)
		r.Put("/{id}/toggle", taskHandler.ToggleTask)
		r.Delete("/{id}", taskHandler.DeleteTask)
	})

	r.Route("/pokemon", func(r chi.Router) {
		r.Get("/", pokemonHandler.List)
		r.Get("/search", pokemonHandler.Search)
		r.Get("/{idOrName}", pokemonHandler.Details)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Post("/logout", authHandler.Logout)
			r.Get("/me", authHandler.Me)
		})
	})

	r.Route("/api/user", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/dashboard", userHandler.Dashboard)
		r.Get("/settings", userHandler.Settings)
	})

	if app.blogService != nil {
		blogHandler := api.NewBlogHandler(app.blogService, app.logger)
		r.Route("/blog", func(r chi.Router) {
			r.Get("/list", blogHandler.ListPosts)
			r.Get("/list/{id}", blogHandler.ListPostByID)
			r.Post("/post", blogHandler.CreatePost)
			r.Put("/post/{id}", blogHandler.UpdatePost)
			r.Delete("/post/{id}", blogHandler.DeletePost)
		})
	}

	if app.agent != nil {
		agentHandler := api.NewAgentHandler(app.agent, app.logger)
		r.Post("/ai/query", agentHandler.Query)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
