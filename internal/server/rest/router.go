package rest

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Router builds the HTTP handler tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", common.AuthorizationHeaderName, "Content-Type", common.RequestIDHeaderName},
		ExposedHeaders: []string{common.RequestIDHeaderName},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/readyz", s.handleReadyz)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", s.handleSignup)
			r.Post("/login", s.handleLogin)
			r.With(s.authenticate).Post("/logout", s.handleLogout)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)

			r.Route("/todo", func(r chi.Router) {
				r.Post("/", s.handleCreateTodo)
				r.Get("/", s.handleListTodos)

				r.Route("/{todoId}", func(r chi.Router) {
					r.Use(s.requireTodo)
					r.Get("/", s.handleGetTodo)
					r.Patch("/", s.handleRenameTodo)
					r.Delete("/", s.handleDeleteTodo)
					r.Get("/tasks", s.handleListTasks)
				})
			})

			r.Route("/task", func(r chi.Router) {
				r.Post("/", s.handleCreateTask)

				r.Route("/{taskId}", func(r chi.Router) {
					r.Use(s.requireTask)
					r.Get("/", s.handleGetTask)
					r.Put("/", s.handleUpdateTask)
					r.Patch("/", s.handleCompleteTask)
					r.Delete("/", s.handleDeleteTask)
				})
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorResponse{Status: "fail", Code: CodeNotFound, Error: "route not found"})
	})

	return r
}
