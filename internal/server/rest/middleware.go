package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/access"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// requestLogger logs each request once, after it completes, and echoes the
// request id.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := middleware.GetReqID(r.Context())
		if reqID != "" {
			w.Header().Set(common.RequestIDHeaderName, reqID)
		}

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.logger.Info(r.Context(), "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", reqID,
		)
	})
}

// authenticate runs the request authenticator; on success the identity
// travels in the request context.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := s.auth.Authenticate(r.Context(), r.Header.Get(common.AuthorizationHeaderName))
		if err != nil {
			if !errors.Is(err, common.ErrorInternal) {
				s.logger.Warn(r.Context(), "authentication failed",
					"reason", err.Error(),
					"path", r.URL.Path,
					"request_id", middleware.GetReqID(r.Context()),
				)
			}
			s.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) requireTodo(next http.Handler) http.Handler {
	return requireOwnership[*models.Todo](s, "todoId", s.todos, next)
}

func (s *Server) requireTask(next http.Handler) http.Handler {
	return requireOwnership[*models.Task](s, "taskId", s.tasks, next)
}

// requireOwnership authorizes the resource named by a path parameter and
// attaches it to the request context for the handler.
func requireOwnership[R any](s *Server, param string, lookup access.Lookup[R], next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := parseID(param, chi.URLParam(r, param))
		if err != nil {
			s.writeError(w, r, err)
			return
		}

		ctx, _, err := access.Authorize(r.Context(), lookup, id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func identity(ctx context.Context) *models.User {
	u, _ := access.IdentityFrom(ctx)
	return u
}

// resource returns what requireOwnership attached; routes without the
// middleware never call it.
func resource[R any](ctx context.Context) R {
	r, _ := access.ResourceFrom[R](ctx)
	return r
}
