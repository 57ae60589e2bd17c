package rest

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/server/access"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/services"
)

// handleCreateTask authorizes the parent todo named in the body before
// creating the task in it.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	_, todo, err := access.Authorize[*models.Todo](r.Context(), s.todos, req.TodoID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.tasks.Create(r.Context(), todo, req.Description, *req.DueDate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, resource[*models.Task](r.Context()))
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	task, err := s.tasks.Update(r.Context(), resource[*models.Task](r.Context()), services.TaskUpdate{
		Description: req.Description,
		DueDate:     req.DueDate,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleCompleteTask(w http.ResponseWriter, r *http.Request) {
	task, err := s.tasks.Complete(r.Context(), resource[*models.Task](r.Context()))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	if err := s.tasks.Delete(r.Context(), resource[*models.Task](r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
