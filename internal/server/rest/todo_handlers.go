package rest

import (
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
)

func (s *Server) handleCreateTodo(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	todo, err := s.todos.Create(r.Context(), identity(r.Context()).ID, req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

func (s *Server) handleListTodos(w http.ResponseWriter, r *http.Request) {
	page, err := parseListQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.todos.List(r.Context(), identity(r.Context()).ID, page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetTodo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, resource[*models.Todo](r.Context()))
}

func (s *Server) handleRenameTodo(w http.ResponseWriter, r *http.Request) {
	var req todoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	todo, err := s.todos.Rename(r.Context(), resource[*models.Todo](r.Context()), req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

func (s *Server) handleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	if err := s.todos.Delete(r.Context(), resource[*models.Todo](r.Context())); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	page, err := parseListQuery(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.tasks.ListByTodo(r.Context(), resource[*models.Todo](r.Context()), page)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
