package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/go-chi/chi/v5/middleware"
)

// Machine-readable codes carried in every error body.
const (
	CodeValidation         = "ValidationError"
	CodeDateNotFuture      = "DATE_NOT_FUTURE"
	CodeDuplicateIdentity  = "DuplicateIdentity"
	CodeInvalidCredentials = "InvalidCredentials"
	CodeTokenRequired      = "TokenRequired"
	CodeInvalidToken       = "InvalidToken"
	CodeTokenExpired       = "TokenExpired"
	CodeUserNotFound       = "UserNotFound"
	CodeSessionInvalidated = "SessionInvalidated"
	CodeNotFound           = "ResourceNotFound"
	CodeForbidden          = "Forbidden"
	CodeConflict           = "Conflict"
	CodeAlreadyCompleted   = "AlreadyCompleted"
	CodeInternal           = "InternalError"
)

type errorKind struct {
	err     error
	status  int
	code    string
	message string
}

// errorKinds is the only place where domain errors meet HTTP. Entries are
// matched with errors.Is in order, so specific kinds precede the general
// ones they wrap.
var errorKinds = []errorKind{
	{common.ErrDueDateNotFuture, http.StatusBadRequest, CodeDateNotFuture, "dueDate must be at least one minute in the future"},
	{common.ErrValidation, http.StatusBadRequest, CodeValidation, "request validation failed"},
	{common.ErrDuplicateIdentity, http.StatusForbidden, CodeDuplicateIdentity, "a user with this email already exists"},
	{common.ErrInvalidCredentials, http.StatusUnauthorized, CodeInvalidCredentials, "email or password is incorrect"},
	{common.ErrTokenRequired, http.StatusUnauthorized, CodeTokenRequired, "a bearer token is required"},
	{common.ErrInvalidToken, http.StatusUnauthorized, CodeInvalidToken, "token is invalid"},
	{common.ErrTokenExpired, http.StatusUnauthorized, CodeTokenExpired, "token has expired"},
	{common.ErrIdentityNotFound, http.StatusUnauthorized, CodeUserNotFound, "user no longer exists"},
	{common.ErrSessionInvalidated, http.StatusUnauthorized, CodeSessionInvalidated, "session is no longer valid, log in again"},
	{common.ErrorNotFound, http.StatusNotFound, CodeNotFound, "resource not found"},
	{common.ErrForbidden, http.StatusForbidden, CodeForbidden, "resource belongs to another user"},
	{common.ErrConflict, http.StatusConflict, CodeConflict, "a todo with this name already exists"},
	{common.ErrAlreadyCompleted, http.StatusBadRequest, CodeAlreadyCompleted, "task is already completed"},
}

var internalKind = errorKind{common.ErrorInternal, http.StatusInternalServerError, CodeInternal, "internal server error"}

type errorResponse struct {
	Status string            `json:"status"`
	Code   string            `json:"code"`
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func kindOf(err error) errorKind {
	for _, k := range errorKinds {
		if errors.Is(err, k.err) {
			return k
		}
	}
	return internalKind
}

// writeError renders err through the error table. Anything the table does
// not know is a 500 and is logged with its cause.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	k := kindOf(err)

	resp := errorResponse{Status: "fail", Code: k.code, Error: k.message}

	var verr *ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}

	if k.status == http.StatusInternalServerError {
		s.logger.Error(r.Context(), "request failed",
			"request_id", middleware.GetReqID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
	}

	writeJSON(w, k.status, resp)
}
