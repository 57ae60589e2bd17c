package rest

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	// maxbytes bounds the encoded length, unlike max which counts runes.
	if err := v.RegisterValidation("maxbytes", maxBytes); err != nil {
		panic(err)
	}
	return v
}

func maxBytes(fl validator.FieldLevel) bool {
	n, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return len(fl.Field().String()) <= n
}

// normalizer is implemented by request bodies that clean their input
// before validation.
type normalizer interface {
	normalize()
}

// ValidationError lists the offending fields of a rejected request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for f, msg := range e.Fields {
		parts = append(parts, f+": "+msg)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return common.ErrValidation }

func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = describe(fe)
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "uuid":
		return "must be a valid UUID"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("must be at most %s bytes", fe.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	}
	return fmt.Sprintf("failed on %q", fe.Tag())
}

// parseID validates a path id.
func parseID(param, value string) (string, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return "", &ValidationError{Fields: map[string]string{param: "must be a valid UUID"}}
	}
	return id.String(), nil
}

type signupRequest struct {
	FullName string `json:"fullName" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=8,maxbytes=72"`
}

func (r *signupRequest) normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

func (r *loginRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

type todoRequest struct {
	Name string `json:"name" validate:"required,min=3,max=255"`
}

func (r *todoRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
}

type createTaskRequest struct {
	TodoID      string     `json:"todoId" validate:"required,uuid"`
	Description string     `json:"description" validate:"required,max=1000"`
	DueDate     *time.Time `json:"dueDate" validate:"required"`
}

type updateTaskRequest struct {
	Description *string    `json:"description" validate:"omitnil,min=1,max=1000"`
	DueDate     *time.Time `json:"dueDate"`
}

type listQuery struct {
	PageNumber int    `json:"pageNumber" validate:"gte=1"`
	PageSize   int    `json:"pageSize" validate:"gte=1,lte=100"`
	Search     string `json:"search" validate:"max=255"`
}

// parseListQuery reads pageNumber, pageSize and search from the query
// string, applying the defaults for absent values.
func parseListQuery(r *http.Request) (models.PageRequest, error) {
	q := r.URL.Query()
	lq := listQuery{
		PageNumber: models.DefaultPageNumber,
		PageSize:   models.DefaultPageSize,
		Search:     strings.TrimSpace(q.Get("search")),
	}

	fields := map[string]string{}
	for name, dst := range map[string]*int{"pageNumber": &lq.PageNumber, "pageSize": &lq.PageSize} {
		raw := q.Get(name)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fields[name] = "must be an integer"
			continue
		}
		*dst = n
	}
	if len(fields) > 0 {
		return models.PageRequest{}, &ValidationError{Fields: fields}
	}

	if err := validateStruct(&lq); err != nil {
		return models.PageRequest{}, err
	}
	return models.PageRequest{Number: lq.PageNumber, Size: lq.PageSize, Search: lq.Search}, nil
}
