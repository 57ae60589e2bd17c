// Package models holds the client-side view of TaskKeeper API payloads.
package models

import "time"

type User struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Session is what signup and login return. Expires is the token lifetime
// in milliseconds.
type Session struct {
	User    User   `json:"user"`
	Token   string `json:"token"`
	Expires int64  `json:"expires"`
}

type Todo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Task struct {
	ID          string    `json:"id"`
	TodoID      string    `json:"todoId"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Status      string    `json:"status"`
	Code        *string   `json:"code"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type Pagination struct {
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
}

type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ListOptions selects a page; zero values fall back to server defaults.
type ListOptions struct {
	PageNumber int
	PageSize   int
	Search     string
}
