package models

import (
	"math"
	"testing"
	"time"
)

func TestTask_Classify(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		status TaskStatus
		left   time.Duration
		want   string
	}{
		{"far away", TaskPending, 100 * time.Hour, CodeGreen},
		{"exactly three days", TaskPending, 72 * time.Hour, CodeGreen},
		{"two days", TaskPending, 48 * time.Hour, CodeUndecided},
		{"exactly one day", TaskPending, 24 * time.Hour, CodeUndecided},
		{"half a day", TaskPending, 12 * time.Hour, CodeAmber},
		{"exactly three hours", TaskPending, 3 * time.Hour, CodeRed},
		{"overdue", TaskPending, -time.Hour, CodeRed},
		{"completed", TaskCompleted, 100 * time.Hour, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := &Task{Status: tt.status, DueDate: now.Add(tt.left)}
			task.Classify(now)

			if tt.want == "" {
				if task.Code != nil {
					t.Fatalf("expected nil code, got %q", *task.Code)
				}
				return
			}
			if task.Code == nil || *task.Code != tt.want {
				t.Fatalf("code = %v, want %q", task.Code, tt.want)
			}
		})
	}
}

func TestPageRequest_Normalize(t *testing.T) {
	p := PageRequest{}.Normalize()
	if p.Number != DefaultPageNumber || p.Size != DefaultPageSize {
		t.Fatalf("unexpected defaults: %+v", p)
	}

	p = PageRequest{Number: 3, Size: 10}.Normalize()
	if p.Offset() != 20 {
		t.Fatalf("offset = %d, want 20", p.Offset())
	}
}

func TestPageRequest_OffsetSaturates(t *testing.T) {
	tests := []struct {
		name string
		req  PageRequest
		want int
	}{
		{"first page", PageRequest{Number: 1, Size: 100}, 0},
		{"last exact", PageRequest{Number: math.MaxInt/100 + 1, Size: 100}, math.MaxInt / 100 * 100},
		{"past range", PageRequest{Number: 92233720368547760, Size: 100}, math.MaxInt},
		{"max number", PageRequest{Number: math.MaxInt, Size: 2}, math.MaxInt},
		{"unset", PageRequest{}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.req.Offset(); got != tt.want {
				t.Fatalf("offset = %d, want %d", got, tt.want)
			}
		})
	}
}
