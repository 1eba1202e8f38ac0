package util

import (
	"testing"
)

func TestParseQueryString(t *testing.T) {
	allowed := []string{"id", "username", "created_at"}

	tests := []struct {
		name      string
		query     string
		expectErr bool
		expectLen int
	}{
		{"empty string", "", false, 0},
		{"implicit eq", "username|alice", false, 1},
		{"explicit operator", "created_at|gte|2025-11-01", false, 1},
		{"null check", "username|isnull", false, 1},
		{"multiple conditions", "username|alice,id|gt|5", false, 2},
		{"in operator", "username|in|alice", false, 1},
		{"disallowed field", "password|x", true, 0},
		{"invalid operator", "id|like|5", true, 0},
		{"malformed pair", "justafield", true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters, err := ParseQueryString(tt.query, allowed)
			if tt.expectErr {
				if err == nil {
					t.Error("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(filters) != tt.expectLen {
				t.Errorf("expected %d filters, got %d", tt.expectLen, len(filters))
			}
		})
	}
}

func TestParseOrderString(t *testing.T) {
	allowed := []string{"id", "created_at"}

	tests := []struct {
		name      string
		order     string
		expectErr bool
	}{
		{"empty", "", false},
		{"ascending", "created_at|asc", false},
		{"descending", "id|desc", false},
		{"multiple", "created_at|desc,id|asc", false},
		{"bad direction", "id|sideways", true},
		{"bad field", "password|asc", true},
		{"malformed", "id", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOrderString(tt.order, allowed)
			if tt.expectErr && err == nil {
				t.Error("expected an error")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
