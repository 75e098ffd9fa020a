package requestid_test

import (
	"context"
	"strings"
	"testing"

	"github.com/ErlanBelekov/task-api/internal/requestid"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"abc-123", "abc-123"},
		{"", ""},
		{"has space", ""},
		{"line\nbreak", ""},
		{strings.Repeat("a", 129), ""},
		{strings.Repeat("a", 128), strings.Repeat("a", 128)},
	}
	for _, tt := range tests {
		if got := requestid.Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := requestid.WithRequestID(context.Background(), "req-1")
	if got := requestid.FromContext(ctx); got != "req-1" {
		t.Fatalf("FromContext = %q, want req-1", got)
	}
	if got := requestid.FromContext(context.Background()); got != "" {
		t.Fatalf("FromContext on empty ctx = %q, want empty", got)
	}
}
