package requestid_test

import (
	"context"
	"testing"

	"github.com/ErlanBelekov/task-manager-api/internal/requestid"
	"github.com/google/uuid"
)

func TestFromHeader(t *testing.T) {
	const valid = "0b0f6c1e-3a43-4d8e-9a57-3c7c5d2a9e11"

	if got := requestid.FromHeader(valid); got != valid {
		t.Errorf("valid id replaced: got %q", got)
	}

	for _, in := range []string{"", "abc", "<script>"} {
		got := requestid.FromHeader(in)
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("FromHeader(%q) = %q, not a uuid", in, got)
		}
	}
}

func TestContextRoundTrip(t *testing.T) {
	if got := requestid.FromContext(context.Background()); got != "" {
		t.Errorf("empty context: got %q", got)
	}
	ctx := requestid.WithRequestID(context.Background(), "req-1")
	if got := requestid.FromContext(ctx); got != "req-1" {
		t.Errorf("got %q, want req-1", got)
	}
}
