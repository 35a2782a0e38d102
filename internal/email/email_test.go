package email_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/ErlanBelekov/task-manager-api/internal/email"
)

func TestWelcome_EscapesUserInput(t *testing.T) {
	msg, err := email.Welcome("<script>alice</script>", "alice@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if msg.To != "alice@example.com" {
		t.Errorf("To = %q", msg.To)
	}
	if strings.Contains(msg.HTML, "<script>") {
		t.Errorf("username was not escaped: %s", msg.HTML)
	}
	if !strings.Contains(msg.HTML, "alice@example.com") {
		t.Errorf("body does not mention the email: %s", msg.HTML)
	}
}

func TestNewSender_LocalLogsInsteadOfSending(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	s := email.NewSender("local", "", "", logger)
	if _, ok := s.(*email.LogSender); !ok {
		t.Fatalf("sender = %T, want *email.LogSender", s)
	}

	if err := s.Send(context.Background(), email.Message{To: "bob@example.com", Subject: "hi"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "bob@example.com") {
		t.Errorf("log output %q does not mention recipient", buf.String())
	}
}

func TestNewSender_ProductionUsesResend(t *testing.T) {
	s := email.NewSender("production", "re_test", "noreply@example.com", slog.Default())
	if _, ok := s.(*email.ResendSender); !ok {
		t.Fatalf("sender = %T, want *email.ResendSender", s)
	}
}
