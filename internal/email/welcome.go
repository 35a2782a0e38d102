package email

import (
	"bytes"
	"fmt"
	"html/template"
)

var welcomeTmpl = template.Must(template.New("welcome").Parse(
	`<p>Hi {{.Username}},</p><p>Your account is ready. Sign in with <b>{{.Email}}</b> to start organizing your tasks.</p>`,
))

// Welcome builds the message sent right after registration.
func Welcome(username, to string) (Message, error) {
	var buf bytes.Buffer
	err := welcomeTmpl.Execute(&buf, struct{ Username, Email string }{username, to})
	if err != nil {
		return Message{}, fmt.Errorf("render welcome email: %w", err)
	}
	return Message{
		To:      to,
		Subject: "Welcome to Task Manager",
		HTML:    buf.String(),
	}, nil
}
