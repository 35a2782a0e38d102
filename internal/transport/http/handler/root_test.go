package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/ErlanBelekov/task-manager-api/internal/transport/http/handler"
	"github.com/gin-gonic/gin"
)

func TestRootHTML(t *testing.T) {
	r := gin.New()
	r.GET("/html", handler.RootHTML)

	w := serve(r, http.MethodGet, "/html", "", "")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.HasPrefix(w.Header().Get("Content-Type"), "text/html") {
		t.Errorf("content type = %q", w.Header().Get("Content-Type"))
	}
	if !strings.Contains(w.Body.String(), "<h1>Hello World</h1>") {
		t.Errorf("body = %q", w.Body.String())
	}
}
