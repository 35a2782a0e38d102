package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const helloHTML = `<html>
  <head>
    <title>Task Manager</title>
  </head>
  <body>
    <h1>Hello World</h1>
  </body>
</html>`

// GET /
func Root(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"message": "Hello World"})
}

// GET /html
func RootHTML(ctx *gin.Context) {
	ctx.Data(http.StatusOK, "text/html; charset=utf-8", []byte(helloHTML))
}
