package utils

import (
	"log"
	"strings"

	"github.com/gin-gonic/gin"
)

const maxLoggedBody = 512

type errorLogWriter struct {
	gin.ResponseWriter
	gc *gin.Context
}

func (w errorLogWriter) Write(b []byte) (int, error) {
	status := w.gc.Writer.Status()
	if status >= 400 && strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		body := string(b)
		if len(body) > maxLoggedBody {
			body = body[:maxLoggedBody] + "..."
		}
		log.Printf("[DEBUG ERROR]: %s %s - Status %d, Body: %s", w.gc.Request.Method, w.gc.Request.URL.Path, status, body)
	}
	return w.ResponseWriter.Write(b)
}

// ErrorLogMiddleware logs error responses. It doesn't work with GZIP
func ErrorLogMiddleware(c *gin.Context) {
	c.Writer = &errorLogWriter{gc: c, ResponseWriter: c.Writer}
	c.Next()
}
