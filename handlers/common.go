package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Message string `json:"message"`
}

// APIError is an error with a status and a message that is safe to show to clients
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

func NewError(status int, message string) *APIError {
	return &APIError{Status: status, Message: message}
}

var (
	// Predefined errors
	ErrQueryRequired = NewError(http.StatusBadRequest, "Search query is required")
	ErrNoFile        = NewError(http.StatusBadRequest, "No file uploaded")
	ErrDescription   = NewError(http.StatusInternalServerError, "Failed to generate image description")
	ErrNotFound      = NewError(http.StatusNotFound, "Not Found")

	InternalErrorResponse = Response{"Internal Server Error"}
)

// ErrorHandler renders the last error a handler added with c.Error as a {"message": ...} body.
// Errors that are not an *APIError are logged and answered with a generic 500.
func ErrorHandler(c *gin.Context) {
	c.Next()
	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}
	err := c.Errors.Last().Err
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, Response{apiErr.Message})
		return
	}
	log.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	c.JSON(http.StatusInternalServerError, InternalErrorResponse)
}

// Recovery turns panics into the same generic 500 response
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Printf("Recovered from panic in %s %s: %v", c.Request.Method, c.Request.URL.Path, recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, InternalErrorResponse)
	})
}
