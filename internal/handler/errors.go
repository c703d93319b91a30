package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"estateportal/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError writes the HTTP response for a service error
func respondError(c *gin.Context, err error, notFoundMessage string) {
	var gwErr *service.GatewayError
	switch {
	case errors.As(err, &gwErr):
		c.JSON(gwErr.HTTPStatus(), gin.H{"error": gwErr.Message, "kind": gwErr.Kind})
	case errors.Is(err, service.ErrSubmissionPending):
		c.JSON(http.StatusConflict, gin.H{"error": "Please wait for the current reply before sending another message"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMessage})
	case errors.Is(err, service.ErrInvalidInput):
		msg := strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
	default:
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
}

// detached keeps request values but drops cancellation, so a completion
// already sent upstream runs to completion even if the browser goes away
func detached(c *gin.Context) context.Context {
	return context.WithoutCancel(c.Request.Context())
}
