package handler

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/watercharging/evtax-service/client"
	"github.com/watercharging/evtax-service/dto"
)

// sendError sends a structured error response
func sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Error:   message,
		Message: errorMsg,
		Code:    statusCode,
	})
}

// providerError unwraps a ProviderError so handlers can turn upstream
// failures into 502s with the provider's own detail.
func providerError(err error) (*client.ProviderError, bool) {
	var pe *client.ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
