package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"everyday-planner/internal/apperr"
)

// apiResponse is the envelope every endpoint returns.
type apiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

func respondOK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, apiResponse{Success: true, Data: data})
}

func respondFail(c *gin.Context, status int, message string) {
	c.JSON(status, apiResponse{Success: false, Message: message})
}

// respondErr maps the error taxonomy to HTTP statuses. Storage failures are
// logged and surfaced as a generic failure so operator detail never leaks.
func respondErr(c *gin.Context, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		switch appErr.Kind() {
		case apperr.Validation:
			respondFail(c, http.StatusBadRequest, appErr.Message())
			return
		case apperr.Conflict:
			respondFail(c, http.StatusConflict, appErr.Message())
			return
		case apperr.NotFound:
			respondFail(c, http.StatusNotFound, appErr.Message())
			return
		case apperr.Integrity:
			log.Printf("request %s: %v", c.GetString(requestIDKey), err)
			respondFail(c, http.StatusInternalServerError, "internal error")
			return
		}
	}
	log.Printf("request %s: %v", c.GetString(requestIDKey), err)
	respondFail(c, http.StatusInternalServerError, "internal error")
}
