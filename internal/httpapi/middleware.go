package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"everyday-planner/internal/model"
	"everyday-planner/internal/repository"
)

const (
	requestIDKey   = "requestID"
	currentUserKey = "currentUser"

	headerRequestID = "X-Request-ID"
	headerUserID    = "X-User-ID"
)

// requestID tags every request with a uuid, echoed in the response header
// and used in error logs.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(headerRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(headerRequestID, id)
		c.Next()
	}
}

// identity resolves the opaque user identifier the auth layer injects and
// attaches the matching account to the request. Requests without one are
// rejected before any handler runs.
func identity(users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		externalID := c.GetHeader(headerUserID)
		if externalID == "" {
			respondFail(c, http.StatusUnauthorized, "missing user identity")
			c.Abort()
			return
		}

		user, err := users.Ensure(c.Request.Context(), externalID)
		if err != nil {
			respondErr(c, err)
			c.Abort()
			return
		}
		c.Set(currentUserKey, user)
		c.Next()
	}
}

// currentUser returns the account the identity middleware attached.
func currentUser(c *gin.Context) *model.User {
	return c.MustGet(currentUserKey).(*model.User)
}
