package respond

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MessageResponse is the body of endpoints that only acknowledge an action.
type MessageResponse struct {
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status.
func JSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// OK writes a 200 OK JSON response.
func OK(c *gin.Context, payload interface{}) {
	JSON(c, http.StatusOK, payload)
}

// Message writes {"message": text} with a 200 status.
func Message(c *gin.Context, text string) {
	OK(c, MessageResponse{Message: text})
}
