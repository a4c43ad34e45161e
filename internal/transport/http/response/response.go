package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorBody is the shape of every failed response.
type ErrorBody struct {
	Error string `json:"error"`
}

// OK writes data as the bare response body.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Status writes {"status":"ok"}.
func Status(c *gin.Context, httpStatus int) {
	c.JSON(httpStatus, gin.H{"status": "ok"})
}

func Error(c *gin.Context, httpStatus int, message string) {
	c.JSON(httpStatus, ErrorBody{Error: message})
}
