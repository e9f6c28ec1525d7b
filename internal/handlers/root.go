package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root godoc
// @Summary Greeting
// @Tags root
// @Produce plain
// @Success 200 {string} string
// @Router / [get]
func Root() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, "Hello world!")
	}
}
