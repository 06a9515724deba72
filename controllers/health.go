package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthMessage is the liveness reply body.
const HealthMessage = "Backend is working 🚀"

// Health handles GET /.
//
//	@Summary	Liveness check
//	@Tags		health
//	@Produce	plain
//	@Success	200	{string}	string	"Backend is working 🚀"
//	@Router		/ [get]
func Health() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.String(http.StatusOK, HealthMessage)
	}
}
