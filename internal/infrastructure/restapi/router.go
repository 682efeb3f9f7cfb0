package restapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterCardRoutes wires the card endpoints into the router.
func RegisterCardRoutes(router *gin.Engine, cardHandler *CardHandler) {
	v1 := router.Group("/api/v1")
	{
		v1.GET("/card", cardHandler.GetCardHandler)
		v1.GET("/chains", cardHandler.GetChainsHandler)
	}

	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
}
