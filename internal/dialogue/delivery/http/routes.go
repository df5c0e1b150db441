package http

import (
	"github.com/gin-gonic/gin"

	"bankbot/internal/middleware"
)

// RegisterRoutes maps the chat endpoints. Chat traffic is rate limited per
// client.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	chat := rg.Group("/chat", mw.RateLimit())
	{
		chat.POST("/messages", h.SendMessage)
		chat.GET("/sessions/:id", h.GetSession)
		chat.DELETE("/sessions/:id", h.ResetSession)
	}
}
