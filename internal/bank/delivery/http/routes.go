package http

import (
	"github.com/gin-gonic/gin"

	"bankbot/internal/middleware"
)

// RegisterRoutes maps the bank admin endpoints. Every route requires the
// admin token.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	admin := rg.Group("/admin", mw.AdminAuth())
	{
		admin.POST("/accounts", h.CreateAccount)
		admin.GET("/accounts/:number", h.GetAccount)
		admin.GET("/chats", h.ListChats)
	}
}
