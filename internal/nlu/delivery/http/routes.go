package http

import (
	"github.com/gin-gonic/gin"

	"bankbot/internal/middleware"
)

// RegisterRoutes maps the NLU endpoints. Training data and retraining are
// admin only.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	nlu := rg.Group("/nlu")
	{
		nlu.POST("/parse", mw.RateLimit(), h.Parse)
		nlu.POST("/entities", mw.RateLimit(), h.Entities)
		nlu.GET("/intents", mw.AdminAuth(), h.GetIntents)
		nlu.PUT("/intents", mw.AdminAuth(), h.PutIntents)
		nlu.POST("/retrain", mw.AdminAuth(), h.Retrain)
	}
}
