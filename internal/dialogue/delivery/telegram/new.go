package telegram

import (
	"github.com/gin-gonic/gin"

	"bankbot/internal/dialogue"
	pkgLog "bankbot/pkg/log"
	pkgTelegram "bankbot/pkg/telegram"
)

// Handler is the interface for the Telegram delivery handler.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// New creates a new Telegram delivery handler. When secret is set, updates
// without the matching secret token header are rejected.
func New(l pkgLog.Logger, uc dialogue.UseCase, bot *pkgTelegram.Bot, secret string) Handler {
	return &handler{
		l:      l,
		uc:     uc,
		bot:    bot,
		secret: secret,
	}
}
