package telegram

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"bankbot/internal/dialogue"
	pkgLog "bankbot/pkg/log"
	pkgResponse "bankbot/pkg/response"
	pkgTelegram "bankbot/pkg/telegram"
)

const (
	msgStart = "👋 Welcome to *BankBot*!\n\nI can help you:\n• 💰 Check your account balance\n• 💸 Transfer money\n• 🔒 Block a card\n\nOr just ask me any banking question."
	msgHelp  = "*How to use BankBot:*\n\nType what you need, for example:\n`What is my balance?`\n`I want to transfer money`\n`Block my card`\n\nSend /reset to cancel the current request."
	msgReset = "🔄 Your current request has been cancelled. How can I help you?"
)

type handler struct {
	l      pkgLog.Logger
	uc     dialogue.UseCase
	bot    *pkgTelegram.Bot
	secret string
}

// HandleWebhook is the Gin handler for incoming Telegram webhook updates.
// It responds with HTTP 200 immediately and processes the message in a
// background goroutine, since Telegram retries updates it does not see
// acknowledged within a few seconds.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if h.secret != "" && subtle.ConstantTimeCompare([]byte(c.GetHeader(pkgTelegram.SecretTokenHeader)), []byte(h.secret)) != 1 {
		pkgResponse.Unauthorized(c)
		return
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "telegram handler: failed to parse update: %v", err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (edits, channel posts, ...)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	requestID := pkgLog.RequestID(ctx)

	go func() {
		// Detach from the HTTP request context, which is cancelled after the response
		bgCtx := pkgLog.WithRequestID(context.Background(), requestID)
		if err := h.processMessage(bgCtx, msg); err != nil {
			h.l.Errorf(bgCtx, "telegram handler: background processMessage failed: %v", err)
			_ = h.bot.SendMessage(bgCtx, msg.Chat.ID, errorMessage(err))
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// processMessage handles a single Telegram message.
func (h *handler) processMessage(ctx context.Context, msg *pkgTelegram.Message) error {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return nil
	}
	sessionID := fmt.Sprintf("telegram_%d", msg.Chat.ID)

	// ---- Built-in commands ----
	switch text {
	case "/start":
		return h.bot.SendMessageWithMode(ctx, msg.Chat.ID, msgStart, "Markdown")
	case "/help":
		return h.bot.SendMessageWithMode(ctx, msg.Chat.ID, msgHelp, "Markdown")
	case "/reset":
		if err := h.uc.Reset(ctx, sessionID); err != nil {
			return err
		}
		return h.bot.SendMessage(ctx, msg.Chat.ID, msgReset)
	}

	if err := h.bot.SendTyping(ctx, msg.Chat.ID); err != nil {
		h.l.Warnf(ctx, "telegram handler: failed to send typing action: %v", err)
	}

	out, err := h.uc.HandleMessage(ctx, dialogue.HandleMessageInput{
		SessionID: sessionID,
		Username:  username(msg.From),
		Text:      text,
	})
	if err != nil {
		return err
	}

	// Replies carry user text (reasons, LLM answers), so they are sent without a parse mode.
	return h.bot.SendMessage(ctx, msg.Chat.ID, out.Reply)
}

func username(u *pkgTelegram.User) string {
	if u == nil {
		return ""
	}
	if u.Username != "" {
		return u.Username
	}
	return fmt.Sprintf("telegram_%d", u.ID)
}
