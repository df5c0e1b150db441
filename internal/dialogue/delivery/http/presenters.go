package http

import (
	"time"

	"bankbot/internal/dialogue"
	"bankbot/internal/model"
)

// --- Request DTOs ---

type sendMessageReq struct {
	SessionID string `json:"session_id" binding:"omitempty,max=128"`
	Username  string `json:"username"   binding:"omitempty,max=64"`
	Message   string `json:"message"    binding:"required,max=2000"`
}

func (r sendMessageReq) toInput() dialogue.HandleMessageInput {
	return dialogue.HandleMessageInput{
		SessionID: r.SessionID,
		Username:  r.Username,
		Text:      r.Message,
	}
}

// --- Response DTOs ---

type sendMessageResp struct {
	SessionID  string  `json:"session_id"`
	Reply      string  `json:"reply"`
	Intent     string  `json:"intent"`
	Confidence float64 `json:"confidence"`
	State      string  `json:"state"`
}

func (h *handler) newSendMessageResp(out dialogue.HandleMessageOutput) sendMessageResp {
	return sendMessageResp{
		SessionID:  out.SessionID,
		Reply:      out.Reply,
		Intent:     out.Intent,
		Confidence: out.Confidence,
		State:      out.State,
	}
}

type sessionResp struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	State     string      `json:"state"`
	Slots     model.Slots `json:"slots"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (h *handler) newSessionResp(s model.Session) sessionResp {
	return sessionResp{
		ID:        s.ID,
		Username:  s.Username,
		State:     s.State.String(),
		Slots:     s.Slots,
		UpdatedAt: s.UpdatedAt,
	}
}
