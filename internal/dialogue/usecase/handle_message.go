package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"bankbot/internal/bank"
	"bankbot/internal/dialogue"
	"bankbot/internal/metrics"
	"bankbot/internal/model"
)

// turn is the outcome of one step of the state machine.
type turn struct {
	reply      string
	intent     string
	confidence float64
	err        error
}

// HandleMessage runs one user turn through the session's state machine,
// records it in the chat log and persists the updated session.
func (uc *implUseCase) HandleMessage(ctx context.Context, input dialogue.HandleMessageInput) (dialogue.HandleMessageOutput, error) {
	text := strings.TrimSpace(input.Text)
	if text == "" {
		return dialogue.HandleMessageOutput{}, dialogue.ErrEmptyMessage
	}

	sessionID := input.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	unlock := uc.locks.lock(sessionID)
	defer unlock()

	s, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		uc.l.Errorf(ctx, "%s: GetSession %s: %v", LogPrefixHandleMessage, sessionID, err)
		return dialogue.HandleMessageOutput{}, err
	}
	if !s.Exists() {
		s = model.Session{ID: sessionID}
	}
	if input.Username != "" {
		s.Username = input.Username
	}

	step, ok := transitions[s.State]
	if !ok {
		uc.l.Warnf(ctx, "%s: session %s in unknown state %d, resetting", LogPrefixHandleMessage, sessionID, s.State)
		s.Clear()
		step = transitions[model.StateIdle]
	}
	t := step(uc, ctx, &s, text)

	uc.saveTurn(ctx, s, text, t)
	metrics.DialogueTurns.WithLabelValues(t.intent).Inc()

	s.UpdatedAt = uc.now().UTC()
	if err := uc.repo.SaveSession(ctx, s); err != nil {
		uc.l.Errorf(ctx, "%s: SaveSession %s: %v", LogPrefixHandleMessage, sessionID, err)
	}

	out := dialogue.HandleMessageOutput{
		SessionID:  sessionID,
		Reply:      t.reply,
		Intent:     t.intent,
		Confidence: t.confidence,
		State:      s.State.String(),
	}
	if t.err != nil {
		return out, fmt.Errorf("%w: %w", dialogue.ErrLLMUnavailable, t.err)
	}
	return out, nil
}

// saveTurn appends the chat log entry. A failed write is logged and does not
// change the reply.
func (uc *implUseCase) saveTurn(ctx context.Context, s model.Session, text string, t turn) {
	username := s.Username
	if username == "" {
		username = uc.cfg.DefaultUsername
	}
	err := uc.bank.SaveChat(ctx, bank.SaveChatInput{
		Username:   username,
		Query:      text,
		Intent:     t.intent,
		Confidence: t.confidence,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: %v", LogPrefixSaveTurn, err)
	}
}

// GetSession returns the stored session or ErrSessionNotFound.
func (uc *implUseCase) GetSession(ctx context.Context, sessionID string) (model.Session, error) {
	s, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		return model.Session{}, err
	}
	if !s.Exists() {
		return model.Session{}, dialogue.ErrSessionNotFound
	}
	return s, nil
}

// Reset abandons any active flow. Unknown sessions are left alone.
func (uc *implUseCase) Reset(ctx context.Context, sessionID string) error {
	unlock := uc.locks.lock(sessionID)
	defer unlock()

	s, err := uc.repo.GetSession(ctx, sessionID)
	if err != nil {
		uc.l.Errorf(ctx, "%s: GetSession %s: %v", LogPrefixReset, sessionID, err)
		return err
	}
	if !s.Exists() {
		return nil
	}
	s.Clear()
	s.UpdatedAt = uc.now().UTC()
	return uc.repo.SaveSession(ctx, s)
}
