package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"bankbot/internal/dialogue"
	"bankbot/internal/model"
)

var errNoLLM = errors.New("no language model configured")

type stepFunc func(uc *implUseCase, ctx context.Context, s *model.Session, text string) turn

// transitions maps every dialogue state to the step that consumes the next
// user input in that state.
var transitions = map[model.DialogueState]stepFunc{
	model.StateIdle:             (*implUseCase).idle,
	model.StateBalanceAccount:   (*implUseCase).balanceAccount,
	model.StateBalancePassword:  (*implUseCase).balancePassword,
	model.StateTransferFrom:     (*implUseCase).transferFrom,
	model.StateTransferTo:       (*implUseCase).transferTo,
	model.StateTransferAmount:   (*implUseCase).transferAmount,
	model.StateTransferPassword: (*implUseCase).transferPassword,
	model.StateCardAccount:      (*implUseCase).cardAccount,
	model.StateCardReason:       (*implUseCase).cardReason,
}

func (uc *implUseCase) idle(ctx context.Context, s *model.Session, text string) turn {
	lower := strings.ToLower(text)
	conf := uc.cfg.Confidences

	if _, ok := greetingPhrases[lower]; ok {
		return turn{reply: replyGreeting, intent: dialogue.IntentGreetings, confidence: conf.QuickMatch}
	}
	if _, ok := thanksPhrases[lower]; ok {
		return turn{reply: replyThanks, intent: dialogue.IntentGreetings, confidence: conf.QuickMatch}
	}

	res := uc.router.Process(ctx, text)
	switch res.TopIntent {
	case dialogue.IntentGreetings:
		return turn{reply: replyGreeting, intent: res.TopIntent, confidence: res.Confidence}
	case dialogue.IntentCheckBalance:
		s.Enter(model.StateBalanceAccount)
		return turn{reply: promptBalanceAccount, intent: res.TopIntent, confidence: res.Confidence}
	case dialogue.IntentTransferMoney:
		s.Enter(model.StateTransferFrom)
		return turn{reply: promptTransferFrom, intent: res.TopIntent, confidence: res.Confidence}
	}

	if strings.Contains(lower, "card") && strings.Contains(lower, "block") {
		s.Enter(model.StateCardAccount)
		return turn{reply: promptCardAccount, intent: dialogue.IntentCardBlock, confidence: conf.Keyword}
	}

	return uc.askLLM(ctx, text)
}

func (uc *implUseCase) askLLM(ctx context.Context, text string) turn {
	t := turn{intent: dialogue.IntentLLM, confidence: uc.cfg.Confidences.LLMFallback}
	if uc.llm == nil {
		t.err = errNoLLM
		return t
	}
	reply, err := uc.llm.Invoke(ctx, uc.cfg.SystemPrompt, text)
	if err != nil {
		uc.l.Warnf(ctx, "%s: %v", LogPrefixAskLLM, err)
		t.err = err
		return t
	}
	t.reply = reply
	return t
}

func (uc *implUseCase) flowTurn(intent, reply string) turn {
	return turn{reply: reply, intent: intent, confidence: uc.cfg.Confidences.Flow}
}

// --- balance ---

func (uc *implUseCase) balanceAccount(ctx context.Context, s *model.Session, text string) turn {
	s.Slots.Account = text
	s.State = model.StateBalancePassword
	return uc.flowTurn(dialogue.IntentCheckBalance, promptPassword)
}

func (uc *implUseCase) balancePassword(ctx context.Context, s *model.Session, text string) turn {
	account := s.Slots.Account
	s.Clear()
	return uc.flowTurn(dialogue.IntentCheckBalance, uc.checkBalance(ctx, account, text))
}

// --- transfer ---

func (uc *implUseCase) transferFrom(ctx context.Context, s *model.Session, text string) turn {
	s.Slots.FromAccount = text
	s.State = model.StateTransferTo
	return uc.flowTurn(dialogue.IntentTransferMoney, promptTransferTo)
}

func (uc *implUseCase) transferTo(ctx context.Context, s *model.Session, text string) turn {
	s.Slots.ToAccount = text
	s.State = model.StateTransferAmount
	return uc.flowTurn(dialogue.IntentTransferMoney, promptTransferAmount)
}

func (uc *implUseCase) transferAmount(ctx context.Context, s *model.Session, text string) turn {
	amount, ok := parseAmount(text)
	if !ok {
		return uc.flowTurn(dialogue.IntentTransferMoney, promptInvalidAmount)
	}
	s.Slots.Amount = amount
	s.State = model.StateTransferPassword
	return uc.flowTurn(dialogue.IntentTransferMoney, promptPassword)
}

func (uc *implUseCase) transferPassword(ctx context.Context, s *model.Session, text string) turn {
	slots := s.Slots
	s.Clear()
	return uc.flowTurn(dialogue.IntentTransferMoney, uc.transfer(ctx, slots, text))
}

// --- card block ---

func (uc *implUseCase) cardAccount(ctx context.Context, s *model.Session, text string) turn {
	s.Slots.Account = text
	s.State = model.StateCardReason
	return uc.flowTurn(dialogue.IntentCardBlock, promptCardBlockReason)
}

func (uc *implUseCase) cardReason(ctx context.Context, s *model.Session, text string) turn {
	account := s.Slots.Account
	s.Clear()
	return uc.flowTurn(dialogue.IntentCardBlock, uc.blockCard(ctx, account, text))
}

// parseAmount accepts only a plain run of ASCII digits.
func parseAmount(text string) (int64, bool) {
	if text == "" {
		return 0, false
	}
	for _, r := range text {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
