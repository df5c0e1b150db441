package usecase

import (
	"context"
	"time"

	"bankbot/internal/bank"
	"bankbot/internal/dialogue"
	"bankbot/internal/dialogue/repository"
	"bankbot/internal/model"
	"bankbot/internal/router"
	"bankbot/pkg/log"
)

// Bank is the subset of the bank use case the dialogue drives.
type Bank interface {
	GetAccount(ctx context.Context, number string) (model.Account, error)
	VerifyPassword(plaintext, hash string) bool
	Transfer(ctx context.Context, input bank.TransferInput) (bank.TransferOutput, error)
	SaveChat(ctx context.Context, input bank.SaveChatInput) error
}

// LLM answers free-form questions no flow handles.
type LLM interface {
	Invoke(ctx context.Context, system, user string) (string, error)
}

// implUseCase is the private implementation of dialogue.UseCase.
type implUseCase struct {
	repo   repository.Repository
	bank   Bank
	router router.Router
	llm    LLM
	l      log.Logger
	cfg    dialogue.Config
	locks  *lockSet
	now    func() time.Time
}

var _ dialogue.UseCase = (*implUseCase)(nil)

// New creates a new dialogue UseCase implementation. llm may be nil, in which
// case unclassified turns fail with dialogue.ErrLLMUnavailable.
func New(l log.Logger, repo repository.Repository, b Bank, r router.Router, llm LLM, cfg dialogue.Config) *implUseCase {
	if cfg.DefaultUsername == "" {
		cfg.DefaultUsername = defaultUsername
	}
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = DefaultSystemPrompt
	}
	if cfg.Confidences == (dialogue.Confidences{}) {
		cfg.Confidences = dialogue.DefaultConfidences()
	}
	return &implUseCase{
		repo:   repo,
		bank:   b,
		router: r,
		llm:    llm,
		l:      l,
		cfg:    cfg,
		locks:  &lockSet{},
		now:    time.Now,
	}
}

const defaultUsername = bank.DefaultUsername
