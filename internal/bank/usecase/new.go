package usecase

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"bankbot/internal/bank"
	"bankbot/internal/bank/repository"
	"bankbot/pkg/log"
)

// implUseCase is the private implementation of bank.UseCase.
type implUseCase struct {
	repo     repository.Repository
	l        log.Logger
	hashCost int
	now      func() time.Time
}

var _ bank.UseCase = (*implUseCase)(nil)

// New creates a new bank UseCase implementation.
func New(repo repository.Repository, l log.Logger) *implUseCase {
	return &implUseCase{
		repo:     repo,
		l:        l,
		hashCost: bcrypt.DefaultCost,
		now:      time.Now,
	}
}
