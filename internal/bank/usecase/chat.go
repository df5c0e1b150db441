package usecase

import (
	"context"

	"bankbot/internal/bank"
	repo "bankbot/internal/bank/repository"
)

// SaveChat appends a chat log row. An empty username is logged as guest.
func (uc *implUseCase) SaveChat(ctx context.Context, input bank.SaveChatInput) error {
	username := input.Username
	if username == "" {
		username = bank.DefaultUsername
	}
	if err := uc.repo.SaveChat(ctx, repo.SaveChatOptions{
		Username:   username,
		Query:      input.Query,
		Intent:     input.Intent,
		Confidence: input.Confidence,
		At:         uc.now(),
	}); err != nil {
		uc.l.Errorf(ctx, "%s: %v", LogPrefixSaveChat, err)
		return err
	}
	return nil
}

// ListChats returns a page of the chat log.
func (uc *implUseCase) ListChats(ctx context.Context, input bank.ListChatsInput) (bank.ListChatsOutput, error) {
	limit := input.Limit
	if limit <= 0 || limit > MaxChatPageSize {
		limit = DefaultChatPageSize
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	entries, total, err := uc.repo.ListChats(ctx, repo.ListChatsOptions{
		Username: input.Username,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		uc.l.Errorf(ctx, "%s: %v", LogPrefixListChats, err)
		return bank.ListChatsOutput{}, err
	}
	return bank.ListChatsOutput{Entries: entries, Total: total, Limit: limit, Offset: offset}, nil
}
