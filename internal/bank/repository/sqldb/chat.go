package sqldb

import (
	"context"
	"fmt"

	repo "bankbot/internal/bank/repository"
	"bankbot/internal/model"
)

// SaveChat appends one chat log row.
func (r *implRepository) SaveChat(ctx context.Context, opt repo.SaveChatOptions) error {
	at := opt.At
	if at.IsZero() {
		at = r.now()
	}

	query := r.rebind(`
		INSERT INTO chat_history (username, query, intent, confidence, timestamp)
		VALUES (?, ?, ?, ?, ?)`)
	if _, err := r.db.ExecContext(ctx, query, opt.Username, opt.Query, opt.Intent, opt.Confidence, at.UTC()); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("SaveChat"), err)
		return repo.ErrFailedToInsert
	}
	return nil
}

// ListChats returns a page of chat log rows, newest first, and the total count.
func (r *implRepository) ListChats(ctx context.Context, opt repo.ListChatsOptions) ([]model.ChatEntry, int, error) {
	where, args := r.buildChatFilter(opt)

	var total int
	countQuery := r.rebind(fmt.Sprintf("SELECT COUNT(*) FROM chat_history WHERE %s", where))
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		r.l.Errorf(ctx, "%s count: %v", r.dsn("ListChats"), err)
		return nil, 0, repo.ErrFailedToList
	}

	query := r.rebind(fmt.Sprintf(`
		SELECT id, username, query, intent, confidence, timestamp
		FROM chat_history WHERE %s
		ORDER BY id DESC LIMIT ? OFFSET ?`, where))
	rows, err := r.db.QueryContext(ctx, query, append(args, opt.Limit, opt.Offset)...)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListChats"), err)
		return nil, 0, repo.ErrFailedToList
	}
	defer rows.Close()

	entries := make([]model.ChatEntry, 0, opt.Limit)
	for rows.Next() {
		var e model.ChatEntry
		if err := rows.Scan(&e.ID, &e.Username, &e.Query, &e.Intent, &e.Confidence, &e.Timestamp); err != nil {
			r.l.Errorf(ctx, "%s scan: %v", r.dsn("ListChats"), err)
			return nil, 0, repo.ErrFailedToList
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		r.l.Errorf(ctx, "%s rows: %v", r.dsn("ListChats"), err)
		return nil, 0, repo.ErrFailedToList
	}
	return entries, total, nil
}

// buildChatFilter builds the WHERE clause + args for ListChats.
func (r *implRepository) buildChatFilter(opt repo.ListChatsOptions) (string, []any) {
	if opt.Username == "" {
		return "1=1", nil
	}
	return "username = ?", []any{opt.Username}
}
