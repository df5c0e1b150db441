package http

import (
	"bankbot/internal/bank"
	"bankbot/internal/model"
	"bankbot/pkg/response"
)

// --- Request DTOs ---

type createAccountReq struct {
	Number   string `json:"account_number" binding:"required,numeric,min=3,max=20"`
	UserName string `json:"user_name"      binding:"required,max=100"`
	Type     string `json:"account_type"   binding:"omitempty,oneof=savings current salary"`
	Balance  int64  `json:"balance"        binding:"min=0"`
	Password string `json:"password"       binding:"required,min=4,max=72"`
}

func (r createAccountReq) toInput() bank.CreateAccountInput {
	return bank.CreateAccountInput{
		Number:   r.Number,
		UserName: r.UserName,
		Type:     r.Type,
		Balance:  r.Balance,
		Password: r.Password,
	}
}

type listChatsReq struct {
	Username string `form:"username"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

func (r listChatsReq) toInput() bank.ListChatsInput {
	return bank.ListChatsInput{
		Username: r.Username,
		Limit:    r.Limit,
		Offset:   r.Offset,
	}
}

// --- Response DTOs ---

type accountResp struct {
	Number   string `json:"account_number"`
	UserName string `json:"user_name"`
	Type     string `json:"account_type"`
	Balance  int64  `json:"balance"`
}

func newAccountResp(a model.Account) accountResp {
	return accountResp{
		Number:   a.Number,
		UserName: a.UserName,
		Type:     a.Type,
		Balance:  a.Balance,
	}
}

type chatResp struct {
	ID         int64             `json:"id"`
	Username   string            `json:"username"`
	Query      string            `json:"query"`
	Intent     string            `json:"intent"`
	Confidence float64           `json:"confidence"`
	Timestamp  response.DateTime `json:"timestamp"`
}

type listChatsResp struct {
	Entries []chatResp `json:"entries"`
	Total   int        `json:"total"`
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
}

func (h *handler) newListChatsResp(out bank.ListChatsOutput) listChatsResp {
	entries := make([]chatResp, len(out.Entries))
	for i, e := range out.Entries {
		entries[i] = chatResp{
			ID:         e.ID,
			Username:   e.Username,
			Query:      e.Query,
			Intent:     e.Intent,
			Confidence: e.Confidence,
			Timestamp:  response.DateTime(e.Timestamp),
		}
	}
	return listChatsResp{
		Entries: entries,
		Total:   out.Total,
		Limit:   out.Limit,
		Offset:  out.Offset,
	}
}
