package usecase

import (
	"context"
	"testing"

	"bankbot/internal/bank"
)

func TestSaveChat_DefaultsToGuest(t *testing.T) {
	uc, r := newTestUseCase(t)
	ctx := context.Background()

	if err := uc.SaveChat(ctx, bank.SaveChatInput{Query: "hi", Intent: "greetings", Confidence: 1}); err != nil {
		t.Fatalf("SaveChat() error = %v", err)
	}
	if err := uc.SaveChat(ctx, bank.SaveChatInput{Username: "asha", Query: "balance", Intent: "check_balance", Confidence: 1}); err != nil {
		t.Fatalf("SaveChat() error = %v", err)
	}

	if r.chats[0].Username != bank.DefaultUsername {
		t.Errorf("username = %q, want %q", r.chats[0].Username, bank.DefaultUsername)
	}
	if r.chats[0].Timestamp.IsZero() {
		t.Error("timestamp not set")
	}
}

func TestListChats_Paging(t *testing.T) {
	uc, _ := newTestUseCase(t)
	ctx := context.Background()
	for _, q := range []string{"a", "b", "c"} {
		if err := uc.SaveChat(ctx, bank.SaveChatInput{Username: "asha", Query: q, Intent: "llm", Confidence: 0.85}); err != nil {
			t.Fatal(err)
		}
	}

	out, err := uc.ListChats(ctx, bank.ListChatsInput{Username: "asha", Limit: 500, Offset: -3})
	if err != nil {
		t.Fatal(err)
	}
	if out.Limit != DefaultChatPageSize || out.Offset != 0 {
		t.Errorf("paging = %d/%d", out.Limit, out.Offset)
	}
	if out.Total != 3 || len(out.Entries) != 3 || out.Entries[0].Query != "c" {
		t.Errorf("ListChats() = %+v", out)
	}
}
