package model

import (
	"encoding/json"
	"testing"
)

func TestDialogueState_TextRoundTrip(t *testing.T) {
	for _, s := range DialogueStates() {
		b, err := s.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d) error: %v", s, err)
		}
		var got DialogueState
		if err := got.UnmarshalText(b); err != nil {
			t.Fatalf("UnmarshalText(%s) error: %v", b, err)
		}
		if got != s {
			t.Errorf("round trip %s = %s", s, got)
		}
	}

	var s DialogueState
	if err := s.UnmarshalText([]byte("dancing")); err == nil {
		t.Error("expected error for unknown state")
	}
	if _, err := DialogueState(200).MarshalText(); err == nil {
		t.Error("expected error for out of range state")
	}
}

func TestSession_JSON(t *testing.T) {
	in := Session{ID: "s1", Username: "asha", State: StateTransferAmount, Slots: Slots{FromAccount: "111", ToAccount: "222"}}
	b, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal error: %v", err)
	}
	var out Session
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("Unmarshal error: %v", err)
	}
	if out.State != StateTransferAmount || out.Slots != in.Slots || out.Username != "asha" {
		t.Errorf("got %+v", out)
	}
}

func TestSession_ClearKeepsUsername(t *testing.T) {
	s := Session{ID: "s1", Username: "asha", State: StateTransferPassword, Slots: Slots{FromAccount: "111", Amount: 5}}
	s.Clear()
	if s.State != StateIdle || s.Slots != (Slots{}) || s.Username != "asha" {
		t.Errorf("after Clear: %+v", s)
	}
	if !StateCardReason.IsTerminal() || StateCardAccount.IsTerminal() {
		t.Error("IsTerminal mismatch")
	}
}
