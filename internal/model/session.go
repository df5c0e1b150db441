package model

import (
	"fmt"
	"time"
)

// DialogueState is the active flow step of a chat session.
type DialogueState uint8

const (
	StateIdle DialogueState = iota
	StateBalanceAccount
	StateBalancePassword
	StateTransferFrom
	StateTransferTo
	StateTransferAmount
	StateTransferPassword
	StateCardAccount
	StateCardReason
)

var stateNames = map[DialogueState]string{
	StateIdle:             "idle",
	StateBalanceAccount:   "balance_acc",
	StateBalancePassword:  "balance_pwd",
	StateTransferFrom:     "transfer_from",
	StateTransferTo:       "transfer_to",
	StateTransferAmount:   "transfer_amount",
	StateTransferPassword: "transfer_pwd",
	StateCardAccount:      "card_acc",
	StateCardReason:       "card_reason",
}

// DialogueStates lists every state in declaration order.
func DialogueStates() []DialogueState {
	return []DialogueState{
		StateIdle,
		StateBalanceAccount, StateBalancePassword,
		StateTransferFrom, StateTransferTo, StateTransferAmount, StateTransferPassword,
		StateCardAccount, StateCardReason,
	}
}

func (s DialogueState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("DialogueState(%d)", uint8(s))
}

// IsTerminal reports whether s performs its flow's action on the next input.
func (s DialogueState) IsTerminal() bool {
	return s == StateBalancePassword || s == StateTransferPassword || s == StateCardReason
}

func (s DialogueState) MarshalText() ([]byte, error) {
	name, ok := stateNames[s]
	if !ok {
		return nil, fmt.Errorf("unknown dialogue state %d", uint8(s))
	}
	return []byte(name), nil
}

func (s *DialogueState) UnmarshalText(text []byte) error {
	for state, name := range stateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown dialogue state %q", text)
}

// Slots are the values collected by the active flow.
type Slots struct {
	Account     string `json:"account,omitempty"`
	FromAccount string `json:"from_account,omitempty"`
	ToAccount   string `json:"to_account,omitempty"`
	Amount      int64  `json:"amount,omitempty"`
}

// Session is the per-conversation dialogue context.
type Session struct {
	ID        string        `json:"id"`
	Username  string        `json:"username,omitempty"`
	State     DialogueState `json:"state"`
	Slots     Slots         `json:"slots"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// Exists reports whether s was loaded from a store.
func (s Session) Exists() bool {
	return s.ID != ""
}

// Enter switches to state with empty slots.
func (s *Session) Enter(state DialogueState) {
	s.State = state
	s.Slots = Slots{}
}

// Clear returns the session to idle. The username is kept.
func (s *Session) Clear() {
	s.Enter(StateIdle)
}
