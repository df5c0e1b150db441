package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bankbot/internal/dialogue"
	"bankbot/internal/dialogue/repository/memory"
	"bankbot/internal/model"
	"bankbot/internal/nlu/entity"
	"bankbot/internal/nlu/intent"
	"bankbot/internal/router"
	"bankbot/pkg/log"
)

type testEnv struct {
	uc     *implUseCase
	bank   *fakeBank
	router *fakeRouter
	llm    *fakeLLM
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		bank: newFakeBank(),
		router: &fakeRouter{results: map[string]router.Result{
			"I want to transfer money": {TopIntent: dialogue.IntentTransferMoney, Confidence: 1},
			"what is my balance":       {TopIntent: dialogue.IntentCheckBalance, Confidence: 1},
			"good day to you":          {TopIntent: dialogue.IntentGreetings, Confidence: 0.62},
			"please block my card":     {TopIntent: "card_block", Confidence: 0.55},
			"can you block the card":   {TopIntent: dialogue.IntentCheckBalance, Confidence: 0.40},
		}},
		llm: &fakeLLM{reply: "An IFSC code identifies a bank branch."},
	}
	env.uc = New(log.NewNop(), memory.New(100, time.Hour), env.bank, env.router, env.llm, dialogue.Config{})
	return env
}

func (e *testEnv) say(t *testing.T, sessionID, text string) dialogue.HandleMessageOutput {
	t.Helper()
	out, err := e.uc.HandleMessage(context.Background(), dialogue.HandleMessageInput{SessionID: sessionID, Text: text})
	require.NoError(t, err)
	return out
}

func TestTransitions_CoverEveryState(t *testing.T) {
	for _, s := range model.DialogueStates() {
		_, ok := transitions[s]
		assert.True(t, ok, "no transition for %s", s)
	}
	assert.Len(t, transitions, len(model.DialogueStates()))
}

func TestHandleMessage_QuickMatch(t *testing.T) {
	tests := []struct {
		input string
		reply string
	}{
		{"hi", replyGreeting},
		{"  Hello ", replyGreeting},
		{"GOOD MORNING", replyGreeting},
		{"thanks", replyThanks},
		{"Thank You", replyThanks},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env := newTestEnv(t)
			out := env.say(t, "s1", tt.input)

			assert.Equal(t, tt.reply, out.Reply)
			assert.Equal(t, dialogue.IntentGreetings, out.Intent)
			assert.Equal(t, 1.0, out.Confidence)
			assert.Equal(t, "idle", out.State)
			assert.Zero(t, env.router.calls.Load())
			require.Len(t, env.bank.chats, 1)
			assert.Equal(t, 1.0, env.bank.chats[0].Confidence)
		})
	}
}

func TestHandleMessage_GreetingWithoutTrainedModel(t *testing.T) {
	dir := t.TempDir()
	classifier := intent.New(log.NewNop(), intent.Options{
		IntentsPath: filepath.Join(dir, "intents.json"),
		ModelDir:    filepath.Join(dir, "model"),
	})
	r := router.New(log.NewNop(), classifier, entity.New(nil))
	fb := newFakeBank()
	uc := New(log.NewNop(), memory.New(10, time.Hour), fb, r, &fakeLLM{}, dialogue.Config{})

	out, err := uc.HandleMessage(context.Background(), dialogue.HandleMessageInput{Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, replyGreeting, out.Reply)
	assert.Equal(t, 1.0, out.Confidence)
	assert.NotEmpty(t, out.SessionID)
}

func TestHandleMessage_TransferScenario(t *testing.T) {
	env := newTestEnv(t)

	steps := []struct {
		input string
		reply string
		state string
	}{
		{"I want to transfer money", promptTransferFrom, "transfer_from"},
		{"111", promptTransferTo, "transfer_to"},
		{"222", promptTransferAmount, "transfer_amount"},
		{"500", promptPassword, "transfer_pwd"},
		{"secret", replyTransferOK, "idle"},
	}
	for _, st := range steps {
		out := env.say(t, "s1", st.input)
		assert.Equal(t, st.reply, out.Reply, "input %q", st.input)
		assert.Equal(t, st.state, out.State, "input %q", st.input)
		assert.Equal(t, dialogue.IntentTransferMoney, out.Intent)
	}

	assert.Equal(t, int64(500), env.bank.balance("111"))
	assert.Equal(t, int64(550), env.bank.balance("222"))
	assert.Len(t, env.bank.transactions, 1)

	s, err := env.uc.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StateIdle, s.State)
	assert.Equal(t, model.Slots{}, s.Slots)

	require.Len(t, env.bank.chats, len(steps))
	assert.Equal(t, 1.0, env.bank.chats[0].Confidence)
	for _, c := range env.bank.chats[1:] {
		assert.Equal(t, 0.95, c.Confidence)
		assert.Equal(t, "guest", c.Username)
	}
	assert.Equal(t, "secret", env.bank.chats[4].Query)
}

func TestHandleMessage_TransferRejections(t *testing.T) {
	tests := []struct {
		name     string
		from     string
		to       string
		amount   string
		password string
		reply    string
	}{
		{"insufficient balance", "111", "222", "5000", "secret", replyInsufficientBalance},
		{"wrong password", "111", "222", "10", "nope", replyTransferWrongPassword},
		{"unknown sender", "999", "222", "10", "secret", replyInvalidSender},
		{"unknown receiver", "111", "999", "10", "secret", replyInvalidReceiver},
		{"same account", "111", "111", "10", "secret", replySameAccount},
		{"zero amount", "111", "222", "0", "secret", replyInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			for _, in := range []string{"I want to transfer money", tt.from, tt.to, tt.amount} {
				env.say(t, "s1", in)
			}
			out := env.say(t, "s1", tt.password)

			assert.Equal(t, tt.reply, out.Reply)
			assert.Equal(t, "idle", out.State)
			assert.Equal(t, int64(1000), env.bank.balance("111"))
			assert.Equal(t, int64(50), env.bank.balance("222"))
			assert.Empty(t, env.bank.transactions)
		})
	}
}

func TestHandleMessage_InvalidAmountReprompts(t *testing.T) {
	env := newTestEnv(t)
	for _, in := range []string{"I want to transfer money", "111", "222"} {
		env.say(t, "s1", in)
	}

	for _, bad := range []string{"five hundred", "-5", "12.50", "₹500", "99999999999999999999"} {
		out := env.say(t, "s1", bad)
		assert.Equal(t, promptInvalidAmount, out.Reply, "input %q", bad)
		assert.Equal(t, "transfer_amount", out.State, "input %q", bad)
	}

	out := env.say(t, "s1", "20")
	assert.Equal(t, "transfer_pwd", out.State)

	s, err := env.uc.GetSession(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, model.Slots{FromAccount: "111", ToAccount: "222", Amount: 20}, s.Slots)
}

func TestHandleMessage_BalanceFlow(t *testing.T) {
	tests := []struct {
		name     string
		account  string
		password string
		reply    string
	}{
		{"correct password", "111", "secret", "✅ Your available balance is ₹1000"},
		{"wrong password", "111", "guess", replyBalanceWrongPassword},
		{"unknown account", "404", "secret", replyBalanceNoAccount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			out := env.say(t, "s1", "what is my balance")
			assert.Equal(t, promptBalanceAccount, out.Reply)
			assert.Equal(t, "balance_acc", out.State)

			out = env.say(t, "s1", tt.account)
			assert.Equal(t, promptPassword, out.Reply)
			assert.Equal(t, "balance_pwd", out.State)

			out = env.say(t, "s1", tt.password)
			assert.Equal(t, tt.reply, out.Reply)
			assert.Equal(t, "idle", out.State)
			assert.Equal(t, dialogue.IntentCheckBalance, out.Intent)
		})
	}
}

func TestHandleMessage_CardBlockKeywordOverride(t *testing.T) {
	env := newTestEnv(t)

	out := env.say(t, "s1", "can you block the card")
	// classifier said check_balance, so the flow follows the classifier
	assert.Equal(t, "balance_acc", out.State)

	env = newTestEnv(t)
	out = env.say(t, "s1", "please block my card")
	assert.Equal(t, promptCardAccount, out.Reply)
	assert.Equal(t, dialogue.IntentCardBlock, out.Intent)
	assert.Equal(t, 0.90, out.Confidence)
	assert.Equal(t, "card_acc", out.State)

	out = env.say(t, "s1", "111")
	assert.Equal(t, promptCardBlockReason, out.Reply)

	out = env.say(t, "s1", "stolen")
	assert.Equal(t, fmt.Sprintf(replyCardBlocked, "111", "stolen"), out.Reply)
	assert.Equal(t, "idle", out.State)

	env.say(t, "s1", "please block my card")
	env.say(t, "s1", "000")
	out = env.say(t, "s1", "lost")
	assert.Equal(t, replyCardNoAccount, out.Reply)
}

func TestHandleMessage_ClassifierGreeting(t *testing.T) {
	env := newTestEnv(t)
	out := env.say(t, "s1", "good day to you")
	assert.Equal(t, replyGreeting, out.Reply)
	assert.Equal(t, 0.62, out.Confidence)
}

func TestHandleMessage_LLMFallback(t *testing.T) {
	env := newTestEnv(t)

	out := env.say(t, "s1", "what is an ifsc code")
	assert.Equal(t, "An IFSC code identifies a bank branch.", out.Reply)
	assert.Equal(t, dialogue.IntentLLM, out.Intent)
	assert.Equal(t, 0.85, out.Confidence)
	assert.Equal(t, DefaultSystemPrompt, env.llm.lastSystem)
	assert.Equal(t, "what is an ifsc code", env.llm.lastUser)
	require.Len(t, env.bank.chats, 1)
	assert.Equal(t, dialogue.IntentLLM, env.bank.chats[0].Intent)
}

func TestHandleMessage_LLMFailurePropagatesAfterLogging(t *testing.T) {
	env := newTestEnv(t)
	env.llm.err = errBoom

	out, err := env.uc.HandleMessage(context.Background(), dialogue.HandleMessageInput{SessionID: "s1", Text: "what is an ifsc code"})
	require.Error(t, err)
	assert.ErrorIs(t, err, dialogue.ErrLLMUnavailable)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, dialogue.IntentLLM, out.Intent)
	assert.Empty(t, out.Reply)

	require.Len(t, env.bank.chats, 1)
	assert.Equal(t, "what is an ifsc code", env.bank.chats[0].Query)
	assert.Equal(t, 0.85, env.bank.chats[0].Confidence)
}

func TestHandleMessage_NoLLMConfigured(t *testing.T) {
	env := newTestEnv(t)
	uc := New(log.NewNop(), memory.New(10, time.Hour), env.bank, env.router, nil, dialogue.Config{})

	_, err := uc.HandleMessage(context.Background(), dialogue.HandleMessageInput{Text: "tell me a joke"})
	assert.ErrorIs(t, err, dialogue.ErrLLMUnavailable)
	assert.Len(t, env.bank.chats, 1)
}

func TestHandleMessage_GreetingMidFlowIsSlotValue(t *testing.T) {
	env := newTestEnv(t)
	env.say(t, "s1", "what is my balance")
	env.say(t, "s1", "111")

	out := env.say(t, "s1", "hello")
	assert.Equal(t, replyBalanceWrongPassword, out.Reply)
	assert.Equal(t, dialogue.IntentCheckBalance, out.Intent)
}

func TestHandleMessage_ConfigurableConfidences(t *testing.T) {
	env := newTestEnv(t)
	uc := New(log.NewNop(), memory.New(10, time.Hour), env.bank, env.router, env.llm, dialogue.Config{
		DefaultUsername: "anonymous",
		Confidences:     dialogue.Confidences{QuickMatch: 0.99, Flow: 0.7, Keyword: 0.6, LLMFallback: 0.5},
	})

	ctx := context.Background()
	out, _ := uc.HandleMessage(ctx, dialogue.HandleMessageInput{SessionID: "s", Text: "hi"})
	assert.Equal(t, 0.99, out.Confidence)
	out, _ = uc.HandleMessage(ctx, dialogue.HandleMessageInput{SessionID: "s", Text: "please block my card"})
	assert.Equal(t, 0.6, out.Confidence)
	out, _ = uc.HandleMessage(ctx, dialogue.HandleMessageInput{SessionID: "s", Text: "111"})
	assert.Equal(t, 0.7, out.Confidence)
	uc.Reset(ctx, "s")
	out, _ = uc.HandleMessage(ctx, dialogue.HandleMessageInput{SessionID: "s", Text: "weather?"})
	assert.Equal(t, 0.5, out.Confidence)
	assert.Equal(t, "anonymous", env.bank.chats[0].Username)
}

func TestHandleMessage_UsernameAndReset(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.uc.HandleMessage(ctx, dialogue.HandleMessageInput{SessionID: "s1", Username: "asha", Text: "I want to transfer money"})
	require.NoError(t, err)
	env.say(t, "s1", "111")
	assert.Equal(t, "asha", env.bank.chats[1].Username)

	require.NoError(t, env.uc.Reset(ctx, "s1"))
	s, err := env.uc.GetSession(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, model.StateIdle, s.State)
	assert.Equal(t, "asha", s.Username)
	assert.Equal(t, model.Slots{}, s.Slots)

	require.NoError(t, env.uc.Reset(ctx, "never-seen"))
	_, err = env.uc.GetSession(ctx, "never-seen")
	assert.ErrorIs(t, err, dialogue.ErrSessionNotFound)
}

func TestHandleMessage_EmptyInput(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.uc.HandleMessage(context.Background(), dialogue.HandleMessageInput{SessionID: "s1", Text: "   "})
	assert.ErrorIs(t, err, dialogue.ErrEmptyMessage)
	assert.Empty(t, env.bank.chats)
}

func TestHandleMessage_StoreFailures(t *testing.T) {
	t.Run("chat log failure keeps reply", func(t *testing.T) {
		env := newTestEnv(t)
		env.bank.saveErr = errBoom
		out := env.say(t, "s1", "hi")
		assert.Equal(t, replyGreeting, out.Reply)
	})

	t.Run("account store failure gives generic reply", func(t *testing.T) {
		env := newTestEnv(t)
		env.say(t, "s1", "what is my balance")
		env.say(t, "s1", "111")
		env.bank.getErr = errBoom
		out := env.say(t, "s1", "secret")
		assert.Equal(t, replyServiceError, out.Reply)
		assert.Equal(t, "idle", out.State)
	})

	t.Run("transfer failure gives generic reply", func(t *testing.T) {
		env := newTestEnv(t)
		for _, in := range []string{"I want to transfer money", "111", "222", "10"} {
			env.say(t, "s1", in)
		}
		env.bank.transferErr = errors.New("connection reset")
		out := env.say(t, "s1", "secret")
		assert.Equal(t, replyServiceError, out.Reply)
		assert.NotContains(t, out.Reply, "connection reset")
	})
}

func TestHandleMessage_ConcurrentSessions(t *testing.T) {
	env := newTestEnv(t)
	env.bank.accounts["111"] = model.Account{Number: "111", Balance: 100000, PasswordHash: "secret"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := fmt.Sprintf("s%d", i)
			for _, in := range []string{"I want to transfer money", "111", "222", "100", "secret"} {
				if _, err := env.uc.HandleMessage(context.Background(), dialogue.HandleMessageInput{SessionID: id, Text: in}); err != nil {
					t.Errorf("session %s: %v", id, err)
				}
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(100000-800), env.bank.balance("111"))
	assert.Len(t, env.bank.transactions, 8)
}
