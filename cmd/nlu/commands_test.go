package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"bankbot/internal/nlu/intent"
)

func writeDataset(t *testing.T, path string) {
	t.Helper()
	doc := intent.Document{Intents: []intent.Intent{
		{Name: "greetings", Examples: []string{"hello", "hi there", "good morning", "hey"}},
		{Name: "check_balance", Examples: []string{"what is my balance", "check my balance", "show account balance", "how much money do I have"}},
		{Name: "card_block", Examples: []string{"block my card", "my card was stolen", "lost my debit card", "freeze my card"}},
	}}
	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
}

func runApp(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := &cli.App{
		Name:   "nlu",
		Writer: &out,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagIntents, Value: filepath.Join(dir, "intents.json")},
			&cli.StringFlag{Name: flagModelDir, Value: filepath.Join(dir, "model")},
			&cli.StringFlag{Name: flagTimezone, Value: "UTC"},
			&cli.BoolFlag{Name: flagVerbose},
		},
		Commands: []*cli.Command{trainCommand(), classifyCommand(), entitiesCommand(), intentsCommand()},
		// Exit codes are asserted on the returned error instead of exiting the test binary.
		ExitErrHandler: func(*cli.Context, error) {},
	}
	err := app.RunContext(context.Background(), append([]string{"nlu"}, args...))
	return out.String(), err
}

func TestTrainAndClassify(t *testing.T) {
	dir := t.TempDir()
	writeDataset(t, filepath.Join(dir, "intents.json"))

	out, err := runApp(t, dir, "train")
	require.NoError(t, err)
	assert.Contains(t, out, "3 intents")

	out, err = runApp(t, dir, "classify", "check", "my", "balance")
	require.NoError(t, err)

	var res struct {
		TopIntent string `json:"top_intent"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, "check_balance", res.TopIntent)
}

func TestClassify_RequiresText(t *testing.T) {
	_, err := runApp(t, t.TempDir(), "classify")
	require.Error(t, err)

	var exitErr cli.ExitCoder
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 2, exitErr.ExitCode())
}

func TestEntities(t *testing.T) {
	out, err := runApp(t, t.TempDir(), "entities", "--intent", "card_block", "block my debit card ending 4321, it was stolen")
	require.NoError(t, err)
	assert.Contains(t, out, `"4321"`)
	assert.Contains(t, out, "card_number")
}

func TestIntentsListAndImport(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(t.TempDir(), "import.json")
	writeDataset(t, src)

	out, err := runApp(t, dir, "intents", "list")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = runApp(t, dir, "intents", "import", src)
	require.NoError(t, err)
	assert.Contains(t, out, "3 intents")

	out, err = runApp(t, dir, "intents", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "card_block")
	assert.Contains(t, out, "greetings")
}
