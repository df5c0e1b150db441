package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"bankbot/internal/nlu/entity"
	"bankbot/internal/nlu/intent"
	"bankbot/internal/router"
	"bankbot/pkg/datemath"
	"bankbot/pkg/log"
)

const (
	flagIntents  = "intents"
	flagModelDir = "model-dir"
	flagTimezone = "timezone"
	flagVerbose  = "verbose"
	flagIntent   = "intent"
	flagMulti    = "multi"
)

func newLogger(c *cli.Context) log.Logger {
	level := "warn"
	if c.Bool(flagVerbose) {
		level = "debug"
	}
	return log.Init(log.ZapConfig{Level: level, Mode: log.ModeDevelopment, Encoding: log.EncodingConsole})
}

func newClassifier(c *cli.Context, l log.Logger) *intent.Classifier {
	return intent.New(l, intent.Options{
		IntentsPath: c.String(flagIntents),
		ModelDir:    c.String(flagModelDir),
	})
}

func newExtractor(c *cli.Context) *entity.Extractor {
	dates, err := datemath.NewParser(c.String(flagTimezone))
	if err != nil {
		dates, _ = datemath.NewParser("UTC")
	}
	return entity.New(dates)
}

func textArg(c *cli.Context) (string, error) {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return "", cli.Exit("an utterance is required", 2)
	}
	return text, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func trainCommand() *cli.Command {
	return &cli.Command{
		Name:  "train",
		Usage: "train the classifier on the training data file",
		Action: func(c *cli.Context) error {
			l := newLogger(c)
			out, err := newClassifier(c, l).Train(c.Context)
			if err != nil {
				return fmt.Errorf("train: %w", err)
			}
			fmt.Fprintf(c.App.Writer, "trained %s: %d intents, %d examples, %d features\n",
				out.Version, out.Intents, out.Examples, out.Features)
			return nil
		},
	}
}

func classifyCommand() *cli.Command {
	return &cli.Command{
		Name:      "classify",
		Usage:     "route an utterance through the classifier and entity extractor",
		ArgsUsage: "<utterance>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: flagMulti, Usage: "also score each clause separately"},
		},
		Action: func(c *cli.Context) error {
			text, err := textArg(c)
			if err != nil {
				return err
			}
			l := newLogger(c)
			classifier := newClassifier(c, l)

			res := router.New(l, classifier, newExtractor(c)).Process(c.Context, text)
			if !c.Bool(flagMulti) {
				return printJSON(c.App.Writer, res)
			}

			multi, err := classifier.PredictMulti(c.Context, text)
			if err != nil {
				return fmt.Errorf("predict multi: %w", err)
			}
			return printJSON(c.App.Writer, struct {
				router.Result
				MultiIntents []intent.Score `json:"multi_intents"`
			}{res, multi})
		},
	}
}

func entitiesCommand() *cli.Command {
	return &cli.Command{
		Name:      "entities",
		Usage:     "extract entities from an utterance",
		ArgsUsage: "<utterance>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: flagIntent, Usage: "enable the lookups tied to this intent"},
		},
		Action: func(c *cli.Context) error {
			text, err := textArg(c)
			if err != nil {
				return err
			}
			e := newExtractor(c)
			if in := c.String(flagIntent); in != "" {
				return printJSON(c.App.Writer, e.ExtractWithIntent(text, in))
			}
			return printJSON(c.App.Writer, e.Extract(text))
		},
	}
}

func intentsCommand() *cli.Command {
	return &cli.Command{
		Name:  "intents",
		Usage: "inspect or replace the training data",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "print each intent with its example count",
				Action: func(c *cli.Context) error {
					intents := newClassifier(c, newLogger(c)).LoadIntents(c.Context)
					names := make([]string, 0, len(intents))
					counts := make(map[string]int, len(intents))
					for _, in := range intents {
						names = append(names, in.Name)
						counts[in.Name] = len(in.Examples)
					}
					sort.Strings(names)
					for _, n := range names {
						fmt.Fprintf(c.App.Writer, "%-20s %d\n", n, counts[n])
					}
					return nil
				},
			},
			{
				Name:  "export",
				Usage: "print the training data as JSON",
				Action: func(c *cli.Context) error {
					intents := newClassifier(c, newLogger(c)).LoadIntents(c.Context)
					return printJSON(c.App.Writer, intent.Document{Intents: intents})
				},
			},
			{
				Name:      "import",
				Usage:     "replace the training data with a JSON file and retrain",
				ArgsUsage: "<file>",
				Action: func(c *cli.Context) error {
					path := c.Args().First()
					if path == "" {
						return cli.Exit("a dataset file is required", 2)
					}
					raw, err := os.ReadFile(path)
					if err != nil {
						return err
					}
					var ds intent.Document
					if err := json.Unmarshal(raw, &ds); err != nil {
						return fmt.Errorf("parse %s: %w", path, err)
					}
					if len(ds.Intents) == 0 {
						return errors.New("dataset has no intents")
					}

					out, err := newClassifier(c, newLogger(c)).Retrain(c.Context, ds.Intents)
					if err != nil {
						return fmt.Errorf("retrain: %w", err)
					}
					fmt.Fprintf(c.App.Writer, "imported and trained %s: %d intents, %d examples\n",
						out.Version, out.Intents, out.Examples)
					return nil
				},
			},
		},
	}
}
