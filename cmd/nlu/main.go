package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "nlu",
		Usage: "train and inspect the banking assistant's intent classifier",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagIntents,
				Usage:   "training data file",
				Value:   "data/intents.json",
				EnvVars: []string{"NLU_INTENTS_PATH"},
			},
			&cli.StringFlag{
				Name:    flagModelDir,
				Usage:   "directory holding the trained artifact",
				Value:   "data/model",
				EnvVars: []string{"NLU_MODEL_DIR"},
			},
			&cli.StringFlag{
				Name:    flagTimezone,
				Usage:   "timezone for relative date entities",
				Value:   "Asia/Kolkata",
				EnvVars: []string{"NLU_TIMEZONE"},
			},
			&cli.BoolFlag{
				Name:  flagVerbose,
				Usage: "log at debug level",
			},
		},
		Commands: []*cli.Command{
			trainCommand(),
			classifyCommand(),
			entitiesCommand(),
			intentsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
