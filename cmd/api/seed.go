package main

import (
	"context"
	"errors"

	"bankbot/internal/bank"
	"bankbot/pkg/log"
)

// demoAccounts are created when database.seed is on.
var demoAccounts = []bank.CreateAccountInput{
	{Number: "111", UserName: "Alice", Type: "savings", Balance: 50000, Password: "alice123"},
	{Number: "222", UserName: "Bob", Type: "current", Balance: 20000, Password: "bob123"},
}

func seedAccounts(ctx context.Context, uc bank.UseCase, l log.Logger) error {
	for _, in := range demoAccounts {
		_, err := uc.CreateAccount(ctx, in)
		switch {
		case errors.Is(err, bank.ErrDuplicateAccount):
			continue
		case err != nil:
			return err
		}
		l.Infof(ctx, "Seeded demo account %s", in.Number)
	}
	return nil
}
