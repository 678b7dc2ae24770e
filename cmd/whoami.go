package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hf-importer/internal/huntflow"
)

type whoamiReport struct {
	Me         *huntflow.Me        `json:"me"`
	Accounts   []*huntflow.Account `json:"accounts"`
	Account    *huntflow.Account   `json:"account"`
	Applicants int                 `json:"applicants"`
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the token owner, its accounts and the account used for import",
	Run: func(_ *cobra.Command, _ []string) {
		ctx := context.Background()
		l := newLogger()

		cfg, err := getConfig()
		if err != nil {
			l.Fatal("getting a config", zap.Error(err))
		}

		if err := cfg.ValidateConnection(); err != nil {
			l.Fatal("checking a config", zap.Error(err))
		}

		client, account, err := connect(ctx, cfg, l)
		if err != nil {
			l.Fatal("connecting to huntflow", zap.Error(err))
		}

		report, err := whoami(ctx, client, account)
		if err != nil {
			l.Fatal("collecting account information", zap.Error(err))
		}

		if err := printJSON(report); err != nil {
			l.Fatal("printing the report", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func whoami(ctx context.Context, client *huntflow.Client, account *huntflow.Account) (*whoamiReport, error) {
	me, err := client.Me(ctx)
	if err != nil {
		return nil, fmt.Errorf("get me: %w", err)
	}

	accounts, err := client.Accounts(ctx)
	if err != nil {
		return nil, fmt.Errorf("get accounts: %w", err)
	}

	page, err := client.Applicants(ctx, 1)
	if err != nil {
		return nil, fmt.Errorf("get applicants: %w", err)
	}

	return &whoamiReport{
		Me:         me,
		Accounts:   accounts,
		Account:    account,
		Applicants: page.Total,
	}, nil
}
