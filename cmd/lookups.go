package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/hf-importer/internal/huntflow"
)

type lookupsReport struct {
	Vacancies []*huntflow.Vacancy         `json:"vacancies"`
	Statuses  []*huntflow.Status          `json:"statuses"`
	Sources   []*huntflow.ApplicantSource `json:"sources"`
	// Quotas is keyed by vacancy id, filled with --quotas only.
	Quotas map[int]map[string]*huntflow.Quota `json:"quotas,omitempty"`
}

var lookupsCmd = &cobra.Command{
	Use:   "lookups",
	Short: "Print vacancies, statuses and applicant sources the spreadsheet labels are matched against",
	Run: func(cmd *cobra.Command, _ []string) {
		ctx := context.Background()
		l := newLogger()

		cfg, err := getConfig()
		if err != nil {
			l.Fatal("getting a config", zap.Error(err))
		}

		if err := cfg.ValidateConnection(); err != nil {
			l.Fatal("checking a config", zap.Error(err))
		}

		client, _, err := connect(ctx, cfg, l)
		if err != nil {
			l.Fatal("connecting to huntflow", zap.Error(err))
		}

		withQuotas, _ := cmd.Flags().GetBool("quotas")

		report, err := lookups(ctx, client, withQuotas)
		if err != nil {
			l.Fatal("collecting lookups", zap.Error(err))
		}

		if err := printJSON(report); err != nil {
			l.Fatal("printing the report", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(lookupsCmd)

	lookupsCmd.Flags().Bool("quotas", false, "also print hiring quotas, one api call per vacancy")
}

func lookups(ctx context.Context, client *huntflow.Client, withQuotas bool) (*lookupsReport, error) {
	vacancies, err := client.Vacancies(ctx)
	if err != nil {
		return nil, fmt.Errorf("get vacancies: %w", err)
	}

	statuses, err := client.Statuses(ctx)
	if err != nil {
		return nil, fmt.Errorf("get statuses: %w", err)
	}

	sources, err := client.ApplicantSources(ctx)
	if err != nil {
		return nil, fmt.Errorf("get applicant sources: %w", err)
	}

	report := &lookupsReport{
		Vacancies: vacancies,
		Statuses:  statuses,
		Sources:   sources,
	}

	if !withQuotas {
		return report, nil
	}

	report.Quotas = make(map[int]map[string]*huntflow.Quota, len(vacancies))
	for _, v := range vacancies {
		quotas, err := client.VacancyQuotas(ctx, v.ID)
		if err != nil {
			return nil, fmt.Errorf("get quotas of vacancy %d: %w", v.ID, err)
		}
		report.Quotas[v.ID] = quotas
	}

	return report, nil
}
