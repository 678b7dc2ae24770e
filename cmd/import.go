package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/manifoldco/promptui"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hf-importer/internal/candidate"
	"github.com/spigell/hf-importer/internal/checkpoint"
	"github.com/spigell/hf-importer/internal/config"
	"github.com/spigell/hf-importer/internal/importer"
	"github.com/spigell/hf-importer/internal/logger"
	"github.com/spigell/hf-importer/internal/spreadsheet"
)

const (
	PromptYes               = "Yes"
	PromptNo                = "No"
	PromptReportByPositions = "Report by positions"
	PromptUnresolved        = "Show candidates with unresolved status or vacancy"
)

var errExit = errors.New("exit requested")

var prompt = promptui.Select{
	Label: "Import the candidates?",
	Items: []string{PromptYes, PromptNo, PromptReportByPositions, PromptUnresolved},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import candidates from a spreadsheet into Huntflow",
	Run: func(_ *cobra.Command, _ []string) {
		runImport()
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("path", "p", "", "path to the .xls spreadsheet with candidates (required)")
	importCmd.Flags().String("resume-dir", config.DefaultResumeDir, "directory with one sub directory of resumes per position")
	importCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation before importing")

	for _, name := range []string{"path", "resume-dir", "yes"} {
		viper.BindPFlag(name, importCmd.Flags().Lookup(name))
	}
}

// runImport is the main command for the cli.
func runImport() {
	ctx := context.Background()

	l := logger.WithRunID(newLogger(), uuid.NewString())

	cfg, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	if err := cfg.Validate(); err != nil {
		l.Fatal("checking a config",
			zap.Error(err),
			zap.String("hint", "set --path and --tkn (or HUNTFLOW_TOKEN / HUNTFLOW_TOKEN_FILE)"),
		)
	}

	l.Info("starting the hf-importer", zap.String("version", version), zap.String("path", cfg.Path))

	client, account, err := connect(ctx, cfg, l)
	if err != nil {
		l.Fatal("connecting to huntflow", zap.Error(err))
	}

	l.Info("using huntflow account", zap.Int("account_id", account.ID), zap.String("account_name", account.Name))

	records, err := spreadsheet.Read(cfg.Path)
	if err != nil {
		l.Fatal("reading the spreadsheet", zap.Error(err))
	}

	l.Info("candidates loaded", zap.Int("count", len(records)))

	if len(records) == 0 {
		l.Info("exiting", zap.String("reason", "no candidates in the spreadsheet"))
		return
	}

	fs := afero.NewOsFs()
	store := checkpoint.New(fs, cfg.Path)

	runner, err := importer.New(&importer.Config{ResumeDir: cfg.ResumeDir}, &importer.Deps{
		Directory:  client,
		Checkpoint: store,
		FS:         fs,
		Logger:     l,
	})
	if err != nil {
		l.Fatal("creating the importer", zap.Error(err))
	}

	if err := runner.Resolve(ctx, records); err != nil {
		l.Fatal("resolving statuses and vacancies", zap.Error(err))
	}

	if !cfg.Yes {
		if err := confirm(l, records); err != nil {
			if errors.Is(err, errExit) {
				return
			}
			l.Fatal("exiting", zap.Error(err))
		}
	}

	result, err := runner.Process(ctx, records)
	if err != nil {
		l.Fatal("import failed",
			zap.Error(err),
			zap.Int("processed", result.Processed),
			zap.String("checkpoint", store.Path()),
			zap.String("hint", "fix the problem and run the same command again to continue"),
		)
	}

	l.Info("successfully imported candidates",
		zap.Int("processed", result.Processed),
		zap.Int("skipped", result.Skipped),
	)
}

func confirm(l *zap.Logger, records []*candidate.Candidate) error {
	for {
		_, action, err := prompt.Run()
		if err != nil {
			return err
		}

		proceed, err := handleAction(action, l, records)
		if err != nil {
			return err
		}

		if proceed {
			return nil
		}
	}
}

func handleAction(action string, l *zap.Logger, records []*candidate.Candidate) (bool, error) {
	switch action {
	case PromptYes:
		return true, nil
	case PromptNo:
		l.Info("exiting", zap.String("reason", "got no from prompt"))
		return false, errExit
	case PromptReportByPositions:
		pretty, _ := json.MarshalIndent(candidate.ReportByPosition(records), "", "  ")
		l.Info(string(pretty), zap.Int("candidates count", len(records)))
		return false, nil
	case PromptUnresolved:
		unresolved := candidate.Unresolved(records)
		pretty, _ := json.MarshalIndent(candidate.ReportByPosition(unresolved), "", "  ")
		l.Info(string(pretty), zap.Int("unresolved count", len(unresolved)))
		return false, nil
	default:
		return false, fmt.Errorf("invalid action: %s", action)
	}
}
