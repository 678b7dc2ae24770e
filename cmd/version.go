package cmd

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Set with -ldflags "-X github.com/spigell/hf-importer/cmd.version=...".
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the hf-importer version",
	Run: func(_ *cobra.Command, _ []string) {
		if err := printVersion(os.Stdout, viper.GetBool("json")); err != nil {
			newLogger().Fatal("printing the version", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func printVersion(w io.Writer, asJSON bool) error {
	if asJSON {
		return encodeJSON(w, map[string]string{"app": app, "version": version, "go": runtime.Version()})
	}

	_, err := fmt.Fprintf(w, "%s %s (%s)\n", app, version, runtime.Version())

	return err
}
