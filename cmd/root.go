package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/hf-importer/internal/config"
	"github.com/spigell/hf-importer/internal/huntflow"
	"github.com/spigell/hf-importer/internal/logger"
	"github.com/spigell/hf-importer/internal/secrets"
)

const (
	app       = "hf-importer"
	envPrefix = "HUNTFLOW"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "hf-importer is a simple cli for importing candidates from a spreadsheet into Huntflow",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("tkn", envPrefix+"_TOKEN"); err != nil {
		log.Fatalf("binding %s_TOKEN environment variable: %v", envPrefix, err)
	}

	if err := viper.BindEnv("token-file", envPrefix+"_TOKEN_FILE"); err != nil {
		log.Fatalf("binding %s_TOKEN_FILE environment variable: %v", envPrefix, err)
	}

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is hf-importer.yaml in current directory, optional)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringP("tkn", "t", "", "huntflow api token")
	rootCmd.PersistentFlags().String("token-file", "", "file with the huntflow api token, takes precedence over --tkn")
	rootCmd.PersistentFlags().String("api-url", config.DefaultAPIURL, "huntflow api base url")
	rootCmd.PersistentFlags().String("user-agent", "", "User-Agent header for api calls (default hf-importer)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "http timeout for a single api call, 0 means no timeout")

	for _, name := range []string{"debug", "json", "tkn", "token-file", "api-url", "user-agent", "timeout"} {
		viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
}

func initConfig() {
	// .env is optional, real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// A missing default config file is fine, everything can come from flags and environment.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*config.Config, error) {
	var cfg config.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	return &cfg, nil
}

func newLogger() *zap.Logger {
	l, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	return l
}

// connect builds a Huntflow client bound to the account of the token.
func connect(ctx context.Context, cfg *config.Config, l *zap.Logger) (*huntflow.Client, *huntflow.Account, error) {
	token, err := secrets.NewLoader(afero.NewOsFs()).LoadToken(secrets.Source{
		Name:  "huntflow token",
		Value: cfg.Token,
		File:  cfg.TokenFile,
	})
	if err != nil {
		return nil, nil, &config.ConfigurationError{Field: "tkn", Reason: err.Error()}
	}

	client := huntflow.New(huntflow.Config{
		APIURL:    cfg.APIURL,
		Token:     token,
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.Timeout,
	}, l)

	return client.Bind(ctx)
}

func printJSON(v any) error {
	return encodeJSON(os.Stdout, v)
}

func encodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(v)
}
