package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/headlines/internal/config"
	"github.com/matheuskafuri/headlines/internal/guardian"
	"github.com/matheuskafuri/headlines/internal/logging"
	"github.com/matheuskafuri/headlines/internal/update"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	flagKeyword  string
	flagOrderBy  string
	flagConfig   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "headlines",
	Short: "Terminal reader for Guardian news searches",
	Long:  "headlines searches the Guardian content API for a keyword and shows the matching articles in a two-pane terminal reader.",
	Args:  cobra.NoArgs,
	RunE:  runTUI,

	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagKeyword, "keyword", "", "search keyword (overrides config)")
	pf.StringVar(&flagOrderBy, "order-by", "", "sort order: newest, oldest or relevance")
	pf.StringVar(&flagConfig, "config", "", "path to config file")
	pf.StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn or error")

	versionCmd.Flags().BoolVar(&flagCheckUpdate, "check", false, "check for a newer release")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(configCmd)
}

var (
	flagCheckUpdate bool
	releasesURL     = update.ReleasesURL
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "headlines %s (commit: %s, built: %s)\n", version, commit, date)
		if !flagCheckUpdate {
			return nil
		}
		log, err := logging.New(cmd.ErrOrStderr(), flagLogLevel)
		if err != nil {
			return err
		}
		checker := &update.Checker{URL: releasesURL, Log: log}
		if res := checker.Check(commandContext(cmd), version); res != nil {
			fmt.Fprintf(out, "A newer version is available: %s\n", res.LatestVersion)
		}
		return nil
	},
}

// loadConfig reads .env, the config file and the environment, then applies
// any flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := config.LoadDotEnv(""); err != nil {
		return nil, err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("keyword") {
		cfg.Keyword = flagKeyword
	}
	if flags.Changed("order-by") {
		if _, err := guardian.ParseSortOrder(flagOrderBy); err != nil {
			return fmt.Errorf("invalid --order-by value: %w", err)
		}
		cfg.OrderBy = flagOrderBy
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = flagLogLevel
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
}
