package cmd

import (
	"github.com/spf13/cobra"

	"github.com/matheuskafuri/headlines/internal/config"
	"github.com/matheuskafuri/headlines/internal/guardian"
	"github.com/matheuskafuri/headlines/internal/logging"
	"github.com/matheuskafuri/headlines/internal/tui"
)

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, logFile, err := logging.OpenFile(logging.FilePath(), cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logFile.Close()

	client := guardian.NewClient(log)
	defer client.CloseIdle()

	log.WithField("version", version).Info("starting reader")

	return tui.Run(tui.RunOpts{
		Searcher:  guardian.NewPipeline(cfg.EndpointURL(), client, log),
		Query:     cfg.Query(),
		SavePrefs: savePrefs(flagConfig),
		Log:       log,
	})
}

// savePrefs persists keyword and order changes made in the reader. Only the
// file is rewritten; env and flag overrides stay where they came from.
func savePrefs(path string) func(string, guardian.SortOrder) error {
	return func(keyword string, order guardian.SortOrder) error {
		return config.Update(path, func(c *config.Config) {
			c.Keyword = keyword
			c.OrderBy = string(order)
		})
	}
}
