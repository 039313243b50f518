package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matheuskafuri/headlines/internal/guardian"
	"github.com/matheuskafuri/headlines/internal/logging"
)

var flagJSON bool

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Run one search and print the results",
	Long: `Run the configured search once and print the articles to stdout.

Diagnostics are written to stderr as JSON lines.`,
	Args: cobra.NoArgs,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&flagJSON, "json", false, "print results as a JSON array")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return err
	}

	client := guardian.NewClient(log)
	defer client.CloseIdle()

	res := guardian.NewPipeline(cfg.EndpointURL(), client, log).Run(commandContext(cmd), cfg.Query())
	if flagJSON {
		return printJSON(cmd.OutOrStdout(), res)
	}
	return printText(cmd.OutOrStdout(), cfg.Keyword, res)
}

func emptyMessage(keyword string) string {
	return fmt.Sprintf("No news found for %q", keyword)
}

// printText writes one block per article. No data and an empty list look
// the same to the user.
func printText(w io.Writer, keyword string, res guardian.Result) error {
	var b strings.Builder
	if res.Empty() {
		b.WriteString(emptyMessage(keyword) + "\n")
	}
	for i, a := range res.Articles() {
		if i > 0 {
			b.WriteString("\n")
		}
		title := a.Title
		if title == "" {
			title = "(untitled)"
		}
		b.WriteString(title + "\n")
		if meta := joinNonEmpty(" · ", a.Section, a.Author); meta != "" {
			b.WriteString("  " + meta + "\n")
		}
		if a.Date != "" {
			b.WriteString("  " + flatten(a.Date) + "\n")
		}
		if a.URL != "" {
			b.WriteString("  " + a.URL + "\n")
		}
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing results: %w", err)
	}
	return nil
}

// printJSON writes [] for both no data and an empty list.
func printJSON(w io.Writer, res guardian.Result) error {
	articles := res.Articles()
	if articles == nil {
		articles = []guardian.Article{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(articles); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func flatten(date string) string {
	return strings.ReplaceAll(date, "\n", " ")
}
