package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/leguplabs/capframe/internal/parser"
)

var (
	parsePublisher string
	parseURL       string
	parsePublished string
	parseOutJSON   string
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse <title>",
	Short: "Parse a single headline into a capital event record",
	Long: `Parse classifies one headline and prints the resulting capital event
record as JSON.

The record is always fully populated: check extraction.decision (ACCEPT or
REJECT) and extraction.graph_safe to decide what to do with it.

Example:
  capframe parse "OpenAI acquires Rockset in $200M deal" \
    --publisher techcrunch.com --url https://techcrunch.com/openai-rockset
  capframe parse "YC-backed Metaview raises $7M Series A" --json event.json`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVar(&parsePublisher, "publisher", "", "publisher domain or name")
	parseCmd.Flags().StringVar(&parseURL, "url", "", "article URL (identity input)")
	parseCmd.Flags().StringVar(&parsePublished, "published-at", "", "publication timestamp (RFC 3339, default now)")
	parseCmd.Flags().StringVar(&parseOutJSON, "json", "", "write the record to this file instead of stdout")
}

func runParse(cmd *cobra.Command, args []string) error {
	title := args[0]

	publishedAt := time.Now().UTC()
	if parsePublished != "" {
		t, err := time.Parse(time.RFC3339, parsePublished)
		if err != nil {
			return fmt.Errorf("parse --published-at: %w", err)
		}
		publishedAt = t
	}

	cfg := loadConfig()
	p := parser.New(cfg)

	if cfg.Output.Verbose {
		fmt.Fprintf(os.Stderr, "Parsing: %s\n", title)
	}

	ev := p.Parse(title, parsePublisher, parseURL, publishedAt)

	var (
		data []byte
		err  error
	)
	if cfg.Output.Pretty {
		data, err = json.MarshalIndent(ev, "", "  ")
	} else {
		data, err = json.Marshal(ev)
	}
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	if parseOutJSON != "" {
		if err := os.WriteFile(parseOutJSON, append(data, '\n'), 0644); err != nil {
			return fmt.Errorf("write %s: %w", parseOutJSON, err)
		}
		if cfg.Output.Verbose {
			fmt.Fprintf(os.Stderr, "Wrote %s\n", parseOutJSON)
		}
		return nil
	}

	fmt.Println(string(data))
	return nil
}
