package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"github.com/leguplabs/capframe/internal/cache"
	"github.com/leguplabs/capframe/internal/model"
	"github.com/leguplabs/capframe/internal/parser"
	"github.com/leguplabs/capframe/internal/worker"
)

var (
	concurrency    int
	batchOut       string
	batchTimeout   time.Duration
	noCache        bool
	publisherRate  float64
	publisherBurst int
	rejectInclude  bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Parse many headlines from a JSONL file in parallel",
	Long: `Batch parses headlines concurrently:
- Read headlines from the input file, one JSON object per line:
  {"title": "...", "publisher": "...", "url": "...", "published_at": "..."}
- Parse across a worker pool with a configurable worker count
- Memoize repeated (publisher, url) inputs within the run
- Write one capital event record per line to the output file
- Print an accept/filter/reject summary to stderr

Example:
  capframe batch headlines.jsonl
  capframe batch headlines.jsonl --concurrency 16 --out events.jsonl
  capframe batch headlines.jsonl --publisher-rate 50`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	batchCmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "number of concurrent workers")
	batchCmd.Flags().StringVar(&batchOut, "out", "events.jsonl", "output JSONL path")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable within-run memoization")
	batchCmd.Flags().Float64Var(&publisherRate, "publisher-rate", 0, "max emitted events per second per publisher (0 = unlimited)")
	batchCmd.Flags().IntVar(&publisherBurst, "publisher-burst", 5, "per-publisher burst size")
	batchCmd.Flags().BoolVar(&rejectInclude, "include-rejected", false, "write REJECT records to the output file too")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), batchTimeout)
	defer cancel()

	cfg := loadConfig()
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	if publisherRate > 0 {
		cfg.Concurrency.PublisherRate = publisherRate
		cfg.Concurrency.PublisherBurst = publisherBurst
	}

	var memo cache.Cache
	if cfg.Cache.Enabled {
		memo = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
	}
	var limiter *worker.Limiter
	if cfg.Concurrency.PublisherRate > 0 {
		limiter = worker.NewLimiter(cfg.Concurrency.PublisherRate, cfg.Concurrency.PublisherBurst)
	}

	p := parser.New(cfg)
	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, memo, cfg.Cache.TTL, limiter)

	start := time.Now()
	results, err := processor.ProcessFile(ctx, file)
	if err != nil {
		return fmt.Errorf("batch %s: %w", file, err)
	}

	if err := writeResults(batchOut, results); err != nil {
		return err
	}

	s := worker.Summarize(results)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Headlines:   %d\n", s.Total)
	fmt.Fprintf(os.Stderr, "  Accepted:    %d\n", s.Accepted)
	fmt.Fprintf(os.Stderr, "  Filtered:    %d\n", s.Filtered)
	fmt.Fprintf(os.Stderr, "  Rejected:    %d\n", s.Rejected)
	fmt.Fprintf(os.Stderr, "  Graph-safe:  %d\n", s.GraphSafe)
	fmt.Fprintf(os.Stderr, "  Fallback:    %d\n", s.Fallback)
	fmt.Fprintf(os.Stderr, "  Cache hits:  %d\n", s.CacheHits)
	fmt.Fprintf(os.Stderr, "  Elapsed:     %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(os.Stderr, "\n  Output: %s\n", batchOut)
	return nil
}

func writeResults(path string, results []*worker.ParseResult) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	w := bufio.NewWriter(f)
	enc := json.NewEncoder(w)
	for _, r := range results {
		if !rejectInclude && r.Event.Extraction.Decision == model.DecisionReject {
			continue
		}
		if err := enc.Encode(r.Event); err != nil {
			return fmt.Errorf("encode event %s: %w", r.Event.EventID, err)
		}
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
