package worker

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/leguplabs/capframe/internal/cache"
	"github.com/leguplabs/capframe/internal/model"
)

// Headline is one ingestion-feed item: title plus publisher/url/timestamp
// metadata.
type Headline struct {
	Title       string    `json:"title"`
	Publisher   string    `json:"publisher"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
}

// FrameParser classifies one headline. Implementations must be safe for
// concurrent use.
type FrameParser interface {
	Parse(title, publisher, url string, publishedAt time.Time) *model.CapitalEvent
}

// ParseJob parses one headline.
type ParseJob struct {
	Headline Headline
	Parser   FrameParser
}

// Execute runs the job. Parsing is a total function, so the result never
// carries an error.
func (j *ParseJob) Execute(ctx context.Context) Result {
	ev := j.Parser.Parse(j.Headline.Title, j.Headline.Publisher, j.Headline.URL, j.Headline.PublishedAt)
	return &ParseResult{Headline: j.Headline, Event: ev}
}

// ParseResult is the outcome of one headline.
type ParseResult struct {
	Headline Headline
	Event    *model.CapitalEvent
	Cached   bool
}

// GetError satisfies the pool Result interface; parse jobs cannot fail.
func (r *ParseResult) GetError() error { return nil }

// BatchProcessor parses many headlines concurrently, memoizing repeated
// (publisher, url) inputs and optionally pacing per-publisher emission.
type BatchProcessor struct {
	parser      FrameParser
	concurrency int
	cache       cache.Cache
	cacheTTL    time.Duration
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. Cache and limiter are optional;
// pass nil to disable either.
func NewBatchProcessor(parser FrameParser, concurrency int, c cache.Cache, cacheTTL time.Duration, limiter *Limiter) *BatchProcessor {
	return &BatchProcessor{
		parser:      parser,
		concurrency: concurrency,
		cache:       c,
		cacheTTL:    cacheTTL,
		limiter:     limiter,
	}
}

// Process parses the headlines and returns one result per input, cache hits
// included.
func (b *BatchProcessor) Process(ctx context.Context, headlines []Headline) []*ParseResult {
	if len(headlines) == 0 {
		return []*ParseResult{}
	}

	var results []*ParseResult
	pool := NewPool(b.concurrency)
	pool.Start()

	submitted := 0
	for _, h := range headlines {
		if b.cache != nil {
			if ev, ok := b.cache.Get(cache.Key(h.Publisher, h.URL)); ok {
				results = append(results, &ParseResult{Headline: h, Event: ev, Cached: true})
				continue
			}
		}
		pool.Submit(&ParseJob{Headline: h, Parser: b.parser})
		submitted++
	}

	for _, r := range pool.Wait() {
		pr := r.(*ParseResult)
		if b.cache != nil {
			b.cache.Set(cache.Key(pr.Headline.Publisher, pr.Headline.URL), pr.Event, b.cacheTTL)
		}
		if b.limiter != nil {
			if err := b.limiter.Wait(ctx, pr.Headline.Publisher); err != nil {
				break
			}
		}
		results = append(results, pr)
	}
	return results
}

// ProcessFile reads headlines from a JSONL file and parses them.
func (b *BatchProcessor) ProcessFile(ctx context.Context, path string) ([]*ParseResult, error) {
	headlines, err := ReadHeadlinesFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("read headlines: %w", err)
	}
	return b.Process(ctx, headlines), nil
}

// ReadHeadlinesFromFile reads one JSON headline per line, skipping blank
// lines, comments, and lines that do not decode.
func ReadHeadlinesFromFile(path string) ([]Headline, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var headlines []Headline
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var h Headline
		if err := json.Unmarshal([]byte(line), &h); err != nil {
			continue
		}
		headlines = append(headlines, h)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}
	return headlines, nil
}

// Summary aggregates batch outcomes for operator reporting.
type Summary struct {
	Total     int
	Accepted  int
	Rejected  int
	Filtered  int
	GraphSafe int
	Fallback  int
	CacheHits int
}

// Summarize tallies one batch.
func Summarize(results []*ParseResult) Summary {
	var s Summary
	for _, r := range results {
		s.Total++
		if r.Cached {
			s.CacheHits++
		}
		ex := r.Event.Extraction
		switch ex.Decision {
		case model.DecisionReject:
			s.Rejected++
			continue
		case model.DecisionAccept:
			s.Accepted++
		}
		if r.Event.EventType == model.EventFiltered {
			s.Filtered++
		}
		if ex.GraphSafe {
			s.GraphSafe++
		}
		if ex.FallbackUsed {
			s.Fallback++
		}
	}
	return s
}
