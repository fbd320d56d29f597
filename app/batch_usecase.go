package app

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/lintai-dev/lintai/domain"
	"golang.org/x/sync/errgroup"
)

// BatchItem is one unit of work in a batch run
type BatchItem struct {
	// Source identifies where the item came from: a file path, or
	// "<file>:<line>" for JSONL entries
	Source string

	// Prompt is the originating prompt, reporting only
	Prompt string

	// Output is the candidate text
	Output string
}

// BatchItemResult pairs an item with its report or failure
type BatchItemResult struct {
	Source string                   `json:"source"`
	Report *domain.ValidationReport `json:"report,omitempty"`
	Error  string                   `json:"error,omitempty"`

	// OutputChars is the validated text length in runes. Kept so history
	// can record lengths without retaining the text itself.
	OutputChars int `json:"output_chars"`
}

// BatchSummary aggregates a whole batch run
type BatchSummary struct {
	Total        int     `json:"total"`
	Passed       int     `json:"passed"`
	Failed       int     `json:"failed"`
	Errored      int     `json:"errored"`
	AverageScore float64 `json:"average_score"`
}

// BatchReport is the outcome of a batch run. Items appear in input order
// regardless of completion order.
type BatchReport struct {
	Items   []BatchItemResult `json:"items"`
	Summary BatchSummary      `json:"summary"`
}

// BatchInput carries everything one batch run needs from the caller
type BatchInput struct {
	// Paths lists JSONL files, output files, and directories to validate
	Paths []string

	// ConfigPath names the assertions document shared by all items
	ConfigPath string

	// Threshold overrides both the assertions document and the default
	// when set (the CLI flag)
	Threshold *float64

	// FallbackThreshold applies only when the assertions document carries
	// no threshold of its own (the tool config)
	FallbackThreshold *float64

	// MaxConcurrency caps parallel validations (0 uses the default)
	MaxConcurrency int

	// Timeout bounds the whole run (0 means no bound)
	Timeout time.Duration

	// Recursive controls directory traversal
	Recursive bool

	// ExcludePatterns lists glob patterns skipped during collection
	ExcludePatterns []string
}

// BatchUseCase validates many outputs against one assertions document
type BatchUseCase struct {
	service    domain.ValidationService
	loader     domain.ConfigurationLoader
	progress   domain.ProgressManager
	fileHelper *FileHelper
}

// NewBatchUseCase creates a new batch use case
func NewBatchUseCase(service domain.ValidationService, loader domain.ConfigurationLoader, progress domain.ProgressManager, fileHelper *FileHelper) *BatchUseCase {
	if fileHelper == nil {
		fileHelper = NewFileHelper(nil)
	}
	return &BatchUseCase{
		service:    service,
		loader:     loader,
		progress:   progress,
		fileHelper: fileHelper,
	}
}

// Execute collects items from the input paths and validates them
// concurrently. Item failures are recorded per item; only setup failures
// (config, collection) abort the run.
func (uc *BatchUseCase) Execute(ctx context.Context, input BatchInput) (*BatchReport, error) {
	if input.ConfigPath == "" {
		return nil, domain.NewInvalidInputError("no assertions config specified", nil)
	}
	if len(input.Paths) == 0 {
		return nil, domain.NewInvalidInputError("no input paths specified", nil)
	}

	cfg, err := uc.loader.LoadConfig(input.ConfigPath)
	if err != nil {
		return nil, err
	}

	threshold := resolveThreshold(input.Threshold, cfg, input.FallbackThreshold)

	items, err := uc.collectItems(input)
	if err != nil {
		return nil, domain.NewInvalidInputError("failed to collect batch inputs", err)
	}
	if len(items) == 0 {
		return nil, domain.NewInvalidInputError("no outputs found in the specified paths", nil)
	}

	if input.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, input.Timeout)
		defer cancel()
	}

	concurrency := input.MaxConcurrency
	if concurrency <= 0 {
		concurrency = 4
	}

	task := uc.progress.StartTask("Validating outputs", len(items))
	defer task.Complete()

	results := make([]BatchItemResult, len(items))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, item := range items {
		g.Go(func() error {
			report, err := uc.service.Validate(gctx, domain.ValidationRequest{
				Prompt:     item.Prompt,
				Output:     item.Output,
				Assertions: cfg.Assertions,
				Threshold:  threshold,
			})
			chars := utf8.RuneCountInString(item.Output)
			if err != nil {
				// Context errors abort the run; anything else is an
				// item-level outcome.
				if gctx.Err() != nil {
					return gctx.Err()
				}
				results[i] = BatchItemResult{Source: item.Source, Error: err.Error(), OutputChars: chars}
			} else {
				results[i] = BatchItemResult{Source: item.Source, Report: report, OutputChars: chars}
			}
			task.Increment(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &BatchReport{
		Items:   results,
		Summary: summarize(results),
	}, nil
}

// collectItems expands the input paths into batch items. JSONL files
// contribute one item per line; other files contribute their whole content;
// directories are scanned for output files.
func (uc *BatchUseCase) collectItems(input BatchInput) ([]BatchItem, error) {
	var items []BatchItem

	var filePaths []string
	for _, path := range input.Paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if info.IsDir() {
			collected, err := uc.fileHelper.CollectOutputFiles([]string{path}, input.Recursive, input.ExcludePatterns)
			if err != nil {
				return nil, err
			}
			filePaths = append(filePaths, collected...)
		} else {
			filePaths = append(filePaths, path)
		}
	}

	for _, path := range filePaths {
		if strings.EqualFold(filepath.Ext(path), ".jsonl") {
			lineItems, err := uc.readJSONLItems(path)
			if err != nil {
				return nil, err
			}
			items = append(items, lineItems...)
			continue
		}
		data, err := uc.fileHelper.ReadFile(path)
		if err != nil {
			return nil, err
		}
		items = append(items, BatchItem{Source: path, Output: string(data)})
	}

	return items, nil
}

// jsonlEntry is the wire shape of one JSONL batch line
type jsonlEntry struct {
	Prompt string `json:"prompt"`
	Output string `json:"output"`
}

// readJSONLItems reads a JSONL file where each line holds a prompt/output
// pair. Blank lines are skipped; a malformed line is a collection error.
func (uc *BatchUseCase) readJSONLItems(path string) ([]BatchItem, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var items []BatchItem
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var entry jsonlEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		items = append(items, BatchItem{
			Source: fmt.Sprintf("%s:%d", path, lineNo),
			Prompt: entry.Prompt,
			Output: entry.Output,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// summarize aggregates per-item results
func summarize(results []BatchItemResult) BatchSummary {
	summary := BatchSummary{Total: len(results)}
	scoreSum := 0
	scored := 0
	for _, res := range results {
		if res.Report == nil {
			summary.Errored++
			continue
		}
		scored++
		scoreSum += res.Report.Score
		if res.Report.Passed {
			summary.Passed++
		} else {
			summary.Failed++
		}
	}
	if scored > 0 {
		summary.AverageScore = float64(scoreSum) / float64(scored)
	}
	return summary
}
