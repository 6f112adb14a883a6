package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ppiankov/authorscope/internal/model"
)

// Analyzer turns one input (file path, URL or "-") into a report
type Analyzer interface {
	AnalyzeInput(ctx context.Context, input string) (*model.Report, error)
}

// AnalyzeJob analyzes one batch input
type AnalyzeJob struct {
	Index    int
	Input    string
	Engine   string
	Analyzer Analyzer
	Limiter  *Limiter
}

// Execute waits for the engine's rate limit, then runs the analysis
func (j *AnalyzeJob) Execute(ctx context.Context) Result {
	start := time.Now()
	if j.Limiter != nil {
		if err := j.Limiter.Wait(ctx, j.Engine); err != nil {
			return &AnalyzeResult{Index: j.Index, Input: j.Input, Error: fmt.Errorf("rate limit: %w", err)}
		}
	}

	report, err := j.Analyzer.AnalyzeInput(ctx, j.Input)
	return &AnalyzeResult{
		Index:    j.Index,
		Input:    j.Input,
		Report:   report,
		Error:    err,
		Duration: time.Since(start),
	}
}

// AnalyzeResult is the outcome of one batch input
type AnalyzeResult struct {
	Index    int
	Input    string
	Report   *model.Report
	Error    error
	Duration time.Duration
}

// GetError returns the error from the analysis
func (r *AnalyzeResult) GetError() error {
	return r.Error
}

// BatchProcessor analyzes many inputs concurrently
type BatchProcessor struct {
	analyzer    Analyzer
	concurrency int
	engine      string
	limiter     *Limiter
}

// NewBatchProcessor creates a batch processor. limiter may be nil.
func NewBatchProcessor(analyzer Analyzer, concurrency int, engine string, limiter *Limiter) *BatchProcessor {
	return &BatchProcessor{
		analyzer:    analyzer,
		concurrency: concurrency,
		engine:      engine,
		limiter:     limiter,
	}
}

// Process analyzes inputs and returns results in input order
func (b *BatchProcessor) Process(ctx context.Context, inputs []string) []*AnalyzeResult {
	if len(inputs) == 0 {
		return []*AnalyzeResult{}
	}

	jobs := make([]Job, len(inputs))
	for i, input := range inputs {
		jobs[i] = &AnalyzeJob{
			Index:    i,
			Input:    input,
			Engine:   b.engine,
			Analyzer: b.analyzer,
			Limiter:  b.limiter,
		}
	}

	pool := NewPool(ctx, b.concurrency)
	results := pool.Run(jobs)

	out := make([]*AnalyzeResult, 0, len(results))
	for _, r := range results {
		out = append(out, r.(*AnalyzeResult))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// ProcessFile reads inputs from a file and processes them
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*AnalyzeResult, error) {
	inputs, err := ReadInputsFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}

	return b.Process(ctx, inputs), nil
}

// ReadInputsFromFile reads one path or URL per line, skipping blanks and # comments.
// Duplicates are dropped, first occurrence wins.
func ReadInputsFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var inputs []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			inputs = append(inputs, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return inputs, nil
}
