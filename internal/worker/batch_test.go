package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/ppiankov/authorscope/internal/model"
)

// mockAnalyzer returns a report per input, failing inputs that contain "fail"
type mockAnalyzer struct {
	mu    sync.Mutex
	calls []string
}

func (m *mockAnalyzer) AnalyzeInput(ctx context.Context, input string) (*model.Report, error) {
	m.mu.Lock()
	m.calls = append(m.calls, input)
	m.mu.Unlock()

	if strings.Contains(input, "fail") {
		return nil, errors.New("analysis failed")
	}
	return &model.Report{
		Subject: input,
		Result:  model.AnalysisResult{AIProbability: 0.5, Engine: model.EngineHeuristic},
	}, nil
}

func TestBatchProcessor_Process(t *testing.T) {
	analyzer := &mockAnalyzer{}
	processor := NewBatchProcessor(analyzer, 3, model.EngineHeuristic, NewLimiter(0, 1))

	inputs := []string{"a.txt", "b.txt", "fail.txt", "d.txt", "e.txt"}
	results := processor.Process(context.Background(), inputs)

	if len(results) != len(inputs) {
		t.Fatalf("expected %d results, got %d", len(inputs), len(results))
	}
	for i, r := range results {
		if r.Input != inputs[i] || r.Index != i {
			t.Errorf("expected results in input order, got %q at %d", r.Input, i)
		}
	}
	if results[2].GetError() == nil {
		t.Error("expected failure for fail.txt")
	}
	if results[0].Report == nil || results[0].Report.Subject != "a.txt" {
		t.Errorf("expected report for a.txt, got %+v", results[0].Report)
	}
}

func TestBatchProcessor_Process_Empty(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{}, 2, model.EngineHeuristic, nil)
	if results := processor.Process(context.Background(), nil); len(results) != 0 {
		t.Errorf("expected no results, got %d", len(results))
	}
}

func TestBatchProcessor_RateLimitCancelled(t *testing.T) {
	limiter := NewLimiter(0.001, 1)
	limiter.Allow(model.EngineRemote) // exhaust the only token

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	analyzer := &mockAnalyzer{}
	results := NewBatchProcessor(analyzer, 1, model.EngineRemote, limiter).Process(ctx, []string{"a.txt"})
	for _, r := range results {
		if r.GetError() == nil {
			t.Error("expected rate limit error on cancelled context")
		}
	}
	if len(analyzer.calls) != 0 {
		t.Errorf("expected no analysis calls, got %v", analyzer.calls)
	}
}

func TestReadInputsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inputs.txt")
	content := "# essays\nessay1.txt\n\n  https://example.com/post  \nessay1.txt\n# done\nessay2.pdf\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	inputs, err := ReadInputsFromFile(path)
	if err != nil {
		t.Fatalf("ReadInputsFromFile failed: %v", err)
	}

	expected := []string{"essay1.txt", "https://example.com/post", "essay2.pdf"}
	if len(inputs) != len(expected) {
		t.Fatalf("expected %d inputs, got %d: %v", len(expected), len(inputs), inputs)
	}
	for i := range expected {
		if inputs[i] != expected[i] {
			t.Errorf("expected %q at %d, got %q", expected[i], i, inputs[i])
		}
	}
}

func TestBatchProcessor_ProcessFile_NonExistent(t *testing.T) {
	processor := NewBatchProcessor(&mockAnalyzer{}, 1, model.EngineHeuristic, nil)
	if _, err := processor.ProcessFile(context.Background(), "/nonexistent/inputs.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}
