package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/devcopilot/devcopilot/internal/sandbox"
)

// FakeRunner records the invocation and returns a canned result.
type FakeRunner struct {
	LastName string
	LastArgs []string
	LastDir  string
	Result   sandbox.Result
	Err      error
}

func (f *FakeRunner) RunCmd(ctx context.Context, workDir, name string, args []string, timeout time.Duration) (sandbox.Result, error) {
	f.LastDir = workDir
	f.LastName = name
	f.LastArgs = args
	return f.Result, f.Err
}

func newTestClient(runner *FakeRunner) *Client {
	return NewClient(Config{
		Bin:        "python3",
		BaseArgs:   []string{"cli.py"},
		APIKey:     "test-key",
		APIURL:     "https://api.example.com/v1/chat/completions",
		Model:      "test-model",
		DBPath:     "./data/chroma_db",
		Collection: "code",
	}, runner)
}

func TestClient_SearchArgumentShape(t *testing.T) {
	runner := &FakeRunner{Result: sandbox.Result{Stdout: "1. FUNCTION: foo\n"}}
	client := newTestClient(runner)

	_, err := client.HyDESearch(context.Background(), SearchOptions{
		Query:    "error handling",
		RepoPath: "/tmp/repo",
		TopK:     7,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	joined := strings.Join(runner.LastArgs, " ")
	for _, want := range []string{
		"cli.py search",
		"--mode hyde",
		"--query error handling",
		"--top-k 7",
		"--db ./data/chroma_db",
		"--collection code",
		"--api-key test-key",
		"--model test-model",
		"--show-code",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args missing %q: %s", want, joined)
		}
	}
	if runner.LastName != "python3" {
		t.Fatalf("unexpected binary: %q", runner.LastName)
	}
	if runner.LastDir != "/tmp/repo" {
		t.Fatalf("unexpected working directory: %q", runner.LastDir)
	}
}

func TestClient_StdoutFallsBackToStderr(t *testing.T) {
	runner := &FakeRunner{Result: sandbox.Result{
		Stdout: "   \n",
		Stderr: "1. CLASS: Router\n",
	}}
	client := newTestClient(runner)

	results, err := client.HyDESearch(context.Background(), SearchOptions{Query: "routing"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Router" {
		t.Fatalf("expected result parsed from stderr, got %+v", results)
	}
}

func TestClient_NonZeroExitShortCircuits(t *testing.T) {
	runner := &FakeRunner{
		Result: sandbox.Result{Code: 1, Stderr: "Error: Repository path not found: /nope"},
		Err:    errors.New("exit status 1"),
	}
	client := newTestClient(runner)

	_, err := client.HyDESearch(context.Background(), SearchOptions{Query: "x", RepoPath: "/nope"})
	if err == nil {
		t.Fatal("expected an error for non-zero exit")
	}
	if !IsEngineError(err) {
		t.Fatalf("expected an engine error, got %v", err)
	}

	var engineErr *EngineError
	if !errors.As(err, &engineErr) {
		t.Fatalf("expected EngineError, got %T", err)
	}
	if engineErr.ExitCode != 1 {
		t.Fatalf("unexpected exit code: %d", engineErr.ExitCode)
	}
	if !strings.Contains(engineErr.Diagnostic(), "Repository path not found") {
		t.Fatalf("diagnostic lost: %q", engineErr.Diagnostic())
	}
}

func TestClient_TimeoutBecomesEngineError(t *testing.T) {
	runner := &FakeRunner{
		Result: sandbox.Result{Code: 1, TimedOut: true},
		Err:    context.DeadlineExceeded,
	}
	client := newTestClient(runner)

	_, err := client.RAGQuery(context.Background(), SearchOptions{Query: "x"})
	var engineErr *EngineError
	if !errors.As(err, &engineErr) || !engineErr.TimedOut {
		t.Fatalf("expected timed-out EngineError, got %v", err)
	}
	if !strings.Contains(engineErr.Error(), "timed out") {
		t.Fatalf("unexpected message: %q", engineErr.Error())
	}
}

func TestClient_SummarizeParsesDocument(t *testing.T) {
	runner := &FakeRunner{Result: sandbox.Result{
		Stdout: "Branch: feature → main\nCommits: 2\nChanged files: 1\n",
	}}
	client := newTestClient(runner)

	doc, err := client.SummarizePR(context.Background(), SummarizeOptions{
		RepoPath:       "/tmp/repo",
		MaxFiles:       10,
		TimeoutSeconds: 200,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Meta.CommitCount != 2 || doc.Meta.ChangedFileCount != 1 {
		t.Fatalf("unexpected meta: %+v", doc.Meta)
	}

	joined := strings.Join(runner.LastArgs, " ")
	for _, want := range []string{"summarize", "--repo /tmp/repo", "--max-files 10", "--timeout 200", "--verbose"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("args missing %q: %s", want, joined)
		}
	}
}
