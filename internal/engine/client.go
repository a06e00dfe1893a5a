// Package engine invokes the external DevCopilot engine (a Python CLI that
// does the actual embedding, retrieval and summarization work) and converts
// its captured output into structured results via the richtext parsers.
//
// The engine speaks human-oriented rich text, not a machine protocol, so the
// contract here is: build the documented argument shapes, capture stdout and
// stderr, short-circuit on non-zero exit, and only then parse.
package engine

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/devcopilot/devcopilot/internal/richtext"
	"github.com/devcopilot/devcopilot/internal/sandbox"
)

// Client invokes the engine through a sandbox.Runner.
type Client struct {
	runner sandbox.Runner

	bin      string   // engine executable, e.g. "python3"
	baseArgs []string // leading args, e.g. ["cli.py"]

	apiKey string
	apiURL string
	model  string

	dbPath     string
	collection string

	timeout time.Duration
}

// Config carries everything needed to invoke the engine.
type Config struct {
	Bin        string
	BaseArgs   []string
	APIKey     string
	APIURL     string
	Model      string
	DBPath     string
	Collection string
	Timeout    time.Duration // per-invocation cap (<=0 uses runner default)
}

// NewClient creates an engine client. A nil runner selects the default
// sandbox runner.
func NewClient(cfg Config, runner sandbox.Runner) *Client {
	if runner == nil {
		runner = sandbox.NewDefaultRunner()
	}
	return &Client{
		runner:     runner,
		bin:        cfg.Bin,
		baseArgs:   cfg.BaseArgs,
		apiKey:     cfg.APIKey,
		apiURL:     cfg.APIURL,
		model:      cfg.Model,
		dbPath:     cfg.DBPath,
		collection: cfg.Collection,
		timeout:    cfg.Timeout,
	}
}

// SearchMode selects how the engine searches.
type SearchMode string

const (
	ModeHyDE SearchMode = "hyde"
	ModeRAG  SearchMode = "rag"
)

// SearchOptions configures a search invocation.
type SearchOptions struct {
	Mode       SearchMode
	Query      string
	RepoPath   string
	TopK       int
	IndexFirst bool // reindex before searching
}

// SummarizeOptions configures a summarize invocation.
type SummarizeOptions struct {
	RepoPath       string
	BaseBranch     string
	CurrentBranch  string
	MaxFiles       int
	TimeoutSeconds int
}

// IndexOptions configures an index invocation.
type IndexOptions struct {
	RepoPath string
	Force    bool
}

// Search runs a search invocation and returns the raw captured output
// (stdout, falling back to stderr when stdout is empty). Most callers want
// HyDESearch or RAGQuery instead.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (string, error) {
	topK := opts.TopK
	if topK <= 0 {
		topK = 5
	}

	args := []string{
		"search",
		"--mode", string(opts.Mode),
		"--query", opts.Query,
		"--top-k", strconv.Itoa(topK),
		"--db", c.dbPath,
		"--collection", c.collection,
		"--api-key", c.apiKey,
		"--api-url", c.apiURL,
		"--model", c.model,
		"--show-code",
	}
	if opts.IndexFirst {
		args = append(args, "--index")
	}

	return c.run(ctx, "search", opts.RepoPath, args)
}

// HyDESearch runs a HyDE-mode search and parses the ranked results.
func (c *Client) HyDESearch(ctx context.Context, opts SearchOptions) ([]richtext.SearchResult, error) {
	opts.Mode = ModeHyDE
	out, err := c.Search(ctx, opts)
	if err != nil {
		return nil, err
	}
	return richtext.ParseSearchResults(out), nil
}

// RAGQuery runs a RAG-mode search and parses the answer plus its sources.
func (c *Client) RAGQuery(ctx context.Context, opts SearchOptions) (richtext.RagAnswer, error) {
	opts.Mode = ModeRAG
	out, err := c.Search(ctx, opts)
	if err != nil {
		return richtext.RagAnswer{}, err
	}
	return richtext.ParseRAGOutput(out), nil
}

// SummarizePR runs a summarize invocation and parses the summary document.
func (c *Client) SummarizePR(ctx context.Context, opts SummarizeOptions) (richtext.PRSummaryDocument, error) {
	args := []string{
		"summarize",
		"--repo", opts.RepoPath,
		"--api-key", c.apiKey,
		"--api-url", c.apiURL,
		"--model", c.model,
	}
	if opts.BaseBranch != "" {
		args = append(args, "--base", opts.BaseBranch)
	}
	if opts.CurrentBranch != "" {
		args = append(args, "--current", opts.CurrentBranch)
	}
	if opts.MaxFiles > 0 {
		args = append(args, "--max-files", strconv.Itoa(opts.MaxFiles))
	}
	if opts.TimeoutSeconds > 0 {
		args = append(args, "--timeout", strconv.Itoa(opts.TimeoutSeconds))
	}
	args = append(args, "--verbose")

	out, err := c.run(ctx, "summarize", opts.RepoPath, args)
	if err != nil {
		return richtext.PRSummaryDocument{}, err
	}
	return richtext.ParsePRSummary(out), nil
}

// Index indexes a repository for semantic search.
func (c *Client) Index(ctx context.Context, opts IndexOptions) error {
	args := []string{
		"index",
		"--repo", opts.RepoPath,
		"--db", c.dbPath,
		"--collection", c.collection,
		"--api-key", c.apiKey,
		"--api-url", c.apiURL,
		"--model", c.model,
	}
	if opts.Force {
		args = append(args, "--force")
	}

	_, err := c.run(ctx, "index", opts.RepoPath, args)
	return err
}

// run invokes the engine and applies the output contract: non-zero exit or
// timeout becomes an EngineError carrying both streams; on success stdout is
// returned, falling back to stderr when stdout is empty.
func (c *Client) run(ctx context.Context, op, workDir string, args []string) (string, error) {
	fullArgs := append(append([]string{}, c.baseArgs...), args...)

	res, err := c.runner.RunCmd(ctx, workDir, c.bin, fullArgs, c.timeout)
	if res.TimedOut || res.Code != 0 {
		return "", &EngineError{
			Op:       op,
			ExitCode: res.Code,
			Stdout:   res.Stdout,
			Stderr:   res.Stderr,
			TimedOut: res.TimedOut,
			Err:      err,
		}
	}
	if err != nil {
		// Start failure: the engine binary is missing or not executable.
		return "", &EngineError{Op: op, Err: err, Stderr: res.Stderr}
	}

	out := res.Stdout
	if strings.TrimSpace(out) == "" {
		out = res.Stderr
	}
	return out, nil
}
