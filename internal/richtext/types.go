// Package richtext recovers structured records from the decorated terminal
// output of the DevCopilot engine. The engine renders results as box-drawn
// panels meant for humans; the parsers here scrape them back into data.
//
// All parsers are pure functions over a single text blob. They never fail on
// malformed input: every marker is optional and best-effort, so unexpected
// text yields partially-populated records or empty sequences, never an error.
package richtext

// SearchResult is one ranked code match from a search invocation.
type SearchResult struct {
	Kind       string   `json:"kind"` // "function" or "class"
	Name       string   `json:"name"`
	FilePath   string   `json:"file_path,omitempty"`
	StartLine  *int     `json:"start_line,omitempty"`
	EndLine    *int     `json:"end_line,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`
	Docstring  string   `json:"docstring,omitempty"`
}

// RagSource is a supporting source backing a RAG answer. It has the same
// shape as a SearchResult plus an optional literal code excerpt.
type RagSource struct {
	SearchResult
	CodeSnippet string `json:"code_snippet,omitempty"`
}

// RagAnswer is the parsed output of a RAG-mode search invocation.
type RagAnswer struct {
	Text    string      `json:"text"`
	Sources []RagSource `json:"sources"`
}

// PRMeta holds the header metadata of a PR summary.
type PRMeta struct {
	Branch           string `json:"branch"`
	CommitCount      int    `json:"commit_count"`
	ChangedFileCount int    `json:"changed_file_count"`
}

// FileChange is one per-file summary card. Content is the space-joined
// concatenation of the card's interior lines.
type FileChange struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// PRSummaryDocument is the parsed output of a summarize invocation.
type PRSummaryDocument struct {
	Meta           PRMeta       `json:"meta"`
	CommitHistory  []string     `json:"commit_history"`
	FileChanges    []FileChange `json:"file_changes"`
	OverallSummary string       `json:"overall_summary"`
	PipelineInfo   string       `json:"pipeline_info"`
	Warnings       []string     `json:"warnings"`
}
