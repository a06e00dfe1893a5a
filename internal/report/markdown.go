// Package report renders parsed engine output as markdown documents.
package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/devcopilot/devcopilot/internal/richtext"
)

// RenderPRSummary renders a parsed PR summary as a markdown document.
func RenderPRSummary(doc richtext.PRSummaryDocument) string {
	var b strings.Builder

	b.WriteString("# Pull Request Summary\n\n")
	if doc.Meta.Branch != "" {
		fmt.Fprintf(&b, "**Branch:** %s\n\n", doc.Meta.Branch)
	}
	fmt.Fprintf(&b, "**Commits:** %d\n\n", doc.Meta.CommitCount)
	fmt.Fprintf(&b, "**Changed Files:** %d\n\n", doc.Meta.ChangedFileCount)

	if len(doc.CommitHistory) > 0 {
		b.WriteString("## Commit Messages\n\n")
		for _, commit := range doc.CommitHistory {
			fmt.Fprintf(&b, "- %s\n", strings.TrimSpace(commit))
		}
		b.WriteString("\n")
	}

	if len(doc.FileChanges) > 0 {
		b.WriteString("## File Summaries\n\n")
		for _, fc := range doc.FileChanges {
			fmt.Fprintf(&b, "### %s\n\n", fc.Filename)
			fmt.Fprintf(&b, "%s\n\n", fc.Content)
		}
	}

	if doc.OverallSummary != "" {
		b.WriteString("## Overall Summary\n\n")
		fmt.Fprintf(&b, "%s\n", doc.OverallSummary)
	}

	if len(doc.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range doc.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}

	return b.String()
}

// WritePRSummary writes the rendered summary to path.
func WritePRSummary(doc richtext.PRSummaryDocument, path string) error {
	if err := os.WriteFile(path, []byte(RenderPRSummary(doc)), 0o644); err != nil {
		return fmt.Errorf("failed to write summary to %s: %w", path, err)
	}
	return nil
}

// RenderSearchResults renders search results as a markdown list.
func RenderSearchResults(results []richtext.SearchResult) string {
	var b strings.Builder

	b.WriteString("# Search Results\n\n")
	if len(results) == 0 {
		b.WriteString("No results found.\n")
		return b.String()
	}

	for i, r := range results {
		fmt.Fprintf(&b, "## %d. %s: %s\n\n", i+1, strings.ToUpper(r.Kind), r.Name)
		if r.FilePath != "" {
			loc := r.FilePath
			if r.StartLine != nil && r.EndLine != nil {
				loc = fmt.Sprintf("%s:%d-%d", r.FilePath, *r.StartLine, *r.EndLine)
			}
			fmt.Fprintf(&b, "**Location:** `%s`\n\n", loc)
		}
		if r.Similarity != nil {
			fmt.Fprintf(&b, "**Similarity:** %.3f\n\n", *r.Similarity)
		}
		if r.Docstring != "" {
			fmt.Fprintf(&b, "%s\n\n", r.Docstring)
		}
	}

	return b.String()
}
