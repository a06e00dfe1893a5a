package richtext

import (
	"strconv"
	"strings"
)

// prSection tags the region of the summary document being scanned.
type prSection int

const (
	prHeader prSection = iota
	prFileChange
	prBetween
	prOverallSummary
	prPipeline
)

// ParsePRSummary scans the output of a summarize invocation into a
// PRSummaryDocument.
//
// The document is a sequence of sections separated by "====" rules: header
// metadata, a commit list, one box-drawn card per changed file, an overall
// narrative, and a trailing pipeline log that is preserved verbatim. Warning
// lines are collected wherever they appear. Missing or unparseable numeric
// metadata defaults to zero.
func ParsePRSummary(text string) PRSummaryDocument {
	doc := PRSummaryDocument{
		CommitHistory: []string{},
		FileChanges:   []FileChange{},
		Warnings:      []string{},
	}

	var (
		section       prSection
		pipelineLines []string
		overallParts  []string
		openFile      *FileChange
		fileParts     []string
	)

	flushFile := func() {
		if openFile == nil {
			return
		}
		openFile.Content = strings.Join(fileParts, " ")
		doc.FileChanges = append(doc.FileChanges, *openFile)
		openFile = nil
		fileParts = nil
	}

	cur := newLineCursor(text)
	for {
		line, ok := cur.Next()
		if !ok {
			break
		}

		// Once the pipeline log starts it runs to end of input, newline
		// preserving. Warnings inside it are still collected.
		if section == prPipeline {
			pipelineLines = append(pipelineLines, line)
			if strings.HasPrefix(strings.TrimSpace(line), markerWarning) {
				doc.Warnings = append(doc.Warnings, strings.TrimSpace(line))
			}
			continue
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isSeparatorRule(trimmed) {
			continue
		}

		if strings.HasPrefix(trimmed, markerWarning) {
			doc.Warnings = append(doc.Warnings, trimmed)
			continue
		}

		if strings.Contains(line, markerPipeline) || progressTagRe.MatchString(line) {
			flushFile()
			section = prPipeline
			pipelineLines = append(pipelineLines, line)
			continue
		}

		if strings.Contains(line, markerOverall) {
			flushFile()
			section = prOverallSummary
			continue
		}

		// A card's top border carries the file indicator plus the filename.
		if isTopBorder(line) && strings.Contains(line, markerFileCard) {
			flushFile()
			name := stripBorders(afterMarker(line, markerFileCard))
			openFile = &FileChange{Filename: name}
			section = prFileChange
			continue
		}

		if section == prFileChange {
			if isBottomBorder(line) {
				flushFile()
				section = prBetween
				continue
			}
			if interior := stripBorders(line); interior != "" {
				fileParts = append(fileParts, interior)
			}
			continue
		}

		interior := stripBorders(line)
		switch {
		case strings.HasPrefix(interior, "Branch:"):
			doc.Meta.Branch = strings.TrimSpace(strings.TrimPrefix(interior, "Branch:"))
		case strings.HasPrefix(interior, "Commits:"):
			doc.Meta.CommitCount = parseCount(strings.TrimPrefix(interior, "Commits:"))
		case strings.HasPrefix(interior, "Changed files:"):
			doc.Meta.ChangedFileCount = parseCount(strings.TrimPrefix(interior, "Changed files:"))
		case commitLineRe.MatchString(line):
			doc.CommitHistory = append(doc.CommitHistory, line)
		case section == prOverallSummary:
			if interior != "" {
				overallParts = append(overallParts, interior)
			}
		}
	}

	flushFile()

	doc.OverallSummary = strings.TrimSpace(strings.Join(overallParts, " "))
	doc.PipelineInfo = strings.TrimSpace(strings.Join(pipelineLines, "\n"))
	return doc
}

// isSeparatorRule reports whether a trimmed line is a "====" section rule.
func isSeparatorRule(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != '=' {
			return false
		}
	}
	return true
}

// parseCount parses an integer metadata value, defaulting to 0.
func parseCount(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
