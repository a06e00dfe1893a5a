package richtext

import (
	"regexp"
	"strconv"
	"strings"
)

// Markers are the fixed glyphs and literals the engine prints before each
// field. They are the whole of the engine-format dependency: if the engine's
// renderer changes, this table is what has to move with it.
const (
	markerFile       = "📄"
	markerSimilarity = "📊"
	markerDocstring  = "📝"
	markerAnswer     = "💡"
	markerAnswerText = "Answer:"
	markerSources    = "Supporting Sources"
	markerOverall    = "Overall PR Summary"
	markerFileCard   = "🔹"
	markerWarning    = "⚠"
	markerPipeline   = "Pipeline"
)

// borderChars are the box-drawing characters the engine uses for panels.
const borderChars = "┌─┐│└┘"

var (
	// headerRe matches a result header like "1. FUNCTION: connect_db".
	headerRe = regexp.MustCompile(`(\d+)\.\s+(FUNCTION|CLASS):\s+(\w+)`)
	// fileRefRe matches a file reference like "db/conn.py:10-20".
	fileRefRe = regexp.MustCompile(`([^\s` + borderChars + `]+):(\d+)-(\d+)`)
	// similarityRe matches "Similarity: 0.8421".
	similarityRe = regexp.MustCompile(`Similarity:\s*([0-9]*\.?[0-9]+)`)
	// progressTagRe matches stage tags like "[2/7]" in the pipeline log.
	progressTagRe = regexp.MustCompile(`\[\d+/\d+\]`)
	// commitLineRe matches a bulleted short-hash commit line like
	// "  • 3fa2b17 - add retry logic".
	commitLineRe = regexp.MustCompile(`^\s*[•*-]\s*[0-9a-fA-F]{6,40}\s*-\s*\S`)
)

// stripBorders removes leading and trailing box-drawing characters and
// whitespace, leaving the interior text of a panel line.
func stripBorders(line string) string {
	return strings.Trim(line, borderChars+" \t")
}

// isBorderOnly reports whether a line is nothing but box-drawing characters
// and whitespace.
func isBorderOnly(line string) bool {
	s := strings.TrimSpace(line)
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune(borderChars, r) {
			return false
		}
	}
	return true
}

// isTopBorder reports whether a line begins a panel.
func isTopBorder(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), "┌")
}

// isBottomBorder reports whether a line closes a panel.
func isBottomBorder(line string) bool {
	s := strings.TrimSpace(line)
	return strings.HasPrefix(s, "└") && isBorderOnly(s)
}

// afterMarker returns the text following the first occurrence of marker,
// or "" if the marker is absent.
func afterMarker(line, marker string) string {
	idx := strings.Index(line, marker)
	if idx < 0 {
		return ""
	}
	return line[idx+len(marker):]
}

// fieldRule binds a marker to the field it populates. Each rule is
// best-effort: a matched marker with an unparseable payload sets nothing.
type fieldRule struct {
	marker string
	apply  func(res *SearchResult, rest string)
}

// resultFieldRules are the per-record field markers shared by the search and
// RAG parsers. A marker seen more than once per record overwrites the
// previous value.
var resultFieldRules = []fieldRule{
	{markerFile, applyFileRef},
	{markerSimilarity, applySimilarity},
	{markerDocstring, applyDocstring},
}

// applyFieldRules tests a line against every rule and applies the first one
// whose marker is present. Returns true if a rule matched.
func applyFieldRules(res *SearchResult, line string) bool {
	for _, rule := range resultFieldRules {
		if strings.Contains(line, rule.marker) {
			rule.apply(res, afterMarker(line, rule.marker))
			return true
		}
	}
	return false
}

func applyFileRef(res *SearchResult, rest string) {
	commitFileRef(res, rest)
}

// commitFileRef commits a "path:start-end" reference onto res if s contains
// one. Returns false when s does not yet form a complete reference, which
// lets the RAG parser keep accumulating wrapped path fragments.
func commitFileRef(res *SearchResult, s string) bool {
	m := fileRefRe.FindStringSubmatch(s)
	if m == nil {
		return false
	}
	start, err1 := strconv.Atoi(m[2])
	end, err2 := strconv.Atoi(m[3])
	if err1 != nil || err2 != nil {
		return false
	}
	res.FilePath = strings.TrimRight(m[1], borderChars)
	res.StartLine = &start
	res.EndLine = &end
	return true
}

func applySimilarity(res *SearchResult, rest string) {
	m := similarityRe.FindStringSubmatch(rest)
	if m == nil {
		return
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil || v < 0 || v > 1 {
		return
	}
	res.Similarity = &v
}

func applyDocstring(res *SearchResult, rest string) {
	doc := stripBorders(rest)
	if doc != "" {
		res.Docstring = doc
	}
}
