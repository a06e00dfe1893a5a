package richtext

import "strings"

// ragPhase tracks where the RAG parser is in the rendered document.
type ragPhase int

const (
	ragSeekingAnswer ragPhase = iota
	ragInAnswer
	ragSeekingSources
	ragInSources
)

// ParseRAGOutput scans the output of a RAG-mode search invocation and
// returns the free-text answer plus its supporting sources.
//
// The answer lives in a box-drawn panel introduced by the answer marker (the
// lightbulb glyph or a literal "Answer:"); the sources section is introduced
// by the "Supporting Sources" literal. Each source is a panel whose header
// carries "<n>. KIND: name"; the lines between a closed panel and the next
// panel are its code excerpt. A source lacking a file path is dropped.
func ParseRAGOutput(text string) RagAnswer {
	cur := newLineCursor(text)

	var (
		phase      ragPhase
		answer     []string
		sources    = []RagSource{}
		src        *RagSource
		collecting bool
		codeLines  []string
		pathAccum  string
	)

	// flush closes out the open source record. Only records that resolved a
	// file path are kept; pending code lines are attached on the way out.
	flush := func() {
		if src != nil && src.FilePath != "" {
			if len(codeLines) > 0 {
				src.CodeSnippet = strings.Join(codeLines, "\n")
			}
			sources = append(sources, *src)
		}
		src = nil
		collecting = false
		codeLines = nil
		pathAccum = ""
	}

	for {
		line, ok := cur.Next()
		if !ok {
			break
		}

		// Query echoes carry no information in any phase.
		if strings.HasPrefix(stripBorders(line), "Query:") {
			continue
		}

		// The sources marker wins from any phase and ends the answer.
		if strings.Contains(line, markerSources) {
			phase = ragInSources
			continue
		}

		switch phase {
		case ragSeekingAnswer, ragSeekingSources:
			if strings.Contains(line, markerAnswer) || strings.Contains(line, markerAnswerText) {
				phase = ragInAnswer
				if rest := stripBorders(afterMarker(line, markerAnswerText)); rest != "" {
					answer = append(answer, rest)
				}
			}

		case ragInAnswer:
			if isBottomBorder(line) {
				phase = ragSeekingSources
				continue
			}
			t := stripBorders(line)
			t = strings.TrimSpace(strings.TrimPrefix(t, markerAnswerText))
			if t != "" {
				answer = append(answer, t)
			}

		case ragInSources:
			if collecting {
				// A new panel ends the excerpt; hand the line back so it is
				// reprocessed as the next record's opener.
				if isTopBorder(line) {
					flush()
					cur.Unget()
					continue
				}
				stripped := strings.Trim(line, borderChars)
				if strings.TrimSpace(stripped) != "" {
					codeLines = append(codeLines, stripped)
				}
				continue
			}

			if isTopBorder(line) {
				if m := headerRe.FindStringSubmatch(line); m != nil {
					flush()
					src = &RagSource{SearchResult: SearchResult{
						Kind: strings.ToLower(m[2]),
						Name: m[3],
					}}
				}
				continue
			}
			if src == nil {
				continue
			}
			if isBottomBorder(line) {
				collecting = true
				continue
			}

			// Interior lines, in priority order. The renderer wraps long
			// file paths across fixed-width panel lines, so the reference
			// is accumulated until "path:start-end" parses.
			if strings.Contains(line, markerFile) || pathAccum != "" {
				if strings.Contains(line, markerFile) {
					pathAccum = stripBorders(afterMarker(line, markerFile))
				} else {
					pathAccum += stripBorders(line)
				}
				if commitFileRef(&src.SearchResult, pathAccum) {
					pathAccum = ""
				}
				continue
			}
			if strings.Contains(line, markerSimilarity) {
				applySimilarity(&src.SearchResult, afterMarker(line, markerSimilarity))
				continue
			}
			if strings.Contains(line, markerDocstring) {
				applyDocstring(&src.SearchResult, afterMarker(line, markerDocstring))
			}
		}
	}

	flush()

	return RagAnswer{
		Text:    strings.TrimSpace(strings.Join(answer, " ")),
		Sources: sources,
	}
}
