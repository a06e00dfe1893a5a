package richtext

import "strings"

// ParseSearchResults scans the output of a search invocation and returns the
// ranked results in header order. Input with no header lines yields an empty
// (non-nil) slice.
//
// A header line ("<n>. FUNCTION: name" or "<n>. CLASS: name") opens a record;
// field markers on subsequent lines populate it until the next header or end
// of input. A repeated field marker overwrites the previous value.
func ParseSearchResults(text string) []SearchResult {
	results := []SearchResult{}
	cur := newLineCursor(text)

	var open *SearchResult
	for {
		line, ok := cur.Next()
		if !ok {
			break
		}

		if m := headerRe.FindStringSubmatch(line); m != nil {
			if open != nil {
				results = append(results, *open)
			}
			open = &SearchResult{
				Kind: strings.ToLower(m[2]),
				Name: m[3],
			}
			continue
		}

		if open == nil {
			continue
		}
		applyFieldRules(open, line)
	}

	if open != nil {
		results = append(results, *open)
	}
	return results
}
