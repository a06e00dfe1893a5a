package richtext

import (
	"reflect"
	"testing"
)

func TestParseSearchResults_FullRecord(t *testing.T) {
	input := "┌──────── 1. FUNCTION: connect_db ────────┐\n" +
		"│ 📄 db/conn.py:10-20                      │\n" +
		"│ 📊 Similarity: 0.8421                    │\n" +
		"│ 📝 Opens a pooled database connection.   │\n" +
		"└───────────────────────────────────────────┘\n"

	results := ParseSearchResults(input)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}

	r := results[0]
	if r.Kind != "function" || r.Name != "connect_db" {
		t.Fatalf("unexpected header fields: kind=%q name=%q", r.Kind, r.Name)
	}
	if r.FilePath != "db/conn.py" {
		t.Fatalf("expected file path db/conn.py, got %q", r.FilePath)
	}
	if r.StartLine == nil || r.EndLine == nil || *r.StartLine != 10 || *r.EndLine != 20 {
		t.Fatalf("unexpected line range: %v-%v", r.StartLine, r.EndLine)
	}
	if r.Similarity == nil || *r.Similarity != 0.8421 {
		t.Fatalf("unexpected similarity: %v", r.Similarity)
	}
	if r.Docstring != "Opens a pooled database connection." {
		t.Fatalf("unexpected docstring: %q", r.Docstring)
	}
}

func TestParseSearchResults_OneRecordPerHeader(t *testing.T) {
	input := "1. FUNCTION: alpha\n" +
		"│ 📊 Similarity: 0.9 │\n" +
		"2. CLASS: Beta\n" +
		"3. FUNCTION: gamma\n"

	results := ParseSearchResults(input)
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}

	names := []string{results[0].Name, results[1].Name, results[2].Name}
	if !reflect.DeepEqual(names, []string{"alpha", "Beta", "gamma"}) {
		t.Fatalf("results out of header order: %v", names)
	}
	if results[1].Kind != "class" {
		t.Fatalf("expected kind to be lowercased, got %q", results[1].Kind)
	}
	// Header with no field lines still yields a record.
	if results[2].FilePath != "" || results[2].Similarity != nil {
		t.Fatalf("expected bare record, got %+v", results[2])
	}
}

func TestParseSearchResults_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "no headers here\njust noise"} {
		results := ParseSearchResults(input)
		if results == nil {
			t.Fatalf("expected non-nil slice for %q", input)
		}
		if len(results) != 0 {
			t.Fatalf("expected empty slice for %q, got %d results", input, len(results))
		}
	}
}

func TestParseSearchResults_RepeatedMarkerLastWins(t *testing.T) {
	input := "1. FUNCTION: handler\n" +
		"│ 📊 Similarity: 0.5000 │\n" +
		"│ 📊 Similarity: 0.7000 │\n" +
		"│ 📄 app/old.py:1-5 │\n" +
		"│ 📄 app/new.py:7-30 │\n"

	results := ParseSearchResults(input)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Similarity == nil || *results[0].Similarity != 0.7 {
		t.Fatalf("expected last similarity to win, got %v", results[0].Similarity)
	}
	if results[0].FilePath != "app/new.py" || *results[0].StartLine != 7 {
		t.Fatalf("expected last file reference to win, got %q", results[0].FilePath)
	}
}

func TestParseSearchResults_SimilarityOutOfRangeIgnored(t *testing.T) {
	input := "1. FUNCTION: handler\n" +
		"│ 📊 Similarity: 1.5000 │\n"

	results := ParseSearchResults(input)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].Similarity != nil {
		t.Fatalf("expected out-of-range similarity to be dropped, got %v", *results[0].Similarity)
	}
}

func TestParseSearchResults_Idempotent(t *testing.T) {
	input := "1. FUNCTION: alpha\n│ 📄 a.py:1-2 │\n2. CLASS: Beta\n"
	first := ParseSearchResults(input)
	second := ParseSearchResults(input)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-parsing produced different results:\n%+v\n%+v", first, second)
	}
}
