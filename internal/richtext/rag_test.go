package richtext

import (
	"reflect"
	"strings"
	"testing"
)

const ragSample = "│ Query: how does foo work │\n" +
	"┌─ 💡 how does foo work ─────┐\n" +
	"│ Answer:                    │\n" +
	"│ Foo wires the bar          │\n" +
	"│ into the baz loop.         │\n" +
	"└────────────────────────────┘\n" +
	"\n" +
	"Supporting Sources (2):\n" +
	"\n" +
	"┌──── 1. FUNCTION: foo ──────┐\n" +
	"│ 📄 pkg/foo/bar.py:10-      │\n" +
	"│ 20                         │\n" +
	"│ 📊 Similarity: 0.9100      │\n" +
	"│ 📝 Wires bar into baz.     │\n" +
	"└────────────────────────────┘\n" +
	"def foo():\n" +
	"    return bar()\n" +
	"┌──── 2. CLASS: Baz ─────────┐\n" +
	"│ 📊 Similarity: 0.8000      │\n" +
	"└────────────────────────────┘\n"

func TestParseRAGOutput_AnswerText(t *testing.T) {
	result := ParseRAGOutput(ragSample)

	if result.Text != "Foo wires the bar into the baz loop." {
		t.Fatalf("unexpected answer text: %q", result.Text)
	}
	if strings.Contains(result.Text, "Answer:") {
		t.Fatalf("answer text still contains the marker: %q", result.Text)
	}
	for _, r := range result.Text {
		if strings.ContainsRune(borderChars, r) {
			t.Fatalf("answer text contains border character %q", r)
		}
	}
}

func TestParseRAGOutput_WrappedFilePath(t *testing.T) {
	result := ParseRAGOutput(ragSample)

	if len(result.Sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(result.Sources))
	}
	src := result.Sources[0]
	if src.Name != "foo" || src.Kind != "function" {
		t.Fatalf("unexpected source header: %+v", src.SearchResult)
	}
	if src.FilePath != "pkg/foo/bar.py" {
		t.Fatalf("wrapped path not reassembled: %q", src.FilePath)
	}
	if src.StartLine == nil || src.EndLine == nil || *src.StartLine != 10 || *src.EndLine != 20 {
		t.Fatalf("unexpected line range: %v-%v", src.StartLine, src.EndLine)
	}
	if src.Similarity == nil || *src.Similarity != 0.91 {
		t.Fatalf("unexpected similarity: %v", src.Similarity)
	}
	if src.Docstring != "Wires bar into baz." {
		t.Fatalf("unexpected docstring: %q", src.Docstring)
	}
}

func TestParseRAGOutput_CodeSnippetAttached(t *testing.T) {
	result := ParseRAGOutput(ragSample)

	if len(result.Sources) != 1 {
		t.Fatalf("expected 1 source, got %d", len(result.Sources))
	}
	want := "def foo():\n    return bar()"
	if result.Sources[0].CodeSnippet != want {
		t.Fatalf("unexpected code snippet: %q", result.Sources[0].CodeSnippet)
	}
}

// The second source in ragSample has no file reference; it must be dropped.
func TestParseRAGOutput_SourceWithoutPathDiscarded(t *testing.T) {
	result := ParseRAGOutput(ragSample)
	for _, src := range result.Sources {
		if src.FilePath == "" {
			t.Fatalf("source without file path leaked into output: %+v", src)
		}
	}
}

func TestParseRAGOutput_AnswerLiteralMarker(t *testing.T) {
	input := "Answer: Routing maps URL rules to view functions.\n"
	result := ParseRAGOutput(input)
	if result.Text != "Routing maps URL rules to view functions." {
		t.Fatalf("unexpected answer text: %q", result.Text)
	}
	if len(result.Sources) != 0 {
		t.Fatalf("expected no sources, got %d", len(result.Sources))
	}
}

func TestParseRAGOutput_EmptyInput(t *testing.T) {
	result := ParseRAGOutput("")
	if result.Text != "" {
		t.Fatalf("expected empty answer, got %q", result.Text)
	}
	if result.Sources == nil || len(result.Sources) != 0 {
		t.Fatalf("expected empty non-nil sources, got %v", result.Sources)
	}
}

func TestParseRAGOutput_Idempotent(t *testing.T) {
	first := ParseRAGOutput(ragSample)
	second := ParseRAGOutput(ragSample)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("re-parsing produced different results:\n%+v\n%+v", first, second)
	}
}
