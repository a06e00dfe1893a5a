package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func TestDetectProjectTypeManifest(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", "[project]\nname = \"demo\"\n")

	if got := DetectProjectType(root); got != ProjectTypePython {
		t.Errorf("expected python, got %s", got)
	}
}

func TestDetectProjectTypeExtensionFallback(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.py", "b.py", "c.py"} {
		writeFile(t, root, name, "pass\n")
	}

	if got := DetectProjectType(root); got != ProjectTypePython {
		t.Errorf("expected python, got %s", got)
	}
}

func TestDetectProjectTypeUnknown(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.txt", "hello\n")

	if got := DetectProjectType(root); got != ProjectTypeUnknown {
		t.Errorf("expected unknown, got %s", got)
	}
}

func TestFindRepoRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir .git: %v", err)
	}
	nested := filepath.Join(root, "src", "pkg")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir nested: %v", err)
	}

	got := FindRepoRoot(nested)
	want, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != want {
		t.Errorf("FindRepoRoot = %s, want %s", got, root)
	}
}

func TestFindRepoRootNoGit(t *testing.T) {
	root := t.TempDir()
	if got := FindRepoRoot(root); got != root {
		t.Errorf("expected start dir back, got %s", got)
	}
}

func TestListerHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "generated/\nsecret.py\n")
	writeFile(t, root, "main.py", "print('hi')\n")
	writeFile(t, root, "lib/util.py", "pass\n")
	writeFile(t, root, "generated/gen.py", "pass\n")
	writeFile(t, root, "secret.py", "pass\n")
	writeFile(t, root, "__pycache__/main.cpython-311.pyc", "binary")
	writeFile(t, root, "README.md", "# demo\n")

	lister, err := NewLister(root, ListerConfig{Extensions: []string{".py"}})
	if err != nil {
		t.Fatalf("NewLister: %v", err)
	}
	files, err := lister.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	got := make(map[string]bool, len(files))
	for _, f := range files {
		got[f] = true
	}
	for _, want := range []string{"main.py", "lib/util.py"} {
		if !got[want] {
			t.Errorf("expected %s in listing, got %v", want, files)
		}
	}
	for _, banned := range []string{"generated/gen.py", "secret.py", "README.md"} {
		if got[banned] {
			t.Errorf("%s should have been ignored", banned)
		}
	}
}

func TestListerSkipsLargeFiles(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "small.py", "pass\n")
	big := make([]byte, 2048)
	writeFile(t, root, "big.py", string(big))

	lister, err := NewLister(root, ListerConfig{Extensions: []string{".py"}, MaxFileSize: 1024})
	if err != nil {
		t.Fatalf("NewLister: %v", err)
	}
	files, err := lister.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	if len(files) != 1 || files[0] != "small.py" {
		t.Errorf("expected only small.py, got %v", files)
	}
}
