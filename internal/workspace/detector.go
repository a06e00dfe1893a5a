package workspace

import (
	"os"
	"path/filepath"
	"strings"
)

// ProjectType represents the type of project.
type ProjectType string

const (
	ProjectTypePython  ProjectType = "python"
	ProjectTypeGo      ProjectType = "go"
	ProjectTypeNode    ProjectType = "node"
	ProjectTypeRust    ProjectType = "rust"
	ProjectTypeUnknown ProjectType = "unknown"
)

var manifestMarkers = []struct {
	file  string
	ptype ProjectType
}{
	{"pyproject.toml", ProjectTypePython},
	{"requirements.txt", ProjectTypePython},
	{"setup.py", ProjectTypePython},
	{"go.mod", ProjectTypeGo},
	{"package.json", ProjectTypeNode},
	{"Cargo.toml", ProjectTypeRust},
}

// DetectProjectType detects the project type using manifest-first detection
// with an extension-count fallback.
func DetectProjectType(repoRoot string) ProjectType {
	for _, m := range manifestMarkers {
		if _, err := os.Stat(filepath.Join(repoRoot, m.file)); err == nil {
			return m.ptype
		}
	}

	entries, err := os.ReadDir(repoRoot)
	if err != nil {
		return ProjectTypeUnknown
	}

	extCounts := make(map[string]int)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != "" {
			extCounts[ext]++
		}
	}

	counts := []struct {
		n     int
		ptype ProjectType
	}{
		{extCounts[".py"], ProjectTypePython},
		{extCounts[".go"], ProjectTypeGo},
		{extCounts[".ts"] + extCounts[".tsx"] + extCounts[".js"] + extCounts[".jsx"], ProjectTypeNode},
		{extCounts[".rs"], ProjectTypeRust},
	}

	maxCount := 0
	detected := ProjectTypeUnknown
	for _, c := range counts {
		if c.n > maxCount {
			maxCount = c.n
			detected = c.ptype
		}
	}

	// A couple of stray files is not enough signal.
	if maxCount >= 3 {
		return detected
	}
	return ProjectTypeUnknown
}

// FindRepoRoot walks up from start looking for a .git directory and returns
// the directory that contains it. It returns start itself when no repository
// root is found, so callers can operate on plain directories too.
func FindRepoRoot(start string) string {
	dir, err := filepath.Abs(start)
	if err != nil {
		return start
	}
	for {
		if info, err := os.Stat(filepath.Join(dir, ".git")); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return start
		}
		dir = parent
	}
}
