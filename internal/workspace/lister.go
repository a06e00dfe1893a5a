package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// DefaultIgnorePatterns are common directories and files to skip when
// listing source files.
var DefaultIgnorePatterns = []string{
	".git",
	".hg",
	".svn",
	"node_modules",
	"__pycache__",
	".venv",
	"venv",
	"dist",
	"build",
	"vendor",
	"target",
	".idea",
	".vscode",
	".pytest_cache",
	".mypy_cache",
	"*.egg-info",
}

// DefaultSourceExtensions are the file extensions considered source code
// when no explicit set is given.
var DefaultSourceExtensions = []string{".py", ".go", ".ts", ".js", ".rs", ".java", ".c", ".cpp"}

// ListerConfig configures source file listing.
type ListerConfig struct {
	// Extensions limits results to these file extensions. Default: DefaultSourceExtensions.
	Extensions []string
	// MaxFileSize skips files larger than this many bytes. Default: 1 MiB.
	MaxFileSize int64
}

// Lister discovers source files under a repository root, honoring the
// repository's .gitignore plus a built-in ignore list.
type Lister struct {
	repoRoot string
	config   ListerConfig
	matcher  gitignore.IgnoreParser
	exts     map[string]bool
}

// NewLister creates a lister for the given repository root.
func NewLister(repoRoot string, config ListerConfig) (*Lister, error) {
	if len(config.Extensions) == 0 {
		config.Extensions = DefaultSourceExtensions
	}
	if config.MaxFileSize <= 0 {
		config.MaxFileSize = 1 << 20
	}

	exts := make(map[string]bool, len(config.Extensions))
	for _, ext := range config.Extensions {
		exts[strings.ToLower(ext)] = true
	}

	return &Lister{
		repoRoot: repoRoot,
		config:   config,
		matcher:  NewIgnoreMatcher(repoRoot),
		exts:     exts,
	}, nil
}

// NewIgnoreMatcher compiles the built-in ignore patterns plus the repo's
// root .gitignore into a single matcher.
func NewIgnoreMatcher(repoRoot string) gitignore.IgnoreParser {
	patterns := make([]string, 0, len(DefaultIgnorePatterns)+16)
	patterns = append(patterns, DefaultIgnorePatterns...)
	if lines, err := readIgnoreLines(filepath.Join(repoRoot, ".gitignore")); err == nil {
		patterns = append(patterns, lines...)
	}
	return gitignore.CompileIgnoreLines(patterns...)
}

// List walks the repository and returns the relative paths of matching
// source files in walk order.
func (l *Lister) List() ([]string, error) {
	var files []string

	err := filepath.WalkDir(l.repoRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(l.repoRoot, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			if l.matcher.MatchesPath(rel + "/") {
				return filepath.SkipDir
			}
			return nil
		}
		if l.matcher.MatchesPath(rel) {
			return nil
		}
		if !l.exts[strings.ToLower(filepath.Ext(path))] {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > l.config.MaxFileSize {
			return nil
		}

		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", l.repoRoot, err)
	}

	return files, nil
}

func readIgnoreLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}
