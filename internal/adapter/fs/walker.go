package fs

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Walker enumerates source files under a root, filtered by doublestar
// include/exclude patterns and a maximum file size.
type Walker struct {
	includes    []string
	excludes    []string
	maxFileSize int64
}

// NewWalker creates a walker. Empty includes match everything; a
// non-positive maxFileSize disables the size cap.
func NewWalker(includes, excludes []string, maxFileSize int64) *Walker {
	if len(includes) == 0 {
		includes = []string{"**/*"}
	}
	return &Walker{
		includes:    includes,
		excludes:    excludes,
		maxFileSize: maxFileSize,
	}
}

// SourceFile is one candidate file for analysis.
type SourceFile struct {
	Path     string // absolute path
	RelPath  string // path relative to the walk root
	Language string
	Size     int64
}

// Walk returns the matching files under root.
func (w *Walker) Walk(root string) ([]SourceFile, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	var files []SourceFile
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		if info.IsDir() {
			if w.shouldExclude(relPath + "/") {
				return filepath.SkipDir
			}
			return nil
		}

		if w.maxFileSize > 0 && info.Size() > w.maxFileSize {
			return nil
		}

		if w.shouldInclude(relPath) && !w.shouldExclude(relPath) {
			files = append(files, SourceFile{
				Path:     path,
				RelPath:  relPath,
				Language: DetectLanguage(path),
				Size:     info.Size(),
			})
		}

		return nil
	})

	return files, err
}

func (w *Walker) shouldInclude(path string) bool {
	for _, pattern := range w.includes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

func (w *Walker) shouldExclude(path string) bool {
	for _, pattern := range w.excludes {
		matched, err := doublestar.Match(pattern, path)
		if err == nil && matched {
			return true
		}
	}
	return false
}

// DetectLanguage maps a file extension to a normalized language tag.
func DetectLanguage(path string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch ext {
	case "js", "mjs", "cjs":
		return "javascript"
	case "ts", "tsx", "mts":
		return "typescript"
	case "py":
		return "python"
	case "rs":
		return "rust"
	case "go":
		return "go"
	case "java":
		return "java"
	case "c", "h":
		return "c"
	case "cpp", "cc", "hpp":
		return "cpp"
	case "rb":
		return "ruby"
	case "":
		return "unknown"
	default:
		return ext
	}
}

// ReadFile returns the content of path as a string.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
