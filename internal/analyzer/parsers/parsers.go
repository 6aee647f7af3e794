// Package parsers turns raw source text into FileRecords. Each extension
// family has its own sub-parser; all of them catch failures at the file
// boundary and degrade to parse errors instead of propagating.
package parsers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sightline-dev/sightline/internal/ir"
)

// ErrUnsupportedFileType is returned for extensions outside the supported set.
// The walker converts it into a FileRecord with FatalError set.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// SupportedExtensions lists every extension the parser dispatches on, in the
// priority order used by dependency resolution probing.
var SupportedExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".html", ".htm", ".css", ".scss", ".vue"}

// IsSupported reports whether the extension (with leading dot, any case) has
// a sub-parser.
func IsSupported(ext string) bool {
	ext = strings.ToLower(ext)
	for _, s := range SupportedExtensions {
		if s == ext {
			return true
		}
	}
	return false
}

// Parse dispatches on the file extension and returns a structural record.
// Sub-parser failures never escape: they are recorded in ParseErrors and the
// record is returned with whatever could be extracted. The only error
// condition is an unsupported extension.
func Parse(path string, content []byte) (*ir.FileRecord, error) {
	ext := strings.ToLower(filepath.Ext(path))
	rec := ir.NewFileRecord(filepath.ToSlash(path), ext)
	rec.Size = len(content)
	rec.LineCount = countLines(content)

	switch ext {
	case ".js", ".jsx", ".ts", ".tsx":
		parseScript(rec, content)
	case ".html", ".htm":
		parseMarkup(rec, content)
	case ".css", ".scss":
		parseStylesheet(rec, content)
	case ".vue":
		parseComposite(rec, content)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, ext)
	}

	return rec, nil
}

// countLines counts source lines; an empty file has zero, otherwise the
// number of newline-separated segments.
func countLines(content []byte) int {
	if len(content) == 0 {
		return 0
	}
	lines := 1
	for _, b := range content {
		if b == '\n' {
			lines++
		}
	}
	if content[len(content)-1] == '\n' {
		lines--
	}
	return lines
}
