package syntax

import (
	"path/filepath"
	"strings"
)

// Span is the line extent of a single syntax tree node, zero-based and
// inclusive on both ends.
type Span struct {
	StartLine int
	EndLine   int
}

// DetectLanguage determines the programming language from file extension or
// filename. Returns "" for files the linter should silently skip.
func DetectLanguage(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".go":
		return "go"
	case ".py", ".pyw":
		return "python"
	case ".ts":
		return "typescript"
	case ".js", ".mjs":
		return "javascript"
	case ".tsx":
		return "tsx"
	case ".jsx":
		return "jsx"
	case ".sh", ".bash", ".zsh":
		return "bash"
	default:
		base := strings.ToLower(filepath.Base(path))
		if base == "makefile" || base == "dockerfile" {
			// Recognized, but no grammar is bundled for them.
			return base
		}
		return ""
	}
}
