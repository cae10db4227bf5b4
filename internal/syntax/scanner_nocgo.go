//go:build !cgo

package syntax

import "fmt"

// Without CGo the tree-sitter grammars are unavailable. Language support
// checks report false, so the linter skips structural scanning entirely.

// SupportedLanguages returns the languages with a bundled tree-sitter grammar
// (none without CGo).
func SupportedLanguages() []string {
	return nil
}

// IsSupported always returns false without CGo.
func IsSupported(language string) bool {
	return false
}

// ErrorLines is unavailable without CGo.
func ErrorLines(code, language string) ([]int, error) {
	return nil, fmt.Errorf("syntax scanning requires cgo (tree-sitter unavailable)")
}

// NodeSpans is unavailable without CGo.
func NodeSpans(code, language string) ([]Span, error) {
	return nil, fmt.Errorf("syntax scanning requires cgo (tree-sitter unavailable)")
}
