//go:build cgo

package syntax

import (
	"fmt"
	"sort"
	"strings"
	"unsafe"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_bash "github.com/tree-sitter/tree-sitter-bash/bindings/go"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// languages maps language identifiers to their tree-sitter grammars.
var languages = map[string]unsafe.Pointer{
	"go":         tree_sitter_go.Language(),
	"golang":     tree_sitter_go.Language(),
	"python":     tree_sitter_python.Language(),
	"py":         tree_sitter_python.Language(),
	"typescript": tree_sitter_typescript.LanguageTypescript(),
	"ts":         tree_sitter_typescript.LanguageTypescript(),
	"javascript": tree_sitter_typescript.LanguageTypescript(), // TypeScript parser handles JS
	"js":         tree_sitter_typescript.LanguageTypescript(),
	"tsx":        tree_sitter_typescript.LanguageTSX(),
	"jsx":        tree_sitter_typescript.LanguageTSX(),
	"bash":       tree_sitter_bash.Language(),
	"sh":         tree_sitter_bash.Language(),
	"shell":      tree_sitter_bash.Language(),
}

// SupportedLanguages returns the languages with a bundled tree-sitter grammar.
func SupportedLanguages() []string {
	return []string{
		"bash",
		"go",
		"javascript",
		"jsx",
		"python",
		"tsx",
		"typescript",
	}
}

// IsSupported checks if a language has a bundled tree-sitter grammar.
func IsSupported(language string) bool {
	_, ok := languages[strings.ToLower(strings.TrimSpace(language))]
	return ok
}

// ErrorLines parses code with tree-sitter and returns the zero-based line
// numbers of every ERROR node and every missing token in the syntax tree,
// sorted and de-duplicated. An empty result means the code parsed cleanly.
func ErrorLines(code, language string) ([]int, error) {
	if strings.TrimSpace(code) == "" {
		return nil, nil
	}

	tree, err := parse(code, language)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("failed to get root node from parsed tree")
	}

	if !root.HasError() {
		return nil, nil
	}

	seen := make(map[int]struct{})
	collectErrorLines(root, seen)

	// Tree-sitter can report a tree-level error without a reachable ERROR
	// node after recovery; attribute it to the root's starting line.
	if len(seen) == 0 {
		seen[int(root.StartPosition().Row)] = struct{}{}
	}

	lines := make([]int, 0, len(seen))
	for line := range seen {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines, nil
}

// collectErrorLines records the starting line of every ERROR or missing node,
// recursing into children of matched nodes since errors can nest.
func collectErrorLines(node *tree_sitter.Node, lines map[int]struct{}) {
	if node == nil {
		return
	}

	if node.Kind() == "ERROR" || node.IsMissing() {
		lines[int(node.StartPosition().Row)] = struct{}{}
	}

	childCount := node.ChildCount()
	for i := uint(0); i < childCount; i++ {
		collectErrorLines(node.Child(i), lines)
	}
}

// NodeSpans parses code and returns the line span of every node in the
// syntax tree, in depth-first order starting at the root.
func NodeSpans(code, language string) ([]Span, error) {
	tree, err := parse(code, language)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("failed to get root node from parsed tree")
	}

	var spans []Span
	collectSpans(root, &spans)
	return spans, nil
}

func collectSpans(node *tree_sitter.Node, spans *[]Span) {
	if node == nil {
		return
	}

	*spans = append(*spans, Span{
		StartLine: int(node.StartPosition().Row),
		EndLine:   int(node.EndPosition().Row),
	})

	childCount := node.ChildCount()
	for i := uint(0); i < childCount; i++ {
		collectSpans(node.Child(i), spans)
	}
}

// parse produces a syntax tree for code. The caller must Close the tree.
func parse(code, language string) (*tree_sitter.Tree, error) {
	language = strings.ToLower(strings.TrimSpace(language))

	lang, ok := languages[language]
	if !ok {
		return nil, fmt.Errorf("language not supported for scanning: %s (supported: %s)",
			language, strings.Join(SupportedLanguages(), ", "))
	}

	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tree_sitter.NewLanguage(lang)); err != nil {
		return nil, fmt.Errorf("failed to set parser language: %w", err)
	}

	tree := parser.Parse([]byte(code), nil)
	if tree == nil {
		return nil, fmt.Errorf("failed to parse code: parser returned nil tree")
	}
	return tree, nil
}
