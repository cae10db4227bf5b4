//go:build cgo

package syntax

import (
	"testing"
)

func TestErrorLines_ValidCode(t *testing.T) {
	testCases := []struct {
		name     string
		language string
		code     string
	}{
		{
			name:     "Valid Go code",
			language: "go",
			code: `package main

import "fmt"

func main() {
	fmt.Println("Hello, World!")
}`,
		},
		{
			name:     "Valid Python code",
			language: "python",
			code: `def hello():
    print("Hello, World!")

if __name__ == "__main__":
    hello()`,
		},
		{
			name:     "Valid TypeScript code",
			language: "typescript",
			code: `function hello(): void {
    console.log("Hello, World!");
}

hello();`,
		},
		{
			name:     "Valid Bash code",
			language: "bash",
			code: `#!/bin/bash

for i in 1 2 3; do
    echo "Number: $i"
done`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lines, err := ErrorLines(tc.code, tc.language)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(lines) != 0 {
				t.Errorf("Expected no error lines, got %v", lines)
			}
		})
	}
}

func TestErrorLines_SyntaxErrors(t *testing.T) {
	testCases := []struct {
		name     string
		language string
		code     string
		wantLine int // a line that must be present in the result, -1 to skip
	}{
		{
			name:     "Python malformed def",
			language: "python",
			code:     "def f(:\n    pass\n",
			wantLine: 0,
		},
		{
			name:     "Go missing closing brace",
			language: "go",
			code: `package main

func main() {
	x := 1
	_ = x
`,
			wantLine: -1,
		},
		{
			name:     "TypeScript unclosed paren",
			language: "typescript",
			code:     "function f( {\n    return 1;\n}\n",
			wantLine: -1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			lines, err := ErrorLines(tc.code, tc.language)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(lines) == 0 {
				t.Fatal("Expected error lines, got none")
			}

			total := 1
			for _, c := range tc.code {
				if c == '\n' {
					total++
				}
			}
			found := tc.wantLine < 0
			for _, line := range lines {
				if line < 0 || line >= total {
					t.Errorf("Line %d out of range [0, %d)", line, total)
				}
				if line == tc.wantLine {
					found = true
				}
			}
			if !found {
				t.Errorf("Expected line %d in result, got %v", tc.wantLine, lines)
			}

			// Results must be sorted and de-duplicated.
			for i := 1; i < len(lines); i++ {
				if lines[i] <= lines[i-1] {
					t.Errorf("Lines not sorted/unique: %v", lines)
				}
			}
		})
	}
}

func TestErrorLines_EmptyCode(t *testing.T) {
	lines, err := ErrorLines("", "python")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(lines) != 0 {
		t.Errorf("Expected no error lines for empty code, got %v", lines)
	}
}

func TestErrorLines_UnsupportedLanguage(t *testing.T) {
	_, err := ErrorLines("some code", "cobol")
	if err == nil {
		t.Fatal("Expected error for unsupported language")
	}
}

func TestNodeSpans(t *testing.T) {
	code := `def outer():
    def inner():
        return 1
    return inner()
`
	spans, err := NodeSpans(code, "python")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(spans) == 0 {
		t.Fatal("Expected spans, got none")
	}

	// The first span is the root and covers the whole module.
	root := spans[0]
	if root.StartLine != 0 {
		t.Errorf("Expected root span to start at line 0, got %d", root.StartLine)
	}
	if root.EndLine < 3 {
		t.Errorf("Expected root span to reach line 3, got %d", root.EndLine)
	}

	// Some node must start at the inner function definition.
	foundInner := false
	for _, span := range spans {
		if span.StartLine == 1 && span.EndLine >= 2 {
			foundInner = true
			break
		}
	}
	if !foundInner {
		t.Errorf("Expected a multi-line span starting at line 1, got %v", spans)
	}
}

func TestIsSupported(t *testing.T) {
	for _, lang := range SupportedLanguages() {
		if !IsSupported(lang) {
			t.Errorf("Expected %s to be supported", lang)
		}
	}
	if IsSupported("cobol") {
		t.Error("Expected cobol to be unsupported")
	}
	if !IsSupported(" Python ") {
		t.Error("Expected language matching to normalize case and whitespace")
	}
}
