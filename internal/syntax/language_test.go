package syntax

import "testing"

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"main.go", "go"},
		{"/abs/path/server.go", "go"},
		{"script.py", "python"},
		{"script.pyw", "python"},
		{"app.ts", "typescript"},
		{"app.tsx", "tsx"},
		{"app.js", "javascript"},
		{"app.mjs", "javascript"},
		{"app.jsx", "jsx"},
		{"run.sh", "bash"},
		{"run.bash", "bash"},
		{"README.md", ""},
		{"data.csv", ""},
		{"noextension", ""},
		{"Makefile", "makefile"},
		{"UPPER.GO", "go"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := DetectLanguage(tt.path); got != tt.expected {
				t.Errorf("DetectLanguage(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}
