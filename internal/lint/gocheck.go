package lint

import (
	"context"
	"errors"
	"fmt"
	"go/parser"
	"go/scanner"
	"go/token"
	"sort"
	"strings"
)

// goLint is the built-in strategy for Go files: the structural tree-sitter
// scan runs first so gross breakage is reported once, then a full parse with
// the Go front end catches anything tree-sitter's error recovery tolerated.
func (l *Linter) goLint(_ context.Context, _ string, relFname, code string) (string, error) {
	res, err := l.basicLint(relFname, code)
	if err != nil || res != "" {
		return res, err
	}
	return goCompileCheck(relFname, code), nil
}

// goCompileCheck parses code with go/parser and, on failure, renders the
// compiler diagnostics followed by a structural excerpt of the reported
// lines. go/parser returns structured positions scoped to the file under
// test, so unlike a raw traceback there are no tool-internal frames to strip.
func goCompileCheck(relFname, code string) string {
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, relFname, code, parser.AllErrors)
	if err == nil {
		return ""
	}

	total := strings.Count(code, "\n") + 1
	lineSet := make(map[int]struct{})

	var sb strings.Builder
	var list scanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		for _, e := range list {
			fmt.Fprintf(&sb, "%s\n", e.Error())
			line := e.Pos.Line - 1
			if line >= total {
				line = total - 1
			}
			if line >= 0 {
				lineSet[line] = struct{}{}
			}
		}
	} else {
		fmt.Fprintf(&sb, "%s\n", err.Error())
		lineSet[0] = struct{}{}
	}

	lines := make([]int, 0, len(lineSet))
	for line := range lineSet {
		lines = append(lines, line)
	}
	sort.Ints(lines)

	sb.WriteString("\n")
	sb.WriteString(renderReport(relFname, code, lines))
	return sb.String()
}
