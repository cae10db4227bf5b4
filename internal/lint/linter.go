// Package lint checks edited source files for syntax errors and renders
// compact, structure-aware reports describing what it found. Each language is
// handled by a registered strategy: an external command, a built-in checker,
// or the generic tree-sitter scan.
package lint

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/statcode-ai/editlint/internal/logger"
	"github.com/statcode-ai/editlint/internal/syntax"
	"github.com/statcode-ai/editlint/internal/treectx"
)

// DefaultCommandTimeout bounds each external lint command invocation.
const DefaultCommandTimeout = 30 * time.Second

// Handler is a per-language lint strategy.
type Handler interface {
	handler()
}

// CommandHandler is an external command template. The file's relative path is
// appended as the final argument before execution; a non-zero exit status
// means the tool found something to report.
type CommandHandler string

// StrategyFunc is a built-in lint strategy. It receives the file's absolute
// path, its root-relative path, and the file contents.
type StrategyFunc func(ctx context.Context, fname, relFname, code string) (string, error)

func (CommandHandler) handler() {}
func (StrategyFunc) handler()   {}

// Linter dispatches files to per-language lint strategies. Each instance owns
// its registry; configure it before linting, registrations are not safe
// concurrently with Lint.
type Linter struct {
	root     string
	timeout  time.Duration
	handlers map[string]Handler
}

// New creates a Linter rooted at root. Report paths are computed relative to
// the root and external commands execute inside it. The Go compile fallback
// is pre-registered.
func New(root string) *Linter {
	l := &Linter{
		root:     root,
		timeout:  DefaultCommandTimeout,
		handlers: make(map[string]Handler),
	}
	l.handlers["go"] = StrategyFunc(l.goLint)
	return l
}

// SetTimeout overrides the external command timeout.
func (l *Linter) SetTimeout(d time.Duration) {
	if d > 0 {
		l.timeout = d
	}
}

// Register installs or replaces the handler for a language. Later
// registrations win.
func (l *Linter) Register(language string, h Handler) {
	l.handlers[strings.ToLower(strings.TrimSpace(language))] = h
}

// Lint checks one file and returns a report describing any problem found, or
// "" when the file is clean or its language is unknown. Unreadable files and
// unspawnable commands surface as errors; findings never do.
func (l *Linter) Lint(ctx context.Context, fname string) (string, error) {
	lang := syntax.DetectLanguage(fname)
	if lang == "" {
		logger.Debug("lint: skipping %s: unknown language", fname)
		return "", nil
	}

	relFname := l.relPath(fname)

	data, err := os.ReadFile(fname)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", fname, err)
	}
	code := string(data)

	h, ok := l.handlers[lang]
	if !ok {
		return l.basicLint(relFname, code)
	}

	switch h := h.(type) {
	case CommandHandler:
		return l.runCmd(ctx, string(h), relFname)
	case StrategyFunc:
		return h(ctx, fname, relFname, code)
	default:
		return "", fmt.Errorf("unsupported handler type %T for language %s", h, lang)
	}
}

// basicLint scans code for structural syntax errors with tree-sitter and
// renders any findings with their enclosing scope context.
func (l *Linter) basicLint(relFname, code string) (string, error) {
	lang := syntax.DetectLanguage(relFname)
	if lang == "" || !syntax.IsSupported(lang) {
		return "", nil
	}

	lines, err := syntax.ErrorLines(code, lang)
	if err != nil {
		return "", fmt.Errorf("failed to scan %s: %w", relFname, err)
	}
	if len(lines) == 0 {
		return "", nil
	}

	logger.Debug("lint: %s has syntax errors on lines %v", relFname, lines)
	return renderReport(relFname, code, lines), nil
}

// runCmd executes an external lint command with the file's relative path
// appended, inside the linter root. Zero exit means no issue. Non-zero exit
// wraps the command's combined output in the standard report header. Spawn
// failures and timeouts propagate as errors.
func (l *Linter) runCmd(ctx context.Context, command, relFname string) (string, error) {
	full := command + " " + relFname
	args := strings.Fields(full)
	if len(args) == 0 {
		return "", fmt.Errorf("empty lint command for %s", relFname)
	}

	cmdCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	logger.Debug("lint: running %q in %s", full, l.root)
	cmd := exec.CommandContext(cmdCtx, args[0], args[1:]...)
	cmd.Dir = l.root
	out, err := cmd.CombinedOutput()
	if err == nil {
		return "", nil
	}
	if cmdCtx.Err() != nil {
		// Only our own deadline is a timeout; a canceled parent context is
		// the caller's cancellation and is reported as such.
		if errors.Is(cmdCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return "", fmt.Errorf("lint command %q timed out after %s", full, l.timeout)
		}
		return "", ctx.Err()
	}
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return "", fmt.Errorf("failed to run %q: %w", full, err)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Running: %s\n", full)
	sb.WriteString("If the output below indicates errors or problems, fix them.\n")
	sb.WriteString("But if the command fixed all the issues itself, don't take further action.\n\n")
	sb.Write(out)
	return sb.String(), nil
}

// relPath returns fname relative to the linter root for display purposes.
func (l *Linter) relPath(fname string) string {
	if l.root == "" {
		return fname
	}
	rel, err := filepath.Rel(l.root, fname)
	if err != nil {
		return fname
	}
	return rel
}

// renderReport produces the standard report: an instructional header,
// the relative path, and a structural excerpt with every offending line
// marked.
func renderReport(relFname, code string, lineNums []int) string {
	tc := treectx.New(relFname, code, treectx.Options{
		Color:                    false,
		LineNumber:               true,
		ParentContext:            true,
		ChildContext:             false,
		LastLine:                 false,
		Margin:                   0,
		MarkLOIs:                 true,
		HeaderMax:                10,
		ShowTopOfFileParentScope: false,
		LOIPad:                   5,
	})
	tc.AddLinesOfInterest(lineNums)
	tc.AddContext()

	s := ""
	if len(lineNums) > 1 {
		s = "s"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# Fix the error%s, see relevant line%s below marked with █.\n\n", s, s)
	sb.WriteString(relFname)
	sb.WriteString(":\n")
	sb.WriteString(tc.Format())
	return sb.String()
}
