// Package treectx renders bounded, structure-aware excerpts of source files.
// Given a set of lines of interest it selects the surrounding lines worth
// showing: padding around each marked line, the header lines of every
// enclosing scope, and optionally a sample of child scopes, then formats the
// selection with gap markers so the excerpt stays small relative to the file.
package treectx

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"

	"github.com/statcode-ai/editlint/internal/syntax"
)

// Options control how much structure the renderer pulls into the excerpt.
type Options struct {
	// Color renders the line-of-interest marker in red.
	Color bool
	// LineNumber prefixes every rendered line with its one-based number.
	LineNumber bool
	// ParentContext pulls in the header line of every scope enclosing a
	// line of interest.
	ParentContext bool
	// ChildContext pulls in a bounded sample of child scopes below each
	// line of interest.
	ChildContext bool
	// LastLine always shows the final line of the file.
	LastLine bool
	// Margin always shows the first Margin lines of the file.
	Margin int
	// MarkLOIs distinguishes lines of interest with a marker glyph.
	MarkLOIs bool
	// HeaderMax caps how many lines of a multi-line scope header are shown.
	HeaderMax int
	// ShowTopOfFileParentScope shows headers of scopes that start on the
	// first line of the file.
	ShowTopOfFileParentScope bool
	// LOIPad shows this many extra lines above and below each line of
	// interest.
	LOIPad int
}

// DefaultOptions returns the renderer defaults. Callers with a fixed display
// policy override individual fields.
func DefaultOptions() Options {
	return Options{
		ParentContext:            true,
		ChildContext:             true,
		LastLine:                 true,
		Margin:                   3,
		MarkLOIs:                 true,
		HeaderMax:                10,
		ShowTopOfFileParentScope: true,
		LOIPad:                   1,
	}
}

// headerRange is the display range [start, end) for a scope's header lines.
type headerRange struct {
	start int
	end   int
}

// Context accumulates the lines to display for one file.
type Context struct {
	filename string
	opts     Options
	lines    []string
	numLines int

	// Structural indexes built from the syntax tree. All remain empty when
	// no grammar is available, which degrades rendering to plain padded
	// context around the lines of interest.
	scopes   []map[int]struct{} // line -> start lines of nodes covering it
	header   []headerRange      // scope start line -> header display range
	spans    [][]syntax.Span    // line -> spans of nodes starting there
	allSpans []syntax.Span

	linesOfInterest  map[int]struct{}
	showLines        map[int]struct{}
	doneParentScopes map[int]struct{}
}

// New builds a renderer for code. Structural information comes from the
// tree-sitter grammar matching filename's language; files without a grammar
// still render, just without scope-aware context.
func New(filename, code string, opts Options) *Context {
	lines := splitLines(code)
	c := &Context{
		filename:        filename,
		opts:            opts,
		lines:           lines,
		numLines:        len(lines) + 1,
		linesOfInterest: make(map[int]struct{}),
		showLines:       make(map[int]struct{}),
	}

	c.scopes = make([]map[int]struct{}, c.numLines)
	for i := range c.scopes {
		c.scopes[i] = make(map[int]struct{})
	}
	c.spans = make([][]syntax.Span, c.numLines)

	lang := syntax.DetectLanguage(filename)
	if lang != "" && syntax.IsSupported(lang) {
		if spans, err := syntax.NodeSpans(code, lang); err == nil {
			c.indexSpans(spans)
		}
	}
	c.finalizeHeaders()

	return c
}

// AddLinesOfInterest flags zero-based line numbers for marking. Out-of-range
// numbers are ignored.
func (c *Context) AddLinesOfInterest(lineNums []int) {
	for _, n := range lineNums {
		if n >= 0 && n < len(c.lines) {
			c.linesOfInterest[n] = struct{}{}
		}
	}
}

// AddContext computes the set of lines to display: the lines of interest,
// their padding, the headers of their enclosing scopes, optional child
// context, and the configured margins, with small gaps closed.
func (c *Context) AddContext() {
	if len(c.linesOfInterest) == 0 {
		return
	}

	c.doneParentScopes = make(map[int]struct{})
	c.showLines = make(map[int]struct{}, len(c.linesOfInterest))
	for n := range c.linesOfInterest {
		c.showLines[n] = struct{}{}
	}

	if c.opts.LOIPad > 0 {
		for _, line := range sortedKeys(c.linesOfInterest) {
			lo := max(0, line-c.opts.LOIPad)
			hi := min(c.numLines-1, line+c.opts.LOIPad)
			for i := lo; i <= hi; i++ {
				c.showLines[i] = struct{}{}
			}
		}
	}

	if c.opts.LastLine {
		bottom := c.numLines - 2
		if bottom >= 0 {
			c.showLines[bottom] = struct{}{}
			c.addParentScopes(bottom)
		}
	}

	if c.opts.ParentContext {
		for _, i := range sortedKeys(c.linesOfInterest) {
			c.addParentScopes(i)
		}
	}

	if c.opts.ChildContext {
		for _, i := range sortedKeys(c.linesOfInterest) {
			c.addChildContext(i)
		}
	}

	for i := 0; i < c.opts.Margin && i < c.numLines; i++ {
		c.showLines[i] = struct{}{}
	}

	c.closeSmallGaps()
}

// Format renders the selected lines. Hidden stretches collapse to a single
// gap marker; lines of interest carry a █ marker, plain context lines a │.
func (c *Context) Format() string {
	if len(c.showLines) == 0 {
		return ""
	}

	var sb strings.Builder
	_, showFirst := c.showLines[0]
	gap := !showFirst

	for i, line := range c.lines {
		if _, ok := c.showLines[i]; !ok {
			if gap {
				if c.opts.LineNumber {
					sb.WriteString("...⋮...\n")
				} else {
					sb.WriteString("⋮...\n")
				}
				gap = false
			}
			continue
		}

		marker := "│"
		if _, loi := c.linesOfInterest[i]; loi && c.opts.MarkLOIs {
			marker = "█"
			if c.opts.Color {
				marker = color.New(color.FgRed).Sprint(marker)
			}
		}

		if c.opts.LineNumber {
			fmt.Fprintf(&sb, "%3d", i+1)
		}
		sb.WriteString(marker)
		sb.WriteString(line)
		sb.WriteByte('\n')
		gap = true
	}

	return sb.String()
}

// indexSpans builds the per-line scope and span indexes from the node spans.
func (c *Context) indexSpans(spans []syntax.Span) {
	c.allSpans = spans
	for _, sp := range spans {
		if sp.StartLine < 0 || sp.StartLine >= c.numLines {
			continue
		}
		c.spans[sp.StartLine] = append(c.spans[sp.StartLine], sp)
		end := min(sp.EndLine, c.numLines-1)
		for i := sp.StartLine; i <= end; i++ {
			c.scopes[i][sp.StartLine] = struct{}{}
		}
	}
}

// finalizeHeaders picks, for each scope start line, the range of header lines
// to display when that scope is pulled in as parent context. When several
// multi-line nodes start on the same line the smallest one wins, capped at
// HeaderMax lines; otherwise the header is just the start line itself.
func (c *Context) finalizeHeaders() {
	candidates := make([][]syntax.Span, c.numLines)
	for _, sp := range c.allSpans {
		if sp.StartLine >= 0 && sp.StartLine < c.numLines && sp.EndLine > sp.StartLine {
			candidates[sp.StartLine] = append(candidates[sp.StartLine], sp)
		}
	}

	c.header = make([]headerRange, c.numLines)
	for i := range c.header {
		cand := candidates[i]
		if len(cand) > 1 {
			sort.Slice(cand, func(a, b int) bool {
				sa := cand[a].EndLine - cand[a].StartLine
				sb := cand[b].EndLine - cand[b].StartLine
				if sa != sb {
					return sa < sb
				}
				return cand[a].EndLine < cand[b].EndLine
			})
			start, end := cand[0].StartLine, cand[0].EndLine
			if end-start > c.opts.HeaderMax {
				end = start + c.opts.HeaderMax
			}
			c.header[i] = headerRange{start: start, end: end}
		} else {
			c.header[i] = headerRange{start: i, end: i + 1}
		}
	}
}

// addParentScopes shows the header of every scope that covers line i.
func (c *Context) addParentScopes(i int) {
	if i < 0 || i >= c.numLines {
		return
	}
	if _, done := c.doneParentScopes[i]; done {
		return
	}
	c.doneParentScopes[i] = struct{}{}

	for _, lineNum := range sortedKeys(c.scopes[i]) {
		hr := c.header[lineNum]
		if hr.start > 0 || c.opts.ShowTopOfFileParentScope {
			for j := hr.start; j < hr.end && j < c.numLines; j++ {
				c.showLines[j] = struct{}{}
			}
		}
		if c.opts.LastLine {
			c.addParentScopes(c.lastLineOfScope(lineNum))
		}
	}
}

// addChildContext shows the body of the scope starting at line i when it is
// small, or a bounded sample of its largest child scopes otherwise.
func (c *Context) addChildContext(i int) {
	if len(c.spans[i]) == 0 {
		return
	}

	lastLine := c.lastLineOfScope(i)
	size := lastLine - i
	if size < 5 {
		for j := i; j <= lastLine && j < c.numLines; j++ {
			c.showLines[j] = struct{}{}
		}
		return
	}

	var children []syntax.Span
	for _, sp := range c.spans[i] {
		children = append(children, c.containedSpans(sp)...)
	}
	sort.Slice(children, func(a, b int) bool {
		sa := children[a].EndLine - children[a].StartLine
		sb := children[b].EndLine - children[b].StartLine
		if sa != sb {
			return sa > sb // largest first
		}
		if children[a].StartLine != children[b].StartLine {
			return children[a].StartLine < children[b].StartLine
		}
		return children[a].EndLine < children[b].EndLine
	})

	currentlyShowing := len(c.showLines)
	maxToShow := max(min(size/10, 25), 5)

	for _, child := range children {
		if len(c.showLines) > currentlyShowing+maxToShow {
			break
		}
		c.addParentScopes(child.StartLine)
	}
}

// containedSpans returns every span lying within sp, including sp itself.
func (c *Context) containedSpans(sp syntax.Span) []syntax.Span {
	var out []syntax.Span
	for _, s := range c.allSpans {
		if s.StartLine >= sp.StartLine && s.EndLine <= sp.EndLine {
			out = append(out, s)
		}
	}
	return out
}

// lastLineOfScope returns the last line of the largest node starting at i.
func (c *Context) lastLineOfScope(i int) int {
	last := i
	for _, sp := range c.spans[i] {
		if sp.EndLine > last {
			last = sp.EndLine
		}
	}
	return last
}

// closeSmallGaps fills single-line holes between shown lines and pulls in a
// trailing blank line after any shown non-blank line, so the excerpt does not
// fragment into tiny pieces.
func (c *Context) closeSmallGaps() {
	closed := make(map[int]struct{}, len(c.showLines))
	for n := range c.showLines {
		closed[n] = struct{}{}
	}

	shown := sortedKeys(c.showLines)
	for idx := 0; idx+1 < len(shown); idx++ {
		if shown[idx+1]-shown[idx] == 2 {
			closed[shown[idx]+1] = struct{}{}
		}
	}

	for i := range c.lines {
		if _, ok := closed[i]; !ok {
			continue
		}
		if strings.TrimSpace(c.lines[i]) != "" && i < c.numLines-2 &&
			i+1 < len(c.lines) && strings.TrimSpace(c.lines[i+1]) == "" {
			closed[i+1] = struct{}{}
		}
	}

	c.showLines = closed
}

// splitLines splits source text into lines, dropping the trailing empty
// entry a final newline would otherwise produce.
func splitLines(code string) []string {
	if code == "" {
		return nil
	}
	lines := strings.Split(code, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func sortedKeys(set map[int]struct{}) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
