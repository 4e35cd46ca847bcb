package diag

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	styleError     = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarning   = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleNote      = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	styleGutter    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	stylePrimary   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleSecondary = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
)

// Formatter renders diagnostics in a Rust-style format with source snippets.
type Formatter struct {
	out         io.Writer
	color       bool
	sourceCache map[string]string // source text keyed by filename
}

// NewFormatter creates a formatter writing colored output to stderr.
func NewFormatter() *Formatter {
	return &Formatter{
		out:         os.Stderr,
		color:       true,
		sourceCache: make(map[string]string),
	}
}

// NewPlainFormatter creates a formatter without color, writing to w.
func NewPlainFormatter(w io.Writer) *Formatter {
	return &Formatter{
		out:         w,
		color:       false,
		sourceCache: make(map[string]string),
	}
}

// AddSource registers source text for a filename so snippets can be rendered
// without touching the filesystem.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

func (f *Formatter) loadSource(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("no filename")
	}
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	f.sourceCache[filename] = string(data)
	return string(data), nil
}

func (f *Formatter) paint(style lipgloss.Style, s string) string {
	if !f.color {
		return s
	}
	return style.Render(s)
}

// Format renders a single diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	spans := f.collectSpans(d)
	if len(spans) == 0 {
		f.formatSimple(d)
		return
	}

	spansByFile := make(map[string][]LabeledSpan)
	for _, span := range spans {
		filename := span.Span.Filename
		if filename == "" {
			filename = "<unknown>"
		}
		spansByFile[filename] = append(spansByFile[filename], span)
	}

	f.printHeader(d)

	for filename, fileSpans := range spansByFile {
		src, err := f.loadSource(filename)
		if err != nil {
			f.printLocation(d)
			break
		}
		f.printFileSpans(filename, src, fileSpans)
	}

	f.printHelp(d)
	fmt.Fprintln(f.out)
}

// collectSpans gathers all spans to display, preferring labeled spans.
func (f *Formatter) collectSpans(d Diagnostic) []LabeledSpan {
	if len(d.LabeledSpans) > 0 {
		return d.LabeledSpans
	}
	if d.Span.IsValid() {
		return []LabeledSpan{{Span: d.Span, Style: "primary"}}
	}
	return nil
}

func (f *Formatter) severityStyle(sev Severity) lipgloss.Style {
	switch sev {
	case SeverityWarning:
		return styleWarning
	case SeverityNote:
		return styleNote
	default:
		return styleError
	}
}

// printHeader prints "error[CODE]: message".
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = "error"
	}

	head := severity
	if d.Code != "" {
		head = fmt.Sprintf("%s[%s]", severity, d.Code)
	}
	fmt.Fprintf(f.out, "%s: %s\n", f.paint(f.severityStyle(d.Severity), head), d.Message)
}

func (f *Formatter) printLocation(d Diagnostic) {
	if d.Span.IsValid() {
		fmt.Fprintf(f.out, "  %s %s\n", f.paint(styleGutter, "-->"), d.Span.String())
	}
}

// printFileSpans prints source lines with underlines for every span.
func (f *Formatter) printFileSpans(filename string, src string, spans []LabeledSpan) {
	sort.Slice(spans, func(i, j int) bool {
		if spans[i].Span.Line != spans[j].Span.Line {
			return spans[i].Span.Line < spans[j].Span.Line
		}
		return spans[i].Span.Column < spans[j].Span.Column
	})

	lines := strings.Split(src, "\n")
	maxLine := len(lines)

	spansByLine := make(map[int][]LabeledSpan)
	for _, span := range spans {
		line := span.Span.Line
		if line > 0 && line <= maxLine {
			spansByLine[line] = append(spansByLine[line], span)
		}
	}

	lineNumbers := make([]int, 0, len(spansByLine))
	for line := range spansByLine {
		lineNumbers = append(lineNumbers, line)
	}
	sort.Ints(lineNumbers)
	if len(lineNumbers) == 0 {
		return
	}

	lineNumWidth := len(fmt.Sprintf("%d", lineNumbers[len(lineNumbers)-1]))
	gutter := strings.Repeat(" ", lineNumWidth)

	first := spans[0].Span
	fmt.Fprintf(f.out, "  %s %s:%d:%d\n", f.paint(styleGutter, "-->"), filename, first.Line, first.Column)
	fmt.Fprintf(f.out, " %s %s\n", gutter, f.paint(styleGutter, "|"))

	prev := 0
	for _, lineNum := range lineNumbers {
		if prev != 0 && lineNum > prev+1 {
			fmt.Fprintf(f.out, " %s\n", f.paint(styleGutter, "..."))
		}
		prev = lineNum

		lineContent := lines[lineNum-1]
		fmt.Fprintf(f.out, " %s %s %s\n",
			f.paint(styleGutter, fmt.Sprintf("%*d", lineNumWidth, lineNum)),
			f.paint(styleGutter, "|"),
			lineContent)
		f.printUnderlines(gutter, lineContent, spansByLine[lineNum])
	}

	fmt.Fprintf(f.out, " %s %s\n", gutter, f.paint(styleGutter, "|"))
}

// printUnderlines prints ^ markers for primary spans and ~ for secondary
// ones, followed by their labels.
func (f *Formatter) printUnderlines(gutter, lineContent string, spans []LabeledSpan) {
	underline := make([]byte, len(lineContent))
	for i := range underline {
		underline[i] = ' '
	}

	mark := func(span LabeledSpan, ch byte) {
		start := span.Span.Column - 1
		if start < 0 {
			start = 0
		}
		width := span.Span.End - span.Span.Start
		if width < 1 {
			width = 1
		}
		for i := start; i < start+width && i < len(underline); i++ {
			if ch == '^' || underline[i] == ' ' {
				underline[i] = ch
			}
		}
	}

	for _, span := range spans {
		if span.Style == "primary" {
			mark(span, '^')
		}
	}
	for _, span := range spans {
		if span.Style == "secondary" {
			mark(span, '~')
		}
	}

	marks := strings.TrimRight(string(underline), " ")
	if marks == "" {
		return
	}

	var primaryLabel string
	var secondaryLabels []string
	for _, span := range spans {
		if span.Label == "" {
			continue
		}
		if span.Style == "primary" {
			primaryLabel = span.Label
		} else {
			secondaryLabels = append(secondaryLabels, span.Label)
		}
	}

	painted := strings.ReplaceAll(marks, "^", f.paint(stylePrimary, "^"))
	painted = strings.ReplaceAll(painted, "~", f.paint(styleSecondary, "~"))

	fmt.Fprintf(f.out, " %s %s %s", gutter, f.paint(styleGutter, "|"), painted)
	if primaryLabel != "" {
		fmt.Fprintf(f.out, " %s", f.paint(stylePrimary, primaryLabel))
	}
	fmt.Fprintln(f.out)

	for _, label := range secondaryLabels {
		fmt.Fprintf(f.out, " %s %s %s\n", gutter, f.paint(styleGutter, "|"), f.paint(styleSecondary, label))
	}
}

// printHelp prints notes and help/suggestion text.
func (f *Formatter) printHelp(d Diagnostic) {
	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  %s %s: %s\n", f.paint(styleGutter, "="), f.paint(styleNote, "note"), note)
	}
	if d.Suggestion != "" {
		fmt.Fprintf(f.out, "%s: %s\n", f.paint(styleNote, "help"), d.Suggestion)
	}
	if d.Help != "" {
		fmt.Fprintf(f.out, "%s: %s\n", f.paint(styleNote, "help"), d.Help)
	}
}

// formatSimple renders a diagnostic without source snippets.
func (f *Formatter) formatSimple(d Diagnostic) {
	f.printHeader(d)
	f.printLocation(d)
	f.printHelp(d)
	fmt.Fprintln(f.out)
}
