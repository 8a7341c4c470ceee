// Package console renders command output for terminals: status banners,
// aligned tables and width-aware truncation. Colors are dropped
// automatically when the writer is not a terminal.
package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Tone picks the banner color.
type Tone int

const (
	ToneInfo Tone = iota
	ToneSuccess
	ToneWarning
	ToneError
)

// ToneFor maps a verdict such as "PASS", "FAIL" or "PASS (review needed)"
// to a tone.
func ToneFor(verdict string) Tone {
	v := strings.ToUpper(verdict)
	switch {
	case strings.Contains(v, "FAIL"), strings.Contains(v, "INVALID"), strings.Contains(v, "ERROR"):
		return ToneError
	case strings.Contains(v, "REVIEW"), strings.Contains(v, "WARN"), strings.Contains(v, "TOO_"):
		return ToneWarning
	case strings.HasPrefix(v, "PASS"), strings.HasPrefix(v, "VALID"), strings.HasPrefix(v, "OK"):
		return ToneSuccess
	default:
		return ToneInfo
	}
}

// Printer writes styled text to w.
type Printer struct {
	w       io.Writer
	box     lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
	tones   map[Tone]lipgloss.Style
}

// New builds a Printer whose renderer inspects w for color support.
func New(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w: w,
		box: r.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			Padding(0, 1),
		heading: r.NewStyle().Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		tones: map[Tone]lipgloss.Style{
			ToneInfo:    r.NewStyle().Foreground(lipgloss.Color("12")),
			ToneSuccess: r.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
			ToneWarning: r.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
			ToneError:   r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		},
	}
}

// Banner prints a boxed "VERDICT  title" line.
func (p *Printer) Banner(verdict, title string) {
	tone := ToneFor(verdict)
	label := p.tones[tone].Render(verdict)
	box := p.box.BorderForeground(p.tones[tone].GetForeground())
	fmt.Fprintln(p.w, box.Render(label+"  "+title))
}

// Heading prints a bold section title.
func (p *Printer) Heading(title string) {
	fmt.Fprintln(p.w, p.heading.Render(title))
}

// Status renders a check status with its tone.
func (p *Printer) Status(status string) string {
	return p.tones[ToneFor(status)].Render(status)
}

// Line prints a plain line.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Muted prints a dimmed line.
func (p *Printer) Muted(format string, args ...any) {
	fmt.Fprintln(p.w, p.muted.Render(fmt.Sprintf(format, args...)))
}

// Table prints rows as left-aligned columns. Cells wider than maxCell are
// truncated; a non-positive maxCell disables truncation.
func (p *Printer) Table(headers []string, rows [][]string, maxCell int) {
	cells := make([][]string, 0, len(rows)+1)
	cells = append(cells, headers)
	for _, row := range rows {
		cells = append(cells, row)
	}

	widths := make([]int, len(headers))
	for _, row := range cells {
		for i := range widths {
			if i >= len(row) {
				continue
			}
			if maxCell > 0 {
				row[i] = Truncate(row[i], maxCell)
			}
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	for n, row := range cells {
		parts := make([]string, len(widths))
		for i, w := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i == len(widths)-1 {
				parts[i] = cell
				continue
			}
			parts[i] = runewidth.FillRight(cell, w)
		}
		line := strings.TrimRight(strings.Join(parts, "  "), " ")
		if n == 0 {
			line = p.heading.Render(line)
		}
		fmt.Fprintln(p.w, line)
	}
}

// Truncate shortens s to at most width terminal columns, ending with an
// ellipsis when anything was cut.
func Truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
