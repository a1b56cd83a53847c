// Package chart renders top-word results as horizontal text bar charts.
package chart

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dtnitsch/wordfreq/pkg/mapreduce"
)

const (
	DefaultWidth = 50
	barRune      = "█"
)

// Renderer is the terminal sink for a top-N result.
type Renderer interface {
	Render(words []mapreduce.WordCount) error
}

// Discard accepts every result and draws nothing.
var Discard Renderer = discard{}

type discard struct{}

func (discard) Render([]mapreduce.WordCount) error { return nil }

// BarChart draws one labelled bar per word, longest bar at the given width.
type BarChart struct {
	w     io.Writer
	Title string
	Width int
}

func NewBarChart(w io.Writer, title string, width int) *BarChart {
	if width <= 0 {
		width = DefaultWidth
	}
	return &BarChart{w: w, Title: title, Width: width}
}

// Render writes the chart rows in the order given.
func (b *BarChart) Render(words []mapreduce.WordCount) error {
	var sb strings.Builder
	if b.Title != "" {
		sb.WriteString(b.Title)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("=", utf8.RuneCountInString(b.Title)))
		sb.WriteString("\n")
	}

	if len(words) == 0 {
		sb.WriteString("(no words to display)\n")
		_, err := io.WriteString(b.w, sb.String())
		return err
	}

	labelWidth, maxCount := 0, 0
	for _, wc := range words {
		labelWidth = max(labelWidth, utf8.RuneCountInString(wc.Word))
		maxCount = max(maxCount, wc.Count)
	}

	for _, wc := range words {
		pad := strings.Repeat(" ", labelWidth-utf8.RuneCountInString(wc.Word))
		fmt.Fprintf(&sb, "%s%s | %s %d\n", wc.Word, pad, strings.Repeat(barRune, barLength(wc.Count, maxCount, b.Width)), wc.Count)
	}

	_, err := io.WriteString(b.w, sb.String())
	return err
}

// barLength scales count to width; any positive count gets at least one cell.
func barLength(count, maxCount, width int) int {
	if count <= 0 || maxCount <= 0 {
		return 0
	}
	return max(count*width/maxCount, 1)
}
