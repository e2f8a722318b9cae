// Package render turns script content into styled terminal text.
package render

import (
	"strings"
	"unicode/utf8"

	"termreel/internal/script"
)

// Segment is the visible part of one run.
type Segment struct {
	Text  string
	Color string
	Href  string
}

// Len is the number of characters in the joined text of c.
func Len(c script.Content) int {
	n := 0
	for _, r := range c {
		n += utf8.RuneCountInString(r.Text)
	}
	return n
}

// Reveal returns the segments visible once n characters of c have been
// typed. Runs consume the budget in order; a run that is reached but not
// finished contributes a prefix, and runs past the budget contribute nothing.
func Reveal(c script.Content, n int) []Segment {
	if n <= 0 {
		return nil
	}
	out := make([]Segment, 0, len(c))
	for _, r := range c {
		if n <= 0 {
			break
		}
		text := r.Text
		if count := utf8.RuneCountInString(text); count > n {
			text = prefix(text, n)
			n = 0
		} else {
			n -= count
		}
		out = append(out, Segment{Text: text, Color: r.Color, Href: r.Href})
	}
	return out
}

// All returns every run of c fully revealed.
func All(c script.Content) []Segment {
	return Reveal(c, Len(c))
}

// PlainText joins the segment texts without styling.
func PlainText(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.Text)
	}
	return b.String()
}

func prefix(s string, n int) string {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}
