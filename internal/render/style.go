package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Options controls how segments are turned into terminal text.
type Options struct {
	// Plain drops colors and hyperlinks.
	Plain bool
}

var linkStyle = lipgloss.NewStyle().Underline(true)

// Style renders segments as a single string. Colored segments get a
// foreground color, linked segments become OSC 8 hyperlinks.
func Style(segs []Segment, opts Options) string {
	var b strings.Builder
	for _, s := range segs {
		if s.Text == "" {
			continue
		}
		if opts.Plain {
			b.WriteString(s.Text)
			continue
		}
		b.WriteString(styleSegment(s))
	}
	return b.String()
}

func styleSegment(s Segment) string {
	style := lipgloss.NewStyle()
	if c := ResolveColor(s.Color); c != "" {
		style = style.Foreground(lipgloss.Color(c))
	}
	if s.Href == "" {
		if s.Color == "" {
			return s.Text
		}
		return style.Render(s.Text)
	}
	style = style.Inherit(linkStyle)
	return ansi.SetHyperlink(s.Href) + style.Render(s.Text) + ansi.ResetHyperlink()
}
