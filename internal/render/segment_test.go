package render

import (
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"termreel/internal/script"
)

func banner() script.Content {
	return script.Content{
		{Text: "I'm a ", Color: "blue"},
		{Text: "café", Color: "purple"},
		{Text: " at ", Color: "blue"},
		{Text: "AKQA", Color: "#ff00ff", Href: "https://www.akqa.com"},
	}
}

func TestReveal_PrefixInRunOrder(t *testing.T) {
	c := banner()
	full := []rune(c.Text())
	total := Len(c)
	require.Equal(t, len(full), total)

	for k := 0; k <= total+2; k++ {
		segs := Reveal(c, k)
		want := k
		if want > total {
			want = total
		}
		assert.Equal(t, string(full[:want]), PlainText(segs), "k=%d", k)

		// no run contributes more than its own text, and runs stay in order
		require.LessOrEqual(t, len(segs), len(c))
		for i, s := range segs {
			assert.Equal(t, c[i].Color, s.Color)
			assert.True(t, len(s.Text) <= len(c[i].Text))
			assert.Equal(t, c[i].Text[:len(s.Text)], s.Text)
		}
	}
}

func TestReveal_Idempotent(t *testing.T) {
	c := banner()
	assert.Equal(t, Reveal(c, 9), Reveal(c, 9))
	assert.Nil(t, Reveal(c, 0))
	assert.Equal(t, Reveal(c, Len(c)), All(c))
}

func TestReveal_MultibyteBoundary(t *testing.T) {
	c := script.Content{{Text: "▲ é"}}
	assert.Equal(t, "▲", PlainText(Reveal(c, 1)))
	assert.Equal(t, "▲ é", PlainText(Reveal(c, 3)))
}

func TestResolveColor(t *testing.T) {
	assert.Equal(t, "#859900", ResolveColor("green"))
	assert.Equal(t, "#859900", ResolveColor("Green"))
	assert.Equal(t, "#123456", ResolveColor("#123456"))
	assert.Equal(t, "", ResolveColor(""))
}

func TestStyle_PlainAndLinks(t *testing.T) {
	segs := All(banner())

	assert.Equal(t, "I'm a café at AKQA", Style(segs, Options{Plain: true}))

	styled := Style(segs, Options{})
	assert.Contains(t, styled, "https://www.akqa.com")
	assert.Equal(t, "I'm a café at AKQA", ansi.Strip(styled))
}
