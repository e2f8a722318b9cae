package render

import "strings"

// Palette maps the named colors scripts may reference.
var Palette = map[string]string{
	"black":  "#002b36",
	"blue":   "#268bd2",
	"cyan":   "#2aa198",
	"green":  "#859900",
	"purple": "#6c71c4",
	"red":    "#dc322f",
	"white":  "#fdf6e3",
	"yellow": "#b58900",
}

// ResolveColor returns the palette value for a named color, or the color
// itself when it is not a palette name.
func ResolveColor(color string) string {
	if color == "" {
		return ""
	}
	if v, ok := Palette[strings.ToLower(color)]; ok {
		return v
	}
	return color
}
