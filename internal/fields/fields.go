// Package fields locates and rewrites the numeric fields embedded in
// percentage-output lines such as
//
//	Receiving objects:  42% (7470/17788), 11.38 MiB | 5.77 MiB/s
//
// Fields are bound positionally: the first declared spec is the percent
// field, the second the "(n/total)" ratio and the third the size before a
// byte unit. A trailing "<value> <unit>/s" speed token is picked up on its
// own and does not need a spec.
package fields

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DoneSuffix is stripped before animating and restored on the last frame.
const DoneSuffix = ", done."

// MaxDeclared is the number of positional patterns.
const MaxDeclared = 3

const unit = `(?:[KMGT]i?B|B)`

var (
	ErrPatternNotFound = errors.New("percentage field not found in text")
	ErrTooManyFields   = errors.New("at most 3 percentage fields are supported")

	positional = []*regexp.Regexp{
		regexp.MustCompile(`(\d+)%`),
		regexp.MustCompile(`\((\d+)/\d+\)`),
		regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*` + unit + `(?:[^/\w]|$)`),
	}
	speedPattern = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*` + unit + `/s\b`)
)

// Field is one numeric value inside a line of text. Offset and Length are
// byte positions of the digits in the text the field was located in.
type Field struct {
	Offset  int
	Length  int
	Decimal bool
	Speed   bool
}

// StripDone removes a trailing ", done." from text.
func StripDone(text string) string {
	return strings.TrimSuffix(text, DoneSuffix)
}

// Locate finds the first n positional fields in text and, when present, the
// speed field, which is always returned last. Text should already have been
// passed through StripDone.
func Locate(text string, n int) ([]Field, error) {
	if n > MaxDeclared {
		return nil, fmt.Errorf("%w: got %d", ErrTooManyFields, n)
	}

	out := make([]Field, 0, n+1)
	for i := 0; i < n; i++ {
		loc := positional[i].FindStringSubmatchIndex(text)
		if loc == nil {
			return nil, fmt.Errorf("%w: field %d (%s) in %q", ErrPatternNotFound, i+1, positional[i], text)
		}
		value := text[loc[2]:loc[3]]
		out = append(out, Field{
			Offset:  loc[2],
			Length:  loc[3] - loc[2],
			Decimal: strings.Contains(value, "."),
		})
	}

	if loc := speedPattern.FindStringSubmatchIndex(text); loc != nil {
		out = append(out, Field{
			Offset:  loc[2],
			Length:  loc[3] - loc[2],
			Decimal: true,
			Speed:   true,
		})
	}
	return out, nil
}

// Format renders value the way the field was written: decimals keep two
// places and are zero padded, integers are floored and space padded.
func Format(value float64, f Field) string {
	if f.Decimal || f.Speed {
		s := strconv.FormatFloat(value, 'f', 2, 64)
		return padLeft(s, f.Length, '0')
	}
	s := strconv.FormatInt(int64(math.Floor(value)), 10)
	return padLeft(s, f.Length, ' ')
}

// Substitute replaces every field with its formatted value. Fields are
// rewritten from the last offset to the first so earlier offsets stay valid.
func Substitute(text string, fs []Field, values []float64) string {
	order := make([]int, len(fs))
	for i := range order {
		order[i] = i
	}
	// insertion sort by descending offset; there are at most four fields
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && fs[order[j]].Offset > fs[order[j-1]].Offset; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	for _, i := range order {
		f := fs[i]
		text = text[:f.Offset] + Format(values[i], f) + text[f.Offset+f.Length:]
	}
	return text
}

func padLeft(s string, width int, pad byte) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(string(pad), width-len(s)) + s
}
