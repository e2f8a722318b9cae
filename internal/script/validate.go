package script

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/validator/v10"

	"termreel/internal/fields"
)

var ErrInvalid = errors.New("invalid script")

// Options tunes validation.
type Options struct {
	// Lenient reports percentage lines whose fields cannot be found as
	// warnings instead of errors. Such lines play unanimated.
	Lenient bool
	Logger  *slog.Logger
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterStructValidation(lineRules, Line{})
}

// lineRules checks the constraints that depend on the line kind.
func lineRules(sl validator.StructLevel) {
	l := sl.Current().Interface().(Line)

	if l.Kind != KindPercentage {
		if len(l.Percentages) > 0 {
			sl.ReportError(l.Percentages, "Percentages", "percentages", "percentageonly", string(l.Kind))
		}
		return
	}
	if len(l.Percentages) == 0 {
		sl.ReportError(l.Percentages, "Percentages", "percentages", "required", "")
	}
	if len(l.Content) != 1 {
		sl.ReportError(l.Content, "Content", "content", "single", "")
	}
}

// Validate checks s and returns an error wrapping ErrInvalid that lists
// every problem found.
func Validate(s *Script, opts Options) error {
	var problems []string

	if err := validate.Struct(s); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalid, err)
		}
		for _, fe := range verrs {
			problems = append(problems, describe(fe))
		}
	}

	for i, l := range s.Lines {
		if l.Kind != KindPercentage || len(l.Content) != 1 || len(l.Percentages) == 0 {
			continue
		}
		text := fields.StripDone(l.Content[0].Text())
		if _, err := fields.Locate(text, len(l.Percentages)); err != nil {
			if opts.Lenient {
				logger(opts).Warn("percentage line will not animate", slog.Int("line", i+1), slog.Any("error", err))
				continue
			}
			problems = append(problems, fmt.Sprintf("line %d: %v", i+1, err))
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w:\n  %s", ErrInvalid, strings.Join(problems, "\n  "))
}

func logger(opts Options) *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return slog.Default()
}

// describe turns a validator error into a one-line message, e.g.
// "Lines[3].CharDelay: must be gte 0".
func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Script.")
	switch fe.Tag() {
	case "required":
		return field + ": required"
	case "oneof":
		return fmt.Sprintf("%s: %q is not one of %s", field, fe.Value(), fe.Param())
	case "percentageonly":
		return fmt.Sprintf("%s: only percentage-output lines take percentages (kind %s)", field, fe.Param())
	case "single":
		return field + ": percentage-output lines take exactly one content value"
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s: must be %s %s", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: must be %s", field, fe.Tag())
}
