package script

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind selects how the player renders a line.
type Kind string

const (
	KindInput      Kind = "input"
	KindOutput     Kind = "output"
	KindProgress   Kind = "progress"
	KindPercentage Kind = "percentage-output"
	KindDisappear  Kind = "disappearing-input"
)

const (
	DefaultPrompt      = "▲"
	DefaultCharDelay   = 50
	DefaultDeleteDelay = 50

	// Progress and percentage lines wait this long when no typeDelay is set.
	DefaultAnimationTypeDelay = 200
	DefaultProgressDuration   = 2000
	DefaultPercentageDuration = 2000
)

// Run is a piece of text with optional color and link.
type Run struct {
	Text        string `yaml:"text"`
	Color       string `yaml:"color,omitempty"`
	Href        string `yaml:"href,omitempty" validate:"omitempty,uri"`
	DeleteDelay int    `yaml:"deleteDelay,omitempty" validate:"gte=0"`
}

// Content is one logical line made of runs.
type Content []Run

// Text joins the run texts.
func (c Content) Text() string {
	var b strings.Builder
	for _, r := range c {
		b.WriteString(r.Text)
	}
	return b.String()
}

type PercentageSpec struct {
	Start    float64 `yaml:"start"`
	End      float64 `yaml:"end"`
	Duration int     `yaml:"duration,omitempty" validate:"gte=0"`
}

// Line is one scripted terminal event. Delays are in milliseconds.
type Line struct {
	Kind             Kind             `yaml:"kind" validate:"required,oneof=input output progress percentage-output disappearing-input"`
	Content          []Content        `yaml:"content" validate:"dive,dive"`
	Prompt           string           `yaml:"prompt,omitempty"`
	TypeDelay        int              `yaml:"typeDelay,omitempty" validate:"gte=0"`
	CharDelay        int              `yaml:"charDelay,omitempty" validate:"gte=0"`
	DeleteDelay      int              `yaml:"deleteDelay,omitempty" validate:"gte=0"`
	ProgressDuration int              `yaml:"progressDuration,omitempty" validate:"gte=0"`
	FinishDelay      int              `yaml:"finishDelay,omitempty" validate:"gte=0"`
	Percentages      []PercentageSpec `yaml:"percentages,omitempty" validate:"omitempty,max=3,dive"`
}

// Script is an ordered, immutable list of lines.
type Script struct {
	Title string `yaml:"title,omitempty"`
	Lines []Line `yaml:"lines" validate:"required,min=1,dive"`
}

func (l Line) PromptText() string {
	if l.Prompt == "" {
		return DefaultPrompt
	}
	return l.Prompt
}

func (l Line) CharDelayMs() int {
	if l.CharDelay == 0 {
		return DefaultCharDelay
	}
	return l.CharDelay
}

func (l Line) DeleteDelayMs() int {
	if l.DeleteDelay == 0 {
		return DefaultDeleteDelay
	}
	return l.DeleteDelay
}

// AnimationTypeDelayMs is the think time used by progress and percentage lines.
func (l Line) AnimationTypeDelayMs() int {
	if l.TypeDelay == 0 {
		return DefaultAnimationTypeDelay
	}
	return l.TypeDelay
}

func (l Line) ProgressDurationMs() int {
	if l.ProgressDuration == 0 {
		return DefaultProgressDuration
	}
	return l.ProgressDuration
}

func (p PercentageSpec) DurationMs() int {
	if p.Duration == 0 {
		return DefaultPercentageDuration
	}
	return p.Duration
}

// UnmarshalYAML accepts a bare string as a run with no styling.
func (r *Run) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		r.Text = node.Value
		return nil
	case yaml.MappingNode:
		type plain Run
		var p plain
		if err := node.Decode(&p); err != nil {
			return err
		}
		*r = Run(p)
		return nil
	}
	return fmt.Errorf("line %d: run must be a string or a mapping", node.Line)
}

// UnmarshalYAML accepts a string, a single run or a list of runs.
func (c *Content) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode, yaml.MappingNode:
		var r Run
		if err := node.Decode(&r); err != nil {
			return err
		}
		*c = Content{r}
		return nil
	case yaml.SequenceNode:
		runs := make([]Run, 0, len(node.Content))
		for _, n := range node.Content {
			var r Run
			if err := n.Decode(&r); err != nil {
				return err
			}
			runs = append(runs, r)
		}
		*c = runs
		return nil
	}
	return fmt.Errorf("line %d: unsupported content", node.Line)
}

// UnmarshalYAML accepts both "kind" and "type" for the line kind, and a
// content that is either a single value or a list of values.
func (l *Line) UnmarshalYAML(node *yaml.Node) error {
	var raw struct {
		Kind             Kind             `yaml:"kind"`
		Type             Kind             `yaml:"type"`
		Content          yaml.Node        `yaml:"content"`
		Prompt           string           `yaml:"prompt"`
		TypeDelay        int              `yaml:"typeDelay"`
		CharDelay        int              `yaml:"charDelay"`
		DeleteDelay      int              `yaml:"deleteDelay"`
		ProgressDuration int              `yaml:"progressDuration"`
		FinishDelay      int              `yaml:"finishDelay"`
		Percentages      []PercentageSpec `yaml:"percentages"`
	}
	if err := node.Decode(&raw); err != nil {
		return err
	}

	l.Kind = raw.Kind
	if l.Kind == "" {
		l.Kind = raw.Type
	}
	l.Prompt = raw.Prompt
	l.TypeDelay = raw.TypeDelay
	l.CharDelay = raw.CharDelay
	l.DeleteDelay = raw.DeleteDelay
	l.ProgressDuration = raw.ProgressDuration
	l.FinishDelay = raw.FinishDelay
	l.Percentages = raw.Percentages

	contents, err := decodeContents(&raw.Content)
	if err != nil {
		return err
	}
	l.Content = contents
	return nil
}

func decodeContents(node *yaml.Node) ([]Content, error) {
	switch node.Kind {
	case 0:
		return nil, nil
	case yaml.ScalarNode, yaml.MappingNode:
		var c Content
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		return []Content{c}, nil
	case yaml.SequenceNode:
		out := make([]Content, 0, len(node.Content))
		for _, n := range node.Content {
			var c Content
			if err := n.Decode(&c); err != nil {
				return nil, err
			}
			out = append(out, c)
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: unsupported content", node.Line)
}
