package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"termreel/internal/clock"
	"termreel/internal/player"
	"termreel/internal/screen"
	"termreel/internal/script"
)

const defaultCols = 80

type renderFlags struct {
	cols  int
	color bool
}

func newRenderCmd(g *globalFlags) *cobra.Command {
	f := &renderFlags{}
	cmd := &cobra.Command{
		Use:   "render [script|url]",
		Short: "Print the final screen of a script without animating it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(cmd.Context(), optionalArg(args), g.scriptOptions())
			if err != nil {
				return err
			}
			return renderScript(cmd.Context(), cmd.OutOrStdout(), src.script, f.cols, !f.color, g.playerOptions())
		},
	}
	cmd.Flags().IntVar(&f.cols, "cols", defaultCols, "terminal width used to size progress bars")
	cmd.Flags().BoolVar(&f.color, "color", false, "keep colors and links in the output")
	return cmd
}

// renderScript plays s on an instant clock and writes the final screen.
func renderScript(ctx context.Context, w io.Writer, s *script.Script, cols int, plain bool, opts []player.Option) error {
	buf := screen.NewBuffer(cols)
	clk := &clock.Instant{}
	p := player.New(buf, append(opts, player.WithClock(clk))...)
	if err := p.Play(ctx, s); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, strings.Join(buf.Lines(screen.ViewOptions{Plain: plain}), "\n"))
	return err
}
