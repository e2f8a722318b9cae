package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"termreel/internal/logging"
	"termreel/internal/messages"
	"termreel/internal/player"
	"termreel/internal/screen"
	"termreel/internal/script"
	"termreel/internal/tui"
)

type playFlags struct {
	watch        bool
	exitOnFinish bool
	noAltScreen  bool
}

func newPlayCmd(g *globalFlags) *cobra.Command {
	f := &playFlags{}
	cmd := &cobra.Command{
		Use:   "play [script|url]",
		Short: "Play a script in an interactive terminal window",
		Long: `Play a script in an interactive terminal window. Without an argument
the built-in demo is played. When stdout is not a terminal the final screen
is printed instead, as with render.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := loadSource(cmd.Context(), optionalArg(args), g.scriptOptions())
			if err != nil {
				return err
			}
			if !isTerminal(os.Stdout) {
				logging.L().Debug("stdout is not a terminal, rendering instead")
				return renderScript(cmd.Context(), cmd.OutOrStdout(), src.script, defaultCols, true, g.playerOptions())
			}
			// the terminal belongs to the window from here on
			logging.Init(g.logOptions(cmd, true))
			return play(cmd.Context(), g, f, src)
		},
	}
	cmd.Flags().BoolVarP(&f.watch, "watch", "w", false, "restart playback whenever the script file changes")
	cmd.Flags().BoolVar(&f.exitOnFinish, "exit-on-finish", false, "close the window when the script has played")
	cmd.Flags().BoolVar(&f.noAltScreen, "no-alt-screen", false, "draw inline instead of on the alternate screen")
	return cmd
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// play runs the window and, with --watch, the file watcher. Quitting the
// window stops the watcher; a failing watcher closes the window.
func play(parent context.Context, g *globalFlags, f *playFlags, src source) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	grp, ctx := errgroup.WithContext(ctx)

	log := logging.WithComponent("tui")
	buf := screen.NewBuffer(tui.WindowWidth)
	p := player.New(buf, g.playerOptions()...)
	model := tui.NewRootModel(tui.Config{
		Context:      ctx,
		Script:       src.script,
		Buffer:       buf,
		Player:       p,
		ExitOnFinish: f.exitOnFinish,
		Logger:       log,
	})

	opts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithReportFocus()}
	if !f.noAltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	prog := tea.NewProgram(model, opts...)

	grp.Go(func() error {
		defer cancel()
		_, err := prog.Run()
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	})

	if f.watch && src.path != "" {
		grp.Go(func() error {
			return script.Watch(ctx, src.path, g.scriptOptions(), func(s *script.Script) {
				prog.Send(messages.ReloadMsg{Script: s})
			})
		})
	} else if f.watch {
		log.Warn("--watch needs a local script file", slog.String("source", "demo or url"))
	}

	return grp.Wait()
}
