package main

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"

	"github.com/spf13/cobra"

	"termreel/internal/demo"
	"termreel/internal/downloader"
	"termreel/internal/logging"
	"termreel/internal/player"
	"termreel/internal/script"
)

type globalFlags struct {
	logLevel  string
	logFormat string
	logFile   string
	lenient   bool
	seed      uint64
}

func (g *globalFlags) logOptions(cmd *cobra.Command, quiet bool) logging.Options {
	return logging.Options{
		Level:   g.logLevel,
		Format:  g.logFormat,
		File:    g.logFile,
		Quiet:   quiet,
		Console: cmd.ErrOrStderr(),
	}
}

func (g *globalFlags) scriptOptions() script.Options {
	return script.Options{Lenient: g.lenient, Logger: logging.WithComponent("script")}
}

// playerOptions seeds the simulated network speed when --seed is set.
func (g *globalFlags) playerOptions() []player.Option {
	opts := []player.Option{player.WithLogger(logging.WithComponent("player"))}
	if g.seed != 0 {
		opts = append(opts, player.WithRand(rand.New(rand.NewPCG(g.seed, g.seed))))
	}
	return opts
}

func newRootCmd() *cobra.Command {
	env := logging.FromEnv()
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "termreel",
		Short: "Play scripted terminal sessions",
		Long: `termreel replays a scripted terminal session: typed commands, printed
output, progress bars and counters that climb to their final values.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Init(g.logOptions(cmd, false))
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&g.logLevel, "log-level", env.Level, "log level: debug, info, warn or error")
	pf.StringVar(&g.logFormat, "log-format", env.Format, "log format: console or json")
	pf.StringVar(&g.logFile, "log-file", env.File, "also write JSON logs to this file, rotated")
	pf.BoolVar(&g.lenient, "lenient", false, "play percentage lines whose fields cannot be found without animation")
	pf.Uint64Var(&g.seed, "seed", 0, "seed for the simulated network speed (0 picks one)")

	root.AddCommand(newPlayCmd(g), newRenderCmd(g), newValidateCmd(g))
	return root
}

// source is a loaded script and, for local files, where it came from.
type source struct {
	script *script.Script
	path   string
}

// loadSource loads the demo when arg is empty, downloads arg when it is a
// URL and reads it from disk otherwise.
func loadSource(ctx context.Context, arg string, opts script.Options) (source, error) {
	if arg == "" {
		s, err := demo.Script(opts)
		return source{script: s}, err
	}
	if !downloader.IsURL(arg) {
		s, err := script.LoadFile(arg, opts)
		return source{script: s, path: arg}, err
	}

	dir, err := os.MkdirTemp("", "termreel-")
	if err != nil {
		return source{}, err
	}
	defer os.RemoveAll(dir)

	d := downloader.NewDownloader(logging.WithComponent("downloader"))
	path, err := d.Download(ctx, arg, dir)
	if err != nil {
		return source{}, err
	}
	s, err := script.LoadFile(path, opts)
	if err != nil {
		return source{}, fmt.Errorf("%s: %w", arg, err)
	}
	logging.L().Debug("remote script loaded", slog.String("url", arg), slog.Int("lines", len(s.Lines)))
	return source{script: s}, nil
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
