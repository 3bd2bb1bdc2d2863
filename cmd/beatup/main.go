// SPDX-License-Identifier: EPL-2.0

// Command beatup writes the beat timestamps of an audio file to a .beats
// file next to it.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ik5/beatup"
	"github.com/ik5/beatup/aubio"
	"github.com/ik5/beatup/internal/logger"
)

const usage = "Usage: beatup path/to/your/song.wav"

type options struct {
	engine   string
	aubioBin string
	click    bool
	logLevel string
	logFile  string
}

func newEngine(opts options, log *zap.Logger) (beatup.Engine, error) {
	switch opts.engine {
	case "native", "":
		return beatup.NewNativeEngine(log), nil
	case "aubio":
		return aubio.New(opts.aubioBin, nil, log), nil
	}
	return nil, fmt.Errorf("%w: %q (want native or aubio)", beatup.ErrNoEngine, opts.engine)
}

// logAubioVersion records which aubio build is used. A failure is only
// logged; the analysis commands report their own errors.
func logAubioVersion(ctx context.Context, e *aubio.Engine, log *zap.Logger) {
	v, err := e.Version(ctx)
	if err != nil {
		log.Warn("unknown aubio version", zap.Error(err))
		return
	}
	log.Debug("using aubio", zap.String("version", v))
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:           "beatup <audio_path>",
		Short:         "Write the beat timestamps of a song to <song>.beats",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				fmt.Fprintln(stdout, usage)
				return nil
			}
			path := args[0]

			log, err := logger.New(logger.Config{Level: opts.logLevel, File: opts.logFile, MaxSize: 10, MaxBackups: 3}, stderr)
			if err != nil {
				return err
			}
			defer log.Sync()

			if len(args) > 1 {
				log.Warn("ignoring extra arguments", zap.Strings("args", args[1:]))
			}

			engine, err := newEngine(opts, log)
			if err != nil {
				return err
			}
			if a, ok := engine.(*aubio.Engine); ok {
				logAubioVersion(cmd.Context(), a, log)
			}

			res, err := beatup.Map(cmd.Context(), path, beatup.Options{
				Engine: engine,
				Stdout: stdout,
				Logger: log,
				Click:  opts.click,
			})
			if errors.Is(err, beatup.ErrFileNotFound) {
				log.Debug("input not accessible", zap.Error(err))
				fmt.Fprintf(stdout, "Error: File not found at %s\n", path)
				return nil
			}
			if err != nil {
				log.Error("beat mapping failed", zap.String("input", path), zap.Error(err))
				return err
			}

			log.Info("finished",
				zap.String("output", res.Output),
				zap.Float64("tempo", res.Tempo),
				zap.Int("beats", len(res.Beats)),
			)
			return nil
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	flags := cmd.Flags()
	flags.StringVar(&opts.engine, "engine", "native", "analysis backend: native or aubio")
	flags.StringVar(&opts.aubioBin, "aubio-bin", aubio.DefaultBin, "aubio executable used by --engine aubio")
	flags.BoolVar(&opts.click, "click", false, "also write <song>.click.wav with a click on every beat")
	flags.StringVar(&opts.logLevel, "log-level", logger.WarnLevel, "diagnostics level: debug, info, warn or error")
	flags.StringVar(&opts.logFile, "log-file", "", "also write JSON diagnostics to this file, rotated by size")

	return cmd
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
