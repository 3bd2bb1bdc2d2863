// SPDX-License-Identifier: EPL-2.0

package beatup

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Options configure Map. The zero value analyzes with NativeEngine and
// prints nothing.
type Options struct {
	Engine Engine
	// Stdout receives the progress lines.
	Stdout io.Writer
	Logger *zap.Logger
	// Click also renders the analysed signal with a click on every beat.
	Click bool
}

// Result describes one finished beat map.
type Result struct {
	Input  string
	Output string
	Click  string // empty unless Options.Click
	Tempo  float64
	Beats  []float64
}

// Map validates path, runs the engine over it and writes the beat map next
// to it. A missing input returns ErrFileNotFound before anything else runs.
func Map(ctx context.Context, path string, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Stdout == nil {
		opts.Stdout = io.Discard
	}
	if opts.Engine == nil {
		opts.Engine = NewNativeEngine(opts.Logger)
	}
	out := opts.Stdout
	log := opts.Logger.With(zap.String("input", path))

	if err := CheckInput(path); err != nil {
		return nil, err
	}

	fmt.Fprintf(out, "Loading '%s'...\n", path)
	sig, err := opts.Engine.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	fmt.Fprintln(out, "Analyzing beats...")
	tempo, marks, err := opts.Engine.Analyze(ctx, sig)
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	times := opts.Engine.Times(marks, sig.SampleRate)

	fmt.Fprintf(out, "Detected Tempo: %.2f BPM\n", tempo)
	fmt.Fprintf(out, "Found %d beats.\n", len(times))

	res := &Result{
		Input:  path,
		Output: OutputPath(path),
		Tempo:  tempo,
		Beats:  times,
	}

	fmt.Fprintf(out, "Saving beat map to '%s'...\n", res.Output)
	if err := WriteFile(res.Output, times); err != nil {
		return nil, err
	}
	log.Debug("beat map written", zap.String("output", res.Output), zap.Int("beats", len(times)))

	if opts.Click {
		res.Click = ClickPath(path)
		fmt.Fprintf(out, "Saving click track to '%s'...\n", res.Click)
		if err := WriteClickTrack(res.Click, sig, times); err != nil {
			return nil, err
		}
	}

	fmt.Fprintln(out, "Done.")
	return res, nil
}
