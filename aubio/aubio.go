// SPDX-License-Identifier: EPL-2.0

package aubio

import (
	"context"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ik5/beatup"
	"github.com/ik5/beatup/audio"
)

// DefaultBin is the executable looked up in PATH when none is given.
const DefaultBin = "aubio"

// fallbackRate is reported when the file cannot be probed locally. aubio
// reads more formats than the bundled decoders do.
const fallbackRate = 44100

// marksPerSecond scales beat times to integer marks. aubio prints six
// decimals, so microsecond marks keep its timestamps exact.
const marksPerSecond = 1e6

// Runner runs a command and returns its combined output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Engine delegates tempo and beat detection to the aubio CLI. Marks are
// microseconds and do not depend on the sample rate.
type Engine struct {
	bin    string
	reg    *audio.Registry
	logger *zap.Logger
	run    Runner
}

var _ beatup.Engine = (*Engine)(nil)

// New returns an engine running bin. An empty bin means DefaultBin, a nil
// registry means beatup.NewRegistry and a nil logger discards output.
func New(bin string, reg *audio.Registry, logger *zap.Logger) *Engine {
	if bin == "" {
		bin = DefaultBin
	}
	if reg == nil {
		reg = beatup.NewRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		bin:    bin,
		reg:    reg,
		logger: logger.Named("aubio"),
		run:    execRunner,
	}
}

// WithRunner replaces the command runner. Used by tests.
func (e *Engine) WithRunner(run Runner) *Engine {
	e.run = run
	return e
}

// Version returns the installed aubio version, such as "0.4.9".
func (e *Engine) Version(ctx context.Context) (string, error) {
	data, err := e.run(ctx, e.bin, "--version")
	if err != nil {
		return "", fmt.Errorf("aubio: couldn't get version: %w: %s", err, data)
	}

	line := strings.TrimSpace(string(data))
	if !strings.HasPrefix(line, "aubio version") {
		return "", fmt.Errorf("%w: %s", ErrInvalidVersion, line)
	}
	return strings.TrimSpace(strings.TrimPrefix(line, "aubio version")), nil
}

// Load probes the sample rate of path. The returned signal has no samples.
func (e *Engine) Load(ctx context.Context, path string) (*beatup.Signal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sig := &beatup.Signal{Path: path, SampleRate: fallbackRate}

	src, f, err := beatup.OpenSource(e.reg, path)
	if err != nil {
		e.logger.Warn("cannot probe sample rate, using fallback",
			zap.String("path", path),
			zap.Int("sample_rate", fallbackRate),
			zap.Error(err),
		)
		return sig, nil
	}
	sig.SampleRate = src.SampleRate()
	src.Close()
	f.Close()

	e.logger.Debug("probed", zap.String("path", path), zap.Int("sample_rate", sig.SampleRate))
	return sig, nil
}

// Analyze runs "aubio tempo" and "aubio beat" over the signal's file.
func (e *Engine) Analyze(ctx context.Context, sig *beatup.Signal) (float64, []int, error) {
	tempo, err := e.Tempo(ctx, sig.Path)
	if err != nil {
		return 0, nil, err
	}

	times, err := e.Beats(ctx, sig.Path)
	if err != nil {
		return 0, nil, err
	}

	marks := make([]int, len(times))
	for i, t := range times {
		marks[i] = int(math.Round(t * marksPerSecond))
	}

	e.logger.Debug("tracked", zap.Float64("tempo", tempo), zap.Int("beats", len(marks)))
	return tempo, marks, nil
}

// Times converts microsecond marks back to seconds. The sample rate is
// ignored.
func (e *Engine) Times(marks []int, _ int) []float64 {
	times := make([]float64, len(marks))
	for i, m := range marks {
		times[i] = float64(m) / marksPerSecond
	}
	return times
}

// Tempo returns the BPM reported by "aubio tempo". Files too short or too
// quiet to yield one report 0.
func (e *Engine) Tempo(ctx context.Context, input string) (float64, error) {
	data, err := e.run(ctx, e.bin, "tempo", input)
	if err != nil {
		return 0, fmt.Errorf("aubio: couldn't get tempo: %w: %s", err, data)
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasSuffix(line, " bpm") {
			continue
		}
		t, err := strconv.ParseFloat(strings.TrimSuffix(line, " bpm"), 64)
		if err != nil {
			continue
		}
		return t, nil
	}

	e.logger.Warn("no tempo reported", zap.String("path", input))
	return 0, nil
}

// Beats returns the beat timestamps printed by "aubio beat", in seconds.
func (e *Engine) Beats(ctx context.Context, input string) ([]float64, error) {
	data, err := e.run(ctx, e.bin, "beat", input)
	if err != nil {
		return nil, fmt.Errorf("aubio: couldn't get beats: %w: %s", err, data)
	}

	var beats []float64
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		t, err := strconv.ParseFloat(line, 64)
		if err != nil {
			e.logger.Debug("skipping line", zap.String("line", line))
			continue
		}
		if t < 0 || (len(beats) > 0 && t < beats[len(beats)-1]) {
			return nil, fmt.Errorf("%w: beat %q out of order", ErrBadOutput, line)
		}
		beats = append(beats, t)
	}
	return beats, nil
}
