// SPDX-License-Identifier: EPL-2.0

package beatup

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/beatup/audio"
	"github.com/ik5/beatup/beat"
)

// AnalysisRate is the sample rate NativeEngine analyzes at.
const AnalysisRate = 22050

// Signal is decoded mono audio. Engines that analyze files directly may
// leave Samples empty.
type Signal struct {
	Path       string
	Samples    []float32
	SampleRate int
}

// Duration of the decoded samples.
func (s *Signal) Duration() time.Duration {
	if s.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(s.Samples)) / float64(s.SampleRate) * float64(time.Second))
}

// Engine decodes and analyzes audio. Beat marks returned by Analyze are
// opaque: only the same engine's Times can turn them into seconds.
type Engine interface {
	Load(ctx context.Context, path string) (*Signal, error)
	Analyze(ctx context.Context, sig *Signal) (tempo float64, marks []int, err error)
	Times(marks []int, sampleRate int) []float64
}

// NativeEngine runs the pure Go decoders and beat tracker.
type NativeEngine struct {
	Registry   *audio.Registry
	SampleRate int
	Config     beat.Config
	Logger     *zap.Logger
}

func NewNativeEngine(logger *zap.Logger) *NativeEngine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NativeEngine{
		Registry:   NewRegistry(),
		SampleRate: AnalysisRate,
		Config:     beat.DefaultConfig(),
		Logger:     logger.Named("native"),
	}
}

func (e *NativeEngine) Load(ctx context.Context, path string) (*Signal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	sig, err := LoadSignal(e.Registry, path, e.SampleRate)
	if err != nil {
		return nil, err
	}

	e.Logger.Debug("decoded",
		zap.String("path", path),
		zap.Int("sample_rate", sig.SampleRate),
		zap.Int("samples", len(sig.Samples)),
		zap.Duration("audio", sig.Duration()),
		zap.Duration("took", time.Since(start)),
	)
	return sig, nil
}

func (e *NativeEngine) Analyze(ctx context.Context, sig *Signal) (float64, []int, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}

	start := time.Now()
	tempo, frames := beat.Track(sig.Samples, sig.SampleRate, e.Config)

	e.Logger.Debug("tracked",
		zap.Float64("tempo", tempo),
		zap.Int("beats", len(frames)),
		zap.Duration("took", time.Since(start)),
	)
	return tempo, frames, nil
}

func (e *NativeEngine) Times(marks []int, sampleRate int) []float64 {
	return beat.FramesToTime(marks, sampleRate, e.Config.WithDefaults().HopLength)
}
