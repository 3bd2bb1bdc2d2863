// SPDX-License-Identifier: EPL-2.0

package beat

import (
	"math"
	"slices"
	"testing"

	"github.com/ik5/beatup/internal/audiotest"
)

const (
	testRate = 22050
	// 22 hops of 512 samples: a click period that falls exactly on frames,
	// 117.45 BPM.
	testInterval = 22 * 512
	testOffset   = 5000
	testLength   = 12 * testRate
)

var testBPM = 60 * float64(testRate) / float64(testInterval)

func clickTrack() []float32 {
	return audiotest.ClickTrack(testLength, testOffset, testInterval, 0.9)
}

func TestOnsetStrength_Shape(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	onset := OnsetStrength(clickTrack(), cfg)

	if want := 1 + testLength/cfg.HopLength; len(onset) != want {
		t.Fatalf("len(onset) = %d, want %d", len(onset), want)
	}
	if onset[0] != 0 {
		t.Errorf("onset[0] = %v, want 0", onset[0])
	}
	for i, v := range onset {
		if v < 0 {
			t.Fatalf("onset[%d] = %v, want non-negative", i, v)
		}
	}

	// Every click must produce some flux within a window of frames around it.
	for _, pos := range audiotest.ClickPositions(testLength, testOffset, testInterval) {
		f := TimeToFrame(float64(pos)/testRate, testRate, cfg.HopLength)
		if slices.Max(onset[max(f-3, 0):min(f+4, len(onset))]) == 0 {
			t.Errorf("no onset near click at sample %d", pos)
		}
	}
}

func TestOnsetStrength_EmptyAndSilent(t *testing.T) {
	t.Parallel()

	if got := OnsetStrength(nil, Config{}); got != nil {
		t.Errorf("OnsetStrength(nil) = %v, want nil", got)
	}

	for i, v := range OnsetStrength(make([]float32, testRate), Config{}) {
		if v != 0 {
			t.Fatalf("silent onset[%d] = %v, want 0", i, v)
		}
	}
}

func TestEstimateTempo_ClickTrack(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	got := EstimateTempo(OnsetStrength(clickTrack(), cfg), testRate, cfg)

	if math.Abs(got-testBPM) > 0.01 {
		t.Errorf("EstimateTempo() = %v, want %v", got, testBPM)
	}
}

func TestEstimateTempo_Flat(t *testing.T) {
	t.Parallel()

	tests := map[string][]float64{
		"nil":   nil,
		"zeros": make([]float64, 1000),
		"short": {1},
	}

	for name, onset := range tests {
		if got := EstimateTempo(onset, testRate, Config{}); got != 0 {
			t.Errorf("%s: EstimateTempo() = %v, want 0", name, got)
		}
	}
}

func TestEstimateTempo_Prior(t *testing.T) {
	t.Parallel()

	const frameRate = float64(testRate) / 512

	// Impulses every 43 frames: about 60 BPM, with a weaker echo at 30.
	onset := make([]float64, 2000)
	for i := 0; i < len(onset); i += 43 {
		onset[i] = 1
	}

	tests := []struct {
		startBPM float64
		wantLag  int
	}{
		{120, 43},
		{60, 43},
		{30, 86},
	}

	for _, tt := range tests {
		got := EstimateTempo(onset, testRate, Config{StartBPM: tt.startBPM})
		if want := 60 * frameRate / float64(tt.wantLag); math.Abs(got-want) > 0.01 {
			t.Errorf("StartBPM %v: EstimateTempo() = %v, want %v", tt.startBPM, got, want)
		}
	}
}

func TestTrack_ClickTrack(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	tempo, frames := Track(clickTrack(), testRate, cfg)

	if math.Abs(tempo-testBPM) > 0.01 {
		t.Errorf("tempo = %v, want %v", tempo, testBPM)
	}

	clicks := audiotest.ClickPositions(testLength, testOffset, testInterval)
	if len(frames) < len(clicks)-2 || len(frames) > len(clicks) {
		t.Fatalf("got %d beats, want %d (±2)", len(frames), len(clicks))
	}

	for i := 1; i < len(frames); i++ {
		if d := frames[i] - frames[i-1]; d != 22 {
			t.Errorf("beat %d interval = %d frames, want 22", i, d)
		}
	}

	// Every beat sits within 70 ms of some click.
	times := FramesToTime(frames, testRate, cfg.HopLength)
	for i, bt := range times {
		nearest := math.Inf(1)
		for _, c := range clicks {
			nearest = min(nearest, math.Abs(bt-float64(c)/testRate))
		}
		if nearest > 0.07 {
			t.Errorf("beat %d at %.3fs is %.3fs from the nearest click", i, bt, nearest)
		}
	}
}

func TestTrack_Silence(t *testing.T) {
	t.Parallel()

	for name, samples := range map[string][]float32{
		"empty":  nil,
		"silent": make([]float32, 5*testRate),
	} {
		tempo, frames := Track(samples, testRate, Config{})
		if tempo != 0 || len(frames) != 0 {
			t.Errorf("%s: Track() = (%v, %v), want (0, none)", name, tempo, frames)
		}
	}
}

func TestTrackBeats_Ordered(t *testing.T) {
	t.Parallel()

	onset := make([]float64, 600)
	for i := 10; i < len(onset); i += 20 {
		onset[i] = 1 + float64(i%3)
	}

	beats := TrackBeats(onset, 60*43.06640625/20, testRate, Config{KeepWeak: true})
	if len(beats) == 0 {
		t.Fatal("TrackBeats() returned no beats")
	}
	if !slices.IsSorted(beats) {
		t.Errorf("beats not sorted: %v", beats)
	}
	if beats[0] < 0 || beats[len(beats)-1] >= len(onset) {
		t.Errorf("beats out of range: %v", beats)
	}
}

func TestTrackBeats_Degenerate(t *testing.T) {
	t.Parallel()

	if got := TrackBeats(nil, 120, testRate, Config{}); got != nil {
		t.Errorf("TrackBeats(nil) = %v", got)
	}
	if got := TrackBeats(make([]float64, 100), 120, testRate, Config{}); got != nil {
		t.Errorf("TrackBeats(flat) = %v", got)
	}
	if got := TrackBeats([]float64{0, 1, 0}, 0, testRate, Config{}); got != nil {
		t.Errorf("TrackBeats(tempo 0) = %v", got)
	}
}

func TestTrimWeak(t *testing.T) {
	t.Parallel()

	local := []float64{0, 5, 0.1, 5, 0.2, 5, 0}
	got := trimWeak([]int{0, 1, 2, 3, 4, 5, 6}, local)

	// Interior weak beats stay, only the edges are trimmed.
	if want := []int{1, 2, 3, 4, 5}; !slices.Equal(got, want) {
		t.Errorf("trimWeak() = %v, want %v", got, want)
	}
}

func TestMedianAndStddev(t *testing.T) {
	t.Parallel()

	if got := median([]float64{3, 1, 2}); got != 2 {
		t.Errorf("median odd = %v, want 2", got)
	}
	if got := median([]float64{4, 1, 3, 2}); got != 2.5 {
		t.Errorf("median even = %v, want 2.5", got)
	}
	if got := stddev([]float64{2, 4, 4, 4, 5, 5, 7, 9}); math.Abs(got-2.138089935) > 1e-6 {
		t.Errorf("stddev = %v, want ≈2.138", got)
	}
	if got := stddev([]float64{1}); got != 0 {
		t.Errorf("stddev single = %v, want 0", got)
	}
}

func TestFramesToTime(t *testing.T) {
	t.Parallel()

	got := FramesToTime([]int{0, 1, 43, 100}, 22050, 512)
	want := []float64{0, 512.0 / 22050, 43 * 512.0 / 22050, 100 * 512.0 / 22050}
	if !slices.Equal(got, want) {
		t.Errorf("FramesToTime() = %v, want %v", got, want)
	}

	if got := FramesToTime([]int{11025, 22050}, 22050, 1); !slices.Equal(got, []float64{0.5, 1}) {
		t.Errorf("FramesToTime(hop 1) = %v, want [0.5 1]", got)
	}
	if got := FramesToTime(nil, 22050, 512); len(got) != 0 {
		t.Errorf("FramesToTime(nil) = %v, want empty", got)
	}
}

func TestTimeToFrame(t *testing.T) {
	t.Parallel()

	for _, f := range []int{0, 1, 22, 1000} {
		tm := FramesToTime([]int{f}, 22050, 512)[0]
		if got := TimeToFrame(tm, 22050, 512); got != f {
			t.Errorf("TimeToFrame(FramesToTime(%d)) = %d", f, got)
		}
	}
}

func TestConfigDefaults(t *testing.T) {
	t.Parallel()

	if got := (Config{}).WithDefaults(); got != DefaultConfig() {
		t.Errorf("zero Config defaults = %+v, want %+v", got, DefaultConfig())
	}

	custom := Config{HopLength: 256, KeepWeak: true}.WithDefaults()
	if custom.HopLength != 256 || !custom.KeepWeak || custom.FFTSize != 2048 {
		t.Errorf("custom Config defaults = %+v", custom)
	}
}

func BenchmarkOnsetStrength(b *testing.B) {
	samples := clickTrack()
	cfg := DefaultConfig()

	b.ReportAllocs()
	for range b.N {
		_ = OnsetStrength(samples, cfg)
	}
}
