// SPDX-License-Identifier: EPL-2.0

package beat

// Config controls the analysis. Zero fields take the DefaultConfig value.
type Config struct {
	FFTSize   int     // STFT window length in samples
	HopLength int     // samples between frames
	TopDB     float64 // dynamic range kept in the log spectrum

	StartBPM      float64 // centre of the tempo prior
	MinBPM        float64
	MaxBPM        float64
	MaxLagSeconds float64 // longest autocorrelation lag considered

	// Tightness scales the penalty for beat intervals away from the period.
	Tightness float64
	// KeepWeak disables trimming of weak leading and trailing beats.
	KeepWeak bool
}

func DefaultConfig() Config {
	return Config{
		FFTSize:       2048,
		HopLength:     512,
		TopDB:         80,
		StartBPM:      120,
		MinBPM:        30,
		MaxBPM:        320,
		MaxLagSeconds: 4,
		Tightness:     100,
	}
}

// WithDefaults fills zero fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.FFTSize <= 0 {
		c.FFTSize = d.FFTSize
	}
	if c.HopLength <= 0 {
		c.HopLength = d.HopLength
	}
	if c.TopDB <= 0 {
		c.TopDB = d.TopDB
	}
	if c.StartBPM <= 0 {
		c.StartBPM = d.StartBPM
	}
	if c.MinBPM <= 0 {
		c.MinBPM = d.MinBPM
	}
	if c.MaxBPM <= 0 {
		c.MaxBPM = d.MaxBPM
	}
	if c.MaxLagSeconds <= 0 {
		c.MaxLagSeconds = d.MaxLagSeconds
	}
	if c.Tightness <= 0 {
		c.Tightness = d.Tightness
	}
	return c
}
