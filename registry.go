// SPDX-License-Identifier: EPL-2.0

package beatup

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/beatup/audio"
	"github.com/ik5/beatup/formats/aiff"
	"github.com/ik5/beatup/formats/mp3"
	"github.com/ik5/beatup/formats/vorbis"
	"github.com/ik5/beatup/formats/wav"
)

// NewRegistry returns a registry with every bundled decoder, keyed by
// lower-case file extension.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	return reg
}

// sniff guesses a registry key from the first bytes of a file.
func sniff(head []byte) string {
	switch {
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE")):
		return "wav"
	case len(head) >= 12 && bytes.Equal(head[:4], []byte("FORM")) &&
		(bytes.Equal(head[8:12], []byte("AIFF")) || bytes.Equal(head[8:12], []byte("AIFC"))):
		return "aiff"
	case bytes.HasPrefix(head, []byte("OggS")):
		return "ogg"
	case bytes.HasPrefix(head, []byte("ID3")),
		len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		return "mp3"
	}
	return ""
}

// OpenSource opens path and decodes its header. The decoder comes from the
// file extension, or from the leading bytes when the extension is not
// registered. The caller closes both the source and the returned file.
func OpenSource(reg *audio.Registry, path string) (audio.Source, io.Closer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open audio: %w", err)
	}

	dec, err := pickDecoder(reg, path, f)
	if err != nil {
		f.Close()
		return nil, nil, err
	}

	src, err := dec.Decode(f)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	return src, f, nil
}

func pickDecoder(reg *audio.Registry, path string, f io.ReadSeeker) (audio.Decoder, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if dec, ok := reg.Get(ext); ok {
		return dec, nil
	}

	head := make([]byte, 12)
	n, err := io.ReadFull(f, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind: %w", err)
	}

	if dec, ok := reg.Get(sniff(head[:n])); ok {
		return dec, nil
	}
	return nil, fmt.Errorf("%w: %q (known: %s)", audio.ErrUnsupportedFormat, ext, strings.Join(reg.Formats(), ", "))
}

// LoadSignal decodes path, mixes it to mono and resamples it to rate.
// A rate of 0 keeps the file's own rate.
func LoadSignal(reg *audio.Registry, path string, rate int) (*Signal, error) {
	src, f, err := OpenSource(reg, path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	defer src.Close()

	if src.SampleRate() <= 0 {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), audio.ErrInvalidSampleRate)
	}
	if rate <= 0 {
		rate = src.SampleRate()
	}

	var chain audio.Source = audio.NewMonoMixer(src)
	chain = audio.NewResampler(chain, rate)

	samples, err := audio.ReadAll(chain, 4096)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}

	return &Signal{
		Path:       path,
		Samples:    samples,
		SampleRate: rate,
	}, nil
}
