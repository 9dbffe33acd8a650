// ABOUTME: Tests for audio resampler
// ABOUTME: Tests linear interpolation resampling between sample rates
package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/mindspark-ai/mindspark-go/pkg/audio"
)

func TestNewResampler(t *testing.T) {
	r := New(24000, 48000, 1)

	if r == nil {
		t.Fatal("expected resampler to be created")
	}
	if r.inputRate != 24000 {
		t.Errorf("expected inputRate 24000, got %d", r.inputRate)
	}
	if r.outputRate != 48000 {
		t.Errorf("expected outputRate 48000, got %d", r.outputRate)
	}
	if r.ratio != 0.5 {
		t.Errorf("expected ratio 0.5, got %v", r.ratio)
	}
}

func TestResampleUpsampling(t *testing.T) {
	r := New(24000, 48000, 1)

	input := []float32{0, 0.5, 1.0 - 1.0/32768}
	output := make([]float32, r.OutputSamplesNeeded(len(input)))

	n := r.Resample(input, output)
	if n == 0 {
		t.Fatal("resampler produced no output")
	}

	// Midpoint between 0 and 0.5
	if math.Abs(float64(output[1]-0.25)) > 1e-6 {
		t.Errorf("expected interpolated 0.25, got %v", output[1])
	}
}

func TestResampleDownsampling(t *testing.T) {
	r := New(48000, 24000, 2)

	input := make([]float32, 200)
	for i := range input {
		input[i] = float32(i) / 1000
	}

	expected := r.OutputSamplesNeeded(len(input))
	output := make([]float32, expected)
	n := r.Resample(input, output)

	if n < expected-4 || n > expected {
		t.Errorf("expected ~%d samples, got %d", expected, n)
	}
}

func TestResampleEmpty(t *testing.T) {
	r := New(24000, 48000, 1)
	if n := r.Resample(nil, make([]float32, 10)); n != 0 {
		t.Errorf("expected 0 samples, got %d", n)
	}
}

func TestResetClearsPosition(t *testing.T) {
	r := New(44100, 48000, 1)
	r.Resample([]float32{0, 0.1, 0.2, 0.3}, make([]float32, 4))
	r.Reset()
	if r.position != 0 {
		t.Errorf("expected position 0 after reset, got %v", r.position)
	}
}

func TestBufferMatchingRate(t *testing.T) {
	buf, _ := audio.NewFrameBuffer(24000, [][]float32{{0, 0.5}})

	out, err := Buffer(buf, 24000)
	if err != nil {
		t.Fatalf("resample failed: %v", err)
	}
	if out != buf {
		t.Error("expected the same buffer when rates match")
	}
}

func TestBufferDurationPreserved(t *testing.T) {
	samples := make([]float32, 24000)
	for i := range samples {
		samples[i] = float32(math.Sin(float64(i) / 10))
	}
	buf, _ := audio.NewFrameBuffer(24000, [][]float32{samples, samples})

	out, err := Buffer(buf, 48000)
	if err != nil {
		t.Fatalf("resample failed: %v", err)
	}

	if out.SampleRate != 48000 {
		t.Errorf("expected 48000Hz, got %d", out.SampleRate)
	}
	if out.Channels() != 2 {
		t.Errorf("expected 2 channels, got %d", out.Channels())
	}
	if out.Frames() != 48000 {
		t.Errorf("expected 48000 frames, got %d", out.Frames())
	}
	if out.Seconds() != buf.Seconds() {
		t.Errorf("duration changed: %v -> %v", buf.Seconds(), out.Seconds())
	}
}

func TestBufferInvalid(t *testing.T) {
	buf, _ := audio.NewFrameBuffer(24000, [][]float32{{0}})

	if _, err := Buffer(buf, 0); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
	if _, err := Buffer(nil, 48000); !errors.Is(err, audio.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for nil buffer, got %v", err)
	}
}
