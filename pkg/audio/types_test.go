// ABOUTME: Tests for audio types
// ABOUTME: Tests frame buffer construction, duration and interleaving
package audio

import (
	"errors"
	"testing"
	"time"
)

func TestNewFrameBuffer(t *testing.T) {
	tests := []struct {
		name       string
		sampleRate int
		data       [][]float32
		wantErr    error
	}{
		{"mono", 24000, [][]float32{{0, 0.5}}, nil},
		{"stereo", 48000, [][]float32{{0, 0.5}, {0.25, -0.25}}, nil},
		{"zero rate", 0, [][]float32{{0}}, ErrInvalidParameter},
		{"negative rate", -1, [][]float32{{0}}, ErrInvalidParameter},
		{"no channels", 24000, nil, ErrInvalidParameter},
		{"ragged channels", 24000, [][]float32{{0, 1}, {0}}, ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := NewFrameBuffer(tt.sampleRate, tt.data)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if buf.Channels() != len(tt.data) {
				t.Errorf("expected %d channels, got %d", len(tt.data), buf.Channels())
			}
		})
	}
}

func TestFrameBufferDuration(t *testing.T) {
	tests := []struct {
		name       string
		frames     int
		sampleRate int
		expected   float64
	}{
		{"one second", 24000, 24000, 1.0},
		{"two samples", 2, 24000, 2.0 / 24000.0},
		{"half second", 22050, 44100, 0.5},
		{"empty", 0, 24000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf, err := NewFrameBuffer(tt.sampleRate, [][]float32{make([]float32, tt.frames)})
			if err != nil {
				t.Fatalf("failed to create buffer: %v", err)
			}
			if buf.Seconds() != tt.expected {
				t.Errorf("expected %v seconds, got %v", tt.expected, buf.Seconds())
			}
			if buf.Frames() != tt.frames {
				t.Errorf("expected %d frames, got %d", tt.frames, buf.Frames())
			}
		})
	}
}

func TestFrameBufferDurationValue(t *testing.T) {
	buf, err := NewFrameBuffer(24000, [][]float32{make([]float32, 24000)})
	if err != nil {
		t.Fatalf("failed to create buffer: %v", err)
	}
	if buf.Duration() != time.Second {
		t.Errorf("expected 1s, got %v", buf.Duration())
	}
}

func TestFrameBufferInterleaved(t *testing.T) {
	buf, err := NewFrameBuffer(48000, [][]float32{{1, 2, 3}, {-1, -2, -3}})
	if err != nil {
		t.Fatalf("failed to create buffer: %v", err)
	}

	expected := []float32{1, -1, 2, -2, 3, -3}
	got := buf.Interleaved()
	if len(got) != len(expected) {
		t.Fatalf("expected %d samples, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("sample %d: expected %v, got %v", i, expected[i], got[i])
		}
	}
}

func TestFormatValidate(t *testing.T) {
	if err := SpeechFormat.Validate(); err != nil {
		t.Errorf("speech format should be valid: %v", err)
	}
	if err := (Format{SampleRate: 0, Channels: 1}).Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for zero rate, got %v", err)
	}
	if err := (Format{SampleRate: 24000, Channels: 0}).Validate(); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for zero channels, got %v", err)
	}
}

func TestFormatString(t *testing.T) {
	if got := SpeechFormat.String(); got != "24000Hz/1ch/16bit" {
		t.Errorf("unexpected format string %q", got)
	}
}

func TestFrameBufferRemix(t *testing.T) {
	mono, _ := NewFrameBuffer(24000, [][]float32{{0.5, -0.5}})
	stereo, _ := NewFrameBuffer(24000, [][]float32{{0.5, 0}, {-0.5, 0.5}})

	up, err := mono.Remix(2)
	if err != nil {
		t.Fatalf("upmix failed: %v", err)
	}
	if up.Channels() != 2 || up.Channel(1)[0] != 0.5 {
		t.Errorf("unexpected upmix result %v", up.Data)
	}

	down, err := stereo.Remix(1)
	if err != nil {
		t.Fatalf("downmix failed: %v", err)
	}
	if down.Channel(0)[0] != 0 || down.Channel(0)[1] != 0.25 {
		t.Errorf("unexpected downmix result %v", down.Data)
	}

	same, err := mono.Remix(1)
	if err != nil || same != mono {
		t.Error("expected same buffer for matching channel count")
	}

	if _, err := stereo.Remix(6); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for 2->6, got %v", err)
	}
	if _, err := mono.Remix(0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for 0 channels, got %v", err)
	}
}
