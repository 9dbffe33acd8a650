// ABOUTME: Tests for WAV encoder
// ABOUTME: Verifies RIFF header fields and PCM payload layout
package encode

import (
	"encoding/binary"
	"testing"

	"github.com/mindspark-ai/mindspark-go/pkg/audio"
)

func TestWAVHeader(t *testing.T) {
	buf, err := audio.NewFrameBuffer(24000, [][]float32{{0, 0.5, -0.5, -1.0}})
	if err != nil {
		t.Fatalf("failed to create buffer: %v", err)
	}

	data, err := WAV(buf)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if len(data) != 44+8 {
		t.Fatalf("expected %d bytes, got %d", 44+8, len(data))
	}

	checks := []struct {
		name     string
		offset   int
		expected string
	}{
		{"riff", 0, "RIFF"},
		{"wave", 8, "WAVE"},
		{"fmt", 12, "fmt "},
		{"data", 36, "data"},
	}
	for _, c := range checks {
		if got := string(data[c.offset : c.offset+4]); got != c.expected {
			t.Errorf("%s: expected %q, got %q", c.name, c.expected, got)
		}
	}

	if ch := binary.LittleEndian.Uint16(data[22:24]); ch != 1 {
		t.Errorf("expected 1 channel, got %d", ch)
	}
	if rate := binary.LittleEndian.Uint32(data[24:28]); rate != 24000 {
		t.Errorf("expected sample rate 24000, got %d", rate)
	}
	if byteRate := binary.LittleEndian.Uint32(data[28:32]); byteRate != 48000 {
		t.Errorf("expected byte rate 48000, got %d", byteRate)
	}
	if size := binary.LittleEndian.Uint32(data[40:44]); size != 8 {
		t.Errorf("expected data size 8, got %d", size)
	}
	if last := int16(binary.LittleEndian.Uint16(data[50:52])); last != -32768 {
		t.Errorf("expected last sample -32768, got %d", last)
	}
}

func TestWAVStereo(t *testing.T) {
	buf, err := audio.NewFrameBuffer(48000, [][]float32{{0, 0}, {0, 0}})
	if err != nil {
		t.Fatalf("failed to create buffer: %v", err)
	}

	data, err := WAVEncoder.Encode(buf)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	if ch := binary.LittleEndian.Uint16(data[22:24]); ch != 2 {
		t.Errorf("expected 2 channels, got %d", ch)
	}
	if align := binary.LittleEndian.Uint16(data[32:34]); align != 4 {
		t.Errorf("expected block align 4, got %d", align)
	}
}

func TestWAVNilBuffer(t *testing.T) {
	if _, err := WAV(nil); err == nil {
		t.Error("expected error for nil buffer")
	}
}
