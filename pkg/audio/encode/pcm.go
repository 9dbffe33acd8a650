// ABOUTME: PCM audio encoder
// ABOUTME: Encodes normalized float32 samples to 16-bit or float32 little-endian bytes
package encode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/mindspark-ai/mindspark-go/pkg/audio"
)

// SampleToInt16 quantizes a normalized sample, clamping to the int16 range
func SampleToInt16(sample float32) int16 {
	scaled := math.Round(float64(sample) * 32768.0)
	if scaled > math.MaxInt16 {
		return math.MaxInt16
	}
	if scaled < math.MinInt16 {
		return math.MinInt16
	}
	return int16(scaled)
}

// PCM16 encodes samples as signed 16-bit little-endian bytes
func PCM16(samples []float32) ([]byte, error) {
	output := make([]byte, len(samples)*2)
	for i, sample := range samples {
		if math.IsNaN(float64(sample)) {
			return nil, fmt.Errorf("%w: NaN sample at index %d", audio.ErrInvalidParameter, i)
		}
		binary.LittleEndian.PutUint16(output[i*2:], uint16(SampleToInt16(sample)))
	}
	return output, nil
}

// Float32LE encodes samples as IEEE-754 float32 little-endian bytes
func Float32LE(samples []float32) []byte {
	output := make([]byte, len(samples)*4)
	for i, sample := range samples {
		binary.LittleEndian.PutUint32(output[i*4:], math.Float32bits(sample))
	}
	return output
}

// PCMEncoder encodes frame buffers as interleaved 16-bit PCM
type PCMEncoder struct{}

// NewPCM creates a new PCM encoder
func NewPCM() *PCMEncoder {
	return &PCMEncoder{}
}

// Encode converts a frame buffer to interleaved PCM bytes
func (e *PCMEncoder) Encode(buf *audio.FrameBuffer) ([]byte, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", audio.ErrInvalidParameter)
	}
	return PCM16(buf.Interleaved())
}
