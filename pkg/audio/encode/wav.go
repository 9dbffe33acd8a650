// ABOUTME: WAV file encoder
// ABOUTME: Wraps interleaved 16-bit PCM in a canonical 44-byte RIFF header
package encode

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/mindspark-ai/mindspark-go/pkg/audio"
)

// wavHeader is the canonical PCM WAV header
type wavHeader struct {
	ChunkID       [4]byte // "RIFF"
	ChunkSize     uint32  // File size - 8 bytes
	Format        [4]byte // "WAVE"
	Subchunk1ID   [4]byte // "fmt "
	Subchunk1Size uint32  // 16 for PCM
	AudioFormat   uint16  // 1 for PCM
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32 // SampleRate * NumChannels * BitsPerSample / 8
	BlockAlign    uint16 // NumChannels * BitsPerSample / 8
	BitsPerSample uint16
	Subchunk2ID   [4]byte // "data"
	Subchunk2Size uint32
}

// WAV encodes a frame buffer as a 16-bit PCM WAV file
func WAV(buf *audio.FrameBuffer) ([]byte, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", audio.ErrInvalidParameter)
	}
	if err := buf.Format().Validate(); err != nil {
		return nil, err
	}

	pcm, err := PCM16(buf.Interleaved())
	if err != nil {
		return nil, err
	}

	numChannels := uint16(buf.Channels())
	bitsPerSample := uint16(16)
	dataSize := uint32(len(pcm))

	header := wavHeader{
		ChunkID:       [4]byte{'R', 'I', 'F', 'F'},
		ChunkSize:     36 + dataSize,
		Format:        [4]byte{'W', 'A', 'V', 'E'},
		Subchunk1ID:   [4]byte{'f', 'm', 't', ' '},
		Subchunk1Size: 16,
		AudioFormat:   1,
		NumChannels:   numChannels,
		SampleRate:    uint32(buf.SampleRate),
		ByteRate:      uint32(buf.SampleRate) * uint32(numChannels) * uint32(bitsPerSample) / 8,
		BlockAlign:    numChannels * bitsPerSample / 8,
		BitsPerSample: bitsPerSample,
		Subchunk2ID:   [4]byte{'d', 'a', 't', 'a'},
		Subchunk2Size: dataSize,
	}

	out := bytes.NewBuffer(make([]byte, 0, 44+len(pcm)))
	if err := binary.Write(out, binary.LittleEndian, header); err != nil {
		return nil, fmt.Errorf("failed to write WAV header: %w", err)
	}
	out.Write(pcm)

	return out.Bytes(), nil
}

// WAVEncoder adapts WAV to the Encoder interface
var WAVEncoder Encoder = EncoderFunc(WAV)
