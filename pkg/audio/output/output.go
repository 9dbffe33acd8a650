// ABOUTME: Audio output interface definition
// ABOUTME: Common interface for audio playback backends and their streams
package output

import (
	"io"

	"github.com/mindspark-ai/mindspark-go/pkg/audio"
)

// Device represents an opened audio output context
type Device interface {
	// Open initializes the output device
	Open(sampleRate, channels int) error

	// Format returns the format the device actually runs at
	Format() audio.Format

	// NewStream acquires a stream that plays interleaved float32
	// little-endian samples read from r
	NewStream(r io.Reader) (Stream, error)

	// Close releases output resources
	Close() error
}

// Stream is one scoped playback acquired from a Device
type Stream interface {
	Play()
	Pause()
	IsPlaying() bool
	Close() error
}
