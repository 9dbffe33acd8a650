// ABOUTME: Audio error taxonomy
// ABOUTME: Sentinel errors shared by decoding, output and playback
package audio

import "errors"

var (
	// ErrMalformedEncoding reports invalid base64 or a PCM byte count that
	// cannot be split into whole samples.
	ErrMalformedEncoding = errors.New("malformed audio encoding")

	// ErrInvalidParameter reports a non-positive sample rate or channel count.
	ErrInvalidParameter = errors.New("invalid audio parameter")

	// ErrPlaybackUnavailable reports that no audio output could be acquired.
	ErrPlaybackUnavailable = errors.New("audio playback unavailable")
)
