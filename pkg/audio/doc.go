// ABOUTME: Audio fundamentals package providing core types and errors
// ABOUTME: Defines Format, FrameBuffer, Payload and the audio error taxonomy
// Package audio provides the fundamental audio types used by MindSpark.
//
// This package defines core types used throughout the speech pipeline:
//   - Payload: base64 text of raw PCM bytes as returned by the speech API
//   - Format: describes a PCM stream (sample rate, channels, bit depth)
//   - FrameBuffer: decoded audio as normalized float32 samples per channel
//
// It also defines the error taxonomy shared by the decode, output and
// playback packages: ErrMalformedEncoding, ErrInvalidParameter and
// ErrPlaybackUnavailable.
//
// Example:
//
//	buf, err := audio.NewFrameBuffer(audio.SpeechFormat.SampleRate, [][]float32{samples})
//	fmt.Println(buf.Duration()) // frames / sample rate
package audio
