// ABOUTME: Audio encoder package for frame buffers
// ABOUTME: Provides Encoder interface and PCM16, float32 and WAV encodings
// Package encode serializes normalized frame buffers.
//
// Supports: interleaved 16-bit PCM, interleaved float32 little-endian (the
// output device format) and mono or multi-channel 16-bit WAV files.
//
// Example:
//
//	wav, err := encode.WAV(buf)
//	err = os.WriteFile("speech.wav", wav, 0644)
package encode
