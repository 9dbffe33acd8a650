// ABOUTME: Audio decoder package for speech payloads
// ABOUTME: Provides base64 payload decoding and 16-bit PCM sample conversion
// Package decode turns speech payloads into playable frame buffers.
//
// Decoding is two strict steps:
//   - Base64: payload text to raw bytes
//   - PCM16: little-endian signed 16-bit bytes to normalized float32 frames
//
// Multi-channel input is read as interleaved frames: sample i belongs to
// channel i mod channels.
//
// Example:
//
//	raw, err := decode.Base64(payload)
//	buf, err := decode.PCM16(raw, 24000, 1)
package decode
