// ABOUTME: Audio output package for playing audio
// ABOUTME: Provides the Device handle interface and the oto implementation
// Package output provides audio playback devices.
//
// A Device is the explicit handle to the platform audio context. Callers
// open it once, pass it to whoever needs to play audio, and close it when
// done. Each playback acquires its own Stream from the device and closes it
// when the audio ends.
//
// Example:
//
//	dev := output.NewOto()
//	err := dev.Open(24000, 1)
//	stream, err := dev.NewStream(bytes.NewReader(encode.Float32LE(samples)))
//	stream.Play()
package output
