// ABOUTME: Playback scheduling package
// ABOUTME: Plays frame buffers on an output device behind an awaitable handle
// Package playback drives a decoded FrameBuffer to completion on an
// output.Device.
//
// Play acquires a stream from the device, starts it immediately and returns
// a Handle. The handle's Done channel closes when the audio reaches its
// natural end, or when the context passed to Play is cancelled. The stream
// is always closed before Done fires.
//
// Callers serialize playbacks themselves; starting a second Play while one
// is active mixes both on the device.
//
// Example:
//
//	sched := playback.NewScheduler(dev)
//	h, err := sched.Play(ctx, buf)
//	err = h.Wait()
package playback
