// ABOUTME: Buffer playback scheduler
// ABOUTME: Prepares a frame buffer for the device, starts it and watches for the end
package playback

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/mindspark-ai/mindspark-go/pkg/audio"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/encode"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/output"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/resample"
)

// defaultPollInterval matches the device drain check to a 10ms tick
const defaultPollInterval = 10 * time.Millisecond

// Scheduler plays frame buffers on one output device
type Scheduler struct {
	device       output.Device
	pollInterval time.Duration

	played    atomic.Int64
	cancelled atomic.Int64
}

// SchedulerStats tracks scheduler metrics
type SchedulerStats struct {
	Played    int64
	Cancelled int64
}

// NewScheduler creates a playback scheduler for an opened device
func NewScheduler(device output.Device) *Scheduler {
	return &Scheduler{
		device:       device,
		pollInterval: defaultPollInterval,
	}
}

// Play schedules buf for immediate playback and returns its handle.
// Cancelling ctx stops the audio early; the handle then reports ctx.Err().
func (s *Scheduler) Play(ctx context.Context, buf *audio.FrameBuffer) (*Handle, error) {
	if buf == nil {
		return nil, fmt.Errorf("%w: nil buffer", audio.ErrInvalidParameter)
	}
	if s.device == nil {
		return nil, fmt.Errorf("%w: no output device", audio.ErrPlaybackUnavailable)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format := s.device.Format()
	if err := format.Validate(); err != nil {
		return nil, fmt.Errorf("%w: output device not open", audio.ErrPlaybackUnavailable)
	}

	prepared, err := prepare(buf, format)
	if err != nil {
		return nil, err
	}

	data := encode.Float32LE(prepared.Interleaved())
	stream, err := s.device.NewStream(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, audio.ErrPlaybackUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", audio.ErrPlaybackUnavailable, err)
	}

	h := newHandle(buf.Duration())
	stream.Play()
	h.start()

	go s.watch(ctx, stream, h)

	return h, nil
}

// Stats returns scheduler statistics
func (s *Scheduler) Stats() SchedulerStats {
	return SchedulerStats{
		Played:    s.played.Load(),
		Cancelled: s.cancelled.Load(),
	}
}

// watch releases the stream once it drains or ctx is cancelled
func (s *Scheduler) watch(ctx context.Context, stream output.Stream, h *Handle) {
	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			stream.Pause()
			closeStream(stream)
			s.cancelled.Add(1)
			log.Printf("Playback cancelled after %v of %v", h.Elapsed(), h.Duration())
			h.finish(ctx.Err())
			return
		case <-ticker.C:
			// oto reports drained before the device buffer has played out
			if stream.IsPlaying() || h.Elapsed() < h.Duration() {
				continue
			}
			closeStream(stream)
			s.played.Add(1)
			h.finish(nil)
			return
		}
	}
}

func closeStream(stream output.Stream) {
	if err := stream.Close(); err != nil {
		log.Printf("Warning: failed to close playback stream: %v", err)
	}
}

// prepare converts buf to the device's channel count and sample rate
func prepare(buf *audio.FrameBuffer, format audio.Format) (*audio.FrameBuffer, error) {
	remixed, err := buf.Remix(format.Channels)
	if err != nil {
		return nil, err
	}
	if remixed.SampleRate == format.SampleRate {
		return remixed, nil
	}
	log.Printf("Resampling playback buffer %dHz -> %dHz", remixed.SampleRate, format.SampleRate)
	return resample.Buffer(remixed, format.SampleRate)
}
