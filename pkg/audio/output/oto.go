// ABOUTME: Oto-based audio output implementation
// ABOUTME: Opens one oto context and hands out float32 player streams with software volume
package output

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/ebitengine/oto/v3"
	"github.com/mindspark-ai/mindspark-go/pkg/audio"
)

// Oto output implementation using oto library
type Oto struct {
	mu         sync.Mutex
	otoCtx     *oto.Context
	sampleRate int
	channels   int
	volume     int
	muted      bool
	ready      bool

	// streams currently open, so volume changes reach live playback
	active map[volumeSetter]struct{}
}

// volumeSetter is the part of a player that volume changes touch
type volumeSetter interface {
	SetVolume(volume float64)
}

// otoStream is an oto player that unregisters itself on Close
type otoStream struct {
	*oto.Player
	owner *Oto
}

// Close stops tracking the player and releases it
func (s *otoStream) Close() error {
	s.owner.untrack(s.Player)
	return s.Player.Close()
}

// NewOto creates a new Oto output
func NewOto() *Oto {
	return &Oto{
		volume: 100,
		muted:  false,
		active: make(map[volumeSetter]struct{}),
	}
}

// Open initializes the output device
func (o *Oto) Open(sampleRate, channels int) error {
	if err := (audio.Format{SampleRate: sampleRate, Channels: channels}).Validate(); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	// If already initialized with same format, reuse the existing context
	if o.otoCtx != nil && o.sampleRate == sampleRate && o.channels == channels {
		if !o.ready {
			if err := o.otoCtx.Resume(); err != nil {
				return fmt.Errorf("%w: failed to resume oto context: %v", audio.ErrPlaybackUnavailable, err)
			}
			o.ready = true
		}
		log.Printf("Audio output already initialized with same format, reusing context")
		return nil
	}

	// oto allows one context per process, so a format change keeps the old
	// context and callers resample to Format()
	if o.otoCtx != nil {
		log.Printf("Warning: format change requested (%dHz %dch -> %dHz %dch) but oto doesn't support reinitialization. Continuing with existing context.",
			o.sampleRate, o.channels, sampleRate, channels)
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatFloat32LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("%w: failed to create oto context: %v", audio.ErrPlaybackUnavailable, err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.channels = channels
	o.ready = true

	log.Printf("Audio output initialized: %dHz, %d channels", sampleRate, channels)

	return nil
}

// Format returns the device format
func (o *Oto) Format() audio.Format {
	o.mu.Lock()
	defer o.mu.Unlock()
	return audio.Format{SampleRate: o.sampleRate, Channels: o.channels, BitDepth: 32}
}

// NewStream creates a player reading float32 samples from r
func (o *Oto) NewStream(r io.Reader) (Stream, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.ready {
		return nil, fmt.Errorf("%w: output not initialized", audio.ErrPlaybackUnavailable)
	}

	player := o.otoCtx.NewPlayer(r)
	player.SetVolume(getVolumeMultiplier(o.volume, o.muted))
	o.active[player] = struct{}{}
	return &otoStream{Player: player, owner: o}, nil
}

// Close suspends the output; oto contexts cannot be destroyed
func (o *Oto) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.otoCtx != nil && o.ready {
		if err := o.otoCtx.Suspend(); err != nil {
			return fmt.Errorf("failed to suspend oto context: %w", err)
		}
	}
	o.ready = false
	return nil
}

// SetVolume sets the volume (0-100) of open and future streams
func (o *Oto) SetVolume(volume int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.volume = clampVolume(volume)
	o.applyVolumeLocked()
	log.Printf("Volume set to %d", o.volume)
}

// SetMuted sets mute state
func (o *Oto) SetMuted(muted bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.muted = muted
	o.applyVolumeLocked()
	log.Printf("Muted: %v", muted)
}

// applyVolumeLocked pushes the current volume to every open stream
func (o *Oto) applyVolumeLocked() {
	mult := getVolumeMultiplier(o.volume, o.muted)
	for p := range o.active {
		p.SetVolume(mult)
	}
}

func (o *Oto) track(p volumeSetter) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.active[p] = struct{}{}
}

func (o *Oto) untrack(p volumeSetter) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.active, p)
}

// GetVolume returns current volume
func (o *Oto) GetVolume() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.volume
}

// IsMuted returns mute state
func (o *Oto) IsMuted() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.muted
}

func clampVolume(volume int) int {
	if volume < 0 {
		return 0
	}
	if volume > 100 {
		return 100
	}
	return volume
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
