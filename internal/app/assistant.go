// ABOUTME: Assistant orchestration for chat, image and speech actions
// ABOUTME: Runs each action's remote call, decoding and playback in sequence
package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/mindspark-ai/mindspark-go/internal/assistant"
	"github.com/mindspark-ai/mindspark-go/pkg/audio"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/decode"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/encode"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/playback"
)

// Remote is the set of remote operations the assistant drives
type Remote interface {
	Chat(ctx context.Context, prompt string, image *assistant.Attachment) (string, error)
	GenerateImage(ctx context.Context, prompt string, aspect assistant.AspectRatio) (*assistant.Image, error)
	Synthesize(ctx context.Context, text, voice string) (audio.Payload, error)
}

// Player plays decoded audio
type Player interface {
	Play(ctx context.Context, buf *audio.FrameBuffer) (*playback.Handle, error)
}

// Gallery persists generated images
type Gallery interface {
	Save(data []byte, mimeType string) (string, error)
}

// Recorder receives action-level measurements
type Recorder interface {
	ObserveImage(size int)
	ObserveDecodeError()
	PlaybackStarted(duration time.Duration)
	PlaybackFinished(err error)
}

// Stage is a step of a speak action
type Stage int

const (
	StageGenerating Stage = iota
	StagePlaying
	StageDone
)

// String returns the busy label shown for a stage
func (s Stage) String() string {
	switch s {
	case StageGenerating:
		return "Generating Audio..."
	case StagePlaying:
		return "Playing..."
	case StageDone:
		return "Done"
	default:
		return "Unknown"
	}
}

// Config holds assistant configuration
type Config struct {
	SpeechFormat   audio.Format
	RequestTimeout time.Duration
	WAVDir         string // when set, decoded speech is also written as WAV
}

// Assistant coordinates the three modes
type Assistant struct {
	config   Config
	remote   Remote
	player   Player
	gallery  Gallery
	recorder Recorder
	decoder  *decode.PCMDecoder
}

// New creates an assistant. gallery and recorder may be nil.
func New(config Config, remote Remote, player Player, gallery Gallery, recorder Recorder) (*Assistant, error) {
	if config.SpeechFormat == (audio.Format{}) {
		config.SpeechFormat = audio.SpeechFormat
	}

	decoder, err := decode.NewPCM(config.SpeechFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to create speech decoder: %w", err)
	}

	return &Assistant{
		config:   config,
		remote:   remote,
		player:   player,
		gallery:  gallery,
		recorder: recorder,
		decoder:  decoder,
	}, nil
}

// ImageResult describes a generated image
type ImageResult struct {
	Data     []byte
	MIMEType string
	Path     string
}

// SpeechResult describes a completed speak action
type SpeechResult struct {
	Duration time.Duration
	WAVPath  string
}

// requestContext bounds a single remote call
func (a *Assistant) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if a.config.RequestTimeout > 0 {
		return context.WithTimeout(ctx, a.config.RequestTimeout)
	}
	return context.WithCancel(ctx)
}

// Chat sends prompt and an optional image and returns the reply
func (a *Assistant) Chat(ctx context.Context, prompt string, image *assistant.Attachment) (string, error) {
	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	return a.remote.Chat(rctx, prompt, image)
}

// Image generates an image and saves it to the gallery
func (a *Assistant) Image(ctx context.Context, prompt string, aspect assistant.AspectRatio) (*ImageResult, error) {
	rctx, cancel := a.requestContext(ctx)
	defer cancel()

	img, err := a.remote.GenerateImage(rctx, prompt, aspect)
	if err != nil {
		return nil, err
	}

	result := &ImageResult{Data: img.Data, MIMEType: img.MIMEType}

	if a.gallery != nil {
		path, err := a.gallery.Save(img.Data, img.MIMEType)
		if err != nil {
			return nil, fmt.Errorf("failed to save image: %w", err)
		}
		result.Path = path
	}

	if a.recorder != nil {
		a.recorder.ObserveImage(len(img.Data))
	}

	return result, nil
}

// Speak synthesizes text and plays it to the end. Cancelling ctx stops
// playback early. progress, if set, is called as each stage begins.
func (a *Assistant) Speak(ctx context.Context, text, voice string, progress func(Stage)) (*SpeechResult, error) {
	notify := func(s Stage) {
		if progress != nil {
			progress(s)
		}
	}

	if a.player == nil {
		return nil, fmt.Errorf("%w: no player configured", audio.ErrPlaybackUnavailable)
	}

	notify(StageGenerating)

	rctx, cancel := a.requestContext(ctx)
	payload, err := a.remote.Synthesize(rctx, text, voice)
	cancel()
	if err != nil {
		return nil, err
	}

	buf, err := a.decoder.Decode(payload)
	if err != nil {
		if a.recorder != nil {
			a.recorder.ObserveDecodeError()
		}
		return nil, fmt.Errorf("failed to decode speech: %w", err)
	}
	log.Printf("Decoded speech: %d frames, %v", buf.Frames(), buf.Duration())

	result := &SpeechResult{Duration: buf.Duration()}

	if a.config.WAVDir != "" {
		path, err := a.saveWAV(buf)
		if err != nil {
			log.Printf("Failed to save WAV: %v", err)
		} else {
			result.WAVPath = path
		}
	}

	notify(StagePlaying)

	handle, err := a.player.Play(ctx, buf)
	if err != nil {
		return nil, fmt.Errorf("failed to start playback: %w", err)
	}
	if a.recorder != nil {
		a.recorder.PlaybackStarted(buf.Duration())
	}

	err = handle.Wait()
	if a.recorder != nil {
		a.recorder.PlaybackFinished(err)
	}

	notify(StageDone)

	return result, err
}

// saveWAV writes buf to the WAV directory
func (a *Assistant) saveWAV(buf *audio.FrameBuffer) (string, error) {
	data, err := encode.WAV(buf)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(a.config.WAVDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create WAV directory: %w", err)
	}

	path := filepath.Join(a.config.WAVDir, fmt.Sprintf("mindspark-speech-%d.wav", time.Now().UnixMilli()))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write WAV: %w", err)
	}

	log.Printf("Speech saved: %s", path)
	return path, nil
}

// IsCancelled reports whether err came from a cancelled action
func IsCancelled(err error) bool {
	return errors.Is(err, context.Canceled)
}
