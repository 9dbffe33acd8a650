// ABOUTME: Tests for assistant orchestration
// ABOUTME: Uses fake remote, gallery and output device implementations
package app

import (
	"context"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mindspark-ai/mindspark-go/internal/assistant"
	"github.com/mindspark-ai/mindspark-go/pkg/audio"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/output"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/playback"
)

type fakeRemote struct {
	reply   string
	image   *assistant.Image
	payload audio.Payload
	err     error

	mu       sync.Mutex
	deadline bool
	calls    []string
}

func (r *fakeRemote) record(ctx context.Context, op string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, op)
	_, r.deadline = ctx.Deadline()
}

func (r *fakeRemote) Chat(ctx context.Context, prompt string, image *assistant.Attachment) (string, error) {
	r.record(ctx, "chat")
	return r.reply, r.err
}

func (r *fakeRemote) GenerateImage(ctx context.Context, prompt string, aspect assistant.AspectRatio) (*assistant.Image, error) {
	r.record(ctx, "image")
	return r.image, r.err
}

func (r *fakeRemote) Synthesize(ctx context.Context, text, voice string) (audio.Payload, error) {
	r.record(ctx, "speech")
	return r.payload, r.err
}

type fakeGallery struct {
	saved [][]byte
	err   error
}

func (g *fakeGallery) Save(data []byte, mimeType string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	g.saved = append(g.saved, data)
	return "/gallery/mindspark-art-test.png", nil
}

type fakeRecorder struct {
	images       int
	decodeErrors int
	started      int
	finished     []error
}

func (r *fakeRecorder) ObserveImage(size int)                  { r.images++ }
func (r *fakeRecorder) ObserveDecodeError()                    { r.decodeErrors++ }
func (r *fakeRecorder) PlaybackStarted(duration time.Duration) { r.started++ }
func (r *fakeRecorder) PlaybackFinished(err error)             { r.finished = append(r.finished, err) }

// fakeStream drains after playFor
type fakeStream struct {
	playFor time.Duration
	playing atomic.Bool
	closed  atomic.Bool
}

func (s *fakeStream) Play() {
	s.playing.Store(true)
	time.AfterFunc(s.playFor, func() { s.playing.Store(false) })
}
func (s *fakeStream) Pause()          { s.playing.Store(false) }
func (s *fakeStream) IsPlaying() bool { return s.playing.Load() }
func (s *fakeStream) Close() error    { s.closed.Store(true); return nil }

type fakeDevice struct {
	playFor time.Duration
	streams atomic.Int32
}

func (d *fakeDevice) Open(sampleRate, channels int) error { return nil }
func (d *fakeDevice) Format() audio.Format {
	return audio.Format{SampleRate: 24000, Channels: 1, BitDepth: 32}
}
func (d *fakeDevice) NewStream(r io.Reader) (output.Stream, error) {
	io.Copy(io.Discard, r)
	d.streams.Add(1)
	return &fakeStream{playFor: d.playFor}, nil
}
func (d *fakeDevice) Close() error { return nil }

func newTestAssistant(t *testing.T, remote Remote, config Config, playFor time.Duration) (*Assistant, *fakeDevice, *fakeGallery, *fakeRecorder) {
	t.Helper()
	device := &fakeDevice{playFor: playFor}
	gallery := &fakeGallery{}
	recorder := &fakeRecorder{}

	a, err := New(config, remote, playback.NewScheduler(device), gallery, recorder)
	if err != nil {
		t.Fatalf("failed to create assistant: %v", err)
	}
	return a, device, gallery, recorder
}

func TestNewRejectsBadFormat(t *testing.T) {
	_, err := New(Config{SpeechFormat: audio.Format{SampleRate: 24000, Channels: 1, BitDepth: 24}}, &fakeRemote{}, nil, nil, nil)
	if err == nil {
		t.Error("expected error for 24-bit speech format")
	}
}

func TestChat(t *testing.T) {
	remote := &fakeRemote{reply: "hi there"}
	a, _, _, _ := newTestAssistant(t, remote, Config{}, 0)

	reply, err := a.Chat(context.Background(), "hello", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "hi there" {
		t.Errorf("expected reply, got %q", reply)
	}
	if remote.deadline {
		t.Error("expected no deadline without a request timeout")
	}
}

func TestChatTimeout(t *testing.T) {
	remote := &fakeRemote{reply: "ok"}
	a, _, _, _ := newTestAssistant(t, remote, Config{RequestTimeout: time.Minute}, 0)

	if _, err := a.Chat(context.Background(), "hello", nil); err != nil {
		t.Fatal(err)
	}
	if !remote.deadline {
		t.Error("expected request deadline when timeout is configured")
	}
}

func TestImage(t *testing.T) {
	remote := &fakeRemote{image: &assistant.Image{Data: []byte("png"), MIMEType: "image/png"}}
	a, _, gallery, recorder := newTestAssistant(t, remote, Config{}, 0)

	result, err := a.Image(context.Background(), "sunset", assistant.AspectWide)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Path == "" {
		t.Error("expected gallery path")
	}
	if len(gallery.saved) != 1 {
		t.Errorf("expected 1 saved image, got %d", len(gallery.saved))
	}
	if recorder.images != 1 {
		t.Errorf("expected image to be recorded")
	}
}

func TestImageErrors(t *testing.T) {
	remote := &fakeRemote{err: assistant.ErrNoImage}
	a, _, gallery, _ := newTestAssistant(t, remote, Config{}, 0)

	if _, err := a.Image(context.Background(), "x", assistant.AspectSquare); !errors.Is(err, assistant.ErrNoImage) {
		t.Errorf("expected ErrNoImage, got %v", err)
	}
	if len(gallery.saved) != 0 {
		t.Error("expected nothing saved on failure")
	}

	remote = &fakeRemote{image: &assistant.Image{Data: []byte("png"), MIMEType: "image/png"}}
	a, _, gallery, _ = newTestAssistant(t, remote, Config{}, 0)
	gallery.err = errors.New("disk full")
	if _, err := a.Image(context.Background(), "x", assistant.AspectSquare); err == nil {
		t.Error("expected save error")
	}
}

func TestSpeak(t *testing.T) {
	// 2400 frames of silence = 100ms at 24kHz
	remote := &fakeRemote{payload: audio.Payload(silencePayload(2400))}
	a, device, _, recorder := newTestAssistant(t, remote, Config{}, 20*time.Millisecond)

	var stages []Stage
	result, err := a.Speak(context.Background(), "hello", "Kore", func(s Stage) {
		stages = append(stages, s)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Duration != 100*time.Millisecond {
		t.Errorf("expected 100ms, got %v", result.Duration)
	}
	if device.streams.Load() != 1 {
		t.Errorf("expected 1 stream, got %d", device.streams.Load())
	}

	want := []Stage{StageGenerating, StagePlaying, StageDone}
	if len(stages) != len(want) {
		t.Fatalf("expected stages %v, got %v", want, stages)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Errorf("stage %d: expected %v, got %v", i, want[i], stages[i])
		}
	}

	if recorder.started != 1 || len(recorder.finished) != 1 || recorder.finished[0] != nil {
		t.Errorf("unexpected playback recording: %+v", recorder)
	}
}

func TestSpeakScenario(t *testing.T) {
	remote := &fakeRemote{payload: "AAAAgA=="}
	a, _, _, _ := newTestAssistant(t, remote, Config{}, 0)

	result, err := a.Speak(context.Background(), "hi", "Kore", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 2 * time.Second / 24000
	if result.Duration != want {
		t.Errorf("expected %v, got %v", want, result.Duration)
	}
}

func TestSpeakMalformedPayload(t *testing.T) {
	remote := &fakeRemote{payload: "!"}
	a, device, _, recorder := newTestAssistant(t, remote, Config{}, 0)

	var stages []Stage
	_, err := a.Speak(context.Background(), "hi", "Kore", func(s Stage) { stages = append(stages, s) })
	if !errors.Is(err, audio.ErrMalformedEncoding) {
		t.Errorf("expected ErrMalformedEncoding, got %v", err)
	}
	if device.streams.Load() != 0 {
		t.Error("expected no playback for malformed payload")
	}
	if recorder.decodeErrors != 1 {
		t.Errorf("expected decode error to be recorded")
	}
	if len(stages) != 1 || stages[0] != StageGenerating {
		t.Errorf("expected only the generating stage, got %v", stages)
	}
}

func TestSpeakRemoteError(t *testing.T) {
	cause := &assistant.RequestError{Op: "speech", Model: "m", Err: errors.New("503")}
	remote := &fakeRemote{err: cause}
	a, device, _, _ := newTestAssistant(t, remote, Config{}, 0)

	if _, err := a.Speak(context.Background(), "hi", "Kore", nil); !errors.Is(err, assistant.ErrRemote) {
		t.Errorf("expected ErrRemote, got %v", err)
	}
	if device.streams.Load() != 0 {
		t.Error("expected no playback after remote failure")
	}
}

func TestSpeakCancelled(t *testing.T) {
	remote := &fakeRemote{payload: audio.Payload(silencePayload(24000))}
	a, _, _, recorder := newTestAssistant(t, remote, Config{}, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(30*time.Millisecond, cancel)

	_, err := a.Speak(ctx, "hi", "Kore", nil)
	if !IsCancelled(err) {
		t.Errorf("expected cancellation, got %v", err)
	}
	if len(recorder.finished) != 1 || !errors.Is(recorder.finished[0], context.Canceled) {
		t.Errorf("expected cancelled playback to be recorded, got %v", recorder.finished)
	}
}

func TestSpeakNoPlayer(t *testing.T) {
	a, err := New(Config{}, &fakeRemote{}, nil, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := a.Speak(context.Background(), "hi", "Kore", nil); !errors.Is(err, audio.ErrPlaybackUnavailable) {
		t.Errorf("expected ErrPlaybackUnavailable, got %v", err)
	}
}

func TestSpeakSavesWAV(t *testing.T) {
	dir := t.TempDir()
	remote := &fakeRemote{payload: audio.Payload(silencePayload(240))}
	a, _, _, _ := newTestAssistant(t, remote, Config{WAVDir: dir}, 0)

	result, err := a.Speak(context.Background(), "hi", "Kore", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.WAVPath == "" {
		t.Fatal("expected WAV path")
	}

	data, err := os.ReadFile(result.WAVPath)
	if err != nil {
		t.Fatalf("failed to read WAV: %v", err)
	}
	if string(data[0:4]) != "RIFF" || len(data) != 44+240*2 {
		t.Errorf("unexpected WAV file: %d bytes", len(data))
	}
}

func TestStageString(t *testing.T) {
	if StageGenerating.String() != "Generating Audio..." {
		t.Errorf("unexpected label %q", StageGenerating.String())
	}
	if StagePlaying.String() != "Playing..." {
		t.Errorf("unexpected label %q", StagePlaying.String())
	}
}

// silencePayload returns base64 of frames zero-valued s16le mono samples
func silencePayload(frames int) string {
	return base64.StdEncoding.EncodeToString(make([]byte, frames*2))
}
