// ABOUTME: Plays a saved base64 PCM speech payload on the local audio device
// ABOUTME: Offline companion tool for inspecting synthesized speech
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/mindspark-ai/mindspark-go/pkg/audio"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/decode"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/encode"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/output"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/playback"
)

var (
	sampleRate = flag.Int("rate", audio.SpeechFormat.SampleRate, "Payload sample rate in Hz")
	channels   = flag.Int("channels", audio.SpeechFormat.Channels, "Payload channel count")
	volume     = flag.Int("volume", 100, "Playback volume 0-100")
	wavOut     = flag.String("wav", "", "Write the decoded audio to this WAV file instead of playing")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: pcmplay [flags] [payload-file]\n\nReads standard input when no file is given.\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	payload, err := readPayload(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read payload: %v", err)
	}

	decoder, err := decode.NewPCM(audio.Format{SampleRate: *sampleRate, Channels: *channels, BitDepth: 16})
	if err != nil {
		log.Fatalf("Invalid format: %v", err)
	}

	buf, err := decoder.Decode(payload)
	if err != nil {
		log.Fatalf("Failed to decode payload: %v", err)
	}
	log.Printf("Decoded %d frames (%v) at %s", buf.Frames(), buf.Duration(), buf.Format())

	if *wavOut != "" {
		data, err := encode.WAV(buf)
		if err != nil {
			log.Fatalf("Failed to encode WAV: %v", err)
		}
		if err := os.WriteFile(*wavOut, data, 0644); err != nil {
			log.Fatalf("Failed to write WAV: %v", err)
		}
		log.Printf("Wrote %s", *wavOut)
		return
	}

	device := output.NewOto()
	device.SetVolume(*volume)
	if err := device.Open(buf.SampleRate, buf.Channels()); err != nil {
		log.Fatalf("Audio unavailable: %v", err)
	}
	defer device.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	handle, err := playback.NewScheduler(device).Play(ctx, buf)
	if err != nil {
		log.Fatalf("Playback failed: %v", err)
	}

	if err := handle.Wait(); err != nil {
		log.Printf("Playback stopped after %v", handle.Elapsed())
		return
	}
	log.Printf("Playback finished")
}

// readPayload reads base64 text from path, or stdin when path is empty
func readPayload(path string) (audio.Payload, error) {
	var r io.Reader = os.Stdin
	if path != "" && path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}

	// Files usually end with a newline; strip surrounding whitespace only
	return audio.Payload(strings.TrimSpace(string(data))), nil
}
