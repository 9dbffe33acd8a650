// ABOUTME: Entry point for the MindSpark assistant
// ABOUTME: Parses CLI flags and starts the TUI or runs a one-shot command
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mindspark-ai/mindspark-go/internal/app"
	"github.com/mindspark-ai/mindspark-go/internal/assistant"
	"github.com/mindspark-ai/mindspark-go/internal/config"
	"github.com/mindspark-ai/mindspark-go/internal/gallery"
	"github.com/mindspark-ai/mindspark-go/internal/metrics"
	"github.com/mindspark-ai/mindspark-go/internal/ui"
	"github.com/mindspark-ai/mindspark-go/internal/version"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/output"
	"github.com/mindspark-ai/mindspark-go/pkg/audio/playback"
)

var (
	configPath  = flag.String("config", "", "YAML config file (optional)")
	logFile     = flag.String("log-file", "", "Log file path (default from config: mindspark.log)")
	voice       = flag.String("voice", "", "Speech voice: Puck, Charon, Kore, Fenrir or Zephyr")
	aspect      = flag.String("aspect", "", "Image aspect ratio: 1:1, 3:4, 4:3, 9:16 or 16:9")
	volume      = flag.Int("volume", -1, "Playback volume 0-100")
	attach      = flag.String("attach", "", "Image file to attach to a chat prompt")
	saveWAV     = flag.String("save-wav", "", "Directory to also write synthesized speech as WAV")
	outputDir   = flag.String("output-dir", "", "Directory for generated images")
	metricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address")
	timeout     = flag.Duration("timeout", 0, "Per-request timeout (0 = none)")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `Usage:
  mindspark [flags]                 start the interactive TUI
  mindspark [flags] chat <prompt>   ask one question
  mindspark [flags] image <prompt>  generate one image
  mindspark [flags] speak <text>    speak text aloud

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid flags: %v", err)
	}

	command, args := "", flag.Args()
	if len(args) > 0 {
		command, args = args[0], args[1:]
	}
	useTUI := command == ""

	// Set up logging
	f, err := os.OpenFile(cfg.LogFile, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Fatalf("error opening log file: %v", err)
	}
	defer func() { _ = f.Close() }()

	if useTUI {
		// TUI mode: log only to file
		log.SetOutput(f)
	} else {
		// Command mode: log to file, results go to stdout
		log.SetOutput(io.MultiWriter(os.Stderr, f))
	}
	log.Printf("Starting %s", version.String())

	if err := cfg.RequireAPIKey(); err != nil {
		log.Fatalf("%v", err)
	}

	m := metrics.New(nil)
	if cfg.MetricsAddr != "" {
		srv, err := m.Serve(cfg.MetricsAddr)
		if err != nil {
			log.Fatalf("Failed to start metrics server: %v", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := assistant.New(ctx, cfg.APIKey, assistant.Config{
		ChatModel:   cfg.Models.Chat,
		ImageModel:  cfg.Models.Image,
		SpeechModel: cfg.Models.Speech,
		Observer:    m,
	})
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	store, err := gallery.NewStore(cfg.Image.OutputDir)
	if err != nil {
		log.Fatalf("Failed to open gallery: %v", err)
	}

	// Audio is only opened when something may play
	var device *output.Oto
	audioReady := false
	if useTUI || command == "speak" {
		device = output.NewOto()
		device.SetVolume(cfg.Playback.Volume)
		if err := device.Open(cfg.Speech.SampleRate, cfg.Speech.Channels); err != nil {
			log.Printf("Audio unavailable: %v", err)
		} else {
			audioReady = true
			defer device.Close()
		}
	}

	var player app.Player
	if device != nil {
		player = playback.NewScheduler(device)
	}

	assist, err := app.New(app.Config{
		SpeechFormat:   cfg.Speech.Format(),
		RequestTimeout: cfg.RequestTimeout,
		WAVDir:         *saveWAV,
	}, client, player, store, m)
	if err != nil {
		log.Fatalf("Failed to create assistant: %v", err)
	}

	if useTUI {
		opts := ui.Options{
			Volume:     cfg.Playback.Volume,
			Voice:      cfg.Speech.Voice,
			Aspect:     cfg.Image.AspectRatio,
			AudioReady: audioReady,
		}
		var volCtrl ui.VolumeControl
		if device != nil {
			volCtrl = device
		}
		if err := ui.Run(assist, volCtrl, opts); err != nil {
			log.Fatalf("TUI error: %v", err)
		}
		log.Printf("Stopped")
		return
	}

	if err := runCommand(ctx, assist, cfg, command, strings.Join(args, " ")); err != nil {
		log.Printf("%s failed: %v", command, err)
		stop()
		os.Exit(1)
	}
}

// applyFlags overlays explicitly set flags on the loaded config
func applyFlags(cfg *config.Config) {
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if *voice != "" {
		cfg.Speech.Voice = *voice
	}
	if *aspect != "" {
		cfg.Image.AspectRatio = *aspect
	}
	if *volume >= 0 {
		cfg.Playback.Volume = *volume
	}
	if *outputDir != "" {
		cfg.Image.OutputDir = *outputDir
	}
	if *metricsAddr != "" {
		cfg.MetricsAddr = *metricsAddr
	}
	if *timeout > 0 {
		cfg.RequestTimeout = *timeout
	}
}

// runCommand executes one chat, image or speak action
func runCommand(ctx context.Context, assist *app.Assistant, cfg *config.Config, command, text string) error {
	switch command {
	case "chat":
		var image *assistant.Attachment
		if *attach != "" {
			att, err := assistant.LoadAttachment(*attach)
			if err != nil {
				return err
			}
			image = att
		}
		reply, err := assist.Chat(ctx, text, image)
		if err != nil {
			return err
		}
		fmt.Println(reply)

	case "image":
		result, err := assist.Image(ctx, text, assistant.AspectRatio(cfg.Image.AspectRatio))
		if err != nil {
			return err
		}
		fmt.Println(result.Path)

	case "speak":
		result, err := assist.Speak(ctx, text, cfg.Speech.Voice, func(s app.Stage) {
			if s != app.StageDone {
				fmt.Fprintln(os.Stderr, s)
			}
		})
		if app.IsCancelled(err) {
			log.Printf("Playback stopped")
			return nil
		}
		if err != nil {
			return err
		}
		if result.WAVPath != "" {
			fmt.Println(result.WAVPath)
		}

	default:
		flag.Usage()
		return errors.New("unknown command " + command)
	}

	return nil
}
