// ABOUTME: Application configuration loading and validation
// ABOUTME: Layers defaults, an optional YAML file, .env and environment variables
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mindspark-ai/mindspark-go/internal/assistant"
	"github.com/mindspark-ai/mindspark-go/pkg/audio"
)

// Config represents the complete application configuration
type Config struct {
	APIKey         string         `yaml:"-"`
	Models         ModelsConfig   `yaml:"models"`
	Speech         SpeechConfig   `yaml:"speech"`
	Image          ImageConfig    `yaml:"image"`
	Playback       PlaybackConfig `yaml:"playback"`
	RequestTimeout time.Duration  `yaml:"request_timeout"`
	MetricsAddr    string         `yaml:"metrics_addr"`
	LogFile        string         `yaml:"log_file"`
}

// ModelsConfig names the remote models used for each mode
type ModelsConfig struct {
	Chat   string `yaml:"chat"`
	Image  string `yaml:"image"`
	Speech string `yaml:"speech"`
}

// SpeechConfig contains speech synthesis parameters
type SpeechConfig struct {
	Voice      string `yaml:"voice"`
	SampleRate int    `yaml:"sample_rate"`
	Channels   int    `yaml:"channels"`
}

// ImageConfig contains image generation parameters
type ImageConfig struct {
	AspectRatio string `yaml:"aspect_ratio"`
	OutputDir   string `yaml:"output_dir"`
}

// PlaybackConfig contains output device parameters
type PlaybackConfig struct {
	Volume int `yaml:"volume"` // 0-100
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Models: ModelsConfig{
			Chat:   assistant.DefaultChatModel,
			Image:  assistant.DefaultImageModel,
			Speech: assistant.DefaultSpeechModel,
		},
		Speech: SpeechConfig{
			Voice:      assistant.DefaultVoice,
			SampleRate: audio.SpeechFormat.SampleRate,
			Channels:   audio.SpeechFormat.Channels,
		},
		Image: ImageConfig{
			AspectRatio: string(assistant.AspectSquare),
			OutputDir:   "mindspark-gallery",
		},
		Playback: PlaybackConfig{
			Volume: 100,
		},
		LogFile: "mindspark.log",
	}
}

// Load builds the configuration. An empty path skips the YAML layer.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}
	config.applyEnv()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// applyEnv overlays environment variables
func (c *Config) applyEnv() {
	c.APIKey = getEnv("GEMINI_API_KEY", getEnv("API_KEY", c.APIKey))
	c.Speech.Voice = getEnv("MINDSPARK_VOICE", c.Speech.Voice)
	c.Image.OutputDir = getEnv("MINDSPARK_OUTPUT_DIR", c.Image.OutputDir)
	c.MetricsAddr = getEnv("MINDSPARK_METRICS_ADDR", c.MetricsAddr)

	if v := os.Getenv("MINDSPARK_VOLUME"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Playback.Volume = n
		}
	}
}

// RequireAPIKey reports an error when no API key was configured
func (c *Config) RequireAPIKey() error {
	if c.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY (or API_KEY) must be set")
	}
	return nil
}

// Validate checks every section
func (c *Config) Validate() error {
	if err := c.Models.Validate(); err != nil {
		return fmt.Errorf("models config: %w", err)
	}

	if err := c.Speech.Validate(); err != nil {
		return fmt.Errorf("speech config: %w", err)
	}

	if err := c.Image.Validate(); err != nil {
		return fmt.Errorf("image config: %w", err)
	}

	if err := c.Playback.Validate(); err != nil {
		return fmt.Errorf("playback config: %w", err)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout cannot be negative, got %v", c.RequestTimeout)
	}

	return nil
}

// Validate validates model names
func (m *ModelsConfig) Validate() error {
	if m.Chat == "" || m.Image == "" || m.Speech == "" {
		return fmt.Errorf("chat, image and speech models must all be set")
	}
	return nil
}

// Validate validates speech configuration
func (s *SpeechConfig) Validate() error {
	if s.Voice == "" {
		return fmt.Errorf("voice cannot be empty")
	}

	format := audio.Format{SampleRate: s.SampleRate, Channels: s.Channels, BitDepth: 16}
	if err := format.Validate(); err != nil {
		return err
	}

	return nil
}

// Format returns the PCM format of synthesized speech
func (s *SpeechConfig) Format() audio.Format {
	return audio.Format{SampleRate: s.SampleRate, Channels: s.Channels, BitDepth: 16}
}

// Validate validates image configuration
func (i *ImageConfig) Validate() error {
	if !assistant.AspectRatio(i.AspectRatio).Valid() {
		return fmt.Errorf("unsupported aspect_ratio %q", i.AspectRatio)
	}
	if i.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	return nil
}

// Validate validates playback configuration
func (p *PlaybackConfig) Validate() error {
	if p.Volume < 0 || p.Volume > 100 {
		return fmt.Errorf("volume must be between 0 and 100, got %d", p.Volume)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
