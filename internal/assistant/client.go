// ABOUTME: Gemini API client for chat, image generation and speech synthesis
// ABOUTME: Builds request payloads, calls the remote models and unwraps responses
package assistant

import (
	"context"
	"fmt"
	"log"
	"time"

	"google.golang.org/genai"
)

// Default model names
const (
	DefaultChatModel   = "gemini-2.5-flash"
	DefaultImageModel  = "gemini-2.5-flash-image"
	DefaultSpeechModel = "gemini-2.5-flash-preview-tts"
)

// Models is the subset of the genai models service the client uses
type Models interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Observer receives the outcome of every remote call
type Observer interface {
	ObserveRequest(op string, duration time.Duration, err error)
}

// Config holds client configuration
type Config struct {
	ChatModel   string
	ImageModel  string
	SpeechModel string
	Observer    Observer
}

// Client wraps the three remote operations
type Client struct {
	models Models
	config Config
}

// New creates a client backed by the Gemini API
func New(ctx context.Context, apiKey string, config Config) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return NewWithModels(gc.Models, config), nil
}

// NewWithModels creates a client on top of an existing models service
func NewWithModels(models Models, config Config) *Client {
	if config.ChatModel == "" {
		config.ChatModel = DefaultChatModel
	}
	if config.ImageModel == "" {
		config.ImageModel = DefaultImageModel
	}
	if config.SpeechModel == "" {
		config.SpeechModel = DefaultSpeechModel
	}

	return &Client{
		models: models,
		config: config,
	}
}

// generate issues one request and wraps failures in a RequestError
func (c *Client) generate(ctx context.Context, op, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	start := time.Now()
	log.Printf("%s request: model=%s", op, model)

	resp, err := c.models.GenerateContent(ctx, model, contents, config)
	if err == nil && resp == nil {
		err = fmt.Errorf("empty response")
	}

	if c.config.Observer != nil {
		c.config.Observer.ObserveRequest(op, time.Since(start), err)
	}

	if err != nil {
		log.Printf("%s error: %v", op, err)
		return nil, &RequestError{Op: op, Model: model, Err: err}
	}

	log.Printf("%s response in %v", op, time.Since(start).Round(time.Millisecond))
	return resp, nil
}

// firstParts returns the parts of the first candidate, if any
func firstParts(resp *genai.GenerateContentResponse) []*genai.Part {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	cand := resp.Candidates[0]
	if cand == nil || cand.Content == nil {
		return nil
	}
	return cand.Content.Parts
}
