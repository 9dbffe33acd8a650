// ABOUTME: Speech synthesis requests
// ABOUTME: Synthesizes text with a prebuilt voice and returns a base64 PCM payload
package assistant

import (
	"context"
	"encoding/base64"
	"strings"

	"github.com/mindspark-ai/mindspark-go/pkg/audio"
	"google.golang.org/genai"
)

// Prebuilt voices offered for synthesis
var Voices = []string{"Puck", "Charon", "Kore", "Fenrir", "Zephyr"}

// DefaultVoice is the voice used when none is selected
const DefaultVoice = "Kore"

// Synthesize converts text to speech. The payload is 24kHz mono s16le PCM
// in standard base64.
func (c *Client) Synthesize(ctx context.Context, text, voice string) (audio.Payload, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyPrompt
	}
	if voice == "" {
		voice = DefaultVoice
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(text)}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityAudio)},
		SpeechConfig: &genai.SpeechConfig{
			VoiceConfig: &genai.VoiceConfig{
				PrebuiltVoiceConfig: &genai.PrebuiltVoiceConfig{
					VoiceName: voice,
				},
			},
		},
	}

	resp, err := c.generate(ctx, "speech", c.config.SpeechModel, contents, config)
	if err != nil {
		return "", err
	}

	parts := firstParts(resp)
	if len(parts) == 0 || parts[0] == nil || parts[0].InlineData == nil || len(parts[0].InlineData.Data) == 0 {
		return "", &RequestError{Op: "speech", Model: c.config.SpeechModel, Err: ErrNoAudio}
	}

	// The SDK hands back decoded bytes; the pipeline contract is base64 text
	return audio.Payload(base64.StdEncoding.EncodeToString(parts[0].InlineData.Data)), nil
}

// KnownVoice reports whether voice is one of the offered voices
func KnownVoice(voice string) bool {
	for _, v := range Voices {
		if strings.EqualFold(v, voice) {
			return true
		}
	}
	return false
}
