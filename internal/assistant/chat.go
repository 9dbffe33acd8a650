// ABOUTME: Chat and vision requests
// ABOUTME: Sends one prompt with an optional inline image and returns the reply text
package assistant

import (
	"context"
	"strings"

	"google.golang.org/genai"
)

// NoResponseText is the reply used when the model returns no text
const NoResponseText = "No response text generated."

// Chat sends a single-turn prompt, optionally with one image, and returns the reply
func (c *Client) Chat(ctx context.Context, prompt string, image *Attachment) (string, error) {
	if strings.TrimSpace(prompt) == "" && image == nil {
		return "", ErrEmptyPrompt
	}

	parts := make([]*genai.Part, 0, 2)
	if image != nil {
		parts = append(parts, genai.NewPartFromBytes(image.Data, image.MIMEType))
	}
	if strings.TrimSpace(prompt) != "" {
		parts = append(parts, genai.NewPartFromText(prompt))
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.generate(ctx, "chat", c.config.ChatModel, contents, nil)
	if err != nil {
		return "", err
	}

	text := responseText(resp)
	if text == "" {
		return NoResponseText, nil
	}
	return text, nil
}

// responseText joins the non-thought text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) string {
	var sb strings.Builder
	for _, part := range firstParts(resp) {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	return sb.String()
}
