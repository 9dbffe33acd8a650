// ABOUTME: Image generation requests
// ABOUTME: Generates one image from a prompt at a chosen aspect ratio
package assistant

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// AspectRatio is an image aspect ratio accepted by the image model
type AspectRatio string

const (
	AspectSquare    AspectRatio = "1:1"
	AspectPortrait  AspectRatio = "3:4"
	AspectLandscape AspectRatio = "4:3"
	AspectTall      AspectRatio = "9:16"
	AspectWide      AspectRatio = "16:9"
)

// AspectRatios lists the supported ratios in display order
var AspectRatios = []AspectRatio{AspectSquare, AspectWide, AspectPortrait, AspectLandscape, AspectTall}

// Valid reports whether r is a supported ratio
func (r AspectRatio) Valid() bool {
	for _, known := range AspectRatios {
		if r == known {
			return true
		}
	}
	return false
}

// Image is a generated image
type Image struct {
	Data     []byte
	MIMEType string
}

// GenerateImage creates an image from prompt
func (c *Client) GenerateImage(ctx context.Context, prompt string, aspect AspectRatio) (*Image, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}
	if aspect == "" {
		aspect = AspectSquare
	}
	if !aspect.Valid() {
		return nil, fmt.Errorf("unsupported aspect ratio %q", aspect)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(prompt)}, genai.RoleUser),
	}
	config := &genai.GenerateContentConfig{
		ImageConfig: &genai.ImageConfig{
			AspectRatio: string(aspect),
		},
	}

	resp, err := c.generate(ctx, "image", c.config.ImageModel, contents, config)
	if err != nil {
		return nil, err
	}

	for _, part := range firstParts(resp) {
		if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
			mime := part.InlineData.MIMEType
			if mime == "" {
				mime = "image/png"
			}
			return &Image{Data: part.InlineData.Data, MIMEType: mime}, nil
		}
	}

	return nil, &RequestError{Op: "image", Model: c.config.ImageModel, Err: ErrNoImage}
}
