// ABOUTME: Image attachments for chat requests
// ABOUTME: Loads attachments from files or data URLs and checks they are images
package assistant

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"os"
	"strings"
)

// maxAttachmentBytes bounds inline image size
const maxAttachmentBytes = 20 << 20

// Attachment is an inline image sent with a chat prompt
type Attachment struct {
	Name     string
	Data     []byte
	MIMEType string
}

// LoadAttachment reads an image file from disk
func LoadAttachment(path string) (*Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}
	if info.Size() > maxAttachmentBytes {
		return nil, fmt.Errorf("attachment %s is too large (%d bytes)", path, info.Size())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment: %w", err)
	}

	return newAttachment(info.Name(), data)
}

// ParseDataURL decodes a "data:image/...;base64,..." URL into an attachment
func ParseDataURL(url string) (*Attachment, error) {
	header, encoded, ok := strings.Cut(url, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("invalid data URL")
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("invalid data URL payload: %w", err)
	}

	return newAttachment("upload", data)
}

func newAttachment(name string, data []byte) (*Attachment, error) {
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return nil, fmt.Errorf("%w: %s is %s", ErrUnsupportedAttachment, name, mime)
	}
	return &Attachment{Name: name, Data: data, MIMEType: mime}, nil
}
