// ABOUTME: Base64 payload decoder
// ABOUTME: Decodes standard base64 speech payloads to raw PCM bytes
package decode

import (
	"encoding/base64"
	"fmt"

	"github.com/mindspark-ai/mindspark-go/pkg/audio"
)

// Base64 decodes a standard, padded base64 payload into raw bytes
func Base64(payload audio.Payload) ([]byte, error) {
	data, err := base64.StdEncoding.Strict().DecodeString(string(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 payload: %v", audio.ErrMalformedEncoding, err)
	}
	return data, nil
}
