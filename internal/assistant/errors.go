// ABOUTME: Remote call error types
// ABOUTME: Wraps API failures once at the orchestrator boundary
package assistant

import (
	"errors"
	"fmt"
)

var (
	// ErrRemote marks any failure of a remote generative call
	ErrRemote = errors.New("remote request failed")

	// ErrEmptyPrompt is returned when there is nothing to send
	ErrEmptyPrompt = errors.New("prompt is empty")

	// ErrNoImage is returned when an image response carries no inline data
	ErrNoImage = errors.New("no image data found in response")

	// ErrNoAudio is returned when a speech response carries no audio
	ErrNoAudio = errors.New("no audio data generated")

	// ErrUnsupportedAttachment is returned for attachments that are not images
	ErrUnsupportedAttachment = errors.New("attachment is not an image")
)

// RequestError describes a failed remote call
type RequestError struct {
	Op    string
	Model string
	Err   error
}

// Error implements the error interface
func (e *RequestError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Op, e.Model, e.Err)
}

// Unwrap exposes both ErrRemote and the underlying cause
func (e *RequestError) Unwrap() []error {
	return []error{ErrRemote, e.Err}
}
