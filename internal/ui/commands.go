// ABOUTME: Background commands for assistant actions
// ABOUTME: Runs backend calls off the update loop and reports results as messages
package ui

import (
	"context"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindspark-ai/mindspark-go/internal/app"
	"github.com/mindspark-ai/mindspark-go/internal/assistant"
)

type chatReplyMsg struct {
	text string
	err  error
}

type imageDoneMsg struct {
	result *app.ImageResult
	err    error
}

type speechStageMsg struct {
	stage app.Stage
}

type speechDoneMsg struct {
	result *app.SpeechResult
	err    error
}

func chatCmd(ctx context.Context, backend Backend, prompt string, image *assistant.Attachment) tea.Cmd {
	return func() tea.Msg {
		text, err := backend.Chat(ctx, prompt, image)
		if err != nil {
			log.Printf("Chat failed: %v", err)
		}
		return chatReplyMsg{text: text, err: err}
	}
}

func imageCmd(ctx context.Context, backend Backend, prompt string, aspect assistant.AspectRatio) tea.Cmd {
	return func() tea.Msg {
		result, err := backend.Image(ctx, prompt, aspect)
		if err != nil {
			log.Printf("Image generation failed: %v", err)
		}
		return imageDoneMsg{result: result, err: err}
	}
}

func speakCmd(ctx context.Context, backend Backend, text, voice string, s *sender) tea.Cmd {
	return func() tea.Msg {
		result, err := backend.Speak(ctx, text, voice, func(stage app.Stage) {
			s.Send(speechStageMsg{stage: stage})
		})
		if err != nil && !app.IsCancelled(err) {
			log.Printf("Speech failed: %v", err)
		}
		return speechDoneMsg{result: result, err: err}
	}
}
