// ABOUTME: TUI initialization and control
// ABOUTME: Wraps the bubbletea program for the assistant UI
package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindspark-ai/mindspark-go/internal/assistant"
)

// Options configures a new model
type Options struct {
	Volume     int
	Voice      string
	Aspect     string
	AudioReady bool
}

// NewModel creates a new TUI model
func NewModel(backend Backend, volCtrl VolumeControl, opts Options) Model {
	m := Model{
		backend:    backend,
		volCtrl:    volCtrl,
		sender:     &sender{},
		mode:       ModeChat,
		messages:   []ChatMessage{newMessage(RoleModel, WelcomeText, false)},
		volume:     opts.Volume,
		audioReady: opts.AudioReady,
	}

	for i, v := range assistant.Voices {
		if v == opts.Voice {
			m.voiceIdx = i
		}
	}
	for i, r := range assistant.AspectRatios {
		if string(r) == opts.Aspect {
			m.aspectIdx = i
		}
	}

	return m
}

// Program is a running TUI
type Program struct {
	program *tea.Program
}

// New creates the bubbletea program
func New(backend Backend, volCtrl VolumeControl, opts Options) *Program {
	model := NewModel(backend, volCtrl, opts)
	p := tea.NewProgram(model, tea.WithAltScreen())
	model.sender.send = p.Send
	return &Program{program: p}
}

// Run starts a TUI and blocks until the user quits
func Run(backend Backend, volCtrl VolumeControl, opts Options) error {
	return New(backend, volCtrl, opts).Run()
}

// Run blocks until the user quits
func (p *Program) Run() error {
	_, err := p.program.Run()
	return err
}

// Send delivers a message to the running program
func (p *Program) Send(msg tea.Msg) {
	p.program.Send(msg)
}

// Quit stops the program
func (p *Program) Quit() {
	p.program.Quit()
}
