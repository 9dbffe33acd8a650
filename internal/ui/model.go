// ABOUTME: Bubbletea model for the assistant TUI
// ABOUTME: Defines application state and update logic for the three modes
package ui

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/mindspark-ai/mindspark-go/internal/app"
	"github.com/mindspark-ai/mindspark-go/internal/assistant"
)

// Mode is one of the assistant's screens
type Mode int

const (
	ModeChat Mode = iota
	ModeImage
	ModeSpeech
)

var modes = []Mode{ModeChat, ModeImage, ModeSpeech}

// String returns the navigation label
func (m Mode) String() string {
	switch m {
	case ModeChat:
		return "Chat & Vision"
	case ModeImage:
		return "Image Generation"
	case ModeSpeech:
		return "Text to Speech"
	default:
		return "Unknown"
	}
}

// Transcript texts
const (
	WelcomeText   = "Hello! I'm powered by Gemini 2.5 Flash. I can answer questions, analyze images, and help you with tasks. How can I assist you today?"
	ClearedText   = "Chat cleared. How can I help you now?"
	ChatErrorText = "I'm sorry, I encountered an error processing your request. Please try again."
	AnalyzeText   = "Analyze this image."

	imageErrorText  = "Failed to generate image. Please try again."
	speechErrorText = "Could not generate or play speech."
)

// Role identifies who authored a chat message
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one transcript entry
type ChatMessage struct {
	ID         string
	Role       Role
	Text       string
	Attachment string
	IsError    bool
	Timestamp  time.Time
}

// Backend runs the assistant actions
type Backend interface {
	Chat(ctx context.Context, prompt string, image *assistant.Attachment) (string, error)
	Image(ctx context.Context, prompt string, aspect assistant.AspectRatio) (*app.ImageResult, error)
	Speak(ctx context.Context, text, voice string, progress func(app.Stage)) (*app.SpeechResult, error)
}

// VolumeControl adjusts the output device
type VolumeControl interface {
	SetVolume(volume int)
	SetMuted(muted bool)
}

// sender delivers messages from background work to the running program
type sender struct {
	send func(tea.Msg)
}

func (s *sender) Send(msg tea.Msg) {
	if s != nil && s.send != nil {
		s.send(msg)
	}
}

// Model represents the TUI state
type Model struct {
	backend Backend
	volCtrl VolumeControl
	sender  *sender

	// Navigation
	mode  Mode
	input string

	// Chat
	messages   []ChatMessage
	attachment *assistant.Attachment

	// Image
	aspectIdx int
	imagePath string
	imageMIME string

	// Speech
	voiceIdx  int
	stage     string
	lastSpeak time.Duration

	// Activity
	busy   bool
	cancel context.CancelFunc
	notice string

	// Playback
	volume     int
	muted      bool
	audioReady bool

	// Dimensions
	width  int
	height int
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case StatusMsg:
		m.applyStatus(msg)
	case chatReplyMsg:
		m.finishAction()
		if msg.err != nil {
			m.messages = append(m.messages, newMessage(RoleModel, ChatErrorText, true))
		} else {
			m.messages = append(m.messages, newMessage(RoleModel, msg.text, false))
		}
	case imageDoneMsg:
		m.finishAction()
		if msg.err != nil {
			m.notice = imageErrorText
		} else {
			m.imagePath = msg.result.Path
			m.imageMIME = msg.result.MIMEType
			m.notice = ""
		}
	case speechStageMsg:
		if m.busy {
			m.stage = msg.stage.String()
		}
	case speechDoneMsg:
		m.finishAction()
		m.stage = ""
		switch {
		case msg.err == nil:
			m.lastSpeak = msg.result.Duration
			m.notice = ""
		case app.IsCancelled(msg.err):
			m.notice = "Playback stopped."
		default:
			m.notice = speechErrorText
		}
	}

	return m, nil
}

// handleKey handles keyboard input
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit
	case "esc":
		if m.busy && m.cancel != nil {
			m.cancel()
			return m, nil
		}
		m.input = ""
	case "tab":
		m.setMode(modes[(int(m.mode)+1)%len(modes)])
	case "shift+tab":
		m.setMode(modes[(int(m.mode)+len(modes)-1)%len(modes)])
	case "f1":
		m.setMode(ModeChat)
	case "f2":
		m.setMode(ModeImage)
	case "f3":
		m.setMode(ModeSpeech)
	case "up":
		m.changeVolume(5)
	case "down":
		m.changeVolume(-5)
	case "ctrl+u":
		m.muted = !m.muted
		if m.volCtrl != nil {
			m.volCtrl.SetMuted(m.muted)
		}
	case "left":
		m.cycleOption(-1)
	case "right":
		m.cycleOption(1)
	case "backspace":
		if m.input != "" {
			_, size := utf8.DecodeLastRuneInString(m.input)
			m.input = m.input[:len(m.input)-size]
		}
	case "enter":
		return m.submit()
	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.input += string(msg.Runes)
		case tea.KeySpace:
			m.input += " "
		}
	}

	return m, nil
}

// setMode switches screens. Switching is allowed while an action runs.
func (m *Model) setMode(mode Mode) {
	m.mode = mode
	m.notice = ""
}

// changeVolume adjusts volume by delta in steps of 5
func (m *Model) changeVolume(delta int) {
	m.volume += delta
	if m.volume > 100 {
		m.volume = 100
	}
	if m.volume < 0 {
		m.volume = 0
	}
	if m.volCtrl != nil {
		m.volCtrl.SetVolume(m.volume)
	}
}

// cycleOption moves the selected aspect ratio or voice
func (m *Model) cycleOption(delta int) {
	if m.busy {
		return
	}
	switch m.mode {
	case ModeImage:
		n := len(assistant.AspectRatios)
		m.aspectIdx = (m.aspectIdx + delta + n) % n
	case ModeSpeech:
		n := len(assistant.Voices)
		m.voiceIdx = (m.voiceIdx + delta + n) % n
	}
}

// submit starts the action for the current mode
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.busy {
		return m, nil
	}

	text := strings.TrimSpace(m.input)

	switch m.mode {
	case ModeChat:
		if cmd, handled := m.chatCommand(text); handled {
			return m, cmd
		}
		if text == "" && m.attachment == nil {
			return m, nil
		}

		display := text
		if display == "" {
			display = AnalyzeText
		}
		userMsg := newMessage(RoleUser, display, false)
		if m.attachment != nil {
			userMsg.Attachment = m.attachment.Name
		}
		m.messages = append(m.messages, userMsg)

		ctx := m.startAction()
		cmd := chatCmd(ctx, m.backend, text, m.attachment)
		m.attachment = nil
		m.input = ""
		return m, cmd

	case ModeImage:
		if text == "" {
			return m, nil
		}
		ctx := m.startAction()
		m.imagePath = ""
		return m, imageCmd(ctx, m.backend, text, m.aspect())

	case ModeSpeech:
		if text == "" {
			return m, nil
		}
		ctx := m.startAction()
		m.stage = app.StageGenerating.String()
		return m, speakCmd(ctx, m.backend, text, m.voice(), m.sender)
	}

	return m, nil
}

// chatCommand handles /clear, /attach and /detach
func (m *Model) chatCommand(text string) (tea.Cmd, bool) {
	cmd, arg, _ := strings.Cut(text, " ")
	switch cmd {
	case "/clear":
		m.messages = []ChatMessage{newMessage(RoleModel, ClearedText, false)}
		m.attachment = nil
	case "/attach":
		att, err := assistant.LoadAttachment(strings.TrimSpace(arg))
		if err != nil {
			m.notice = err.Error()
		} else {
			m.attachment = att
			m.notice = ""
		}
	case "/detach":
		m.attachment = nil
	default:
		return nil, false
	}
	m.input = ""
	return nil, true
}

// startAction marks the model busy and returns the action's context
func (m *Model) startAction() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	m.busy = true
	m.cancel = cancel
	m.notice = ""
	return ctx
}

// finishAction releases the action's context
func (m *Model) finishAction() {
	if m.cancel != nil {
		m.cancel()
	}
	m.busy = false
	m.cancel = nil
}

func (m Model) aspect() assistant.AspectRatio {
	return assistant.AspectRatios[m.aspectIdx]
}

func (m Model) voice() string {
	return assistant.Voices[m.voiceIdx]
}

// applyStatus updates model from status message
func (m *Model) applyStatus(msg StatusMsg) {
	if msg.AudioReady != nil {
		m.audioReady = *msg.AudioReady
	}
	if msg.Volume != nil {
		m.volume = *msg.Volume
	}
	if msg.Notice != "" {
		m.notice = msg.Notice
	}
}

// StatusMsg updates TUI state from outside the program
type StatusMsg struct {
	AudioReady *bool
	Volume     *int
	Notice     string
}

func newMessage(role Role, text string, isError bool) ChatMessage {
	return ChatMessage{
		ID:        uuid.NewString(),
		Role:      role,
		Text:      text,
		IsError:   isError,
		Timestamp: time.Now(),
	}
}
