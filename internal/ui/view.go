// ABOUTME: Rendering for the assistant TUI
// ABOUTME: Draws navigation, the active mode's screen and the help line
package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindspark-ai/mindspark-go/internal/assistant"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("250"))

	activeStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("99")).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	faintStyle = lipgloss.NewStyle().Faint(true)
)

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.renderNavigation())
	b.WriteString("\n\n")

	switch m.mode {
	case ModeChat:
		b.WriteString(m.renderChat())
	case ModeImage:
		b.WriteString(m.renderImage())
	case ModeSpeech:
		b.WriteString(m.renderSpeech())
	}

	b.WriteString("\n")
	b.WriteString(m.renderInput())
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(errorStyle.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.renderHelp())

	return b.String()
}

// renderNavigation renders the app title, mode tabs and status
func (m Model) renderNavigation() string {
	tabs := make([]string, 0, len(modes))
	for i, mode := range modes {
		label := fmt.Sprintf("F%d %s", i+1, mode)
		if mode == m.mode {
			tabs = append(tabs, activeStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}

	muteIcon := ""
	if m.muted {
		muteIcon = " (muted)"
	}
	audio := "no audio"
	if m.audioReady {
		audio = fmt.Sprintf("vol [%s] %d%%%s", renderBar(m.volume, 100, 10), m.volume, muteIcon)
	}

	return titleStyle.Render("MindSpark") + "  " +
		strings.Join(tabs, " ") + "  " +
		faintStyle.Render("Gemini 2.5 Active · "+audio)
}

// renderChat renders the transcript, newest messages last
func (m Model) renderChat() string {
	width := m.contentWidth()

	lines := make([]string, 0, len(m.messages))
	for _, msg := range m.messages {
		prefix := "Gemini: "
		style := valueStyle
		if msg.Role == RoleUser {
			prefix = "You: "
			style = userStyle
		}
		if msg.IsError {
			style = errorStyle
		}

		text := msg.Text
		if msg.Attachment != "" {
			text = fmt.Sprintf("[image: %s] %s", msg.Attachment, text)
		}
		lines = append(lines, style.Render(truncate(prefix+text, width)))
	}

	if m.busy {
		lines = append(lines, faintStyle.Render("Gemini is thinking..."))
	}

	// Keep the tail visible
	if limit := m.transcriptHeight(); len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}

	s := strings.Join(lines, "\n") + "\n"
	if m.attachment != nil {
		s += headerStyle.Render("Attached: ") + valueStyle.Render(m.attachment.Name) + "\n"
	}
	return s
}

// renderImage renders aspect ratio selection and the last result
func (m Model) renderImage() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Image Generator"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render("Aspect ratio: "))
	for i, r := range assistant.AspectRatios {
		if i == m.aspectIdx {
			b.WriteString(activeStyle.Render(string(r)))
		} else {
			b.WriteString(tabStyle.Render(string(r)))
		}
	}
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString(faintStyle.Render("Generating..."))
	case m.imagePath != "":
		b.WriteString(headerStyle.Render("Saved: "))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%s (%s)", filepath.Clean(m.imagePath), m.imageMIME)))
	default:
		b.WriteString(faintStyle.Render("Your imagination appears here."))
	}
	b.WriteString("\n")
	return b.String()
}

// renderSpeech renders voice selection and playback state
func (m Model) renderSpeech() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Text to Speech"))
	b.WriteString("\n\n")
	b.WriteString(headerStyle.Render("Voice: "))
	for i, v := range assistant.Voices {
		if i == m.voiceIdx {
			b.WriteString(activeStyle.Render(v))
		} else {
			b.WriteString(tabStyle.Render(v))
		}
	}
	b.WriteString("\n\n")

	switch {
	case m.busy:
		b.WriteString(faintStyle.Render(m.stage))
	case m.lastSpeak > 0:
		b.WriteString(valueStyle.Render(fmt.Sprintf("Played %.1fs of audio", m.lastSpeak.Seconds())))
	default:
		b.WriteString(faintStyle.Render("Enter text and press enter to speak."))
	}
	b.WriteString("\n")
	return b.String()
}

// renderInput renders the prompt line
func (m Model) renderInput() string {
	placeholder := map[Mode]string{
		ModeChat:   "Ask anything, or /attach <path>",
		ModeImage:  "A futuristic city on Mars, neon lights, cinematic style...",
		ModeSpeech: "Type something to say...",
	}[m.mode]

	if m.input == "" {
		return "> " + faintStyle.Render(placeholder)
	}
	return "> " + m.input + "█"
}

// renderHelp renders keyboard shortcuts
func (m Model) renderHelp() string {
	help := "tab/F1-F3:Mode  ↑/↓:Volume  ctrl+u:Mute  esc:Cancel  ctrl+c:Quit"
	switch m.mode {
	case ModeImage:
		help = "←/→:Aspect  " + help
	case ModeSpeech:
		help = "←/→:Voice  " + help
	case ModeChat:
		help = "/clear  " + help
	}
	return faintStyle.Render(help)
}

func (m Model) contentWidth() int {
	if m.width < 20 {
		return 80
	}
	return m.width
}

func (m Model) transcriptHeight() int {
	if m.height < 12 {
		return 10
	}
	return m.height - 8
}

// Utility functions
func renderBar(value, max, width int) string {
	filled := (value * width) / max
	bar := ""
	for i := 0; i < width; i++ {
		if i < filled {
			bar += "█"
		} else {
			bar += "░"
		}
	}
	return bar
}

func truncate(s string, length int) string {
	if len(s) <= length {
		return s
	}
	return s[:length-3] + "..."
}
