package views

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"cardapio/internal/domain"
	"cardapio/internal/ports"
)

// MessageTTL is how long a notification stays on screen
const MessageTTL = 4 * time.Second

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool

	messageSeq int
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
	s.messageSeq++
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// Notify shows a notification as the current message
func (s *ViewState) Notify(n ports.Notification) {
	s.SetMessage(n.Message, n.Level == ports.NotifyFailure)
}

// expireMessage clears the current message after MessageTTL unless a newer
// one replaced it in the meantime
func (s *ViewState) expireMessage(owner int) tea.Cmd {
	seq := s.messageSeq
	return tea.Tick(MessageTTL, func(time.Time) tea.Msg {
		return messageExpiredMsg{owner: owner, seq: seq}
	})
}

func (s *ViewState) handleExpired(msg messageExpiredMsg) {
	if msg.seq == s.messageSeq {
		s.ClearMessage()
	}
}

type messageExpiredMsg struct {
	owner int
	seq   int
}

// Messages for view switching
type SwitchKindMsg struct {
	Kind domain.Kind
}

type SwitchToHelpMsg struct{}

type SwitchToListMsg struct{}
