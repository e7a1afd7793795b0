// Package engine implements the widget state machine: an explicit state
// type, a pure reducer and a runner that executes the reducer's side
// effects and feeds their results back as events.
package engine

import (
	"strconv"
	"time"

	"github.com/chatterloop/widget/internal/domain/models"
)

// Phase is the widget's top-level display state. Exactly one phase holds
// at any time.
type Phase string

const (
	PhaseClosed    Phase = "closed"
	PhasePreChat   Phase = "pre_chat"
	PhaseOpen      Phase = "open"
	PhaseMinimized Phase = "minimized"
)

// State is the complete widget state for one conversation. The reducer is
// the only writer; everything else treats it as a value.
type State struct {
	ChatbotID      string
	ConversationID string
	Config         models.ChatbotConfig
	Language       string

	Phase    Phase
	Messages []models.ChatMessage
	IsTyping bool

	UserMessageCount int

	Lead              models.LeadInfo
	LeadCaptured      bool
	LeadFormShowing   bool
	LeadFormDismissed bool

	PreChatError string
	Identity     *models.UserDetails

	WelcomeSeeded bool
}

// NewState builds the initial state for a widget session. The identity, if
// present, came from the session store and is already known to be valid.
func NewState(chatbotID, conversationID string, cfg models.ChatbotConfig, language string, identity *models.UserDetails) State {
	return State{
		ChatbotID:      chatbotID,
		ConversationID: conversationID,
		Config:         cfg,
		Language:       language,
		Phase:          PhaseClosed,
		Identity:       identity,
	}
}

// IsOpenState reports whether the widget occupies screen space beyond the
// launcher (used for the cross-frame status envelope).
func (s State) IsOpenState() bool {
	return s.Phase == PhaseOpen || s.Phase == PhaseMinimized || s.Phase == PhasePreChat
}

// preChatRequired reports whether the pre-chat form must gate the
// conversation: lead capture on, no valid identity, nothing captured yet.
func (s State) preChatRequired() bool {
	return s.Config.LeadCapture.IsEnabled() && s.Identity == nil && !s.LeadCaptured
}

func (s State) nextMessageID() string {
	// Deterministic IDs keep the reducer pure; uniqueness is per transcript.
	return messageID(len(s.Messages) + 1)
}

func messageID(n int) string {
	return "msg-" + strconv.Itoa(n)
}

// appendMessage returns a copy of the transcript with one more entry.
// Messages are immutable once appended.
func appendMessage(messages []models.ChatMessage, msg models.ChatMessage) []models.ChatMessage {
	out := make([]models.ChatMessage, len(messages), len(messages)+1)
	copy(out, messages)
	return append(out, msg)
}

func assistantMessage(id, content string, at time.Time) models.ChatMessage {
	return models.ChatMessage{ID: id, Role: models.RoleAssistant, Content: content, Timestamp: at}
}

func userMessage(id, content string, at time.Time) models.ChatMessage {
	return models.ChatMessage{ID: id, Role: models.RoleUser, Content: content, Timestamp: at}
}
