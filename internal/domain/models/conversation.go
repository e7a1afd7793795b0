package models

import "time"

// MessageRole identifies who authored a transcript entry.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatMessage is one immutable entry in the conversation transcript.
// Insertion order is significant; messages are never rolled back.
type ChatMessage struct {
	ID              string      `json:"id"`
	Role            MessageRole `json:"role"`
	Content         string      `json:"content"`
	Timestamp       time.Time   `json:"timestamp"`
	ResponseOptions []string    `json:"responseOptions,omitempty"`
	Links           []Link      `json:"links,omitempty"`
}

// Link is a clickable reference attached to an assistant message.
type Link struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// LeadInfo accumulates contact fragments detected or submitted during a
// conversation. Later non-empty fields overwrite earlier ones; previously
// captured fields are never lost.
type LeadInfo struct {
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

// HasContact reports whether the lead carries at least an email or phone,
// the minimum for a capture call to be worth firing.
func (l LeadInfo) HasContact() bool {
	return l.Email != "" || l.Phone != ""
}

// IsEmpty reports whether no field has been filled yet.
func (l LeadInfo) IsEmpty() bool {
	return l.Name == "" && l.Email == "" && l.Phone == "" && l.Message == ""
}

// UserDetails is the pre-chat identity persisted per chatbot. It is valid
// for 24 hours from capture and discarded afterwards.
type UserDetails struct {
	Name       string    `json:"name" bson:"name"`
	Phone      string    `json:"phone" bson:"phone"`
	CapturedAt time.Time `json:"timestamp" bson:"captured_at"`
}

// UserDetailsTTL bounds how long a persisted pre-chat identity stays valid.
const UserDetailsTTL = 24 * time.Hour

// ExpiredAt reports whether the details are stale at the given instant.
func (u UserDetails) ExpiredAt(now time.Time) bool {
	return now.Sub(u.CapturedAt) > UserDetailsTTL
}

// CapturedLead is the record persisted whenever contact details are captured,
// regardless of the path that produced them.
type CapturedLead struct {
	ChatbotID      string    `json:"chatbotId" bson:"chatbot_id"`
	ConversationID string    `json:"conversationId" bson:"conversation_id"`
	Name           string    `json:"name,omitempty" bson:"name,omitempty"`
	Email          string    `json:"email,omitempty" bson:"email,omitempty"`
	Phone          string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Message        string    `json:"message,omitempty" bson:"message,omitempty"`
	Source         string    `json:"source" bson:"source"`
	CapturedAt     time.Time `json:"capturedAt" bson:"captured_at"`
}

// Lead capture sources as sent to the platform API.
const (
	LeadSourcePreChat      = "pre-chat-form"
	LeadSourceConversation = "conversation"
	LeadSourceForm         = "lead-form"
)

// WidgetStatus is the envelope posted to the embedding page whenever the
// open/minimize state changes, so the host iframe can resize itself.
type WidgetStatus struct {
	Type        string `json:"type"` // always "widget-status"
	IsOpen      bool   `json:"isOpen"`
	IsMinimized bool   `json:"isMinimized"`
}

// NewWidgetStatus builds the cross-frame status envelope.
func NewWidgetStatus(isOpen, isMinimized bool) WidgetStatus {
	return WidgetStatus{Type: "widget-status", IsOpen: isOpen, IsMinimized: isMinimized}
}
