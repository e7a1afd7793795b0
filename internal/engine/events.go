package engine

import (
	"time"

	"github.com/chatterloop/widget/internal/domain/models"
)

// Event is a user action, timer expiry or network completion fed into the
// reducer. Events are values; the reducer never mutates them.
type Event interface {
	isEvent()
}

// SessionStarted is dispatched once when the widget session is created.
type SessionStarted struct{}

// OpenRequested is the visitor clicking the floating launcher.
type OpenRequested struct{}

// CloseRequested is the explicit close action from any visible phase.
type CloseRequested struct{}

// MinimizeToggled is the header click toggling Open and Minimized.
type MinimizeToggled struct{}

// AutoOpenFired is the auto-open timer expiring.
type AutoOpenFired struct{}

// PreChatSubmitted carries the pre-chat form fields.
type PreChatSubmitted struct {
	Name  string
	Phone string
}

// MessageSubmitted is the visitor sending free text.
type MessageSubmitted struct {
	Text string
}

// OptionClicked is a click on a message's response option; it behaves as if
// the visitor typed that exact string and permanently clears the options on
// the source message.
type OptionClicked struct {
	MessageID string
	Option    string
}

// SendCompleted is the result of an in-flight message send.
type SendCompleted struct {
	Response        string
	ResponseOptions []string
	Links           []models.Link
	Failed          bool
}

// LeadFormSubmitted carries the lead-capture form fields.
type LeadFormSubmitted struct {
	Name  string
	Email string
	Phone string
}

// LeadFormDismissed is the visitor declining the lead form.
type LeadFormDismissed struct{}

// LanguageChanged is a language-switcher selection.
type LanguageChanged struct {
	Language string
}

func (SessionStarted) isEvent()    {}
func (OpenRequested) isEvent()     {}
func (CloseRequested) isEvent()    {}
func (MinimizeToggled) isEvent()   {}
func (AutoOpenFired) isEvent()     {}
func (PreChatSubmitted) isEvent()  {}
func (MessageSubmitted) isEvent()  {}
func (OptionClicked) isEvent()     {}
func (SendCompleted) isEvent()     {}
func (LeadFormSubmitted) isEvent() {}
func (LeadFormDismissed) isEvent() {}
func (LanguageChanged) isEvent()   {}

// Command is a side effect the reducer asks the runner to perform. Results
// come back as events.
type Command interface {
	isCommand()
}

// SendMessageCommand dispatches the visitor's text to the platform.
type SendMessageCommand struct {
	Text string
}

// CaptureLeadCommand fires a non-blocking lead-capture call.
type CaptureLeadCommand struct {
	Lead   models.LeadInfo
	Source string
}

// SaveIdentityCommand persists the pre-chat identity.
type SaveIdentityCommand struct {
	Details models.UserDetails
}

// ArmAutoOpenCommand schedules the auto-open timer, armed once per session.
type ArmAutoOpenCommand struct {
	Delay time.Duration
}

// CancelAutoOpenCommand stops a pending auto-open timer.
type CancelAutoOpenCommand struct{}

// PublishStatusCommand emits the cross-frame widget-status envelope.
type PublishStatusCommand struct {
	Status models.WidgetStatus
}

func (SendMessageCommand) isCommand()    {}
func (CaptureLeadCommand) isCommand()    {}
func (SaveIdentityCommand) isCommand()   {}
func (ArmAutoOpenCommand) isCommand()    {}
func (CancelAutoOpenCommand) isCommand() {}
func (PublishStatusCommand) isCommand()  {}
