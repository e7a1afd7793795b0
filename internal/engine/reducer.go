package engine

import (
	"strings"
	"time"

	"github.com/chatterloop/widget/internal/businesshours"
	"github.com/chatterloop/widget/internal/domain/models"
	"github.com/chatterloop/widget/internal/i18n"
	"github.com/chatterloop/widget/internal/leaddetect"
)

// Reduce applies one event to the state and returns the next state together
// with the side effects to perform. It is pure: the same (state, event, now)
// always yields the same result, and the input state is never mutated.
func Reduce(s State, ev Event, now time.Time) (State, []Command) {
	switch e := ev.(type) {
	case SessionStarted:
		return reduceSessionStarted(s)
	case OpenRequested:
		return reduceOpen(s, now, true)
	case AutoOpenFired:
		return reduceOpen(s, now, false)
	case CloseRequested:
		return reduceClose(s)
	case MinimizeToggled:
		return reduceMinimizeToggle(s)
	case PreChatSubmitted:
		return reducePreChat(s, e, now)
	case MessageSubmitted:
		return reduceUserText(s, e.Text, now)
	case OptionClicked:
		return reduceOptionClick(s, e, now)
	case SendCompleted:
		return reduceSendCompleted(s, e, now)
	case LeadFormSubmitted:
		return reduceLeadForm(s, e, now)
	case LeadFormDismissed:
		s.LeadFormShowing = false
		s.LeadFormDismissed = true
		return s, nil
	case LanguageChanged:
		s.Language = i18n.Pick(e.Language, s.Config.WidgetSettings)
		return s, nil
	default:
		return s, nil
	}
}

func reduceSessionStarted(s State) (State, []Command) {
	if enabled, delay := s.Config.WidgetSettings.AutoOpenEnabled(); enabled {
		return s, []Command{ArmAutoOpenCommand{Delay: time.Duration(delay) * time.Second}}
	}
	return s, nil
}

// reduceOpen handles both the launcher click and the auto-open timer. A
// manual open cancels any pending timer so it cannot fire afterwards.
func reduceOpen(s State, now time.Time, manual bool) (State, []Command) {
	if s.Phase != PhaseClosed {
		return s, nil
	}

	var cmds []Command
	if manual {
		cmds = append(cmds, CancelAutoOpenCommand{})
	}

	if s.preChatRequired() {
		s.Phase = PhasePreChat
		s.PreChatError = ""
		cmds = append(cmds, publishStatus(s))
		return s, cmds
	}

	s = enterOpen(s, now)
	cmds = append(cmds, publishStatus(s))
	return s, cmds
}

// enterOpen transitions to Open and seeds the welcome message the first
// time the conversation becomes visible.
func enterOpen(s State, now time.Time) State {
	s.Phase = PhaseOpen

	if !s.WelcomeSeeded {
		welcome := assistantMessage(s.nextMessageID(), s.Config.Behavior.WelcomeMessageOrDefault(), now)
		welcome.ResponseOptions = s.Config.Behavior.Prompts()
		s.Messages = appendMessage(s.Messages, welcome)
		s.WelcomeSeeded = true
	}

	return s
}

func reduceClose(s State) (State, []Command) {
	if s.Phase == PhaseClosed {
		return s, nil
	}

	s.Phase = PhaseClosed
	return s, []Command{CancelAutoOpenCommand{}, publishStatus(s)}
}

func reduceMinimizeToggle(s State) (State, []Command) {
	switch s.Phase {
	case PhaseOpen:
		s.Phase = PhaseMinimized
	case PhaseMinimized:
		s.Phase = PhaseOpen
	default:
		return s, nil
	}
	return s, []Command{publishStatus(s)}
}

func reducePreChat(s State, e PreChatSubmitted, now time.Time) (State, []Command) {
	if s.Phase != PhasePreChat {
		return s, nil
	}

	if msg := ValidatePreChat(e.Name, e.Phone, s.Language); msg != "" {
		s.PreChatError = msg
		return s, nil
	}

	details := models.UserDetails{
		Name:       strings.TrimSpace(e.Name),
		Phone:      strings.TrimSpace(e.Phone),
		CapturedAt: now,
	}

	s.PreChatError = ""
	s.Identity = &details
	s = enterOpen(s, now)

	cmds := []Command{
		SaveIdentityCommand{Details: details},
		CaptureLeadCommand{
			Lead:   models.LeadInfo{Name: details.Name, Phone: details.Phone},
			Source: models.LeadSourcePreChat,
		},
		publishStatus(s),
	}
	return s, cmds
}

// reduceUserText is the send path shared by typed messages and option
// clicks. The user message is appended optimistically and never rolled
// back.
func reduceUserText(s State, text string, now time.Time) (State, []Command) {
	text = strings.TrimSpace(text)
	if text == "" || s.Phase != PhaseOpen || s.IsTyping {
		return s, nil
	}

	s.Messages = appendMessage(s.Messages, userMessage(s.nextMessageID(), text, now))
	s.UserMessageCount++

	var cmds []Command

	lc := s.Config.LeadCapture
	if lc.IsEnabled() && !s.LeadCaptured && lc.DetectFromMessages {
		detected := leaddetect.Detect(text)
		if !detected.IsEmpty() {
			s.Lead = leaddetect.Merge(s.Lead, detected)
			if s.Lead.HasContact() {
				// Contact details found mid-conversation: capture right
				// away instead of waiting for the form.
				s.LeadCaptured = true
				cmds = append(cmds, CaptureLeadCommand{Lead: s.Lead, Source: models.LeadSourceConversation})
			}
		}
	}

	if !businesshours.IsOpen(s.Config.BusinessHours, now) {
		offline := assistantMessage(s.nextMessageID(), s.Config.BusinessHours.OfflineMessageOrDefault(), now)
		s.Messages = appendMessage(s.Messages, offline)
		s = maybeShowLeadForm(s)
		return s, cmds
	}

	s.IsTyping = true
	cmds = append(cmds, SendMessageCommand{Text: text})
	return s, cmds
}

func reduceOptionClick(s State, e OptionClicked, now time.Time) (State, []Command) {
	if s.Phase != PhaseOpen || s.IsTyping {
		return s, nil
	}

	cleared := false
	messages := make([]models.ChatMessage, len(s.Messages))
	copy(messages, s.Messages)
	for i := range messages {
		if messages[i].ID == e.MessageID && len(messages[i].ResponseOptions) > 0 {
			// One-shot: the options disappear for good once any is used.
			messages[i].ResponseOptions = nil
			cleared = true
			break
		}
	}
	if !cleared {
		return s, nil
	}

	s.Messages = messages
	return reduceUserText(s, e.Option, now)
}

func reduceSendCompleted(s State, e SendCompleted, now time.Time) (State, []Command) {
	// A reply landing after the widget was closed must not disturb anything;
	// only the typing flag is released so a reopened widget accepts input.
	if s.Phase == PhaseClosed {
		s.IsTyping = false
		return s, nil
	}

	if !s.IsTyping {
		return s, nil
	}
	s.IsTyping = false

	var reply models.ChatMessage
	if e.Failed {
		reply = assistantMessage(s.nextMessageID(), s.Config.Behavior.FallbackMessageOrDefault(), now)
	} else {
		reply = assistantMessage(s.nextMessageID(), e.Response, now)
		reply.ResponseOptions = e.ResponseOptions
		reply.Links = e.Links
	}
	s.Messages = appendMessage(s.Messages, reply)

	s = maybeShowLeadForm(s)
	return s, nil
}

// maybeShowLeadForm applies the auto-ask cadence, checked only after an
// assistant reply has been appended.
func maybeShowLeadForm(s State) State {
	lc := s.Config.LeadCapture
	if !lc.IsEnabled() || !lc.AutoAskForLead {
		return s
	}
	if s.LeadCaptured || s.LeadFormShowing || s.LeadFormDismissed {
		return s
	}
	if s.UserMessageCount >= lc.AskAfter() {
		s.LeadFormShowing = true
	}
	return s
}

func reduceLeadForm(s State, e LeadFormSubmitted, now time.Time) (State, []Command) {
	if !s.LeadFormShowing {
		return s, nil
	}

	if msg := ValidateLeadForm(s.Config.LeadCapture, e.Name, e.Email, e.Phone, s.Language); msg != "" {
		s.PreChatError = msg
		return s, nil
	}

	s.PreChatError = ""
	s.Lead = leaddetect.Merge(s.Lead, models.LeadInfo{
		Name:  strings.TrimSpace(e.Name),
		Email: strings.TrimSpace(e.Email),
		Phone: strings.TrimSpace(e.Phone),
	})
	s.LeadFormShowing = false
	s.LeadCaptured = true

	thanks := assistantMessage(s.nextMessageID(), s.Config.LeadCapture.ThankYouMessageOrDefault(), now)
	s.Messages = appendMessage(s.Messages, thanks)

	return s, []Command{CaptureLeadCommand{Lead: s.Lead, Source: models.LeadSourceForm}}
}

func publishStatus(s State) Command {
	return PublishStatusCommand{
		Status: models.NewWidgetStatus(s.IsOpenState(), s.Phase == PhaseMinimized),
	}
}
