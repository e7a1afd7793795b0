package widget

import (
	"time"

	"github.com/chatterloop/widget/internal/businesshours"
	"github.com/chatterloop/widget/internal/domain/models"
	"github.com/chatterloop/widget/internal/engine"
	"github.com/chatterloop/widget/internal/i18n"
	"github.com/chatterloop/widget/internal/theme"
)

// View is everything the embed shell needs to render one frame of the
// widget. It is a pure projection of engine state plus wall-clock context
// such as business hours.
type View struct {
	Phase        string               `json:"phase"`
	Position     string               `json:"position"`
	Mode         string               `json:"mode"`
	CompanyName  string               `json:"companyName,omitempty"`
	LogoURL      string               `json:"logoUrl,omitempty"`
	Styles       theme.Styles         `json:"styles"`
	Locale       i18n.Locale          `json:"locale"`
	Messages     []models.ChatMessage `json:"messages"`
	IsTyping     bool                 `json:"isTyping"`
	BusinessOpen bool                 `json:"businessOpen"`

	LeadFormShowing bool          `json:"leadFormShowing"`
	LeadForm        *LeadFormView `json:"leadForm,omitempty"`
	PreChat         *PreChatView  `json:"preChat,omitempty"`
	Languages       []string      `json:"languages,omitempty"`
	Error           string        `json:"error,omitempty"`
	InputDisabled   bool          `json:"inputDisabled"`
}

// PreChatView is the pre-chat form descriptor, present only in that phase.
type PreChatView struct {
	Title string `json:"title"`
}

// LeadFormView describes which lead-form fields to render.
type LeadFormView struct {
	Prompt string         `json:"prompt"`
	Name   *LeadFieldView `json:"name,omitempty"`
	Email  *LeadFieldView `json:"email,omitempty"`
	Phone  *LeadFieldView `json:"phone,omitempty"`
}

// LeadFieldView is one renderable lead-form field.
type LeadFieldView struct {
	Required    bool   `json:"required"`
	Placeholder string `json:"placeholder,omitempty"`
}

// Project maps an engine state onto a renderable view at the given instant.
func Project(state engine.State, now time.Time) View {
	cfg := state.Config
	locale := i18n.Resolve(state.Language)

	view := View{
		Phase:        string(state.Phase),
		Position:     cfg.WidgetSettings.PositionOrDefault(),
		Mode:         modeOrDefault(cfg.WidgetSettings),
		Styles:       theme.Resolve(cfg.WidgetSettings.ThemeOrDefault(), cfg.Branding),
		Locale:       locale,
		Messages:     state.Messages,
		IsTyping:     state.IsTyping,
		BusinessOpen: businesshours.IsOpen(cfg.BusinessHours, now),
		Error:        state.PreChatError,
		// Typing replies block further input so sends stay strictly ordered.
		InputDisabled: state.IsTyping,
	}

	if cfg.Branding != nil {
		view.CompanyName = cfg.Branding.CompanyName
		view.LogoURL = cfg.Branding.LogoURL
	}

	if state.Phase == engine.PhasePreChat {
		view.PreChat = &PreChatView{Title: locale.Phrases.PreChatTitle}
	}

	if state.LeadFormShowing {
		view.LeadFormShowing = true
		view.LeadForm = leadFormView(cfg.LeadCapture)
	}

	if ws := cfg.WidgetSettings; ws != nil && ws.LanguageSwitcher {
		view.Languages = switchableLanguages(ws)
	}

	return view
}

func modeOrDefault(ws *models.WidgetSettings) string {
	if ws == nil || ws.Mode == "" {
		return "floating"
	}
	return ws.Mode
}

func leadFormView(lc *models.LeadCapture) *LeadFormView {
	form := &LeadFormView{Prompt: lc.CaptureMessageOrDefault()}
	if lc == nil {
		return form
	}
	if lc.Name.Enabled {
		form.Name = &LeadFieldView{Required: lc.Name.Required, Placeholder: lc.Name.Placeholder}
	}
	if lc.Email.Enabled {
		form.Email = &LeadFieldView{Required: lc.Email.Required, Placeholder: lc.Email.Placeholder}
	}
	if lc.Phone.Enabled {
		form.Phone = &LeadFieldView{Required: lc.Phone.Required, Placeholder: lc.Phone.Placeholder}
	}
	return form
}

// switchableLanguages intersects the configured list with the languages the
// widget actually ships phrases for. An empty configured list offers all
// supported languages.
func switchableLanguages(ws *models.WidgetSettings) []string {
	if len(ws.SupportedLanguages) == 0 {
		return i18n.Codes()
	}
	out := make([]string, 0, len(ws.SupportedLanguages))
	for _, lang := range ws.SupportedLanguages {
		if i18n.Supported(lang) {
			out = append(out, lang)
		}
	}
	return out
}
