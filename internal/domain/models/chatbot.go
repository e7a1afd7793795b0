package models

// Documented defaults applied by consumers when the corresponding config
// section or field is absent. The resolver never merges these in; partial
// configs must always render.
const (
	DefaultPrimaryColor   = "#3B82F6"
	DefaultSecondaryColor = "#10B981"
	DefaultBotBubbleColor = "#F3F4F6"
	DefaultTheme          = "soft"
	DefaultPosition       = "bottom-right"
	DefaultLanguage       = "en"

	DefaultWelcomeMessage  = "Hi there! How can I help you today?"
	DefaultFallbackMessage = "Sorry, something went wrong on our side. Please try again in a moment."
	DefaultOfflineMessage  = "We're currently offline. Leave a message and we'll get back to you."
	DefaultThankYouMessage = "Thanks! We'll be in touch shortly."
	DefaultCaptureMessage  = "Before we continue, could you share your contact details?"

	DefaultAskAfterMessages = 3
)

// ChatbotConfig is the full configuration a chatbot owner manages in the
// dashboard. Every nested section may be absent; consumers fall back to the
// documented defaults instead of failing.
type ChatbotConfig struct {
	Branding       *Branding       `json:"branding,omitempty" bson:"branding,omitempty"`
	Behavior       *Behavior       `json:"behavior,omitempty" bson:"behavior,omitempty"`
	WidgetSettings *WidgetSettings `json:"widgetSettings,omitempty" bson:"widget_settings,omitempty"`
	BusinessHours  *BusinessHours  `json:"businessHours,omitempty" bson:"business_hours,omitempty"`
	LeadCapture    *LeadCapture    `json:"leadCapture,omitempty" bson:"lead_capture,omitempty"`
}

// Branding holds visual identity settings.
type Branding struct {
	PrimaryColor       string `json:"primaryColor,omitempty" bson:"primary_color,omitempty"`
	SecondaryColor     string `json:"secondaryColor,omitempty" bson:"secondary_color,omitempty"`
	BotBubbleColor     string `json:"botBubbleColor,omitempty" bson:"bot_bubble_color,omitempty"`
	LogoURL            string `json:"logoUrl,omitempty" bson:"logo_url,omitempty"`
	BackgroundImageURL string `json:"backgroundImageUrl,omitempty" bson:"background_image_url,omitempty"`
	CompanyName        string `json:"companyName,omitempty" bson:"company_name,omitempty"`
}

// PrimaryColorOrDefault returns the configured primary color or the default.
func (b *Branding) PrimaryColorOrDefault() string {
	if b == nil || b.PrimaryColor == "" {
		return DefaultPrimaryColor
	}
	return b.PrimaryColor
}

// SecondaryColorOrDefault returns the configured secondary color or the default.
func (b *Branding) SecondaryColorOrDefault() string {
	if b == nil || b.SecondaryColor == "" {
		return DefaultSecondaryColor
	}
	return b.SecondaryColor
}

// BotBubbleColorOrDefault returns the bot message bubble background.
func (b *Branding) BotBubbleColorOrDefault() string {
	if b == nil || b.BotBubbleColor == "" {
		return DefaultBotBubbleColor
	}
	return b.BotBubbleColor
}

// Behavior groups conversational behavior settings.
type Behavior struct {
	WelcomeMessage     string   `json:"welcomeMessage,omitempty" bson:"welcome_message,omitempty"`
	FallbackMessage    string   `json:"fallbackMessage,omitempty" bson:"fallback_message,omitempty"`
	SuggestedPrompts   []string `json:"suggestedPrompts,omitempty" bson:"suggested_prompts,omitempty"`
	Personality        string   `json:"personality,omitempty" bson:"personality,omitempty"`
	SystemInstructions string   `json:"systemInstructions,omitempty" bson:"system_instructions,omitempty"`
	CustomInstructions string   `json:"customInstructions,omitempty" bson:"custom_instructions,omitempty"`
}

// WelcomeMessageOrDefault returns the configured welcome message or the default.
func (b *Behavior) WelcomeMessageOrDefault() string {
	if b == nil || b.WelcomeMessage == "" {
		return DefaultWelcomeMessage
	}
	return b.WelcomeMessage
}

// FallbackMessageOrDefault returns the configured fallback message or the default.
func (b *Behavior) FallbackMessageOrDefault() string {
	if b == nil || b.FallbackMessage == "" {
		return DefaultFallbackMessage
	}
	return b.FallbackMessage
}

// Prompts returns the suggested prompts, possibly empty.
func (b *Behavior) Prompts() []string {
	if b == nil {
		return nil
	}
	return b.SuggestedPrompts
}

// WidgetSettings controls how and where the widget renders.
type WidgetSettings struct {
	Position           string   `json:"position,omitempty" bson:"position,omitempty"`
	Mode               string   `json:"mode,omitempty" bson:"mode,omitempty"` // floating | fullpage
	Theme              string   `json:"theme,omitempty" bson:"theme,omitempty"`
	AutoOpen           bool     `json:"autoOpen,omitempty" bson:"auto_open,omitempty"`
	AutoOpenDelay      int      `json:"autoOpenDelay,omitempty" bson:"auto_open_delay,omitempty"` // seconds
	LanguageSwitcher   bool     `json:"languageSwitcher,omitempty" bson:"language_switcher,omitempty"`
	SupportedLanguages []string `json:"supportedLanguages,omitempty" bson:"supported_languages,omitempty"`
	DefaultLanguage    string   `json:"defaultLanguage,omitempty" bson:"default_language,omitempty"`
}

// ThemeOrDefault returns the configured theme name or the default.
func (w *WidgetSettings) ThemeOrDefault() string {
	if w == nil || w.Theme == "" {
		return DefaultTheme
	}
	return w.Theme
}

// PositionOrDefault returns the configured widget position or the default.
func (w *WidgetSettings) PositionOrDefault() string {
	if w == nil || w.Position == "" {
		return DefaultPosition
	}
	return w.Position
}

// DefaultLanguageOrFallback returns the configured default language or "en".
func (w *WidgetSettings) DefaultLanguageOrFallback() string {
	if w == nil || w.DefaultLanguage == "" {
		return DefaultLanguage
	}
	return w.DefaultLanguage
}

// AutoOpenEnabled reports whether the widget should open on its own, and
// after how many seconds.
func (w *WidgetSettings) AutoOpenEnabled() (bool, int) {
	if w == nil || !w.AutoOpen || w.AutoOpenDelay <= 0 {
		return false, 0
	}
	return true, w.AutoOpenDelay
}

// BusinessHours describes the weekly availability window.
type BusinessHours struct {
	Enabled        bool                   `json:"enabled,omitempty" bson:"enabled,omitempty"`
	Timezone       string                 `json:"timezone,omitempty" bson:"timezone,omitempty"`
	Schedule       map[string]DaySchedule `json:"schedule,omitempty" bson:"schedule,omitempty"` // keyed by lowercase weekday name
	OfflineMessage string                 `json:"offlineMessage,omitempty" bson:"offline_message,omitempty"`
}

// OfflineMessageOrDefault returns the out-of-hours message or the default.
func (bh *BusinessHours) OfflineMessageOrDefault() string {
	if bh == nil || bh.OfflineMessage == "" {
		return DefaultOfflineMessage
	}
	return bh.OfflineMessage
}

// DaySchedule is one weekday's open/close window in "HH:MM" clock time.
type DaySchedule struct {
	Open   string `json:"open,omitempty" bson:"open,omitempty"`
	Close  string `json:"close,omitempty" bson:"close,omitempty"`
	Closed bool   `json:"closed,omitempty" bson:"closed,omitempty"`
}

// LeadCapture configures how visitor contact details are collected.
type LeadCapture struct {
	Enabled            bool      `json:"enabled,omitempty" bson:"enabled,omitempty"`
	CaptureMessage     string    `json:"captureMessage,omitempty" bson:"capture_message,omitempty"`
	ThankYouMessage    string    `json:"thankYouMessage,omitempty" bson:"thank_you_message,omitempty"`
	AutoAskForLead     bool      `json:"autoAskForLead,omitempty" bson:"auto_ask_for_lead,omitempty"`
	AskAfterMessages   int       `json:"askAfterMessages,omitempty" bson:"ask_after_messages,omitempty"`
	DetectFromMessages bool      `json:"detectFromMessages,omitempty" bson:"detect_from_messages,omitempty"`
	Name               LeadField `json:"name,omitempty" bson:"name,omitempty"`
	Email              LeadField `json:"email,omitempty" bson:"email,omitempty"`
	Phone              LeadField `json:"phone,omitempty" bson:"phone,omitempty"`
}

// LeadField is a single lead-form field toggle.
type LeadField struct {
	Enabled     bool   `json:"enabled,omitempty" bson:"enabled,omitempty"`
	Required    bool   `json:"required,omitempty" bson:"required,omitempty"`
	Placeholder string `json:"placeholder,omitempty" bson:"placeholder,omitempty"`
}

// IsEnabled reports whether lead capture is on. An absent section disables it.
func (lc *LeadCapture) IsEnabled() bool {
	return lc != nil && lc.Enabled
}

// AskAfter returns the number of user messages before the lead form is
// auto-shown. Non-positive values fall back to the default of 3.
func (lc *LeadCapture) AskAfter() int {
	if lc == nil || lc.AskAfterMessages <= 0 {
		return DefaultAskAfterMessages
	}
	return lc.AskAfterMessages
}

// CaptureMessageOrDefault returns the lead-form prompt or the default.
func (lc *LeadCapture) CaptureMessageOrDefault() string {
	if lc == nil || lc.CaptureMessage == "" {
		return DefaultCaptureMessage
	}
	return lc.CaptureMessage
}

// ThankYouMessageOrDefault returns the post-capture message or the default.
func (lc *LeadCapture) ThankYouMessageOrDefault() string {
	if lc == nil || lc.ThankYouMessage == "" {
		return DefaultThankYouMessage
	}
	return lc.ThankYouMessage
}
