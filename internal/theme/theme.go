// Package theme maps a theme name and brand colors to concrete visual styles
// for the widget header and message bubbles.
package theme

import (
	"strconv"
	"strings"

	"github.com/chatterloop/widget/internal/domain/models"
)

// Theme names supported by the widget. Unknown names fall back to "soft".
const (
	Sleek    = "sleek"
	Soft     = "soft"
	Glass    = "glass"
	Minimal  = "minimal"
	Elevated = "elevated"
)

// Foreground colors chosen by the brightness heuristic.
const (
	darkText  = "#1F2937"
	lightText = "#FFFFFF"
)

// brightnessThreshold splits light backgrounds (dark text) from dark ones.
const brightnessThreshold = 155

// Style is a renderable visual descriptor for one widget element.
type Style struct {
	Background   string `json:"background"`
	TextColor    string `json:"textColor"`
	Border       string `json:"border,omitempty"`
	BorderRadius string `json:"borderRadius"`
	Shadow       string `json:"shadow,omitempty"`
	Backdrop     string `json:"backdrop,omitempty"`
}

// Styles bundles the element styles the widget shell renders. Accent covers
// the secondary-colored chrome: suggested-prompt chips, links and the send
// button.
type Styles struct {
	Header     Style `json:"header"`
	UserBubble Style `json:"userBubble"`
	BotBubble  Style `json:"botBubble"`
	Accent     Style `json:"accent"`
}

// shape holds the per-theme geometry applied uniformly to all elements.
type shape struct {
	radius   string
	border   string
	shadow   string
	backdrop string
}

var shapes = map[string]shape{
	Sleek:    {radius: "8px", shadow: "0 1px 2px rgba(0,0,0,0.15)"},
	Soft:     {radius: "16px", shadow: "0 4px 12px rgba(0,0,0,0.08)"},
	Glass:    {radius: "14px", shadow: "0 8px 24px rgba(0,0,0,0.12)", backdrop: "blur(12px)"},
	Minimal:  {radius: "4px", border: "1px solid #E5E7EB"},
	Elevated: {radius: "12px", shadow: "0 12px 32px rgba(0,0,0,0.18)"},
}

// Resolve computes the full style set for a theme and branding. It never
// fails: unknown themes use the soft shape and malformed colors resolve to
// light text.
func Resolve(themeName string, branding *models.Branding) Styles {
	sh, ok := shapes[strings.ToLower(themeName)]
	if !ok {
		sh = shapes[Soft]
	}

	primary := branding.PrimaryColorOrDefault()
	secondary := branding.SecondaryColorOrDefault()
	botBubble := branding.BotBubbleColorOrDefault()

	headerBg := primary
	if strings.ToLower(themeName) == Glass {
		headerBg = withAlpha(primary, "CC")
	}

	return Styles{
		Header:     elementStyle(headerBg, sh),
		UserBubble: elementStyle(primary, sh),
		BotBubble:  elementStyle(botBubble, sh),
		Accent:     elementStyle(secondary, sh),
	}
}

func elementStyle(background string, sh shape) Style {
	return Style{
		Background:   background,
		TextColor:    TextColorFor(background),
		Border:       sh.border,
		BorderRadius: sh.radius,
		Shadow:       sh.shadow,
		Backdrop:     sh.backdrop,
	}
}

// Brightness decodes a hex color and computes the perceived brightness
// (R*299 + G*587 + B*114) / 1000. Malformed input yields 0.
func Brightness(hexColor string) int {
	r, g, b, ok := parseHex(hexColor)
	if !ok {
		return 0
	}
	return (r*299 + g*587 + b*114) / 1000
}

// TextColorFor picks a readable foreground for the given background:
// brightness above 155 gets dark text, everything else light text.
func TextColorFor(background string) string {
	if Brightness(background) > brightnessThreshold {
		return darkText
	}
	return lightText
}

func parseHex(hexColor string) (r, g, b int, ok bool) {
	s := strings.TrimPrefix(strings.TrimSpace(hexColor), "#")

	switch len(s) {
	case 3:
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	case 6:
	default:
		return 0, 0, 0, false
	}

	value, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}

	return int(value >> 16), int(value >> 8 & 0xFF), int(value & 0xFF), true
}

// withAlpha appends an alpha channel to a 6-digit hex color, leaving other
// inputs untouched.
func withAlpha(hexColor, alpha string) string {
	s := strings.TrimPrefix(hexColor, "#")
	if len(s) != 6 {
		return hexColor
	}
	return "#" + s + alpha
}
