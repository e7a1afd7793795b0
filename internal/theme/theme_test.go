package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chatterloop/widget/internal/domain/models"
)

func TestBrightness(t *testing.T) {
	cases := []struct {
		hex  string
		want int
	}{
		{"#FFFFFF", 255},
		{"#000000", 0},
		{"#FF0000", 76},  // 255*299/1000
		{"#00FF00", 149}, // 255*587/1000
		{"#fff", 255},
		{"not-a-color", 0},
		{"", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Brightness(tc.hex), "hex: %q", tc.hex)
	}
}

func TestTextColorFor_ThresholdBoundary(t *testing.T) {
	// #9B9B9B has brightness 155 exactly, which is not above the threshold.
	assert.Equal(t, "#FFFFFF", TextColorFor("#9B9B9B"))
	// #9C9C9C lands at 156, just past it.
	assert.Equal(t, "#1F2937", TextColorFor("#9C9C9C"))

	assert.Equal(t, "#1F2937", TextColorFor("#FFFFFF"))
	assert.Equal(t, "#FFFFFF", TextColorFor("#000000"))
}

func TestResolve_DefaultsWhenBrandingAbsent(t *testing.T) {
	styles := Resolve(Soft, nil)

	assert.Equal(t, models.DefaultPrimaryColor, styles.Header.Background)
	assert.Equal(t, models.DefaultPrimaryColor, styles.UserBubble.Background)
	assert.Equal(t, models.DefaultBotBubbleColor, styles.BotBubble.Background)

	// The default primary is dark enough for light text; the bot bubble is
	// near-white and needs dark text.
	assert.Equal(t, "#FFFFFF", styles.UserBubble.TextColor)
	assert.Equal(t, "#1F2937", styles.BotBubble.TextColor)
}

func TestResolve_AccentUsesSecondaryColor(t *testing.T) {
	styles := Resolve(Soft, &models.Branding{SecondaryColor: "#7C3AED"})
	assert.Equal(t, "#7C3AED", styles.Accent.Background)
	assert.Equal(t, "#FFFFFF", styles.Accent.TextColor)

	// Without branding the accent falls back to the default secondary.
	assert.Equal(t, models.DefaultSecondaryColor, Resolve(Soft, nil).Accent.Background)
}

func TestResolve_UnknownThemeFallsBackToSoft(t *testing.T) {
	branding := &models.Branding{PrimaryColor: "#112233"}

	got := Resolve("neon", branding)
	want := Resolve(Soft, branding)
	assert.Equal(t, want, got)
}

func TestResolve_GlassHeaderTranslucent(t *testing.T) {
	styles := Resolve(Glass, &models.Branding{PrimaryColor: "#112233"})

	assert.Equal(t, "#112233CC", styles.Header.Background)
	assert.Equal(t, "#112233", styles.UserBubble.Background)
	assert.NotEmpty(t, styles.Header.Backdrop)
}

func TestResolve_PerThemeShape(t *testing.T) {
	for _, name := range []string{Sleek, Soft, Glass, Minimal, Elevated} {
		styles := Resolve(name, nil)
		assert.NotEmpty(t, styles.Header.BorderRadius, "theme %s", name)
		assert.NotEmpty(t, styles.BotBubble.TextColor, "theme %s", name)
	}

	assert.NotEmpty(t, Resolve(Minimal, nil).Header.Border)
	assert.Empty(t, Resolve(Sleek, nil).Header.Border)
}
