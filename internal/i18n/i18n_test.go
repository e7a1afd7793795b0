package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chatterloop/widget/internal/domain/models"
)

func TestResolve_KnownLanguages(t *testing.T) {
	for _, code := range []string{"en", "es", "fr", "de", "pt", "ar", "he"} {
		locale := Resolve(code)
		assert.Equal(t, code, locale.Code)
		assert.NotEmpty(t, locale.Phrases.InputPlaceholder, "language %s", code)
		assert.NotEmpty(t, locale.Phrases.Send, "language %s", code)
	}
}

func TestResolve_FallbackToEnglish(t *testing.T) {
	locale := Resolve("xx")
	assert.Equal(t, "en", locale.Code)
	assert.False(t, locale.RTL)
	assert.Equal(t, "Send", locale.Phrases.Send)
}

func TestResolve_RTL(t *testing.T) {
	assert.True(t, Resolve("ar").RTL)
	assert.True(t, Resolve("he").RTL)
	assert.False(t, Resolve("fr").RTL)
}

func TestResolve_RegionSubtagCollapsed(t *testing.T) {
	assert.Equal(t, "es", Resolve("es-MX").Code)
	assert.Equal(t, "en", Resolve("EN_GB").Code)
}

func TestPick(t *testing.T) {
	switcher := &models.WidgetSettings{
		LanguageSwitcher:   true,
		SupportedLanguages: []string{"en", "fr"},
		DefaultLanguage:    "fr",
	}

	assert.Equal(t, "fr", Pick("fr", switcher))
	assert.Equal(t, "en", Pick("en", switcher))
	// Unsupported request falls back to the chatbot default.
	assert.Equal(t, "fr", Pick("de", switcher))

	// No switcher: requests are ignored, default wins.
	noSwitcher := &models.WidgetSettings{DefaultLanguage: "es"}
	assert.Equal(t, "es", Pick("fr", noSwitcher))

	// Nothing configured at all.
	assert.Equal(t, "en", Pick("", nil))
}
