package engine

import (
	"strings"

	"github.com/chatterloop/widget/internal/domain/models"
	"github.com/chatterloop/widget/internal/i18n"
)

// minPhoneDigits is the minimum count of digits a pre-chat phone number
// must contain after stripping separators.
const minPhoneDigits = 5

// ValidatePreChat checks the pre-chat form fields and returns a single
// localized error message, or "" when both fields pass. Each call
// overwrites any prior error.
func ValidatePreChat(name, phone, language string) string {
	phrases := i18n.Resolve(language).Phrases

	if strings.TrimSpace(name) == "" {
		return phrases.NameRequired
	}

	trimmedPhone := strings.TrimSpace(phone)
	if trimmedPhone == "" || digitCount(trimmedPhone) < minPhoneDigits {
		return phrases.PhoneInvalid
	}

	return ""
}

// ValidateLeadForm enforces the per-field required flags of the lead form.
// Fields left optional may be empty; a form with nothing at all filled in
// is rejected as well.
func ValidateLeadForm(lc *models.LeadCapture, name, email, phone, language string) string {
	phrases := i18n.Resolve(language).Phrases

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	phone = strings.TrimSpace(phone)

	if lc != nil {
		if lc.Name.Required && name == "" {
			return phrases.NameRequired
		}
		if lc.Phone.Required && (phone == "" || digitCount(phone) < minPhoneDigits) {
			return phrases.PhoneInvalid
		}
		if lc.Email.Required && email == "" {
			return phrases.EmailRequired
		}
	}

	if name == "" && email == "" && phone == "" {
		return phrases.NameRequired
	}

	return ""
}

func digitCount(s string) int {
	count := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}
