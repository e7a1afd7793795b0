// Package leaddetect extracts contact details from free-form chat messages.
// The extractors are deliberately loose heuristics: they find the first
// plausible match and never validate what they extract.
package leaddetect

import (
	"regexp"

	"github.com/chatterloop/widget/internal/domain/models"
)

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// North-American style: optional country code, optional parentheses,
	// dots/hyphens/spaces as separators, 10 significant digits.
	phonePattern = regexp.MustCompile(`(\+?1[-.\s]?)?\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}`)

	// Courtesy phrases tried in order; the first match wins. The phrase is
	// case-insensitive but the captured name must be capitalized words.
	namePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i:my name is )([A-Z][a-z]+(?: [A-Z][a-z]+)?)`),
		regexp.MustCompile(`(?i:\bi'm )([A-Z][a-z]+(?: [A-Z][a-z]+)?)`),
		regexp.MustCompile(`(?i:\bi am )([A-Z][a-z]+(?: [A-Z][a-z]+)?)`),
		regexp.MustCompile(`(?i:\bcall me )([A-Z][a-z]+(?: [A-Z][a-z]+)?)`),
	}
)

// ExtractEmail returns the first email-looking token in the text, or "".
func ExtractEmail(text string) string {
	return emailPattern.FindString(text)
}

// ExtractPhone returns the first phone-looking token in the text, or "".
func ExtractPhone(text string) string {
	return phonePattern.FindString(text)
}

// ExtractName returns the first name introduced via a courtesy phrase
// ("my name is X", "I'm X", "I am X", "call me X"), or "".
func ExtractName(text string) string {
	for _, pattern := range namePatterns {
		if match := pattern.FindStringSubmatch(text); len(match) > 1 {
			return match[1]
		}
	}
	return ""
}

// Detect runs all three extractors over a message fragment.
func Detect(text string) models.LeadInfo {
	return models.LeadInfo{
		Name:  ExtractName(text),
		Email: ExtractEmail(text),
		Phone: ExtractPhone(text),
	}
}

// Merge folds newly detected fragments into the running lead. Later
// non-empty fields overwrite earlier ones; empty fields never erase
// previously captured values.
func Merge(current, detected models.LeadInfo) models.LeadInfo {
	merged := current
	if detected.Name != "" {
		merged.Name = detected.Name
	}
	if detected.Email != "" {
		merged.Email = detected.Email
	}
	if detected.Phone != "" {
		merged.Phone = detected.Phone
	}
	if detected.Message != "" {
		merged.Message = detected.Message
	}
	return merged
}
