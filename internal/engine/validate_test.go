package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chatterloop/widget/internal/domain/models"
)

func TestValidatePreChat(t *testing.T) {
	cases := []struct {
		name    string
		inName  string
		inPhone string
		wantOK  bool
	}{
		{"both valid", "Jane", "12345", true},
		{"phone with separators", "Jane", "(415) 555-0101", true},
		{"empty name", "", "12345", false},
		{"whitespace name", "   ", "12345", false},
		{"no digits in phone", "Jane", "abc", false},
		{"too few digits", "Jane", "1234", false},
		{"empty phone", "Jane", "", false},
		{"exactly five digits", "Jane", "12345", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msg := ValidatePreChat(tc.inName, tc.inPhone, "en")
			if tc.wantOK {
				assert.Empty(t, msg)
			} else {
				assert.NotEmpty(t, msg)
			}
		})
	}
}

func TestValidatePreChat_Localized(t *testing.T) {
	en := ValidatePreChat("", "12345", "en")
	fr := ValidatePreChat("", "12345", "fr")

	assert.NotEmpty(t, en)
	assert.NotEmpty(t, fr)
	assert.NotEqual(t, en, fr)
}

func TestValidateLeadForm(t *testing.T) {
	lc := &models.LeadCapture{
		Enabled: true,
		Name:    models.LeadField{Enabled: true, Required: true},
		Email:   models.LeadField{Enabled: true},
		Phone:   models.LeadField{Enabled: true},
	}

	assert.NotEmpty(t, ValidateLeadForm(lc, "", "a@b.co", "", "en"), "required name missing")
	assert.Empty(t, ValidateLeadForm(lc, "Jane", "", "", "en"))

	// Without required flags, any single field is enough, but a fully
	// empty form is rejected.
	loose := &models.LeadCapture{Enabled: true}
	assert.Empty(t, ValidateLeadForm(loose, "", "a@b.co", "", "en"))
	assert.NotEmpty(t, ValidateLeadForm(loose, "", "", "", "en"))
}
