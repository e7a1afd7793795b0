// Package businesshours decides whether a chatbot is inside its configured
// availability window. The policy is fail open: any missing or broken
// configuration means the chat stays available.
package businesshours

import (
	"strings"
	"time"

	"github.com/chatterloop/widget/internal/domain/models"
)

const clockLayout = "15:04"

// IsOpen reports whether the chatbot is open for conversation at the given
// instant. Disabled or absent business hours mean 24/7 availability, and a
// timezone that cannot be resolved is treated as open rather than blocking
// the visitor.
func IsOpen(bh *models.BusinessHours, now time.Time) bool {
	if bh == nil || !bh.Enabled || len(bh.Schedule) == 0 {
		return true
	}

	if bh.Timezone == "" {
		return true
	}

	loc, err := time.LoadLocation(bh.Timezone)
	if err != nil {
		return true
	}

	local := now.In(loc)
	day := strings.ToLower(local.Weekday().String())

	entry, ok := bh.Schedule[day]
	if !ok {
		return true
	}

	if entry.Closed {
		return false
	}

	if entry.Open == "" || entry.Close == "" {
		return true
	}

	// "HH:MM" strings order lexicographically, both bounds inclusive.
	clock := local.Format(clockLayout)
	return clock >= entry.Open && clock <= entry.Close
}
