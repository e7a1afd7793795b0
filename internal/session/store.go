// Package session persists a visitor's pre-chat identity per chatbot so a
// page reload within 24 hours does not re-ask for name and phone.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/chatterloop/widget/internal/domain/models"
)

// Store is the single interface through which the rest of the engine reads
// or writes persisted visitor identity. Expired or corrupt entries are
// purged and reported as absent, never surfaced as errors.
type Store interface {
	Save(ctx context.Context, chatbotID, visitorID string, details models.UserDetails) error
	Load(ctx context.Context, chatbotID, visitorID string) (*models.UserDetails, error)
	Clear(ctx context.Context, chatbotID, visitorID string) error
}

// Key builds the storage key for a chatbot/visitor pair, mirroring the
// browser-side sessionStorage naming.
func Key(chatbotID, visitorID string) string {
	return fmt.Sprintf("chatbot_user_%s:%s", chatbotID, visitorID)
}

// Sweeper is implemented by stores that can proactively drop expired
// entries; the scheduler calls it periodically.
type Sweeper interface {
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}
