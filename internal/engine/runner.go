package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chatterloop/widget/internal/domain/models"
	"github.com/chatterloop/widget/internal/session"
	"github.com/chatterloop/widget/pkg/clients/platform"
)

// sendTimeout bounds a single platform message call from the runner side.
const sendTimeout = 30 * time.Second

// LeadRecorder receives every captured lead for local persistence and later
// export. Implementations must never fail loudly; recording is best effort.
type LeadRecorder interface {
	Record(ctx context.Context, lead models.CapturedLead)
}

// Deps are the collaborators a Runner needs to execute commands.
type Deps struct {
	Client platform.Client
	Store  session.Store
	Leads  LeadRecorder
	Logger *zap.Logger
	Now    func() time.Time
}

// Runner owns one widget session's state and serializes every event through
// a single lock, mirroring the single-threaded event loop the widget runs
// under in a browser. Network effects run in goroutines and re-enter via
// Dispatch.
type Runner struct {
	mu    sync.Mutex
	state State
	deps  Deps

	chatbotID      string
	conversationID string
	visitorID      string

	autoOpen     *time.Timer
	pendingStats []models.WidgetStatus
	lastActivity time.Time
	stopped      bool
}

// NewRunner wraps an initial state. Call Dispatch(SessionStarted{}) to arm
// session-start effects such as the auto-open timer.
func NewRunner(initial State, visitorID string, deps Deps) *Runner {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Runner{
		state:          initial,
		deps:           deps,
		chatbotID:      initial.ChatbotID,
		conversationID: initial.ConversationID,
		visitorID:      visitorID,
		lastActivity:   deps.Now(),
	}
}

// Dispatch feeds one event through the reducer and executes the resulting
// commands. It returns the state after the transition.
func (r *Runner) Dispatch(ctx context.Context, ev Event) State {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.stopped {
		return r.state
	}

	now := r.deps.Now()
	next, cmds := Reduce(r.state, ev, now)
	r.state = next
	r.lastActivity = now

	for _, cmd := range cmds {
		r.execute(ctx, cmd)
	}

	return r.state
}

// State returns a snapshot of the current state.
func (r *Runner) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// DrainStatus returns and clears the widget-status envelopes accumulated
// since the last call; the HTTP layer forwards them to the embed shell.
func (r *Runner) DrainStatus() []models.WidgetStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	drained := r.pendingStats
	r.pendingStats = nil
	return drained
}

// LastActivity reports when the session last processed an event.
func (r *Runner) LastActivity() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastActivity
}

// Stop cancels pending timers and marks the runner dead. Late network
// completions become no-ops.
func (r *Runner) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	r.cancelAutoOpen()
}

// execute runs while holding the state lock; anything slow goes to a
// goroutine that re-enters through Dispatch.
func (r *Runner) execute(ctx context.Context, cmd Command) {
	switch c := cmd.(type) {
	case SendMessageCommand:
		go r.performSend(c.Text)
	case CaptureLeadCommand:
		go r.performCapture(c)
	case SaveIdentityCommand:
		go r.performSaveIdentity(c.Details)
	case ArmAutoOpenCommand:
		r.armAutoOpen(c.Delay)
	case CancelAutoOpenCommand:
		r.cancelAutoOpen()
	case PublishStatusCommand:
		r.pendingStats = append(r.pendingStats, c.Status)
	default:
		r.deps.Logger.Warn("unknown command", zap.Any("command", cmd))
	}
}

func (r *Runner) performSend(text string) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	resp, err := r.deps.Client.SendMessage(ctx, r.chatbotID, platform.MessageRequest{
		Message:   text,
		SessionID: r.conversationID,
	})

	completed := SendCompleted{Failed: err != nil}
	if err != nil {
		r.deps.Logger.Warn("message send failed, serving fallback", zap.Error(err))
	} else {
		completed.Response = resp.Response
		completed.ResponseOptions = resp.ResponseOptions
		completed.Links = resp.Links
	}

	r.Dispatch(context.Background(), completed)
}

// performCapture fires the platform lead call and records the lead locally.
// Both are fire-and-forget: a failed lead write never interrupts the chat.
func (r *Runner) performCapture(c CaptureLeadCommand) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	req := platform.CaptureLeadRequest{
		Name:           c.Lead.Name,
		Email:          c.Lead.Email,
		Phone:          c.Lead.Phone,
		Message:        c.Lead.Message,
		ConversationID: r.conversationID,
		Source:         c.Source,
	}

	if err := r.deps.Client.CaptureLead(ctx, r.chatbotID, req); err != nil {
		r.deps.Logger.Warn("lead capture failed",
			zap.String("source", c.Source),
			zap.Error(err))
	}

	if r.deps.Leads != nil {
		r.deps.Leads.Record(ctx, models.CapturedLead{
			ChatbotID:      r.chatbotID,
			ConversationID: r.conversationID,
			Name:           c.Lead.Name,
			Email:          c.Lead.Email,
			Phone:          c.Lead.Phone,
			Message:        c.Lead.Message,
			Source:         c.Source,
			CapturedAt:     r.deps.Now(),
		})
	}
}

func (r *Runner) performSaveIdentity(details models.UserDetails) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.deps.Store.Save(ctx, r.chatbotID, r.visitorID, details); err != nil {
		r.deps.Logger.Warn("failed persisting user details", zap.Error(err))
	}
}

func (r *Runner) armAutoOpen(delay time.Duration) {
	if r.autoOpen != nil {
		return // armed once per session
	}
	r.autoOpen = time.AfterFunc(delay, func() {
		r.Dispatch(context.Background(), AutoOpenFired{})
	})
}

func (r *Runner) cancelAutoOpen() {
	if r.autoOpen != nil {
		r.autoOpen.Stop()
		r.autoOpen = nil
	}
}
