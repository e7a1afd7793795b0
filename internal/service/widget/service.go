// Package widget orchestrates live widget sessions: it resolves chatbot
// configuration, restores visitor identity, owns the engine runners and
// projects renderable views for the embed shell.
package widget

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chatterloop/widget/internal/domain/models"
	"github.com/chatterloop/widget/internal/engine"
	"github.com/chatterloop/widget/internal/i18n"
	"github.com/chatterloop/widget/internal/session"
	"github.com/chatterloop/widget/pkg/clients/platform"
)

// ErrSessionNotFound signals an unknown or already swept session ID.
var ErrSessionNotFound = errors.New("widget session not found")

// ErrUnknownEvent signals an event type the engine does not understand.
var ErrUnknownEvent = errors.New("unknown event type")

// Service describes the operations the HTTP layer can perform.
type Service interface {
	CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionResponse, error)
	HandleEvent(ctx context.Context, sessionID string, req EventRequest) (*SessionResponse, error)
	GetView(ctx context.Context, sessionID string) (*SessionResponse, error)
	SweepIdle(maxIdle time.Duration) int
}

// CreateSessionRequest starts a widget session for a visitor on a page.
// ChatbotID comes from the URL path, not the body.
type CreateSessionRequest struct {
	ChatbotID string `json:"-"`
	VisitorID string `json:"visitorId"`
	Language  string `json:"language"`
}

// EventRequest is the embed shell's event envelope.
type EventRequest struct {
	Type      string `json:"type" binding:"required"`
	Text      string `json:"text"`
	MessageID string `json:"messageId"`
	Option    string `json:"option"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Language  string `json:"language"`
}

// Event types accepted from the embed shell.
const (
	EventOpen            = "open"
	EventClose           = "close"
	EventMinimizeToggle  = "minimize-toggle"
	EventPreChatSubmit   = "pre-chat-submit"
	EventSendMessage     = "send-message"
	EventOptionClick     = "option-click"
	EventLeadFormSubmit  = "lead-form-submit"
	EventLeadFormDismiss = "lead-form-dismiss"
	EventSetLanguage     = "set-language"
)

// SessionResponse is what every endpoint returns: the session handle, the
// current view and any cross-frame status envelopes produced since the
// last call.
type SessionResponse struct {
	SessionID     string                `json:"sessionId"`
	View          View                  `json:"view"`
	StatusUpdates []models.WidgetStatus `json:"statusUpdates,omitempty"`
}

// EngineService is the production implementation backed by the platform API.
type EngineService struct {
	client platform.Client
	store  session.Store
	leads  engine.LeadRecorder
	logger *zap.Logger
	now    func() time.Time

	mu      sync.RWMutex
	runners map[string]*engine.Runner
}

// NewEngineService wires a new service instance.
func NewEngineService(client platform.Client, store session.Store, leads engine.LeadRecorder, logger *zap.Logger) *EngineService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EngineService{
		client:  client,
		store:   store,
		leads:   leads,
		logger:  logger,
		now:     time.Now,
		runners: make(map[string]*engine.Runner),
	}
}

// CreateSession resolves the chatbot, restores any persisted identity and
// boots a runner. A disabled widget yields ErrWidgetDisabled and no session.
func (s *EngineService) CreateSession(ctx context.Context, req CreateSessionRequest) (*SessionResponse, error) {
	widget, err := s.client.FetchWidget(ctx, req.ChatbotID)
	if err != nil {
		return nil, fmt.Errorf("resolve chatbot %s: %w", req.ChatbotID, err)
	}
	if widget.Disabled() {
		return nil, platform.ErrWidgetDisabled
	}

	visitorID := req.VisitorID
	if visitorID == "" {
		visitorID = uuid.NewString()
	}

	// Expired or corrupt identities come back as nil; the pre-chat form
	// will re-ask instead of silently reusing stale details.
	identity, err := s.store.Load(ctx, req.ChatbotID, visitorID)
	if err != nil {
		s.logger.Warn("identity load failed, treating as absent", zap.Error(err))
		identity = nil
	}

	cfg := widget.Config
	// The header falls back to the owner's account name when branding does
	// not set a company name.
	if widget.Client.Name != "" && (cfg.Branding == nil || cfg.Branding.CompanyName == "") {
		branding := models.Branding{}
		if cfg.Branding != nil {
			branding = *cfg.Branding
		}
		branding.CompanyName = widget.Client.Name
		cfg.Branding = &branding
	}

	language := i18n.Pick(req.Language, cfg.WidgetSettings)
	sessionID := uuid.NewString()

	initial := engine.NewState(req.ChatbotID, sessionID, cfg, language, identity)
	runner := engine.NewRunner(initial, visitorID, engine.Deps{
		Client: s.client,
		Store:  s.store,
		Leads:  s.leads,
		Logger: s.logger.Named("runner"),
		Now:    s.now,
	})
	runner.Dispatch(ctx, engine.SessionStarted{})

	s.mu.Lock()
	s.runners[sessionID] = runner
	s.mu.Unlock()

	s.logger.Info("widget session created",
		zap.String("chatbot_id", req.ChatbotID),
		zap.String("session_id", sessionID),
		zap.String("language", language))

	return s.respond(sessionID, runner), nil
}

// HandleEvent maps the shell's envelope onto an engine event and applies it.
func (s *EngineService) HandleEvent(ctx context.Context, sessionID string, req EventRequest) (*SessionResponse, error) {
	runner, ok := s.runner(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	ev, err := toEngineEvent(req)
	if err != nil {
		return nil, err
	}

	runner.Dispatch(ctx, ev)
	return s.respond(sessionID, runner), nil
}

// GetView returns the current projection without applying an event; the
// shell uses it to poll for in-flight replies.
func (s *EngineService) GetView(_ context.Context, sessionID string) (*SessionResponse, error) {
	runner, ok := s.runner(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.respond(sessionID, runner), nil
}

// SweepIdle drops sessions with no activity for maxIdle and returns how
// many were removed.
func (s *EngineService) SweepIdle(maxIdle time.Duration) int {
	cutoff := s.now().Add(-maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, runner := range s.runners {
		if runner.LastActivity().Before(cutoff) {
			runner.Stop()
			delete(s.runners, id)
			removed++
		}
	}

	if removed > 0 {
		s.logger.Info("swept idle widget sessions", zap.Int("count", removed))
	}
	return removed
}

func (s *EngineService) runner(sessionID string) (*engine.Runner, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	runner, ok := s.runners[sessionID]
	return runner, ok
}

func (s *EngineService) respond(sessionID string, runner *engine.Runner) *SessionResponse {
	state := runner.State()
	return &SessionResponse{
		SessionID:     sessionID,
		View:          Project(state, s.now()),
		StatusUpdates: runner.DrainStatus(),
	}
}

func toEngineEvent(req EventRequest) (engine.Event, error) {
	switch req.Type {
	case EventOpen:
		return engine.OpenRequested{}, nil
	case EventClose:
		return engine.CloseRequested{}, nil
	case EventMinimizeToggle:
		return engine.MinimizeToggled{}, nil
	case EventPreChatSubmit:
		return engine.PreChatSubmitted{Name: req.Name, Phone: req.Phone}, nil
	case EventSendMessage:
		return engine.MessageSubmitted{Text: req.Text}, nil
	case EventOptionClick:
		return engine.OptionClicked{MessageID: req.MessageID, Option: req.Option}, nil
	case EventLeadFormSubmit:
		return engine.LeadFormSubmitted{Name: req.Name, Email: req.Email, Phone: req.Phone}, nil
	case EventLeadFormDismiss:
		return engine.LeadFormDismissed{}, nil
	case EventSetLanguage:
		return engine.LanguageChanged{Language: req.Language}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownEvent, req.Type)
	}
}
