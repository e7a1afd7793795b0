package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	service "github.com/chatterloop/widget/internal/service/widget"
	"github.com/chatterloop/widget/pkg/clients/platform"
)

type fakeService struct {
	createErr error
	eventErr  error
	viewErr   error

	lastChatbotID string
	lastSessionID string
	lastEvent     service.EventRequest
}

func (f *fakeService) CreateSession(_ context.Context, req service.CreateSessionRequest) (*service.SessionResponse, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.lastChatbotID = req.ChatbotID
	return &service.SessionResponse{SessionID: "sess-1"}, nil
}

func (f *fakeService) HandleEvent(_ context.Context, sessionID string, req service.EventRequest) (*service.SessionResponse, error) {
	if f.eventErr != nil {
		return nil, f.eventErr
	}
	f.lastSessionID = sessionID
	f.lastEvent = req
	return &service.SessionResponse{SessionID: sessionID}, nil
}

func (f *fakeService) GetView(_ context.Context, sessionID string) (*service.SessionResponse, error) {
	if f.viewErr != nil {
		return nil, f.viewErr
	}
	return &service.SessionResponse{SessionID: sessionID}, nil
}

func (f *fakeService) SweepIdle(time.Duration) int { return 0 }

func newTestRouter(svc service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewWidgetHandler(svc, nil)

	r := gin.New()
	r.POST("/v1/widget/:chatbotId/sessions", handler.CreateSession)
	r.POST("/v1/sessions/:sessionId/events", handler.HandleEvent)
	r.GET("/v1/sessions/:sessionId", handler.GetView)
	return r
}

func postJSON(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateSessionEndpoint(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc)

	w := postJSON(r, "/v1/widget/bot-1/sessions", gin.H{"chatbotId": "ignored"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "bot-1", svc.lastChatbotID, "path parameter wins over body")

	var resp service.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sess-1", resp.SessionID)
}

func TestCreateSessionEndpoint_Disabled(t *testing.T) {
	r := newTestRouter(&fakeService{createErr: platform.ErrWidgetDisabled})

	w := postJSON(r, "/v1/widget/bot-1/sessions", gin.H{"chatbotId": "bot-1"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateSessionEndpoint_UpstreamFailure(t *testing.T) {
	r := newTestRouter(&fakeService{createErr: errors.New("upstream down")})

	w := postJSON(r, "/v1/widget/bot-1/sessions", gin.H{"chatbotId": "bot-1"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestHandleEventEndpoint(t *testing.T) {
	svc := &fakeService{}
	r := newTestRouter(svc)

	w := postJSON(r, "/v1/sessions/sess-1/events", gin.H{"type": "send-message", "text": "hi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess-1", svc.lastSessionID)
	assert.Equal(t, "send-message", svc.lastEvent.Type)
	assert.Equal(t, "hi", svc.lastEvent.Text)
}

func TestHandleEventEndpoint_Errors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"session not found", service.ErrSessionNotFound, http.StatusNotFound},
		{"unknown event", service.ErrUnknownEvent, http.StatusBadRequest},
		{"internal", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRouter(&fakeService{eventErr: tc.err})
			w := postJSON(r, "/v1/sessions/sess-1/events", gin.H{"type": "open"})
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestHandleEventEndpoint_MissingType(t *testing.T) {
	r := newTestRouter(&fakeService{})

	w := postJSON(r, "/v1/sessions/sess-1/events", gin.H{"text": "hi"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetViewEndpoint(t *testing.T) {
	r := newTestRouter(&fakeService{})

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/sess-1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp service.SessionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "sess-1", resp.SessionID)
}

func TestGetViewEndpoint_NotFound(t *testing.T) {
	r := newTestRouter(&fakeService{viewErr: service.ErrSessionNotFound})

	req := httptest.NewRequest(http.MethodGet, "/v1/sessions/nope", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
