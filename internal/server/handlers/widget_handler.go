package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	service "github.com/chatterloop/widget/internal/service/widget"
	"github.com/chatterloop/widget/pkg/clients/platform"
)

// WidgetHandler handles the embed shell's HTTP surface: session creation,
// event dispatch and view polling.
type WidgetHandler struct {
	svc    service.Service
	logger *zap.Logger
}

// NewWidgetHandler constructs the HTTP handler adapter.
func NewWidgetHandler(svc service.Service, logger *zap.Logger) *WidgetHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WidgetHandler{svc: svc, logger: logger}
}

// CreateSession boots a widget session for a visitor.
func (h *WidgetHandler) CreateSession(c *gin.Context) {
	var req service.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid session payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	req.ChatbotID = c.Param("chatbotId")

	resp, err := h.svc.CreateSession(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, platform.ErrWidgetDisabled) {
			c.JSON(http.StatusForbidden, gin.H{"error": "widget disabled"})
			return
		}
		h.logger.Error("failed creating session", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to create session"})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// HandleEvent applies one widget event and returns the refreshed view.
func (h *WidgetHandler) HandleEvent(c *gin.Context) {
	var req service.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid event payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.svc.HandleEvent(c.Request.Context(), c.Param("sessionId"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		case errors.Is(err, service.ErrUnknownEvent):
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown event type"})
		default:
			h.logger.Error("failed handling event", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process event"})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetView returns the current view for polling clients.
func (h *WidgetHandler) GetView(c *gin.Context) {
	resp, err := h.svc.GetView(c.Request.Context(), c.Param("sessionId"))
	if err != nil {
		if errors.Is(err, service.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return
		}
		h.logger.Error("failed loading view", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load view"})
		return
	}

	c.JSON(http.StatusOK, resp)
}
