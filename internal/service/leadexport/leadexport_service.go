// Package leadexport records every captured lead locally and exports the
// day's leads to a Google Sheet for the chatbot owner's sales workflow.
package leadexport

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chatterloop/widget/internal/domain/models"
	"github.com/chatterloop/widget/internal/repository/mongodb"
	repo "github.com/chatterloop/widget/internal/repository/sheets"
)

const (
	dateLayout        = "2006-01-02 15:04:05"
	defaultLeadsRange = "Leads!A:H"
)

// Service persists captured leads and builds the daily sheet export.
type Service struct {
	leads      mongodb.Repository
	sheets     repo.Repository
	sheetRange string
	logger     *zap.Logger
}

// NewService wires a new lead export service instance. The sheets repository
// may be nil when no spreadsheet is configured; exports then no-op.
func NewService(leads mongodb.Repository, sheets repo.Repository, sheetRange string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if sheetRange == "" {
		sheetRange = defaultLeadsRange
	}
	return &Service{leads: leads, sheets: sheets, sheetRange: sheetRange, logger: logger}
}

// Record stores one captured lead. Recording is best effort: failures are
// logged and never surfaced to the conversation.
func (s *Service) Record(ctx context.Context, lead models.CapturedLead) {
	if s.leads == nil {
		return
	}
	if err := s.leads.SaveLead(ctx, lead); err != nil {
		s.logger.Warn("failed saving captured lead",
			zap.String("chatbot_id", lead.ChatbotID),
			zap.String("source", lead.Source),
			zap.Error(err))
		return
	}
	s.logger.Info("lead recorded",
		zap.String("chatbot_id", lead.ChatbotID),
		zap.String("source", lead.Source))
}

// ExportDaily appends the last 24 hours of leads to the spreadsheet and
// returns how many rows were written.
func (s *Service) ExportDaily(ctx context.Context, now time.Time) (int, error) {
	if s.leads == nil || s.sheets == nil {
		return 0, nil
	}

	since := now.Add(-24 * time.Hour)
	leads, err := s.leads.ListLeadsCapturedSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("load leads for export: %w", err)
	}

	if len(leads) == 0 {
		s.logger.Info("no leads to export", zap.Time("since", since))
		return 0, nil
	}

	rows := make([][]interface{}, 0, len(leads))
	for _, lead := range leads {
		rows = append(rows, leadRow(lead))
	}

	if err := s.sheets.AppendRows(ctx, s.sheetRange, rows); err != nil {
		return 0, fmt.Errorf("append lead rows: %w", err)
	}

	s.logger.Info("daily lead export complete", zap.Int("rows", len(rows)))
	return len(rows), nil
}

func leadRow(lead models.CapturedLead) []interface{} {
	return []interface{}{
		lead.CapturedAt.Format(dateLayout),
		lead.ChatbotID,
		lead.ConversationID,
		lead.Name,
		lead.Email,
		lead.Phone,
		lead.Message,
		lead.Source,
	}
}
