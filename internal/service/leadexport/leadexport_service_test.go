package leadexport

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatterloop/widget/internal/domain/models"
)

type fakeLeadRepo struct {
	saved   []models.CapturedLead
	saveErr error
	listErr error
}

func (f *fakeLeadRepo) SaveLead(_ context.Context, lead models.CapturedLead) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, lead)
	return nil
}

func (f *fakeLeadRepo) ListLeadsCapturedSince(_ context.Context, since time.Time) ([]models.CapturedLead, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.CapturedLead
	for _, lead := range f.saved {
		if !lead.CapturedAt.Before(since) {
			out = append(out, lead)
		}
	}
	return out, nil
}

type fakeSheets struct {
	appended [][]interface{}
	err      error
}

func (f *fakeSheets) AppendRows(_ context.Context, _ string, rows [][]interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, rows...)
	return nil
}

func (f *fakeSheets) ReadRange(context.Context, string) ([][]interface{}, error) {
	return nil, nil
}

func sampleLead(capturedAt time.Time) models.CapturedLead {
	return models.CapturedLead{
		ChatbotID:      "bot-1",
		ConversationID: "conv-1",
		Name:           "Jane Doe",
		Email:          "jane@example.com",
		Phone:          "4155550101",
		Source:         models.LeadSourceConversation,
		CapturedAt:     capturedAt,
	}
}

func TestRecord(t *testing.T) {
	leads := &fakeLeadRepo{}
	svc := NewService(leads, nil, "", nil)

	svc.Record(context.Background(), sampleLead(time.Now()))
	require.Len(t, leads.saved, 1)
	assert.Equal(t, "Jane Doe", leads.saved[0].Name)
}

func TestRecord_SaveFailureIsSilent(t *testing.T) {
	leads := &fakeLeadRepo{saveErr: errors.New("down")}
	svc := NewService(leads, nil, "", nil)

	// Must not panic or surface the error.
	svc.Record(context.Background(), sampleLead(time.Now()))
	assert.Empty(t, leads.saved)
}

func TestExportDaily(t *testing.T) {
	now := time.Date(2026, 8, 26, 6, 0, 0, 0, time.UTC)
	leads := &fakeLeadRepo{saved: []models.CapturedLead{
		sampleLead(now.Add(-2 * time.Hour)),
		sampleLead(now.Add(-30 * time.Hour)), // outside the window
	}}
	sheets := &fakeSheets{}
	svc := NewService(leads, sheets, "", nil)

	count, err := svc.ExportDaily(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, sheets.appended, 1)

	row := sheets.appended[0]
	require.Len(t, row, 8)
	assert.Equal(t, "bot-1", row[1])
	assert.Equal(t, "jane@example.com", row[4])
	assert.Equal(t, models.LeadSourceConversation, row[7])
}

func TestExportDaily_NoLeads(t *testing.T) {
	sheets := &fakeSheets{}
	svc := NewService(&fakeLeadRepo{}, sheets, "", nil)

	count, err := svc.ExportDaily(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Empty(t, sheets.appended)
}

func TestExportDaily_NoSheetConfigured(t *testing.T) {
	leads := &fakeLeadRepo{saved: []models.CapturedLead{sampleLead(time.Now())}}
	svc := NewService(leads, nil, "", nil)

	count, err := svc.ExportDaily(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestExportDaily_ListFailure(t *testing.T) {
	svc := NewService(&fakeLeadRepo{listErr: errors.New("down")}, &fakeSheets{}, "", nil)

	_, err := svc.ExportDaily(context.Background(), time.Now())
	assert.Error(t, err)
}
