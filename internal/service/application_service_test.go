package service

import (
	"bytes"
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/storage"
)

type adminLedgerStub struct {
	records map[string]models.ApplicationRecord
}

func newAdminLedgerStub() *adminLedgerStub {
	return &adminLedgerStub{records: make(map[string]models.ApplicationRecord)}
}

func (l *adminLedgerStub) List(ctx context.Context, filter models.ApplicationFilter) ([]models.ApplicationRecord, int, error) {
	matched := []models.ApplicationRecord{}
	for _, record := range l.records {
		if filter.Status != nil && record.Status != *filter.Status {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(record.PersonalDetails.FullName), strings.ToLower(filter.Search)) {
			continue
		}
		matched = append(matched, record)
	}
	total := len(matched)
	if filter.Page > 1 {
		matched = nil
	}
	return matched, total, nil
}

func (l *adminLedgerStub) FindByID(ctx context.Context, id string) (*models.ApplicationRecord, error) {
	record, ok := l.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &record, nil
}

func (l *adminLedgerStub) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	record, ok := l.records[id]
	if !ok {
		return sql.ErrNoRows
	}
	record.Status = status
	l.records[id] = record
	return nil
}

func (l *adminLedgerStub) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int, error) {
	counts := make(map[models.ApplicationStatus]int)
	for _, record := range l.records {
		counts[record.Status]++
	}
	return counts, nil
}

func newApplicationFixture(t *testing.T) (*ApplicationService, *adminLedgerStub, *storage.LocalStorage) {
	t.Helper()
	files, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", 10*time.Minute)
	ledger := newAdminLedgerStub()
	return NewApplicationService(ledger, files, signer, 100, nil), ledger, files
}

func seededRecord() models.ApplicationRecord {
	draft := completeDraft()
	return models.ApplicationRecord{
		ID:               "SCH-20260901-A1B2",
		Status:           models.StatusSubmitted,
		SubmittedAt:      time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		DraftApplication: *draft,
	}
}

func TestApplicationGetNotFound(t *testing.T) {
	svc, _, _ := newApplicationFixture(t)

	_, err := svc.Get(context.Background(), "SCH-20260901-ZZZZ")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestApplicationUpdateStatus(t *testing.T) {
	svc, ledger, _ := newApplicationFixture(t)
	record := seededRecord()
	ledger.records[record.ID] = record

	require.NoError(t, svc.UpdateStatus(context.Background(), record.ID, models.StatusApproved))
	assert.Equal(t, models.StatusApproved, ledger.records[record.ID].Status)

	err := svc.UpdateStatus(context.Background(), record.ID, models.ApplicationStatus("archived"))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestApplicationStats(t *testing.T) {
	svc, ledger, _ := newApplicationFixture(t)
	first := seededRecord()
	second := seededRecord()
	second.ID = "SCH-20260901-C3D4"
	second.Status = models.StatusApproved
	ledger.records[first.ID] = first
	ledger.records[second.ID] = second

	stats, err := svc.Stats(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.Submitted)
	assert.Equal(t, 1, stats.Approved)
}

func TestApplicationExportCSV(t *testing.T) {
	svc, ledger, _ := newApplicationFixture(t)
	record := seededRecord()
	ledger.records[record.ID] = record

	payload, filename, err := svc.ExportCSV(context.Background(), models.ApplicationFilter{})

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(filename, ".csv"))
	assert.Contains(t, string(payload), record.ID)
	assert.Contains(t, string(payload), "Priya Sharma")
}

func TestApplicationReceiptPDF(t *testing.T) {
	svc, ledger, _ := newApplicationFixture(t)
	record := seededRecord()
	ledger.records[record.ID] = record

	payload, filename, err := svc.ReceiptPDF(context.Background(), record.ID)

	require.NoError(t, err)
	assert.Equal(t, record.ID+"-receipt.pdf", filename)
	assert.True(t, bytes.HasPrefix(payload, []byte("%PDF")))
}

func TestApplicationDocumentURLAndResolve(t *testing.T) {
	svc, ledger, files := newApplicationFixture(t)
	record := seededRecord()
	_, err := files.Save(record.Documents[0].PayloadRef, []byte("fake-jpeg"))
	require.NoError(t, err)
	ledger.records[record.ID] = record

	token, expiresAt, err := svc.DocumentURL(context.Background(), record.ID, models.SlotPhoto)
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	file, doc, err := svc.ResolveDocument(context.Background(), token)
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, models.SlotPhoto, doc.SlotID)
}

func TestApplicationDocumentURLMissingSlot(t *testing.T) {
	svc, ledger, _ := newApplicationFixture(t)
	record := seededRecord()
	ledger.records[record.ID] = record

	_, _, err := svc.DocumentURL(context.Background(), record.ID, models.SlotBonafide)

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestApplicationResolveDocumentRejectsTamperedToken(t *testing.T) {
	svc, ledger, files := newApplicationFixture(t)
	record := seededRecord()
	_, err := files.Save(record.Documents[0].PayloadRef, []byte("fake-jpeg"))
	require.NoError(t, err)
	ledger.records[record.ID] = record

	token, _, err := svc.DocumentURL(context.Background(), record.ID, models.SlotPhoto)
	require.NoError(t, err)

	_, _, err = svc.ResolveDocument(context.Background(), token+"x")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}
