package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/pkg/appid"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

type ledgerStub struct {
	mu           sync.Mutex
	records      map[string]models.ApplicationRecord
	insertErr    error
	collideFirst int
}

func newLedgerStub() *ledgerStub {
	return &ledgerStub{records: make(map[string]models.ApplicationRecord)}
}

func (l *ledgerStub) Insert(ctx context.Context, record *models.ApplicationRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.insertErr != nil {
		return l.insertErr
	}
	l.records[record.ID] = *record
	return nil
}

func (l *ledgerStub) ExistsByID(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.collideFirst > 0 {
		l.collideFirst--
		return true, nil
	}
	_, ok := l.records[id]
	return ok, nil
}

func newSubmissionFixture() (*SubmissionService, *ledgerStub, *draftStoreStub) {
	store := newDraftStoreStub()
	ledger := newLedgerStub()
	svc := NewSubmissionService(ledger, NewDraftService(store, nil), 0, nil)
	return svc, ledger, store
}

func TestFinalizeRejectsIncompleteDraft(t *testing.T) {
	svc, ledger, _ := newSubmissionFixture()

	_, err := svc.Finalize(context.Background(), "sess-1")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStepIncomplete.Code, appErrors.FromError(err).Code)
	assert.Empty(t, ledger.records)
}

func TestFinalizeAppendsRecordAndResetsDraft(t *testing.T) {
	svc, ledger, store := newSubmissionFixture()
	ctx := context.Background()
	store.drafts["sess-1"] = *completeDraft()
	store.steps["sess-1"] = models.StepPayment

	receipt, err := svc.Finalize(ctx, "sess-1")

	require.NoError(t, err)
	assert.True(t, appid.Valid(receipt.ApplicationID))
	assert.Equal(t, models.StatusSubmitted, receipt.Status)

	record, ok := ledger.records[receipt.ApplicationID]
	require.True(t, ok)
	assert.Equal(t, "Priya Sharma", record.PersonalDetails.FullName)
	assert.Equal(t, models.PaymentStatusPaid, record.Payment.Status)

	// The session starts over after a successful submission.
	assert.Empty(t, store.drafts)
	assert.Empty(t, store.steps)
}

func TestFinalizePreservesDraftWhenAppendFails(t *testing.T) {
	svc, ledger, store := newSubmissionFixture()
	ctx := context.Background()
	store.drafts["sess-1"] = *completeDraft()
	ledger.insertErr = errors.New("ledger unavailable")

	_, err := svc.Finalize(ctx, "sess-1")

	require.Error(t, err)
	_, stillThere := store.drafts["sess-1"]
	assert.True(t, stillThere)
}

func TestFinalizeRetriesOnIDCollision(t *testing.T) {
	svc, ledger, store := newSubmissionFixture()
	ctx := context.Background()
	store.drafts["sess-1"] = *completeDraft()

	// The first two probes collide; the bounded retry must still succeed.
	ledger.collideFirst = 2

	receipt, err := svc.Finalize(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, appid.Valid(receipt.ApplicationID))
}

func TestFinalizeGivesUpAfterRepeatedCollisions(t *testing.T) {
	svc, ledger, store := newSubmissionFixture()
	ctx := context.Background()
	store.drafts["sess-1"] = *completeDraft()
	ledger.collideFirst = maxIDAttempts

	_, err := svc.Finalize(ctx, "sess-1")

	require.Error(t, err)
	assert.Empty(t, ledger.records)
	_, stillThere := store.drafts["sess-1"]
	assert.True(t, stillThere)
}

func TestFinalizeHonoursCancellationDuringProcessing(t *testing.T) {
	store := newDraftStoreStub()
	ledger := newLedgerStub()
	svc := NewSubmissionService(ledger, NewDraftService(store, nil), 10*time.Second, nil)
	store.drafts["sess-1"] = *completeDraft()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Finalize(ctx, "sess-1")

	require.Error(t, err)
	assert.Empty(t, ledger.records)
	_, stillThere := store.drafts["sess-1"]
	assert.True(t, stillThere)
}

func TestFinalizeRejectsConcurrentSubmit(t *testing.T) {
	store := newDraftStoreStub()
	ledger := newLedgerStub()
	svc := NewSubmissionService(ledger, NewDraftService(store, nil), 0, nil)
	store.drafts["sess-1"] = *completeDraft()

	require.NoError(t, svc.acquire("sess-1"))
	defer svc.release("sess-1")

	_, err := svc.Finalize(context.Background(), "sess-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrSubmitInFlight.Code, appErrors.FromError(err).Code)
}
