package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

// draftStoreStub is a map-backed stand-in for the Redis draft store.
type draftStoreStub struct {
	mu      sync.Mutex
	drafts  map[string]models.DraftApplication
	steps   map[string]models.Step
	getErr  error
	saveErr error
}

func newDraftStoreStub() *draftStoreStub {
	return &draftStoreStub{
		drafts: make(map[string]models.DraftApplication),
		steps:  make(map[string]models.Step),
	}
}

func (s *draftStoreStub) GetDraft(ctx context.Context, sessionID string) (*models.DraftApplication, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	draft, ok := s.drafts[sessionID]
	if !ok {
		return nil, nil
	}
	return &draft, nil
}

func (s *draftStoreStub) SaveDraft(ctx context.Context, sessionID string, draft *models.DraftApplication) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.drafts[sessionID] = *draft
	return nil
}

func (s *draftStoreStub) DeleteDraft(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}

func (s *draftStoreStub) GetStep(ctx context.Context, sessionID string) (models.Step, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.steps[sessionID], nil
}

func (s *draftStoreStub) SaveStep(ctx context.Context, sessionID string, step models.Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.steps[sessionID] = step
	return nil
}

func (s *draftStoreStub) DeleteStep(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.steps, sessionID)
	return nil
}

func (s *draftStoreStub) draft(sessionID string) (models.DraftApplication, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	draft, ok := s.drafts[sessionID]
	return draft, ok
}

func TestDraftLoadDefaultsWhenMissing(t *testing.T) {
	svc := NewDraftService(newDraftStoreStub(), nil)

	draft := svc.Load(context.Background(), "sess-1")

	require.NotNil(t, draft)
	assert.False(t, draft.TermsAccepted)
	assert.Empty(t, draft.Documents)
	assert.Equal(t, models.ApplicationFee, draft.Payment.Amount)
	assert.Equal(t, models.PaymentStatusPending, draft.Payment.Status)
}

func TestDraftLoadFallsBackOnStoreError(t *testing.T) {
	store := newDraftStoreStub()
	store.getErr = errors.New("boom")
	svc := NewDraftService(store, nil)

	draft := svc.Load(context.Background(), "sess-1")

	require.NotNil(t, draft)
	assert.False(t, draft.TermsAccepted)
}

func TestDraftUpdateMergesSections(t *testing.T) {
	store := newDraftStoreStub()
	svc := NewDraftService(store, nil)
	ctx := context.Background()

	terms := true
	_, err := svc.Update(ctx, "sess-1", models.UpdateDraftRequest{TermsAccepted: &terms})
	require.NoError(t, err)

	personal := models.PersonalDetails{FullName: "Priya Sharma", Email: "priya@example.com"}
	draft, err := svc.Update(ctx, "sess-1", models.UpdateDraftRequest{PersonalDetails: &personal})
	require.NoError(t, err)

	// The earlier terms update must survive a later personal-details update.
	assert.True(t, draft.TermsAccepted)
	assert.Equal(t, "Priya Sharma", draft.PersonalDetails.FullName)

	stored := store.drafts["sess-1"]
	assert.True(t, stored.TermsAccepted)
	assert.Equal(t, "priya@example.com", stored.PersonalDetails.Email)
}

func TestDraftUpdateIsIdempotent(t *testing.T) {
	store := newDraftStoreStub()
	svc := NewDraftService(store, nil)
	ctx := context.Background()

	personal := models.PersonalDetails{FullName: "Priya Sharma"}
	first, err := svc.Update(ctx, "sess-1", models.UpdateDraftRequest{PersonalDetails: &personal})
	require.NoError(t, err)
	second, err := svc.Update(ctx, "sess-1", models.UpdateDraftRequest{PersonalDetails: &personal})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestDraftConcurrentSectionUpdatesLoseNothing(t *testing.T) {
	store := newDraftStoreStub()
	svc := NewDraftService(store, nil)
	ctx := context.Background()

	// Two in-flight PATCHes touching different sections of the same session.
	// Both writes must survive no matter how they interleave.
	var wg sync.WaitGroup
	for i := 0; i < 25; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			personal := models.PersonalDetails{FullName: "Priya Sharma"}
			_, err := svc.Update(ctx, "sess-1", models.UpdateDraftRequest{PersonalDetails: &personal})
			assert.NoError(t, err)
		}()
		go func() {
			defer wg.Done()
			academic := models.AcademicDetails{ClassName: "B.Sc."}
			_, err := svc.Update(ctx, "sess-1", models.UpdateDraftRequest{AcademicDetails: &academic})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stored, ok := store.draft("sess-1")
	require.True(t, ok)
	assert.Equal(t, "Priya Sharma", stored.PersonalDetails.FullName)
	assert.Equal(t, "B.Sc.", stored.AcademicDetails.ClassName)
}

func TestDraftMutationsSerializePerSession(t *testing.T) {
	svc := NewDraftService(newDraftStoreStub(), nil)
	ctx := context.Background()

	var active, peak int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Mutate(ctx, "sess-1", func(*models.DraftApplication) error {
				n := atomic.AddInt32(&active, 1)
				for {
					cur := atomic.LoadInt32(&peak)
					if n <= cur || atomic.CompareAndSwapInt32(&peak, cur, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&active, -1)
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&peak))
}

func TestDraftMutateSkipsSaveOnCallbackError(t *testing.T) {
	store := newDraftStoreStub()
	svc := NewDraftService(store, nil)

	_, err := svc.Mutate(context.Background(), "sess-1", func(*models.DraftApplication) error {
		return errors.New("rejected")
	})

	require.Error(t, err)
	_, ok := store.draft("sess-1")
	assert.False(t, ok)
}

func TestDraftResetClearsDraftAndStep(t *testing.T) {
	store := newDraftStoreStub()
	svc := NewDraftService(store, nil)
	ctx := context.Background()

	terms := true
	_, err := svc.Update(ctx, "sess-1", models.UpdateDraftRequest{TermsAccepted: &terms})
	require.NoError(t, err)
	require.NoError(t, store.SaveStep(ctx, "sess-1", models.StepAcademic))

	require.NoError(t, svc.Reset(ctx, "sess-1"))

	draft := svc.Load(ctx, "sess-1")
	assert.False(t, draft.TermsAccepted)
	assert.Empty(t, store.steps)
}
