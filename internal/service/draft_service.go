package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

type draftStore interface {
	GetDraft(ctx context.Context, sessionID string) (*models.DraftApplication, error)
	SaveDraft(ctx context.Context, sessionID string, draft *models.DraftApplication) error
	DeleteDraft(ctx context.Context, sessionID string) error
	GetStep(ctx context.Context, sessionID string) (models.Step, error)
	SaveStep(ctx context.Context, sessionID string, step models.Step) error
	DeleteStep(ctx context.Context, sessionID string) error
}

// DraftService owns the lifecycle of a session's in-progress application.
// Every mutation is written through to the store immediately so a session can
// resume exactly where it left off. Writes for the same session are serialized
// through a per-session lock: the draft is stored as one JSON value, so an
// unguarded load-then-save from two writers would drop the earlier write.
type DraftService struct {
	store  draftStore
	logger *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewDraftService constructs a DraftService.
func NewDraftService(store draftStore, logger *zap.Logger) *DraftService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftService{
		store:  store,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}
}

func (s *DraftService) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

// Load returns the session's draft. A missing or unreadable draft yields the
// default draft: the applicant starts over rather than seeing an error.
func (s *DraftService) Load(ctx context.Context, sessionID string) *models.DraftApplication {
	draft, err := s.store.GetDraft(ctx, sessionID)
	if err != nil {
		s.logger.Warn("discarding unreadable draft", zap.String("session", sessionID), zap.Error(err))
		return models.NewDraftApplication()
	}
	if draft == nil {
		return models.NewDraftApplication()
	}
	if draft.Documents == nil {
		draft.Documents = []models.DocumentDescriptor{}
	}
	if draft.Payment.Amount == 0 {
		draft.Payment.Amount = models.ApplicationFee
	}
	if draft.Payment.Status == "" {
		draft.Payment.Status = models.PaymentStatusPending
	}
	return draft
}

// Mutate loads the draft, applies fn and persists the result as one unit under
// the session's lock. Every draft write goes through here, including the
// background payment worker's, so overlapping mutations cannot drop each
// other's sections. An error from fn aborts the mutation without saving.
func (s *DraftService) Mutate(ctx context.Context, sessionID string, fn func(*models.DraftApplication) error) (*models.DraftApplication, error) {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	draft := s.Load(ctx, sessionID)
	if err := fn(draft); err != nil {
		return nil, err
	}
	if err := s.store.SaveDraft(ctx, sessionID, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Update applies a partial update section by section and persists the result.
// Provided sections replace the stored section wholesale; omitted sections are
// untouched.
func (s *DraftService) Update(ctx context.Context, sessionID string, req models.UpdateDraftRequest) (*models.DraftApplication, error) {
	return s.Mutate(ctx, sessionID, func(draft *models.DraftApplication) error {
		if req.TermsAccepted != nil {
			draft.TermsAccepted = *req.TermsAccepted
		}
		if req.PersonalDetails != nil {
			draft.PersonalDetails = *req.PersonalDetails
		}
		if req.AcademicDetails != nil {
			draft.AcademicDetails = *req.AcademicDetails
		}
		return nil
	})
}

// Reset discards the draft and the wizard position for the session.
func (s *DraftService) Reset(ctx context.Context, sessionID string) error {
	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.store.DeleteDraft(ctx, sessionID); err != nil {
		return err
	}
	return s.store.DeleteStep(ctx, sessionID)
}
