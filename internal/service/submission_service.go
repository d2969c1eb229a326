package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/internal/wizard"
	"github.com/noah-isme/scholarship-portal-api/pkg/appid"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

// maxIDAttempts bounds application-id collision retries. The suffix space is
// 65k per day, so hitting the bound means something else is wrong.
const maxIDAttempts = 3

type submissionLedger interface {
	Insert(ctx context.Context, record *models.ApplicationRecord) error
	ExistsByID(ctx context.Context, id string) (bool, error)
}

type submissionDrafts interface {
	Load(ctx context.Context, sessionID string) *models.DraftApplication
	Reset(ctx context.Context, sessionID string) error
}

// SubmissionService finalizes a completed draft into the ledger. Finalization
// is one-shot per session: the ledger append happens before the draft is
// cleared, so a failed append leaves the draft intact for a retry.
type SubmissionService struct {
	ledger submissionLedger
	drafts submissionDrafts
	delay  time.Duration
	logger *zap.Logger
	now    func() time.Time

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewSubmissionService constructs a SubmissionService. The delay is the
// simulated processing pause before the record is written.
func NewSubmissionService(ledger submissionLedger, drafts submissionDrafts, delay time.Duration, logger *zap.Logger) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubmissionService{
		ledger:   ledger,
		drafts:   drafts,
		delay:    delay,
		logger:   logger,
		now:      time.Now,
		inFlight: make(map[string]struct{}),
	}
}

// Finalize validates the whole draft, appends it to the ledger and resets the
// session. Concurrent submits for the same session are rejected, not queued.
func (s *SubmissionService) Finalize(ctx context.Context, sessionID string) (*models.SubmissionReceipt, error) {
	if err := s.acquire(sessionID); err != nil {
		return nil, err
	}
	defer s.release(sessionID)

	draft := s.drafts.Load(ctx, sessionID)
	for step := models.FirstStep; step <= models.LastStep; step++ {
		if !wizard.IsStepComplete(step, draft) {
			return nil, appErrors.Clone(appErrors.ErrStepIncomplete, fmt.Sprintf("%s step is incomplete", step.Label()))
		}
	}

	// Simulated processing pause. Nothing has been written yet, so a
	// cancelled submit leaves the draft untouched.
	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, appErrors.Wrap(ctx.Err(), appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "submission cancelled")
		case <-timer.C:
		}
	}

	submittedAt := s.now().UTC()
	id, err := s.freshID(ctx, submittedAt)
	if err != nil {
		return nil, err
	}

	record := &models.ApplicationRecord{
		ID:               id,
		Status:           models.StatusSubmitted,
		SubmittedAt:      submittedAt,
		DraftApplication: *draft,
	}
	if err := s.ledger.Insert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record application")
	}

	// The record is durable at this point; a failed reset only risks the
	// applicant re-seeing stale draft data, never losing the submission.
	if err := s.drafts.Reset(ctx, sessionID); err != nil {
		s.logger.Warn("failed to reset draft after submission",
			zap.String("session", sessionID), zap.String("application_id", id), zap.Error(err))
	}

	s.logger.Info("application submitted", zap.String("application_id", id))
	return &models.SubmissionReceipt{
		ApplicationID: id,
		Status:        record.Status,
		SubmittedAt:   submittedAt.Format(time.RFC3339),
	}, nil
}

func (s *SubmissionService) acquire(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[sessionID]; busy {
		return appErrors.Clone(appErrors.ErrSubmitInFlight, "")
	}
	s.inFlight[sessionID] = struct{}{}
	return nil
}

func (s *SubmissionService) release(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, sessionID)
}

func (s *SubmissionService) freshID(ctx context.Context, now time.Time) (string, error) {
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		id := appid.NewApplicationID(now)
		exists, err := s.ledger.ExistsByID(ctx, id)
		if err != nil {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check application id")
		}
		if !exists {
			return id, nil
		}
		s.logger.Warn("application id collision", zap.String("id", id), zap.Int("attempt", attempt+1))
	}
	return "", appErrors.Clone(appErrors.ErrInternal, "could not allocate a unique application id")
}
