package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/pkg/appid"
	"github.com/noah-isme/scholarship-portal-api/pkg/config"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/jobs"
)

type paymentDrafts interface {
	Load(ctx context.Context, sessionID string) *models.DraftApplication
	Mutate(ctx context.Context, sessionID string, fn func(*models.DraftApplication) error) (*models.DraftApplication, error)
}

// PaymentService simulates the fee payment. Initiating a payment enqueues a
// background job that marks the draft paid after a fixed processing delay, the
// way a gateway callback would.
type PaymentService struct {
	drafts paymentDrafts
	queue  *jobs.Queue
	fee    int
	delay  time.Duration
	logger *zap.Logger

	mu         sync.Mutex
	processing map[string]struct{}
}

// NewPaymentService constructs a PaymentService and its worker queue. Call
// Start before initiating payments and Stop on shutdown.
func NewPaymentService(drafts paymentDrafts, cfg config.PaymentConfig, logger *zap.Logger) *PaymentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	fee := cfg.FeeAmount
	if fee <= 0 {
		fee = models.ApplicationFee
	}
	delay := cfg.ProcessingDelay
	if delay <= 0 {
		delay = 2 * time.Second
	}

	s := &PaymentService{
		drafts:     drafts,
		fee:        fee,
		delay:      delay,
		logger:     logger,
		processing: make(map[string]struct{}),
	}
	s.queue = jobs.NewQueue("payments", s.process, jobs.QueueConfig{
		Workers: cfg.QueueWorkers,
		Logger:  logger,
	})
	return s
}

// Start launches the payment workers.
func (s *PaymentService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the payment workers.
func (s *PaymentService) Stop() {
	s.queue.Stop()
}

// Initiate kicks off the simulated payment for the session's draft.
func (s *PaymentService) Initiate(ctx context.Context, sessionID string) (*models.PaymentState, error) {
	draft := s.drafts.Load(ctx, sessionID)
	if draft.Payment.Status == models.PaymentStatusPaid {
		return nil, appErrors.Clone(appErrors.ErrAlreadyPaid, "")
	}

	s.mu.Lock()
	if _, busy := s.processing[sessionID]; busy {
		s.mu.Unlock()
		return nil, appErrors.Clone(appErrors.ErrPaymentPending, "")
	}
	s.processing[sessionID] = struct{}{}
	s.mu.Unlock()

	job := jobs.Job{
		ID:      uuid.NewString(),
		Type:    "payment.simulate",
		Payload: sessionID,
	}
	if err := s.queue.Enqueue(job); err != nil {
		s.clearProcessing(sessionID)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue payment")
	}

	s.logger.Info("payment initiated", zap.String("session", sessionID), zap.Int("amount", s.fee))
	return &models.PaymentState{
		Amount:     s.fee,
		Status:     models.PaymentStatusPending,
		Processing: true,
	}, nil
}

// Status reports the current payment state for the session.
func (s *PaymentService) Status(ctx context.Context, sessionID string) (*models.PaymentState, error) {
	draft := s.drafts.Load(ctx, sessionID)

	s.mu.Lock()
	_, busy := s.processing[sessionID]
	s.mu.Unlock()

	return &models.PaymentState{
		Amount:        draft.Payment.Amount,
		Status:        draft.Payment.Status,
		TransactionID: draft.Payment.TransactionID,
		Processing:    busy,
	}, nil
}

func (s *PaymentService) process(ctx context.Context, job jobs.Job) error {
	defer func() {
		if sessionID, ok := job.Payload.(string); ok {
			s.clearProcessing(sessionID)
		}
	}()

	sessionID, ok := job.Payload.(string)
	if !ok {
		return fmt.Errorf("payment job %s: payload is not a session id", job.ID)
	}

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil
	case <-timer.C:
	}

	var txn string
	if _, err := s.drafts.Mutate(ctx, sessionID, func(draft *models.DraftApplication) error {
		if draft.Payment.Status == models.PaymentStatusPaid {
			return nil
		}
		txn = appid.NewTransactionID(time.Now())
		draft.Payment.Amount = s.fee
		draft.Payment.Status = models.PaymentStatusPaid
		draft.Payment.TransactionID = &txn
		return nil
	}); err != nil {
		return fmt.Errorf("persist paid draft %s: %w", sessionID, err)
	}

	if txn != "" {
		s.logger.Info("payment completed", zap.String("session", sessionID), zap.String("transaction_id", txn))
	}
	return nil
}

func (s *PaymentService) clearProcessing(sessionID string) {
	s.mu.Lock()
	delete(s.processing, sessionID)
	s.mu.Unlock()
}
