package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/internal/wizard"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
)

type wizardDraftSource interface {
	Load(ctx context.Context, sessionID string) *models.DraftApplication
}

type stepStore interface {
	GetStep(ctx context.Context, sessionID string) (models.Step, error)
	SaveStep(ctx context.Context, sessionID string, step models.Step) error
}

// WizardService drives the linear five-step application flow. The persisted
// step index is the single source of truth for where a session stands; all
// transitions are validated against the draft before they are committed.
type WizardService struct {
	drafts wizardDraftSource
	steps  stepStore
	logger *zap.Logger
}

// NewWizardService constructs a WizardService.
func NewWizardService(drafts wizardDraftSource, steps stepStore, logger *zap.Logger) *WizardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WizardService{drafts: drafts, steps: steps, logger: logger}
}

// State reports the session's current wizard position and step completeness.
func (s *WizardService) State(ctx context.Context, sessionID string) (*models.WizardState, error) {
	step, err := s.currentStep(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	draft := s.drafts.Load(ctx, sessionID)
	return s.buildState(step, draft), nil
}

// Advance moves the session forward one step. The gate for the current step
// must pass; a session can never skip ahead of an incomplete step.
func (s *WizardService) Advance(ctx context.Context, sessionID string) (*models.WizardState, error) {
	step, err := s.currentStep(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	draft := s.drafts.Load(ctx, sessionID)

	if step >= models.LastStep {
		return nil, appErrors.Clone(appErrors.ErrValidation, "already at the final step")
	}
	if !wizard.IsStepComplete(step, draft) {
		return nil, appErrors.Clone(appErrors.ErrStepIncomplete, fmt.Sprintf("%s step is incomplete", step.Label()))
	}

	next := step + 1
	if err := s.steps.SaveStep(ctx, sessionID, next); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist wizard position")
	}
	return s.buildState(next, draft), nil
}

// Retreat moves the session back one step. Backward navigation is always
// allowed; at the first step it is a no-op.
func (s *WizardService) Retreat(ctx context.Context, sessionID string) (*models.WizardState, error) {
	step, err := s.currentStep(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	draft := s.drafts.Load(ctx, sessionID)

	if step <= models.FirstStep {
		return s.buildState(models.FirstStep, draft), nil
	}

	prev := step - 1
	if err := s.steps.SaveStep(ctx, sessionID, prev); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist wizard position")
	}
	return s.buildState(prev, draft), nil
}

func (s *WizardService) currentStep(ctx context.Context, sessionID string) (models.Step, error) {
	step, err := s.steps.GetStep(ctx, sessionID)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load wizard position")
	}
	if !models.ValidStep(step) {
		return models.FirstStep, nil
	}
	return step, nil
}

func (s *WizardService) buildState(step models.Step, draft *models.DraftApplication) *models.WizardState {
	states := wizard.StepStates(draft)
	allComplete := true
	for _, state := range states {
		if !state.Complete {
			allComplete = false
			break
		}
	}
	return &models.WizardState{
		CurrentStep: step,
		Steps:       states,
		CanAdvance:  step < models.LastStep && wizard.IsStepComplete(step, draft),
		CanSubmit:   allComplete,
	}
}
