// Package wizard implements the step gating rules for the application flow.
package wizard

import (
	"strconv"
	"strings"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	"github.com/noah-isme/scholarship-portal-api/internal/validation"
)

// MinUploadedSlots is how many distinct document slots must be filled before
// the documents step counts as complete. This is looser than the required-slot
// list on purpose; it mirrors the product's relaxed intake behaviour.
const MinUploadedSlots = 2

// IsStepComplete reports whether the draft satisfies the given step. It is a
// pure function of the draft; completion is a stricter aggregate than "no
// visible field errors" and is recomputed on every draft change.
func IsStepComplete(step models.Step, draft *models.DraftApplication) bool {
	if draft == nil {
		return false
	}
	switch step {
	case models.StepTerms:
		return draft.TermsAccepted
	case models.StepPersonal:
		return personalComplete(draft.PersonalDetails)
	case models.StepAcademic:
		return academicComplete(draft.AcademicDetails)
	case models.StepDocuments:
		return len(distinctSlots(draft.Documents)) >= MinUploadedSlots
	case models.StepPayment:
		return draft.Payment.Status == models.PaymentStatusPaid
	}
	return false
}

// StepStates evaluates every step against the draft.
func StepStates(draft *models.DraftApplication) []models.StepState {
	states := make([]models.StepState, 0, models.StepCount)
	for step := models.FirstStep; step <= models.LastStep; step++ {
		states = append(states, models.StepState{
			Step:     step,
			Label:    step.Label(),
			Complete: IsStepComplete(step, draft),
		})
	}
	return states
}

func personalComplete(p models.PersonalDetails) bool {
	for _, value := range []string{
		p.FullName, p.DOB, p.Gender, p.Category,
		p.FatherName, p.MotherName, p.Income, p.Email, p.Mobile, p.Address,
	} {
		if strings.TrimSpace(value) == "" {
			return false
		}
	}
	if msg, err := validation.Validate(models.StepPersonal, validation.FieldEmail, p.Email); err != nil || msg != "" {
		return false
	}
	if msg, err := validation.Validate(models.StepPersonal, validation.FieldMobile, p.Mobile); err != nil || msg != "" {
		return false
	}
	return true
}

func academicComplete(a models.AcademicDetails) bool {
	for _, value := range []string{a.ClassName, a.SchoolName, a.Board, a.RollNo, a.PreviousPercentage} {
		if strings.TrimSpace(value) == "" {
			return false
		}
	}
	pct, err := strconv.ParseFloat(a.PreviousPercentage, 64)
	if err != nil {
		return false
	}
	return pct >= validation.MinPassingPercentage && pct <= 100
}

func distinctSlots(docs []models.DocumentDescriptor) map[models.DocumentSlot]struct{} {
	slots := make(map[models.DocumentSlot]struct{}, len(docs))
	for _, doc := range docs {
		slots[doc.SlotID] = struct{}{}
	}
	return slots
}
