package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

func validPersonal() models.PersonalDetails {
	return models.PersonalDetails{
		FullName:   "Rahul Sharma",
		DOB:        "2002-05-15",
		Gender:     "male",
		Category:   "General",
		FatherName: "Rajesh Sharma",
		MotherName: "Priya Sharma",
		Income:     "450000",
		Email:      "rahul.sharma@example.com",
		Mobile:     "9876543210",
		Address:    "123 Main Street, New Delhi",
	}
}

func validAcademic() models.AcademicDetails {
	return models.AcademicDetails{
		ClassName:          "B.Tech 3rd Year",
		SchoolName:         "Delhi Technological University",
		Board:              "University",
		RollNo:             "DTU20200123",
		PreviousPercentage: "85.5",
	}
}

func doc(slot models.DocumentSlot) models.DocumentDescriptor {
	return models.DocumentDescriptor{
		SlotID:     slot,
		FileName:   string(slot) + ".pdf",
		MimeType:   "application/pdf",
		ByteSize:   1024,
		PayloadRef: "sess/" + string(slot) + ".pdf",
		UploadedAt: time.Now().UTC(),
	}
}

func TestTermsGate(t *testing.T) {
	draft := models.NewDraftApplication()
	assert.False(t, IsStepComplete(models.StepTerms, draft))

	draft.TermsAccepted = true
	assert.True(t, IsStepComplete(models.StepTerms, draft))
}

func TestPersonalGate(t *testing.T) {
	draft := models.NewDraftApplication()
	assert.False(t, IsStepComplete(models.StepPersonal, draft))

	draft.PersonalDetails = validPersonal()
	assert.True(t, IsStepComplete(models.StepPersonal, draft))

	bad := validPersonal()
	bad.Mobile = "5876543210"
	draft.PersonalDetails = bad
	assert.False(t, IsStepComplete(models.StepPersonal, draft), "regex checks are part of the aggregate")

	bad = validPersonal()
	bad.Address = "   "
	draft.PersonalDetails = bad
	assert.False(t, IsStepComplete(models.StepPersonal, draft))
}

func TestAcademicGatePercentageBoundaries(t *testing.T) {
	draft := models.NewDraftApplication()
	draft.AcademicDetails = validAcademic()

	cases := map[string]bool{
		"60":    true,
		"100":   true,
		"59.99": false,
		"101":   false,
		"":      false,
		"abc":   false,
	}
	for pct, want := range cases {
		draft.AcademicDetails.PreviousPercentage = pct
		assert.Equal(t, want, IsStepComplete(models.StepAcademic, draft), "percentage %q", pct)
	}
}

// The documents gate intentionally asks for any two distinct slots, not the
// full required-slot list; this pins that looser behaviour down.
func TestDocumentsGateRequiresTwoDistinctSlots(t *testing.T) {
	draft := models.NewDraftApplication()
	assert.False(t, IsStepComplete(models.StepDocuments, draft))

	draft.Documents = []models.DocumentDescriptor{doc(models.SlotPhoto)}
	assert.False(t, IsStepComplete(models.StepDocuments, draft))

	draft.Documents = append(draft.Documents, doc(models.SlotAadhaar))
	assert.True(t, IsStepComplete(models.StepDocuments, draft))

	// Two optional slots also satisfy the gate even with required slots empty.
	draft.Documents = []models.DocumentDescriptor{doc(models.SlotCategory), doc(models.SlotBonafide)}
	assert.True(t, IsStepComplete(models.StepDocuments, draft))
}

func TestPaymentGate(t *testing.T) {
	draft := models.NewDraftApplication()
	assert.False(t, IsStepComplete(models.StepPayment, draft))

	txn := "TXN17000000000001234"
	draft.Payment = models.Payment{Amount: models.ApplicationFee, Status: models.PaymentStatusPaid, TransactionID: &txn}
	assert.True(t, IsStepComplete(models.StepPayment, draft))
}

// Adding valid data to unrelated steps never revokes a satisfied gate.
func TestGateMonotonicity(t *testing.T) {
	draft := models.NewDraftApplication()
	draft.PersonalDetails = validPersonal()
	assert.True(t, IsStepComplete(models.StepPersonal, draft))

	draft.TermsAccepted = true
	draft.AcademicDetails = validAcademic()
	draft.Documents = []models.DocumentDescriptor{doc(models.SlotPhoto), doc(models.SlotAadhaar)}
	assert.True(t, IsStepComplete(models.StepPersonal, draft))
	assert.True(t, IsStepComplete(models.StepAcademic, draft))
}

func TestStepStates(t *testing.T) {
	draft := models.NewDraftApplication()
	draft.TermsAccepted = true

	states := StepStates(draft)
	assert.Len(t, states, models.StepCount)
	assert.True(t, states[0].Complete)
	assert.False(t, states[1].Complete)
	assert.Equal(t, "Personal Details", states[1].Label)
}

func TestNilDraftNeverCompletes(t *testing.T) {
	for step := models.FirstStep; step <= models.LastStep; step++ {
		assert.False(t, IsStepComplete(step, nil))
	}
}
