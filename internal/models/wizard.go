package models

// Step indexes a wizard step; steps are 1-based and strictly ordered.
type Step int

const (
	StepTerms Step = iota + 1
	StepPersonal
	StepAcademic
	StepDocuments
	StepPayment
)

// StepCount is the number of wizard steps.
const StepCount = 5

// FirstStep and LastStep bound the linear progression.
const (
	FirstStep = StepTerms
	LastStep  = StepPayment
)

// ValidStep reports whether the index names a wizard step.
func ValidStep(step Step) bool {
	return step >= FirstStep && step <= LastStep
}

// Label returns the display name of a step.
func (s Step) Label() string {
	switch s {
	case StepTerms:
		return "Terms"
	case StepPersonal:
		return "Personal Details"
	case StepAcademic:
		return "Academic Details"
	case StepDocuments:
		return "Documents"
	case StepPayment:
		return "Payment"
	}
	return "Unknown"
}

// StepState reports one step's position and completeness in the wizard.
type StepState struct {
	Step     Step   `json:"step"`
	Label    string `json:"label"`
	Complete bool   `json:"complete"`
}

// WizardState is the applicant-facing view of wizard progress.
type WizardState struct {
	CurrentStep Step        `json:"currentStep"`
	Steps       []StepState `json:"steps"`
	CanAdvance  bool        `json:"canAdvance"`
	CanSubmit   bool        `json:"canSubmit"`
}
