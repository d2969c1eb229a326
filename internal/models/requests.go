package models

// UpdateDraftRequest is a partial draft update; nil sections are left untouched.
// Documents and payment state are managed by their own endpoints and cannot be
// patched directly.
type UpdateDraftRequest struct {
	TermsAccepted   *bool            `json:"termsAccepted,omitempty"`
	PersonalDetails *PersonalDetails `json:"personalDetails,omitempty"`
	AcademicDetails *AcademicDetails `json:"academicDetails,omitempty"`
}

// UpdateStatusRequest transitions an application's review status.
type UpdateStatusRequest struct {
	Status ApplicationStatus `json:"status" validate:"required"`
}

// FieldValidationResult is the outcome of validating one field value.
type FieldValidationResult struct {
	Field string `json:"field"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// PaymentState is the applicant-facing view of the simulated payment.
type PaymentState struct {
	Amount        int           `json:"amount"`
	Status        PaymentStatus `json:"status"`
	TransactionID *string       `json:"transactionId"`
	Processing    bool          `json:"processing"`
}

// SubmissionReceipt acknowledges a finalized application.
type SubmissionReceipt struct {
	ApplicationID string            `json:"applicationId"`
	Status        ApplicationStatus `json:"status"`
	SubmittedAt   string            `json:"submittedAt"`
}
