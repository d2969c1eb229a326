package models

// PaymentStatus enumerates simulated payment states.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// ApplicationFee is the fixed, non-refundable application fee in rupees.
const ApplicationFee = 100

// PersonalDetails holds the applicant's personal information.
type PersonalDetails struct {
	FullName   string `json:"fullName"`
	DOB        string `json:"dob"`
	Gender     string `json:"gender"`
	Category   string `json:"category"`
	FatherName string `json:"fatherName"`
	MotherName string `json:"motherName"`
	Income     string `json:"income"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	Address    string `json:"address"`
}

// AcademicDetails holds the applicant's academic information.
type AcademicDetails struct {
	ClassName          string `json:"className"`
	SchoolName         string `json:"schoolName"`
	Board              string `json:"board"`
	RollNo             string `json:"rollNo"`
	PreviousPercentage string `json:"previousPercentage"`
}

// Payment captures the simulated fee payment state.
type Payment struct {
	Amount        int           `json:"amount"`
	Status        PaymentStatus `json:"status"`
	TransactionID *string       `json:"transactionId"`
}

// DraftApplication is the single in-progress application a session is filling out.
// It is mutated incrementally by the wizard steps and persisted write-through.
type DraftApplication struct {
	TermsAccepted   bool                 `json:"termsAccepted"`
	PersonalDetails PersonalDetails      `json:"personalDetails"`
	AcademicDetails AcademicDetails      `json:"academicDetails"`
	Documents       []DocumentDescriptor `json:"documents"`
	Payment         Payment              `json:"payment"`
}

// NewDraftApplication returns the documented default draft.
func NewDraftApplication() *DraftApplication {
	return &DraftApplication{
		Documents: []DocumentDescriptor{},
		Payment: Payment{
			Amount: ApplicationFee,
			Status: PaymentStatusPending,
		},
	}
}

// UpsertDocument replaces any descriptor bound to the same slot, keeping at most
// one descriptor per slot. Returns the replaced descriptor if there was one.
func (d *DraftApplication) UpsertDocument(doc DocumentDescriptor) *DocumentDescriptor {
	for i, existing := range d.Documents {
		if existing.SlotID == doc.SlotID {
			replaced := existing
			d.Documents[i] = doc
			return &replaced
		}
	}
	d.Documents = append(d.Documents, doc)
	return nil
}

// RemoveDocument unbinds the descriptor for the given slot, returning it if present.
func (d *DraftApplication) RemoveDocument(slot DocumentSlot) *DocumentDescriptor {
	for i, existing := range d.Documents {
		if existing.SlotID == slot {
			removed := existing
			d.Documents = append(d.Documents[:i], d.Documents[i+1:]...)
			return &removed
		}
	}
	return nil
}

// DocumentForSlot returns the descriptor bound to the slot, if any.
func (d *DraftApplication) DocumentForSlot(slot DocumentSlot) *DocumentDescriptor {
	for i := range d.Documents {
		if d.Documents[i].SlotID == slot {
			return &d.Documents[i]
		}
	}
	return nil
}
