package models

import "time"

// DocumentSlot is a fixed document category; a slot holds at most one upload.
type DocumentSlot string

const (
	SlotPhoto     DocumentSlot = "photo"
	SlotAadhaar   DocumentSlot = "aadhaar"
	SlotMarksheet DocumentSlot = "marksheet"
	SlotIncome    DocumentSlot = "income"
	SlotBank      DocumentSlot = "bank"
	SlotCategory  DocumentSlot = "category"
	SlotBonafide  DocumentSlot = "bonafide"
)

// MaxDocumentBytes is the upload size ceiling (5MB).
const MaxDocumentBytes = 5 * 1024 * 1024

// SlotInfo describes a document slot for clients.
type SlotInfo struct {
	Slot     DocumentSlot `json:"slot"`
	Label    string       `json:"label"`
	Required bool         `json:"required"`
}

// DocumentSlots lists every slot in display order.
var DocumentSlots = []SlotInfo{
	{Slot: SlotPhoto, Label: "Passport Size Photo", Required: true},
	{Slot: SlotAadhaar, Label: "Aadhaar Card", Required: true},
	{Slot: SlotMarksheet, Label: "Previous Year Marksheet", Required: true},
	{Slot: SlotIncome, Label: "Income Certificate", Required: true},
	{Slot: SlotBank, Label: "Bank Passbook", Required: true},
	{Slot: SlotCategory, Label: "Category Certificate", Required: false},
	{Slot: SlotBonafide, Label: "Bonafide Certificate", Required: false},
}

// ValidSlot reports whether the given value names a known slot.
func ValidSlot(slot DocumentSlot) bool {
	for _, info := range DocumentSlots {
		if info.Slot == slot {
			return true
		}
	}
	return false
}

// SlotState pairs a slot definition with the session's upload, if any.
type SlotState struct {
	SlotInfo
	Document *DocumentDescriptor `json:"document,omitempty"`
}

// DocumentDescriptor records an uploaded file bound to a slot. PayloadRef points
// at the stored payload; the descriptor itself carries no file bytes.
type DocumentDescriptor struct {
	SlotID     DocumentSlot `json:"slotId"`
	FileName   string       `json:"fileName"`
	MimeType   string       `json:"mimeType"`
	ByteSize   int64        `json:"byteSize"`
	PayloadRef string       `json:"payloadRef"`
	UploadedAt time.Time    `json:"uploadedAt"`
}
