package models

import "time"

// ApplicationStatus enumerates the review lifecycle of a submitted application.
type ApplicationStatus string

const (
	StatusSubmitted ApplicationStatus = "submitted"
	StatusReviewed  ApplicationStatus = "reviewed"
	StatusApproved  ApplicationStatus = "approved"
	StatusRejected  ApplicationStatus = "rejected"
)

// ValidStatus reports whether the value is a known application status.
func ValidStatus(status ApplicationStatus) bool {
	switch status {
	case StatusSubmitted, StatusReviewed, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// ApplicationRecord is the immutable, ledger-stored result of a completed
// submission. The wizard never mutates a record after creation; only the admin
// surface rewrites Status.
type ApplicationRecord struct {
	ID          string            `json:"id"`
	Status      ApplicationStatus `json:"status"`
	SubmittedAt time.Time         `json:"submittedAt"`
	DraftApplication
}

// ApplicationFilter captures filtering criteria for listing applications.
type ApplicationFilter struct {
	Status    *ApplicationStatus
	Search    string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// ApplicationStats aggregates per-status counts for the admin dashboard.
type ApplicationStats struct {
	Total     int `json:"total"`
	Submitted int `json:"submitted"`
	Reviewed  int `json:"reviewed"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
}

// Pagination contains pagination metadata returned in list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
