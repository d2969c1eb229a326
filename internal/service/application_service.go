package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
	appErrors "github.com/noah-isme/scholarship-portal-api/pkg/errors"
	"github.com/noah-isme/scholarship-portal-api/pkg/export"
	"github.com/noah-isme/scholarship-portal-api/pkg/storage"
)

type applicationLedger interface {
	List(ctx context.Context, filter models.ApplicationFilter) ([]models.ApplicationRecord, int, error)
	FindByID(ctx context.Context, id string) (*models.ApplicationRecord, error)
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error
	CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int, error)
}

// ApplicationService serves the submitted-applications ledger: the public
// receipt lookup and the admin review surface.
type ApplicationService struct {
	ledger  applicationLedger
	files   *storage.LocalStorage
	signer  *storage.SignedURLSigner
	csv     *export.CSVExporter
	pdf     *export.PDFExporter
	maxRows int
	logger  *zap.Logger
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(ledger applicationLedger, files *storage.LocalStorage, signer *storage.SignedURLSigner, maxRows int, logger *zap.Logger) *ApplicationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxRows <= 0 {
		maxRows = 5000
	}
	return &ApplicationService{
		ledger:  ledger,
		files:   files,
		signer:  signer,
		csv:     export.NewCSVExporter(),
		pdf:     export.NewPDFExporter(),
		maxRows: maxRows,
		logger:  logger,
	}
}

// List returns applications matching the filter with pagination metadata.
func (s *ApplicationService) List(ctx context.Context, filter models.ApplicationFilter) ([]models.ApplicationRecord, *models.Pagination, error) {
	if filter.Status != nil && !models.ValidStatus(*filter.Status) {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", *filter.Status))
	}
	records, total, err := s.ledger.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applications")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return records, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get returns one submitted application by its public id.
func (s *ApplicationService) Get(ctx context.Context, id string) (*models.ApplicationRecord, error) {
	record, err := s.ledger.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load application")
	}
	return record, nil
}

// UpdateStatus transitions an application's review status.
func (s *ApplicationService) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	if !models.ValidStatus(status) {
		return appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown status %q", status))
	}
	if err := s.ledger.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update application status")
	}
	s.logger.Info("application status updated", zap.String("application_id", id), zap.String("status", string(status)))
	return nil
}

// Stats aggregates per-status totals for the admin dashboard.
func (s *ApplicationService) Stats(ctx context.Context) (*models.ApplicationStats, error) {
	counts, err := s.ledger.CountByStatus(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate applications")
	}
	stats := &models.ApplicationStats{
		Submitted: counts[models.StatusSubmitted],
		Reviewed:  counts[models.StatusReviewed],
		Approved:  counts[models.StatusApproved],
		Rejected:  counts[models.StatusRejected],
	}
	stats.Total = stats.Submitted + stats.Reviewed + stats.Approved + stats.Rejected
	return stats, nil
}

// ExportCSV renders applications matching the filter as a CSV download.
func (s *ApplicationService) ExportCSV(ctx context.Context, filter models.ApplicationFilter) ([]byte, string, error) {
	filter.Page = 1
	filter.PageSize = 100
	headers := []string{"Application ID", "Status", "Submitted At", "Full Name", "Email", "Mobile", "Category", "Class", "School", "Percentage", "Payment", "Transaction ID"}
	rows := make([]map[string]string, 0)

	for len(rows) < s.maxRows {
		records, total, err := s.ledger.List(ctx, filter)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to export applications")
		}
		for _, record := range records {
			txn := ""
			if record.Payment.TransactionID != nil {
				txn = *record.Payment.TransactionID
			}
			rows = append(rows, map[string]string{
				"Application ID": record.ID,
				"Status":         string(record.Status),
				"Submitted At":   record.SubmittedAt.Format(time.RFC3339),
				"Full Name":      record.PersonalDetails.FullName,
				"Email":          record.PersonalDetails.Email,
				"Mobile":         record.PersonalDetails.Mobile,
				"Category":       record.PersonalDetails.Category,
				"Class":          record.AcademicDetails.ClassName,
				"School":         record.AcademicDetails.SchoolName,
				"Percentage":     record.AcademicDetails.PreviousPercentage,
				"Payment":        string(record.Payment.Status),
				"Transaction ID": txn,
			})
		}
		if len(rows) >= total || len(records) == 0 {
			break
		}
		filter.Page++
	}

	payload, err := s.csv.Render(export.Dataset{Headers: headers, Rows: rows})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
	}
	filename := fmt.Sprintf("applications-%s.csv", time.Now().UTC().Format("20060102-150405"))
	return payload, filename, nil
}

// ReceiptPDF renders the acknowledgement receipt for a submitted application.
func (s *ApplicationService) ReceiptPDF(ctx context.Context, id string) ([]byte, string, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return nil, "", err
	}

	txn := "-"
	if record.Payment.TransactionID != nil {
		txn = *record.Payment.TransactionID
	}
	sections := []export.Section{
		{
			Title: "Application",
			Lines: []export.KeyValue{
				{Key: "Application ID", Value: record.ID},
				{Key: "Status", Value: string(record.Status)},
				{Key: "Submitted At", Value: record.SubmittedAt.Format("02 Jan 2006 15:04 MST")},
			},
		},
		{
			Title: "Applicant",
			Lines: []export.KeyValue{
				{Key: "Full Name", Value: record.PersonalDetails.FullName},
				{Key: "Date of Birth", Value: record.PersonalDetails.DOB},
				{Key: "Category", Value: record.PersonalDetails.Category},
				{Key: "Email", Value: record.PersonalDetails.Email},
				{Key: "Mobile", Value: record.PersonalDetails.Mobile},
			},
		},
		{
			Title: "Academics",
			Lines: []export.KeyValue{
				{Key: "Class/Course", Value: record.AcademicDetails.ClassName},
				{Key: "Institution", Value: record.AcademicDetails.SchoolName},
				{Key: "Board/University", Value: record.AcademicDetails.Board},
				{Key: "Previous Percentage", Value: record.AcademicDetails.PreviousPercentage},
			},
		},
		{
			Title: "Payment",
			Lines: []export.KeyValue{
				{Key: "Amount", Value: strconv.Itoa(record.Payment.Amount)},
				{Key: "Status", Value: string(record.Payment.Status)},
				{Key: "Transaction ID", Value: txn},
			},
		},
	}

	payload, err := s.pdf.RenderReceipt("Scholarship Application Receipt", sections)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render receipt")
	}
	return payload, fmt.Sprintf("%s-receipt.pdf", record.ID), nil
}

// DocumentURL issues a signed, expiring download token for a stored document.
func (s *ApplicationService) DocumentURL(ctx context.Context, id string, slot models.DocumentSlot) (string, time.Time, error) {
	record, err := s.Get(ctx, id)
	if err != nil {
		return "", time.Time{}, err
	}
	doc := record.DocumentForSlot(slot)
	if doc == nil {
		return "", time.Time{}, appErrors.Clone(appErrors.ErrNotFound, "no document uploaded for this slot")
	}
	token, expiresAt, err := s.signer.Generate(record.ID, doc.PayloadRef)
	if err != nil {
		return "", time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download url")
	}
	return token, expiresAt, nil
}

// ResolveDocument validates a signed token and opens the underlying payload.
func (s *ApplicationService) ResolveDocument(ctx context.Context, token string) (*os.File, *models.DocumentDescriptor, error) {
	recordID, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired download token")
	}
	record, err := s.Get(ctx, recordID)
	if err != nil {
		return nil, nil, err
	}

	var doc *models.DocumentDescriptor
	for i := range record.Documents {
		if record.Documents[i].PayloadRef == relPath {
			doc = &record.Documents[i]
			break
		}
	}
	if doc == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
	}

	file, err := s.files.Open(doc.PayloadRef)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open document")
	}
	return file, doc, nil
}
