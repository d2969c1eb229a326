package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scholarship-portal-api/internal/models"
)

// ApplicationRepository manages the submitted-applications ledger. Form
// sections are stored as JSONB so the row mirrors the submitted draft
// verbatim; only the columns the admin view filters on are first-class.
type ApplicationRepository struct {
	db *sqlx.DB
}

// NewApplicationRepository constructs an ApplicationRepository.
func NewApplicationRepository(db *sqlx.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

type applicationRow struct {
	ID            string                   `db:"id"`
	Status        models.ApplicationStatus `db:"status"`
	SubmittedAt   time.Time                `db:"submitted_at"`
	UpdatedAt     time.Time                `db:"updated_at"`
	TermsAccepted bool                     `db:"terms_accepted"`
	Personal      []byte                   `db:"personal"`
	Academic      []byte                   `db:"academic"`
	Documents     []byte                   `db:"documents"`
	Payment       []byte                   `db:"payment"`
}

const applicationColumns = "id, status, submitted_at, updated_at, terms_accepted, personal, academic, documents, payment"

func rowFromRecord(record *models.ApplicationRecord) (*applicationRow, error) {
	personal, err := json.Marshal(record.PersonalDetails)
	if err != nil {
		return nil, fmt.Errorf("encode personal details: %w", err)
	}
	academic, err := json.Marshal(record.AcademicDetails)
	if err != nil {
		return nil, fmt.Errorf("encode academic details: %w", err)
	}
	documents, err := json.Marshal(record.Documents)
	if err != nil {
		return nil, fmt.Errorf("encode documents: %w", err)
	}
	payment, err := json.Marshal(record.Payment)
	if err != nil {
		return nil, fmt.Errorf("encode payment: %w", err)
	}
	return &applicationRow{
		ID:            record.ID,
		Status:        record.Status,
		SubmittedAt:   record.SubmittedAt,
		UpdatedAt:     record.SubmittedAt,
		TermsAccepted: record.TermsAccepted,
		Personal:      personal,
		Academic:      academic,
		Documents:     documents,
		Payment:       payment,
	}, nil
}

func (row *applicationRow) toRecord() (*models.ApplicationRecord, error) {
	record := &models.ApplicationRecord{
		ID:          row.ID,
		Status:      row.Status,
		SubmittedAt: row.SubmittedAt,
	}
	record.TermsAccepted = row.TermsAccepted
	if err := json.Unmarshal(row.Personal, &record.PersonalDetails); err != nil {
		return nil, fmt.Errorf("decode personal details %s: %w", row.ID, err)
	}
	if err := json.Unmarshal(row.Academic, &record.AcademicDetails); err != nil {
		return nil, fmt.Errorf("decode academic details %s: %w", row.ID, err)
	}
	if err := json.Unmarshal(row.Documents, &record.Documents); err != nil {
		return nil, fmt.Errorf("decode documents %s: %w", row.ID, err)
	}
	if err := json.Unmarshal(row.Payment, &record.Payment); err != nil {
		return nil, fmt.Errorf("decode payment %s: %w", row.ID, err)
	}
	return record, nil
}

// Insert appends a finalized application to the ledger.
func (r *ApplicationRepository) Insert(ctx context.Context, record *models.ApplicationRecord) error {
	row, err := rowFromRecord(record)
	if err != nil {
		return err
	}
	const query = `INSERT INTO applications (id, status, submitted_at, updated_at, terms_accepted, personal, academic, documents, payment)
        VALUES (:id, :status, :submitted_at, :updated_at, :terms_accepted, :personal, :academic, :documents, :payment)`
	if _, err := r.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("insert application: %w", err)
	}
	return nil
}

// List returns applications matching the provided filters.
func (r *ApplicationRepository) List(ctx context.Context, filter models.ApplicationFilter) ([]models.ApplicationRecord, int, error) {
	base := "FROM applications a"
	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Status != nil {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)+1))
		args = append(args, *filter.Status)
	}
	if filter.Search != "" {
		idx := len(args) + 1
		conditions = append(conditions, fmt.Sprintf(
			"(LOWER(a.id) LIKE $%d OR LOWER(a.personal->>'fullName') LIKE $%d OR LOWER(a.personal->>'email') LIKE $%d)",
			idx, idx, idx))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	sortBy := filter.SortBy
	allowedSorts := map[string]string{
		"submitted_at": "a.submitted_at",
		"id":           "a.id",
		"status":       "a.status",
	}
	if sortBy == "" {
		sortBy = "submitted_at"
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "a.submitted_at"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "DESC"
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT a.id, a.status, a.submitted_at, a.updated_at, a.terms_accepted, a.personal, a.academic, a.documents, a.payment
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, base, column, order, size, offset)

	var rows []applicationRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	records := make([]models.ApplicationRecord, 0, len(rows))
	for i := range rows {
		record, err := rows[i].toRecord()
		if err != nil {
			return nil, 0, err
		}
		records = append(records, *record)
	}
	return records, total, nil
}

// FindByID fetches a submitted application by its public ID.
func (r *ApplicationRepository) FindByID(ctx context.Context, id string) (*models.ApplicationRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM applications WHERE id = $1", applicationColumns)
	var row applicationRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return row.toRecord()
}

// ExistsByID reports whether an application ID is already taken.
func (r *ApplicationRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM applications WHERE id = $1 LIMIT 1", id); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check application id: %w", err)
	}
	return true, nil
}

// UpdateStatus transitions an application's review status.
func (r *ApplicationRepository) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	const query = `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update application status: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStatus returns application totals grouped by review status.
func (r *ApplicationRepository) CountByStatus(ctx context.Context) (map[models.ApplicationStatus]int, error) {
	rows, err := r.db.QueryxContext(ctx, "SELECT status, COUNT(*) AS total FROM applications GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("count by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.ApplicationStatus]int)
	for rows.Next() {
		var status models.ApplicationStatus
		var total int
		if err := rows.Scan(&status, &total); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts[status] = total
	}
	return counts, rows.Err()
}
