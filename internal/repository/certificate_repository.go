package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/ahmadqo/certitrust/internal/model"
)

// ErrDuplicateNumber dikembalikan saat nomor sertifikat bertabrakan
// dengan constraint unik di database.
var ErrDuplicateNumber = errors.New("nomor sertifikat sudah terpakai")

type CertificateRepository interface {
	FindAll(ctx context.Context, filter model.CertificateFilter) ([]*model.Certificate, int64, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Certificate, error)
	FindByNumber(ctx context.Context, number string) (*model.Certificate, error)
	BulkCreate(ctx context.Context, certs []*model.Certificate) error
	Update(ctx context.Context, cert *model.Certificate) error
	UpdatePDFURL(ctx context.Context, id uuid.UUID, pdfURL string) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListEvents(ctx context.Context) ([]model.EventSummary, error)
	FindByEvent(ctx context.Context, eventName string) ([]*model.Certificate, error)
}

type certificateRepository struct {
	db *sqlx.DB
}

func NewCertificateRepository(db *sqlx.DB) CertificateRepository {
	return &certificateRepository{db: db}
}

func (r *certificateRepository) FindAll(ctx context.Context, filter model.CertificateFilter) ([]*model.Certificate, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 10
	}

	conditions := []string{"1=1"}
	args := []interface{}{}
	argIdx := 1

	if filter.EventName != "" {
		conditions = append(conditions, fmt.Sprintf("c.event_name = $%d", argIdx))
		args = append(args, filter.EventName)
		argIdx++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("c.status = $%d", argIdx))
		args = append(args, filter.Status)
		argIdx++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(c.recipient_name ILIKE $%d OR c.certificate_number ILIKE $%d)", argIdx, argIdx))
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	if err := r.db.QueryRowContext(ctx,
		fmt.Sprintf("SELECT COUNT(*) FROM certificates c WHERE %s", where), args...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.PerPage
	query := fmt.Sprintf(`
		SELECT c.*, t.name as template_name
		FROM certificates c
		LEFT JOIN templates t ON c.template_id = t.id
		WHERE %s
		ORDER BY c.created_at DESC
		LIMIT $%d OFFSET $%d
	`, where, argIdx, argIdx+1)

	args = append(args, filter.PerPage, offset)

	var certs []*model.Certificate
	if err := r.db.SelectContext(ctx, &certs, query, args...); err != nil {
		return nil, 0, err
	}

	return certs, total, nil
}

func (r *certificateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Certificate, error) {
	var cert model.Certificate
	query := `
		SELECT c.*, t.name as template_name
		FROM certificates c
		LEFT JOIN templates t ON c.template_id = t.id
		WHERE c.id = $1
	`
	err := r.db.GetContext(ctx, &cert, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cert, nil
}

func (r *certificateRepository) FindByNumber(ctx context.Context, number string) (*model.Certificate, error) {
	var cert model.Certificate
	query := `
		SELECT c.*, t.name as template_name
		FROM certificates c
		LEFT JOIN templates t ON c.template_id = t.id
		WHERE c.certificate_number = $1
	`
	err := r.db.GetContext(ctx, &cert, query, number)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cert, nil
}

// BulkCreate menyimpan satu batch sertifikat dalam satu transaksi.
// Tabrakan nomor memetakan ke ErrDuplicateNumber supaya service bisa
// regenerate suffix dan mencoba ulang.
func (r *certificateRepository) BulkCreate(ctx context.Context, certs []*model.Certificate) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
		INSERT INTO certificates (id, template_id, certificate_number, recipient_name,
		                          recipient_email, recipient_role, event_name, issue_date,
		                          language, custom_text, status, created_at, updated_at)
		VALUES (:id, :template_id, :certificate_number, :recipient_name,
		        :recipient_email, :recipient_role, :event_name, :issue_date,
		        :language, :custom_text, :status, NOW(), NOW())
	`
	for _, cert := range certs {
		if _, err := tx.NamedExecContext(ctx, query, cert); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateNumber
			}
			return err
		}
	}

	return tx.Commit()
}

func (r *certificateRepository) Update(ctx context.Context, cert *model.Certificate) error {
	query := `
		UPDATE certificates
		SET recipient_name = :recipient_name, recipient_email = :recipient_email,
		    recipient_role = :recipient_role, event_name = :event_name,
		    issue_date = :issue_date, language = :language,
		    custom_text = :custom_text, updated_at = NOW()
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, cert)
	return err
}

func (r *certificateRepository) UpdatePDFURL(ctx context.Context, id uuid.UUID, pdfURL string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE certificates SET pdf_url = $1, updated_at = $2 WHERE id = $3",
		pdfURL, time.Now(), id)
	return err
}

func (r *certificateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM certificates WHERE id = $1", id)
	return err
}

// ListEvents merangkum jumlah sertifikat per acara untuk laporan distribusi.
func (r *certificateRepository) ListEvents(ctx context.Context) ([]model.EventSummary, error) {
	var events []model.EventSummary
	query := `
		SELECT event_name, COUNT(*) as total, MIN(issue_date) as issue_date
		FROM certificates
		GROUP BY event_name
		ORDER BY MIN(issue_date) DESC
	`
	if err := r.db.SelectContext(ctx, &events, query); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *certificateRepository) FindByEvent(ctx context.Context, eventName string) ([]*model.Certificate, error) {
	var certs []*model.Certificate
	query := `
		SELECT c.*, t.name as template_name
		FROM certificates c
		LEFT JOIN templates t ON c.template_id = t.id
		WHERE c.event_name = $1
		ORDER BY c.recipient_name ASC
	`
	if err := r.db.SelectContext(ctx, &certs, query, eventName); err != nil {
		return nil, err
	}
	return certs, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
