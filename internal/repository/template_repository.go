package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/ahmadqo/certitrust/internal/model"
)

type TemplateRepository interface {
	FindAll(ctx context.Context) ([]*model.Template, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Template, error)
	Create(ctx context.Context, tpl *model.Template) error
	Update(ctx context.Context, tpl *model.Template) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountCertificates(ctx context.Context, id uuid.UUID) (int, error)
}

type templateRepository struct {
	db *sqlx.DB
}

func NewTemplateRepository(db *sqlx.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) FindAll(ctx context.Context) ([]*model.Template, error) {
	var tpls []*model.Template
	query := "SELECT * FROM templates ORDER BY created_at DESC"
	if err := r.db.SelectContext(ctx, &tpls, query); err != nil {
		return nil, err
	}
	return tpls, nil
}

func (r *templateRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Template, error) {
	var tpl model.Template
	err := r.db.GetContext(ctx, &tpl, "SELECT * FROM templates WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &tpl, nil
}

func (r *templateRepository) Create(ctx context.Context, tpl *model.Template) error {
	query := `
		INSERT INTO templates (id, name, background_url, thumbnail_url, width, height,
		                       fields, created_at, updated_at)
		VALUES (:id, :name, :background_url, :thumbnail_url, :width, :height,
		        :fields, NOW(), NOW())
	`
	_, err := r.db.NamedExecContext(ctx, query, tpl)
	return err
}

func (r *templateRepository) Update(ctx context.Context, tpl *model.Template) error {
	query := `
		UPDATE templates
		SET name = :name, background_url = :background_url, thumbnail_url = :thumbnail_url,
		    width = :width, height = :height, fields = :fields, updated_at = NOW()
		WHERE id = :id
	`
	_, err := r.db.NamedExecContext(ctx, query, tpl)
	return err
}

func (r *templateRepository) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM templates WHERE id = $1", id)
	return err
}

// CountCertificates menghitung sertifikat yang masih memakai template ini.
// Template yang masih dipakai tidak boleh dihapus.
func (r *templateRepository) CountCertificates(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM certificates WHERE template_id = $1", id,
	).Scan(&count)
	return count, err
}
