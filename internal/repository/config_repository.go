package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/ahmadqo/certitrust/internal/model"
)

type ConfigRepository interface {
	Get(ctx context.Context) (*model.SystemConfig, error)
	Save(ctx context.Context, cfg *model.SystemConfig) error
}

type configRepository struct {
	db *sqlx.DB
}

func NewConfigRepository(db *sqlx.DB) ConfigRepository {
	return &configRepository{db: db}
}

func (r *configRepository) Get(ctx context.Context) (*model.SystemConfig, error) {
	var cfg model.SystemConfig
	err := r.db.GetContext(ctx, &cfg, "SELECT * FROM system_config WHERE id = 1")
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &cfg, nil
}

// Save memakai upsert supaya baris tunggal selalu ada setelah simpan pertama.
func (r *configRepository) Save(ctx context.Context, cfg *model.SystemConfig) error {
	cfg.ID = 1
	query := `
		INSERT INTO system_config (id, organization_name, default_language,
		                           prefix_participant, prefix_speaker, prefix_instructor, updated_at)
		VALUES (:id, :organization_name, :default_language,
		        :prefix_participant, :prefix_speaker, :prefix_instructor, NOW())
		ON CONFLICT (id) DO UPDATE
		SET organization_name = EXCLUDED.organization_name,
		    default_language = EXCLUDED.default_language,
		    prefix_participant = EXCLUDED.prefix_participant,
		    prefix_speaker = EXCLUDED.prefix_speaker,
		    prefix_instructor = EXCLUDED.prefix_instructor,
		    updated_at = NOW()
	`
	_, err := r.db.NamedExecContext(ctx, query, cfg)
	return err
}
