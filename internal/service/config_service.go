package service

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmadqo/certitrust/internal/model"
	"github.com/ahmadqo/certitrust/internal/repository"
)

var ErrInvalidLanguage = errors.New("bahasa harus EN atau ID")

type ConfigService interface {
	Get(ctx context.Context) (*model.SystemConfig, error)
	Save(ctx context.Context, req model.SaveConfigRequest) (*model.SystemConfig, error)
}

type configService struct {
	repo repository.ConfigRepository
}

func NewConfigService(repo repository.ConfigRepository) ConfigService {
	return &configService{repo: repo}
}

// Get mengembalikan konfigurasi tersimpan, atau default kalau belum ada.
func (s *configService) Get(ctx context.Context) (*model.SystemConfig, error) {
	cfg, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		def := model.DefaultSystemConfig()
		return &def, nil
	}
	return cfg, nil
}

func (s *configService) Save(ctx context.Context, req model.SaveConfigRequest) (*model.SystemConfig, error) {
	if req.DefaultLanguage != "" &&
		req.DefaultLanguage != model.LanguageEN &&
		req.DefaultLanguage != model.LanguageID {
		return nil, ErrInvalidLanguage
	}

	cfg, err := s.Get(ctx)
	if err != nil {
		return nil, err
	}

	if req.OrganizationName != "" {
		cfg.OrganizationName = strings.TrimSpace(req.OrganizationName)
	}
	if req.DefaultLanguage != "" {
		cfg.DefaultLanguage = req.DefaultLanguage
	}
	if req.PrefixParticipant != "" {
		cfg.PrefixParticipant = req.PrefixParticipant
	}
	if req.PrefixSpeaker != "" {
		cfg.PrefixSpeaker = req.PrefixSpeaker
	}
	if req.PrefixInstructor != "" {
		cfg.PrefixInstructor = req.PrefixInstructor
	}

	if err := s.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
