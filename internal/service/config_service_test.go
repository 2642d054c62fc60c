package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmadqo/certitrust/internal/model"
)

type fakeConfigRepo struct {
	stored *model.SystemConfig
}

func (f *fakeConfigRepo) Get(ctx context.Context) (*model.SystemConfig, error) {
	return f.stored, nil
}

func (f *fakeConfigRepo) Save(ctx context.Context, cfg *model.SystemConfig) error {
	copied := *cfg
	f.stored = &copied
	return nil
}

func TestConfigServiceGetDefault(t *testing.T) {
	svc := NewConfigService(&fakeConfigRepo{})

	cfg, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Politeknik ATI Padang", cfg.OrganizationName)
	assert.Equal(t, model.LanguageID, cfg.DefaultLanguage)
	assert.Equal(t, "SRT-PST/{YEAR}/", cfg.PrefixParticipant)
	assert.Equal(t, "SRT-NRS/{YEAR}/", cfg.PrefixSpeaker)
	assert.Equal(t, "SRT-INS/{YEAR}/", cfg.PrefixInstructor)
}

func TestConfigServiceSavePartial(t *testing.T) {
	repo := &fakeConfigRepo{}
	svc := NewConfigService(repo)

	cfg, err := svc.Save(context.Background(), model.SaveConfigRequest{
		OrganizationName: "Komunitas Gopher",
		DefaultLanguage:  model.LanguageEN,
	})
	require.NoError(t, err)

	// Field kosong tidak menimpa nilai yang ada
	assert.Equal(t, "Komunitas Gopher", cfg.OrganizationName)
	assert.Equal(t, model.LanguageEN, cfg.DefaultLanguage)
	assert.Equal(t, "SRT-PST/{YEAR}/", cfg.PrefixParticipant)
	require.NotNil(t, repo.stored)
	assert.Equal(t, "Komunitas Gopher", repo.stored.OrganizationName)
}

func TestConfigServiceSaveInvalidLanguage(t *testing.T) {
	svc := NewConfigService(&fakeConfigRepo{})

	_, err := svc.Save(context.Background(), model.SaveConfigRequest{DefaultLanguage: "FR"})
	assert.ErrorIs(t, err, ErrInvalidLanguage)
}
