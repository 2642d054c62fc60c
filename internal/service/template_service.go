package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/ahmadqo/certitrust/internal/model"
	"github.com/ahmadqo/certitrust/internal/repository"
	"github.com/ahmadqo/certitrust/internal/utils"
)

var (
	ErrTemplateNotFound = errors.New("template tidak ditemukan")
	ErrTemplateInUse    = errors.New("template masih dipakai sertifikat, tidak bisa dihapus")
	ErrNoBackground     = errors.New("gambar background wajib diupload")
)

const thumbnailWidth = 320

type TemplateService interface {
	GetAll(ctx context.Context) ([]*model.Template, error)
	GetByID(ctx context.Context, id string) (*model.Template, error)
	Create(ctx context.Context, req model.SaveTemplateRequest, background []byte, contentType string) (*model.Template, error)
	Update(ctx context.Context, id string, req model.SaveTemplateRequest, background []byte, contentType string) (*model.Template, error)
	Delete(ctx context.Context, id string) error
}

type templateService struct {
	repo    repository.TemplateRepository
	storage *utils.StorageService
}

func NewTemplateService(repo repository.TemplateRepository, storage *utils.StorageService) TemplateService {
	return &templateService{repo: repo, storage: storage}
}

func (s *templateService) GetAll(ctx context.Context) ([]*model.Template, error) {
	return s.repo.FindAll(ctx)
}

func (s *templateService) GetByID(ctx context.Context, id string) (*model.Template, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("ID tidak valid")
	}

	tpl, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}
	return tpl, nil
}

func (s *templateService) Create(ctx context.Context, req model.SaveTemplateRequest, background []byte, contentType string) (*model.Template, error) {
	if len(background) == 0 {
		return nil, ErrNoBackground
	}

	tpl := &model.Template{
		ID:     uuid.New(),
		Name:   req.Name,
		Fields: req.Fields,
	}
	if tpl.Name == "" {
		tpl.Name = "Template Baru"
	}
	if len(tpl.Fields) == 0 {
		tpl.Fields = model.DefaultFields()
	}

	if err := s.attachBackground(ctx, tpl, background, contentType); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *templateService) Update(ctx context.Context, id string, req model.SaveTemplateRequest, background []byte, contentType string) (*model.Template, error) {
	tpl, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		tpl.Name = req.Name
	}
	if req.Fields != nil {
		tpl.Fields = req.Fields
	}

	// Upload ulang background hanya kalau ada file baru, dimensi ikut berubah
	if len(background) > 0 {
		oldBackground := tpl.BackgroundURL
		oldThumbnail := tpl.ThumbnailURL

		if err := s.attachBackground(ctx, tpl, background, contentType); err != nil {
			return nil, err
		}

		if oldBackground != "" {
			if err := s.storage.DeleteFile(ctx, oldBackground); err != nil {
				log.Printf("gagal hapus background lama: %v", err)
			}
		}
		if oldThumbnail != nil {
			if err := s.storage.DeleteFile(ctx, *oldThumbnail); err != nil {
				log.Printf("gagal hapus thumbnail lama: %v", err)
			}
		}
	}

	if err := s.repo.Update(ctx, tpl); err != nil {
		return nil, err
	}
	return tpl, nil
}

func (s *templateService) Delete(ctx context.Context, id string) error {
	tpl, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.CountCertificates(ctx, tpl.ID)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrTemplateInUse
	}

	if err := s.repo.Delete(ctx, tpl.ID); err != nil {
		return err
	}

	// File di storage dibersihkan setelah row hilang
	if tpl.BackgroundURL != "" {
		if err := s.storage.DeleteFile(ctx, tpl.BackgroundURL); err != nil {
			log.Printf("gagal hapus background: %v", err)
		}
	}
	if tpl.ThumbnailURL != nil {
		if err := s.storage.DeleteFile(ctx, *tpl.ThumbnailURL); err != nil {
			log.Printf("gagal hapus thumbnail: %v", err)
		}
	}
	return nil
}

// attachBackground upload gambar background, baca dimensi aslinya, dan buat
// thumbnail untuk daftar template.
func (s *templateService) attachBackground(ctx context.Context, tpl *model.Template, data []byte, contentType string) error {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return errors.New("gambar background tidak bisa dibaca")
	}
	bounds := img.Bounds()

	res, err := s.storage.UploadBackground(ctx, data, contentType)
	if err != nil {
		return err
	}

	tpl.BackgroundURL = res.FileURL
	tpl.Width = bounds.Dx()
	tpl.Height = bounds.Dy()

	thumb := imaging.Resize(img, thumbnailWidth, 0, imaging.Lanczos)
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		log.Printf("gagal encode thumbnail: %v", err)
		return nil
	}

	thumbRes, err := s.storage.UploadThumbnail(ctx, buf.Bytes())
	if err != nil {
		log.Printf("gagal upload thumbnail: %v", err)
		return nil
	}
	tpl.ThumbnailURL = &thumbRes.FileURL
	return nil
}
