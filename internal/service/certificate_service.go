package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ahmadqo/certitrust/internal/ingest"
	"github.com/ahmadqo/certitrust/internal/model"
	"github.com/ahmadqo/certitrust/internal/numbering"
	"github.com/ahmadqo/certitrust/internal/render"
	"github.com/ahmadqo/certitrust/internal/repository"
	"github.com/ahmadqo/certitrust/internal/response"
	"github.com/ahmadqo/certitrust/internal/utils"
)

var (
	ErrCertificateNotFound = errors.New("sertifikat tidak ditemukan")
	ErrNoRecipients        = errors.New("minimal 1 penerima harus diisi")
	ErrEventNameRequired   = errors.New("nama acara wajib diisi")
)

// maxNumberRetries membatasi percobaan ulang saat suffix acak bertabrakan
// dengan nomor yang sudah ada.
const maxNumberRetries = 3

const downloadJPEGQuality = 85

type CertificateService interface {
	GetAll(ctx context.Context, filter model.CertificateFilter) ([]*model.Certificate, *response.Pagination, error)
	GetByID(ctx context.Context, id string) (*model.Certificate, error)
	Issue(ctx context.Context, req model.IssueRequest) ([]*model.Certificate, error)
	Import(ctx context.Context, req model.ImportRequest) ([]*model.Certificate, error)
	Update(ctx context.Context, id string, req model.UpdateCertificateRequest) (*model.Certificate, error)
	Delete(ctx context.Context, id string) error
	Verify(ctx context.Context, number string) (*model.VerifyResponse, error)
	PreviewPNG(ctx context.Context, id string, scale float64) ([]byte, error)
	PreviewTemplate(ctx context.Context, templateID string, scale float64) ([]byte, error)
	DownloadPDF(ctx context.Context, id string, scale float64) ([]byte, string, error)
	DistributionReport(ctx context.Context, eventName string) ([]byte, error)
	ListEvents(ctx context.Context) ([]model.EventSummary, error)
}

type certificateService struct {
	repo         repository.CertificateRepository
	templateRepo repository.TemplateRepository
	configRepo   repository.ConfigRepository
	storage      *utils.StorageService
	renderer     *render.Renderer
	origin       string
}

func NewCertificateService(
	repo repository.CertificateRepository,
	templateRepo repository.TemplateRepository,
	configRepo repository.ConfigRepository,
	storage *utils.StorageService,
	renderer *render.Renderer,
	origin string,
) CertificateService {
	return &certificateService{
		repo: repo, templateRepo: templateRepo, configRepo: configRepo,
		storage: storage, renderer: renderer, origin: origin,
	}
}

func (s *certificateService) GetAll(ctx context.Context, filter model.CertificateFilter) ([]*model.Certificate, *response.Pagination, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PerPage <= 0 {
		filter.PerPage = 10
	}

	certs, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	totalPages := int(total) / filter.PerPage
	if int(total)%filter.PerPage > 0 {
		totalPages++
	}

	return certs, &response.Pagination{
		Page: filter.Page, PerPage: filter.PerPage,
		TotalItems: total, TotalPages: totalPages,
	}, nil
}

func (s *certificateService) GetByID(ctx context.Context, id string) (*model.Certificate, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("ID tidak valid")
	}

	cert, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		return nil, ErrCertificateNotFound
	}
	return cert, nil
}

// Issue menerbitkan satu batch sertifikat untuk satu acara. Penerima bisa
// datang dari daftar terstruktur atau teks manual "Nama, Peran, Email" per
// baris. Peran tiap penerima diklasifikasi untuk memilih prefix nomor.
func (s *certificateService) Issue(ctx context.Context, req model.IssueRequest) ([]*model.Certificate, error) {
	if strings.TrimSpace(req.EventName) == "" {
		return nil, ErrEventNameRequired
	}

	tpl, err := s.findTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	sysCfg, err := s.systemConfig(ctx)
	if err != nil {
		return nil, err
	}

	lang := req.Language
	if lang == "" {
		lang = sysCfg.DefaultLanguage
	}

	recipients := req.Recipients
	if len(recipients) == 0 && req.ManualText != "" {
		recipients = ingest.ParseManualText(req.ManualText, lang)
	}
	if len(recipients) == 0 {
		return nil, ErrNoRecipients
	}

	issueDate := parseDateOrNow(req.IssueDate)
	prefixes := numbering.PrefixSetFromConfig(sysCfg)
	year := fmt.Sprintf("%d", issueDate.Year())

	var certs []*model.Certificate
	for attempt := 0; ; attempt++ {
		certs = s.buildBatch(tpl.ID, recipients, req, lang, issueDate, prefixes, year)

		err = s.repo.BulkCreate(ctx, certs)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicateNumber) || attempt >= maxNumberRetries {
			return nil, err
		}
		// Suffix acak bentrok, generate ulang seluruh batch
		log.Printf("nomor sertifikat bentrok, mencoba ulang (percobaan %d)", attempt+1)
	}

	go s.generateAndUploadPDFs(context.Background(), tpl, certs)

	return certs, nil
}

func (s *certificateService) buildBatch(
	templateID uuid.UUID,
	recipients []model.Recipient,
	req model.IssueRequest,
	lang model.Language,
	issueDate time.Time,
	prefixes numbering.PrefixSet,
	year string,
) []*model.Certificate {
	gen := numbering.NewGenerator(prefixes, year)

	certs := make([]*model.Certificate, 0, len(recipients))
	for _, rec := range recipients {
		_, number := gen.Next(rec.Role)

		cert := &model.Certificate{
			ID:                uuid.New(),
			TemplateID:        templateID,
			CertificateNumber: number,
			RecipientName:     rec.Name,
			EventName:         req.EventName,
			IssueDate:         issueDate,
			Language:          lang,
			Status:            model.StatusPublished,
		}
		if rec.Email != "" {
			email := rec.Email
			cert.RecipientEmail = &email
		}
		if rec.Role != "" {
			role := rec.Role
			cert.RecipientRole = &role
		}
		text := req.CustomText
		if text == "" {
			text = defaultCustomText(lang, rec.Name)
		}
		cert.CustomText = &text
		certs = append(certs, cert)
	}
	return certs
}

// defaultCustomText dipakai saat penerbitan tanpa kalimat apresiasi khusus.
func defaultCustomText(lang model.Language, name string) string {
	if lang == model.LanguageID {
		return fmt.Sprintf("Diberikan kepada %s", name)
	}
	return fmt.Sprintf("Awarded to %s", name)
}

// Import memasukkan data sertifikat lama hasil migrasi. Nomor lama
// dipertahankan apa adanya; baris tanpa nomor diberi nomor migrasi acak.
func (s *certificateService) Import(ctx context.Context, req model.ImportRequest) ([]*model.Certificate, error) {
	if len(req.Records) == 0 {
		return nil, errors.New("tidak ada data untuk diimport")
	}

	tpl, err := s.findTemplate(ctx, req.TemplateID)
	if err != nil {
		return nil, err
	}

	sysCfg, err := s.systemConfig(ctx)
	if err != nil {
		return nil, err
	}

	legacyText := "Arsip Sertifikat Lama"

	certs := make([]*model.Certificate, 0, len(req.Records))
	for _, rec := range req.Records {
		number := strings.TrimSpace(rec.CertificateNumber)
		if number == "" {
			number = migrationNumber()
		}

		cert := &model.Certificate{
			ID:                uuid.New(),
			TemplateID:        tpl.ID,
			CertificateNumber: number,
			RecipientName:     rec.RecipientName,
			EventName:         rec.EventName,
			IssueDate:         parseDateOrNow(rec.IssueDate),
			Language:          sysCfg.DefaultLanguage,
			CustomText:        &legacyText,
			Status:            model.StatusPublished,
		}
		if rec.RecipientEmail != "" {
			email := rec.RecipientEmail
			cert.RecipientEmail = &email
		}
		if rec.RecipientRole != "" {
			role := rec.RecipientRole
			cert.RecipientRole = &role
		}
		certs = append(certs, cert)
	}

	if err := s.repo.BulkCreate(ctx, certs); err != nil {
		if errors.Is(err, repository.ErrDuplicateNumber) {
			return nil, errors.New("ada nomor sertifikat yang sudah terdaftar, periksa data import")
		}
		return nil, err
	}

	return certs, nil
}

func (s *certificateService) Update(ctx context.Context, id string, req model.UpdateCertificateRequest) (*model.Certificate, error) {
	cert, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RecipientName != "" {
		cert.RecipientName = req.RecipientName
	}
	if req.RecipientEmail != "" {
		email := req.RecipientEmail
		cert.RecipientEmail = &email
	}
	if req.RecipientRole != "" {
		role := req.RecipientRole
		cert.RecipientRole = &role
	}
	if req.EventName != "" {
		cert.EventName = req.EventName
	}
	if req.IssueDate != "" {
		cert.IssueDate = parseDateOrNow(req.IssueDate)
	}
	if req.Language != "" {
		cert.Language = req.Language
	}
	if req.CustomText != "" {
		text := req.CustomText
		cert.CustomText = &text
	}

	if err := s.repo.Update(ctx, cert); err != nil {
		return nil, err
	}
	return cert, nil
}

func (s *certificateService) Delete(ctx context.Context, id string) error {
	cert, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, cert.ID); err != nil {
		return err
	}

	if cert.PDFURL != nil {
		if err := s.storage.DeleteFile(ctx, *cert.PDFURL); err != nil {
			log.Printf("gagal hapus PDF sertifikat: %v", err)
		}
	}
	return nil
}

// Verify memeriksa keaslian nomor sertifikat, untuk endpoint publik.
// Nomor yang tidak terdaftar bukan error, melainkan hasil tidak valid.
// Input boleh nomor sertifikat maupun UUID record, dan boleh masih
// ter-encode URL.
func (s *certificateService) Verify(ctx context.Context, number string) (*model.VerifyResponse, error) {
	number = strings.TrimSpace(number)
	if decoded, err := url.PathUnescape(number); err == nil {
		number = decoded
	}

	cert, err := s.repo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if cert == nil {
		if uid, parseErr := uuid.Parse(number); parseErr == nil {
			cert, err = s.repo.FindByID(ctx, uid)
			if err != nil {
				return nil, err
			}
		}
	}

	if cert == nil {
		return &model.VerifyResponse{
			IsValid: false,
			Message: "Sertifikat tidak ditemukan. Dokumen ini mungkin tidak sah.",
		}, nil
	}

	tpl, err := s.templateRepo.FindByID(ctx, cert.TemplateID)
	if err != nil {
		return nil, err
	}

	message := "Sertifikat valid dan terdaftar."
	if tpl == nil {
		message = "Sertifikat valid dan terdaftar, namun template aslinya sudah tidak tersedia."
	}

	return &model.VerifyResponse{
		IsValid:     true,
		Certificate: cert,
		Template:    tpl,
		Message:     message,
	}, nil
}

// PreviewPNG merender sertifikat sebagai PNG, biasanya setengah skala
// untuk tampilan cepat di browser.
func (s *certificateService) PreviewPNG(ctx context.Context, id string, scale float64) ([]byte, error) {
	cert, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	surface, _, err := s.render(ctx, cert, scale)
	if err != nil {
		return nil, err
	}
	return surface.EncodePNG()
}

// PreviewTemplate merender template dengan data placeholder, dipakai
// editor template sebelum ada sertifikat terbit.
func (s *certificateService) PreviewTemplate(ctx context.Context, templateID string, scale float64) ([]byte, error) {
	tpl, err := s.findTemplate(ctx, templateID)
	if err != nil {
		return nil, err
	}

	background, err := s.storage.Download(ctx, tpl.BackgroundURL)
	if err != nil {
		return nil, err
	}

	surface, err := s.renderer.Render(ctx, tpl, background, render.Data{}, scale)
	if err != nil {
		return nil, err
	}
	return surface.EncodePNG()
}

// DownloadPDF merender sertifikat pada skala tinggi lalu membungkusnya
// sebagai PDF satu halaman seukuran canvas.
func (s *certificateService) DownloadPDF(ctx context.Context, id string, scale float64) ([]byte, string, error) {
	cert, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err := s.buildPDF(ctx, cert, scale)
	if err != nil {
		return nil, "", err
	}
	return pdfBytes, cert.CertificateNumber, nil
}

func (s *certificateService) buildPDF(ctx context.Context, cert *model.Certificate, scale float64) ([]byte, error) {
	surface, _, err := s.render(ctx, cert, scale)
	if err != nil {
		return nil, err
	}

	jpegBytes, err := surface.EncodeJPEG(downloadJPEGQuality)
	if err != nil {
		return nil, err
	}

	return utils.ImageToPDF(jpegBytes, float64(surface.Width()), float64(surface.Height()))
}

func (s *certificateService) render(ctx context.Context, cert *model.Certificate, scale float64) (*render.Surface, *model.Template, error) {
	tpl, err := s.templateRepo.FindByID(ctx, cert.TemplateID)
	if err != nil {
		return nil, nil, err
	}
	if tpl == nil {
		return nil, nil, ErrTemplateNotFound
	}

	background, err := s.storage.Download(ctx, tpl.BackgroundURL)
	if err != nil {
		return nil, nil, err
	}

	surface, err := s.renderer.Render(ctx, tpl, background, render.DataFromCertificate(cert), scale)
	if err != nil {
		return nil, nil, err
	}
	return surface, tpl, nil
}

// generateAndUploadPDFs jalan di background setelah penerbitan supaya
// response API tidak menunggu render seluruh batch.
func (s *certificateService) generateAndUploadPDFs(ctx context.Context, tpl *model.Template, certs []*model.Certificate) {
	background, err := s.storage.Download(ctx, tpl.BackgroundURL)
	if err != nil {
		log.Printf("gagal download background untuk batch PDF: %v", err)
		return
	}

	for _, cert := range certs {
		surface, err := s.renderer.Render(ctx, tpl, background, render.DataFromCertificate(cert), 2)
		if err != nil {
			log.Printf("gagal render sertifikat %s: %v", cert.CertificateNumber, err)
			continue
		}

		jpegBytes, err := surface.EncodeJPEG(downloadJPEGQuality)
		if err != nil {
			log.Printf("gagal encode sertifikat %s: %v", cert.CertificateNumber, err)
			continue
		}

		pdfBytes, err := utils.ImageToPDF(jpegBytes, float64(surface.Width()), float64(surface.Height()))
		if err != nil {
			log.Printf("gagal generate PDF %s: %v", cert.CertificateNumber, err)
			continue
		}

		pdfURL, err := s.storage.UploadPDF(ctx, pdfBytes, cert.CertificateNumber)
		if err != nil {
			log.Printf("gagal upload PDF %s: %v", cert.CertificateNumber, err)
			continue
		}

		if err := s.repo.UpdatePDFURL(ctx, cert.ID, pdfURL); err != nil {
			log.Printf("gagal simpan URL PDF %s: %v", cert.CertificateNumber, err)
		}
	}
}

// DistributionReport membuat rekap PDF penerbitan satu acara.
func (s *certificateService) DistributionReport(ctx context.Context, eventName string) ([]byte, error) {
	certs, err := s.repo.FindByEvent(ctx, eventName)
	if err != nil {
		return nil, err
	}
	if len(certs) == 0 {
		return nil, errors.New("tidak ada sertifikat untuk acara ini")
	}

	sysCfg, err := s.systemConfig(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]utils.ReportRow, len(certs))
	for i, cert := range certs {
		role := ""
		if cert.RecipientRole != nil {
			role = string(numbering.Classify(*cert.RecipientRole))
		}
		rows[i] = utils.ReportRow{
			No:                i + 1,
			CertificateNumber: cert.CertificateNumber,
			RecipientName:     cert.RecipientName,
			Role:              role,
			IssueDate:         cert.IssueDate,
		}
	}

	origin := s.origin
	if origin == "" {
		origin = render.DemoOrigin
	}

	return utils.GenerateDistributionReport(utils.DistributionReportData{
		OrganizationName: sysCfg.OrganizationName,
		EventName:        eventName,
		GeneratedAt:      time.Now(),
		VerifyBaseURL:    origin + "/#/verify/",
		Rows:             rows,
	})
}

func (s *certificateService) ListEvents(ctx context.Context) ([]model.EventSummary, error) {
	return s.repo.ListEvents(ctx)
}

func (s *certificateService) findTemplate(ctx context.Context, id string) (*model.Template, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, errors.New("template_id tidak valid")
	}

	tpl, err := s.templateRepo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if tpl == nil {
		return nil, ErrTemplateNotFound
	}
	return tpl, nil
}

// systemConfig membaca konfigurasi sistem, fallback ke default kalau
// belum pernah disimpan.
func (s *certificateService) systemConfig(ctx context.Context) (*model.SystemConfig, error) {
	cfg, err := s.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		def := model.DefaultSystemConfig()
		return &def, nil
	}
	return cfg, nil
}

func parseDateOrNow(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Now()
	}
	return t
}

// migrationNumber memberi nomor pengganti untuk data lama tanpa nomor.
func migrationNumber() string {
	b := make([]byte, 4)
	rand.Read(b)
	return "MIG-" + strings.ToUpper(hex.EncodeToString(b))
}
