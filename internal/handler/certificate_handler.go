package handler

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/ahmadqo/certitrust/internal/ingest"
	"github.com/ahmadqo/certitrust/internal/model"
	"github.com/ahmadqo/certitrust/internal/response"
	"github.com/ahmadqo/certitrust/internal/service"
	"github.com/ahmadqo/certitrust/internal/utils"
)

type CertificateHandler struct {
	svc           service.CertificateService
	previewScale  float64
	downloadScale float64
}

func NewCertificateHandler(svc service.CertificateService, previewScale, downloadScale float64) *CertificateHandler {
	if previewScale <= 0 {
		previewScale = 0.5
	}
	if downloadScale <= 0 {
		downloadScale = 2
	}
	return &CertificateHandler{svc: svc, previewScale: previewScale, downloadScale: downloadScale}
}

// GetAll retrieves all certificates with optional filters
// @Summary      Get all certificates
// @Description  Get a paginated list of issued certificates
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Param        event_name  query  string  false  "Filter by event name"
// @Param        search      query  string  false  "Search by recipient name or certificate number"
// @Param        status      query  string  false  "Filter by status"
// @Param        page        query  int     false  "Page number"
// @Param        per_page    query  int     false  "Items per page"
// @Security     BearerAuth
// @Success      200  {object}  response.PaginatedResponse
// @Failure      500  {object}  response.Response
// @Router       /certificates [get]
func (h *CertificateHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := model.CertificateFilter{
		EventName: q.Get("event_name"),
		Search:    q.Get("search"),
		Status:    q.Get("status"),
		Page:      parseIntQuery(q.Get("page"), 1),
		PerPage:   parseIntQuery(q.Get("per_page"), 10),
	}

	certs, pagination, err := h.svc.GetAll(r.Context(), filter)
	if err != nil {
		response.InternalError(w, "Gagal mengambil data sertifikat")
		return
	}

	response.Paginated(w, "Data sertifikat berhasil diambil", certs, pagination)
}

// GetByID retrieves a certificate by ID
// @Summary      Get certificate by ID
// @Tags         certificates
// @Produce      json
// @Param        id  path  string  true  "Certificate ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /certificates/{id} [get]
func (h *CertificateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	cert, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrCertificateNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Gagal mengambil data sertifikat")
		return
	}

	response.Success(w, "Data sertifikat berhasil diambil", cert)
}

// Issue creates a batch of certificates for one event
// @Summary      Issue certificates
// @Description  Classify roles, generate numbers, and bulk insert certificates for an event
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Param        request  body  model.IssueRequest  true  "Issue request"
// @Security     BearerAuth
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /certificates [post]
func (h *CertificateHandler) Issue(w http.ResponseWriter, r *http.Request) {
	var req model.IssueRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Format request tidak valid", err.Error())
		return
	}

	errs := utils.ValidationErrors{}
	if req.TemplateID == "" {
		errs["template_id"] = "Template wajib dipilih"
	}
	if strings.TrimSpace(req.EventName) == "" {
		errs["event_name"] = "Nama acara wajib diisi"
	}
	if len(req.Recipients) == 0 && strings.TrimSpace(req.ManualText) == "" {
		errs["recipients"] = "Minimal 1 penerima harus diisi"
	}
	if errs.HasErrors() {
		response.BadRequest(w, "Validasi gagal", errs)
		return
	}

	certs, err := h.svc.Issue(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Created(w, fmt.Sprintf("%d sertifikat berhasil diterbitkan", len(certs)), certs)
}

// ParseRecipients parses an uploaded recipients CSV for review
// @Summary      Parse recipients CSV
// @Description  Upload a CSV of recipients and get back the structured list before issuing
// @Tags         certificates
// @Accept       multipart/form-data
// @Produce      json
// @Param        file      formData  file    true   "Recipients CSV"
// @Param        language  formData  string  false  "Language (id or en)"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /certificates/recipients/parse [post]
func (h *CertificateHandler) ParseRecipients(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "File CSV wajib diupload", nil)
		return
	}
	defer file.Close()

	lang := model.Language(r.FormValue("language"))
	if lang == "" {
		lang = model.LanguageID
	}

	recipients, err := ingest.ParseRecipientsCSV(file, lang)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Success(w, fmt.Sprintf("%d penerima berhasil dibaca", len(recipients)), recipients)
}

// ParseLegacy parses a legacy archive CSV for review
// @Summary      Parse legacy CSV
// @Description  Upload a legacy archive CSV. Column mapping can be sent as JSON in the "mapping" form value; when empty the server guesses it from the header names
// @Tags         certificates
// @Accept       multipart/form-data
// @Produce      json
// @Param        file     formData  file    true   "Legacy CSV"
// @Param        mapping  formData  string  false  "Column mapping JSON"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /certificates/import/parse [post]
func (h *CertificateHandler) ParseLegacy(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "File CSV wajib diupload", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(w, "File tidak bisa dibaca", nil)
		return
	}

	var mapping ingest.ColumnMapping
	if raw := r.FormValue("mapping"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &mapping); err != nil {
			response.BadRequest(w, "Format mapping tidak valid", err.Error())
			return
		}
	} else {
		headers, err := csv.NewReader(bytes.NewReader(data)).Read()
		if err != nil {
			response.BadRequest(w, "Header CSV tidak bisa dibaca", nil)
			return
		}
		mapping = ingest.GuessMapping(headers)
	}

	records, err := ingest.ParseLegacyCSV(bytes.NewReader(data), mapping)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Success(w, fmt.Sprintf("%d baris berhasil dibaca", len(records)), map[string]interface{}{
		"mapping": mapping,
		"records": records,
	})
}

// Import registers legacy certificates keeping their original numbers
// @Summary      Import legacy certificates
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Param        request  body  model.ImportRequest  true  "Import request"
// @Security     BearerAuth
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /certificates/import [post]
func (h *CertificateHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req model.ImportRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Format request tidak valid", err.Error())
		return
	}

	if req.TemplateID == "" {
		response.BadRequest(w, "Template wajib dipilih", nil)
		return
	}

	certs, err := h.svc.Import(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Created(w, fmt.Sprintf("%d sertifikat berhasil diimport", len(certs)), certs)
}

// Update edits recipient data on an existing certificate
// @Summary      Update certificate
// @Tags         certificates
// @Accept       json
// @Produce      json
// @Param        id       path  string                          true  "Certificate ID"
// @Param        request  body  model.UpdateCertificateRequest  true  "Update request"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /certificates/{id} [put]
func (h *CertificateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req model.UpdateCertificateRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Format request tidak valid", err.Error())
		return
	}

	cert, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		if errors.Is(err, service.ErrCertificateNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Success(w, "Sertifikat berhasil diperbarui", cert)
}

// Delete removes a certificate
// @Summary      Delete certificate
// @Tags         certificates
// @Produce      json
// @Param        id  path  string  true  "Certificate ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /certificates/{id} [delete]
func (h *CertificateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrCertificateNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Success(w, "Sertifikat berhasil dihapus", nil)
}

// Verify checks a certificate by its number or ID
// @Summary      Verify certificate
// @Description  Public endpoint. An unknown number returns 422 instead of 404 so the verification page can show the result
// @Tags         verify
// @Produce      json
// @Param        number  path  string  true  "Certificate number or ID"
// @Success      200  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /verify/{number} [get]
func (h *CertificateHandler) Verify(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")

	result, err := h.svc.Verify(r.Context(), number)
	if err != nil {
		response.InternalError(w, "Gagal memverifikasi sertifikat")
		return
	}

	if !result.IsValid {
		response.JSON(w, http.StatusUnprocessableEntity, false, result.Message, result)
		return
	}

	response.Success(w, result.Message, result)
}

// Preview renders the certificate as a PNG
// @Summary      Preview certificate
// @Tags         certificates
// @Produce      png
// @Param        id     path   string  true   "Certificate ID"
// @Param        scale  query  number  false  "Render scale"
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      404  {object}  response.Response
// @Router       /certificates/{id}/preview [get]
func (h *CertificateHandler) Preview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	scale := parseScaleQuery(r.URL.Query().Get("scale"), h.previewScale)

	png, err := h.svc.PreviewPNG(r.Context(), id, scale)
	if err != nil {
		if errors.Is(err, service.ErrCertificateNotFound) || errors.Is(err, service.ErrTemplateNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Gagal merender preview")
		return
	}

	response.Inline(w, "image/png", png)
}

// Download renders the certificate at export scale and returns it as PDF
// @Summary      Download certificate PDF
// @Tags         certificates
// @Produce      application/pdf
// @Param        id  path  string  true  "Certificate ID"
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      404  {object}  response.Response
// @Router       /certificates/{id}/download [get]
func (h *CertificateHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pdfBytes, certNumber, err := h.svc.DownloadPDF(r.Context(), id, h.downloadScale)
	if err != nil {
		if errors.Is(err, service.ErrCertificateNotFound) || errors.Is(err, service.ErrTemplateNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Gagal generate PDF")
		return
	}

	// Nomor sertifikat mengandung "/", ganti supaya aman jadi nama file
	filename := fmt.Sprintf("%s.pdf", strings.ReplaceAll(certNumber, "/", "-"))
	response.File(w, "application/pdf", filename, pdfBytes)
}

// ListEvents lists events with certificate counts
// @Summary      List events
// @Tags         reports
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /reports/events [get]
func (h *CertificateHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.svc.ListEvents(r.Context())
	if err != nil {
		response.InternalError(w, "Gagal mengambil daftar acara")
		return
	}
	response.Success(w, "Daftar acara berhasil diambil", events)
}

// DistributionReport builds a PDF listing all recipients of one event
// @Summary      Event distribution report
// @Tags         reports
// @Produce      application/pdf
// @Param        event  path  string  true  "Event name"
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      400  {object}  response.Response
// @Router       /reports/events/{event} [get]
func (h *CertificateHandler) DistributionReport(w http.ResponseWriter, r *http.Request) {
	eventName := chi.URLParam(r, "event")
	if decoded, err := url.PathUnescape(eventName); err == nil {
		eventName = decoded
	}
	if eventName == "" {
		response.BadRequest(w, "Nama acara wajib diisi", nil)
		return
	}

	pdfBytes, err := h.svc.DistributionReport(r.Context(), eventName)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	filename := fmt.Sprintf("laporan-%s.pdf", strings.ReplaceAll(eventName, " ", "-"))
	response.File(w, "application/pdf", filename, pdfBytes)
}

func parseIntQuery(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

// parseScaleQuery membatasi scale request 0.1-4 supaya satu request tidak
// bisa minta render raksasa.
func parseScaleQuery(s string, fallback float64) float64 {
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0.1 || v > 4 {
		return fallback
	}
	return v
}
