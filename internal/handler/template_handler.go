package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahmadqo/certitrust/internal/model"
	"github.com/ahmadqo/certitrust/internal/response"
	"github.com/ahmadqo/certitrust/internal/service"
)

type TemplateHandler struct {
	svc          service.TemplateService
	certSvc      service.CertificateService
	previewScale float64
}

func NewTemplateHandler(svc service.TemplateService, certSvc service.CertificateService, previewScale float64) *TemplateHandler {
	if previewScale <= 0 {
		previewScale = 0.5
	}
	return &TemplateHandler{svc: svc, certSvc: certSvc, previewScale: previewScale}
}

// GetAll retrieves all templates
// @Summary      Get all templates
// @Tags         templates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /templates [get]
func (h *TemplateHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	tpls, err := h.svc.GetAll(r.Context())
	if err != nil {
		response.InternalError(w, "Gagal mengambil data template")
		return
	}
	response.Success(w, "Data template berhasil diambil", tpls)
}

// GetByID retrieves a template by ID
// @Summary      Get template by ID
// @Tags         templates
// @Produce      json
// @Param        id  path  string  true  "Template ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /templates/{id} [get]
func (h *TemplateHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tpl, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Gagal mengambil data template")
		return
	}
	response.Success(w, "Data template berhasil diambil", tpl)
}

// Create registers a new template with its background image
// @Summary      Create template
// @Tags         templates
// @Accept       multipart/form-data
// @Produce      json
// @Param        background  formData  file    true   "Background image (JPEG or PNG)"
// @Param        name        formData  string  false  "Template name"
// @Param        fields      formData  string  false  "Field configuration JSON"
// @Security     BearerAuth
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /templates [post]
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, background, contentType, err := parseTemplateForm(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	tpl, err := h.svc.Create(r.Context(), req, background, contentType)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Created(w, "Template berhasil dibuat", tpl)
}

// Update edits a template, background only replaced when a new file is sent
// @Summary      Update template
// @Tags         templates
// @Accept       multipart/form-data
// @Produce      json
// @Param        id          path      string  true   "Template ID"
// @Param        background  formData  file    false  "New background image"
// @Param        name        formData  string  false  "Template name"
// @Param        fields      formData  string  false  "Field configuration JSON"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /templates/{id} [put]
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	req, background, contentType, err := parseTemplateForm(r)
	if err != nil {
		response.BadRequest(w, err.Error(), nil)
		return
	}

	tpl, err := h.svc.Update(r.Context(), id, req, background, contentType)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.BadRequest(w, err.Error(), nil)
		return
	}

	response.Success(w, "Template berhasil diperbarui", tpl)
}

// Delete removes a template that no certificate references
// @Summary      Delete template
// @Tags         templates
// @Produce      json
// @Param        id  path  string  true  "Template ID"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /templates/{id} [delete]
func (h *TemplateHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.svc.Delete(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, service.ErrTemplateNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, service.ErrTemplateInUse):
			response.BadRequest(w, err.Error(), nil)
		default:
			response.InternalError(w, "Gagal menghapus template")
		}
		return
	}

	response.Success(w, "Template berhasil dihapus", nil)
}

// Preview renders the template with placeholder data
// @Summary      Preview template
// @Tags         templates
// @Produce      png
// @Param        id     path   string  true   "Template ID"
// @Param        scale  query  number  false  "Render scale"
// @Security     BearerAuth
// @Success      200  {file}    binary
// @Failure      404  {object}  response.Response
// @Router       /templates/{id}/preview [get]
func (h *TemplateHandler) Preview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	scale := parseScaleQuery(r.URL.Query().Get("scale"), h.previewScale)

	png, err := h.certSvc.PreviewTemplate(r.Context(), id, scale)
	if err != nil {
		if errors.Is(err, service.ErrTemplateNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Gagal merender preview")
		return
	}

	response.Inline(w, "image/png", png)
}

func parseTemplateForm(r *http.Request) (model.SaveTemplateRequest, []byte, string, error) {
	var req model.SaveTemplateRequest

	if err := r.ParseMultipartForm(MaxBackgroundUpload); err != nil {
		return req, nil, "", errors.New("format multipart tidak valid")
	}

	req.Name = r.FormValue("name")
	if raw := r.FormValue("fields"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Fields); err != nil {
			return req, nil, "", errors.New("format fields tidak valid")
		}
	}

	file, header, err := r.FormFile("background")
	if err != nil {
		// Background opsional di update
		return req, nil, "", nil
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return req, nil, "", errors.New("file background tidak bisa dibaca")
	}

	return req, data, header.Header.Get("Content-Type"), nil
}

// MaxBackgroundUpload batas memori parse multipart upload background.
const MaxBackgroundUpload = 12 << 20
