package handler

import (
	"errors"
	"net/http"

	"github.com/ahmadqo/certitrust/internal/model"
	"github.com/ahmadqo/certitrust/internal/response"
	"github.com/ahmadqo/certitrust/internal/service"
	"github.com/ahmadqo/certitrust/internal/utils"
)

type ConfigHandler struct {
	svc service.ConfigService
}

func NewConfigHandler(svc service.ConfigService) *ConfigHandler {
	return &ConfigHandler{svc: svc}
}

// Get retrieves the system configuration
// @Summary      Get system config
// @Tags         config
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      500  {object}  response.Response
// @Router       /config [get]
func (h *ConfigHandler) Get(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.svc.Get(r.Context())
	if err != nil {
		response.InternalError(w, "Gagal mengambil konfigurasi")
		return
	}
	response.Success(w, "Konfigurasi berhasil diambil", cfg)
}

// Save updates the system configuration, empty fields keep their value
// @Summary      Save system config
// @Tags         config
// @Accept       json
// @Produce      json
// @Param        request  body  model.SaveConfigRequest  true  "Configuration"
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /config [put]
func (h *ConfigHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req model.SaveConfigRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Format request tidak valid", err.Error())
		return
	}

	cfg, err := h.svc.Save(r.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidLanguage) {
			response.BadRequest(w, err.Error(), nil)
			return
		}
		response.InternalError(w, "Gagal menyimpan konfigurasi")
		return
	}

	response.Success(w, "Konfigurasi berhasil disimpan", cfg)
}
