package adaptor

import (
	"net/http"
	"strings"

	"auditorium-booking/internal/dto/request"
	"auditorium-booking/internal/usecase"
	"auditorium-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AuditoriumHandler struct {
	service usecase.AuditoriumService
	log     *zap.Logger
}

func NewAuditoriumHandler(service usecase.AuditoriumService, log *zap.Logger) *AuditoriumHandler {
	return &AuditoriumHandler{
		service: service,
		log:     log.With(zap.String("handler", "auditorium")),
	}
}

// GetAuditoriums handles GET /api/auditoriums?page=&per_page=&search=
func (h *AuditoriumHandler) GetAuditoriums(w http.ResponseWriter, r *http.Request) {
	req := &request.AuditoriumListRequest{PaginatedRequest: parsePagination(r)}
	if search := strings.TrimSpace(r.URL.Query().Get("search")); search != "" {
		req.Search = &search
	}

	auditoriums, err := h.service.GetAuditoriums(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get auditoriums")
		return
	}

	utils.ResponseSuccess(w, "success", auditoriums)
}

// GetAuditoriumByID handles GET /api/auditoriums/{id}
func (h *AuditoriumHandler) GetAuditoriumByID(w http.ResponseWriter, r *http.Request) {
	auditorium, err := h.service.GetAuditoriumByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get auditorium")
		return
	}

	utils.ResponseSuccess(w, "success", auditorium)
}

// GetPrice handles GET /api/auditoriums/{id}/price
func (h *AuditoriumHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	price, err := h.service.GetPrice(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get price")
		return
	}

	utils.ResponseSuccess(w, "success", price)
}

// CreateAuditorium handles POST /api/admin/auditoriums (admin only)
func (h *AuditoriumHandler) CreateAuditorium(w http.ResponseWriter, r *http.Request) {
	var req request.CreateAuditoriumRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	auditorium, err := h.service.CreateAuditorium(r.Context(), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create auditorium")
		return
	}

	utils.ResponseCreated(w, "Auditorium created", auditorium)
}

// UpdateAuditorium handles PUT /api/admin/auditoriums/{id} (admin only)
func (h *AuditoriumHandler) UpdateAuditorium(w http.ResponseWriter, r *http.Request) {
	var req request.UpdateAuditoriumRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	auditorium, err := h.service.UpdateAuditorium(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "update auditorium")
		return
	}

	utils.ResponseSuccess(w, "Auditorium updated", auditorium)
}

// DeleteAuditorium handles DELETE /api/admin/auditoriums/{id} (admin only)
func (h *AuditoriumHandler) DeleteAuditorium(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteAuditorium(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleServiceError(h.log, w, err, "delete auditorium")
		return
	}

	utils.ResponseSuccess(w, "Auditorium deleted", nil)
}
