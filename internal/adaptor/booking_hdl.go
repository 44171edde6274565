package adaptor

import (
	"net/http"

	"auditorium-booking/internal/dto/request"
	"auditorium-booking/internal/usecase"
	"auditorium-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings (protected)
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.CreateBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking request submitted", booking)
}

// GetUserBookings handles GET /api/user/bookings (protected)
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	req := parsePagination(r)

	bookings, err := h.service.GetUserBookings(r.Context(), userID, &req)
	if err != nil {
		handleServiceError(h.log, w, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetExistingBookings handles GET /api/auditoriums/{id}/bookings?date=
func (h *BookingHandler) GetExistingBookings(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		utils.ResponseBadRequest(w, "date query parameter is required", nil)
		return
	}

	slots, err := h.service.GetExistingBookings(r.Context(), chi.URLParam(r, "id"), date)
	if err != nil {
		handleServiceError(h.log, w, err, "get existing bookings")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel (protected)
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	result, err := h.service.CancelBooking(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}

// PayBooking handles POST /api/bookings/{id}/pay (protected)
func (h *BookingHandler) PayBooking(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return
	}

	var req request.PayBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	payment, err := h.service.PayBooking(r.Context(), userID, chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "pay booking")
		return
	}

	utils.ResponseSuccess(w, "Payment recorded", payment)
}

// ==================== ADMIN METHODS ====================

// GetAllBookings handles GET /api/admin/bookings?status= (admin only)
func (h *BookingHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	req := &request.BookingListRequest{PaginatedRequest: parsePagination(r)}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	bookings, err := h.service.GetAllBookings(r.Context(), req)
	if err != nil {
		handleServiceError(h.log, w, err, "get all bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByID handles GET /api/admin/bookings/{id} (admin only)
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBookingByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(h.log, w, err, "get booking by ID")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// ReviewBooking handles PUT /api/admin/bookings/{id}/review (admin only)
func (h *BookingHandler) ReviewBooking(w http.ResponseWriter, r *http.Request) {
	var req request.ReviewBookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.service.ReviewBooking(r.Context(), chi.URLParam(r, "id"), &req)
	if err != nil {
		handleServiceError(h.log, w, err, "review booking")
		return
	}

	message := "Booking approved"
	if req.Action == "reject" {
		message = "Booking rejected"
	}
	utils.ResponseSuccess(w, message, booking)
}
