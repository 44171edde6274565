package wire

import (
	"net/http"

	"auditorium-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireDashboard(r chi.Router, dashboardHandler *adaptor.DashboardHandler, authenticated, admin func(http.Handler) http.Handler) {
	r.With(authenticated, admin).Get("/api/admin/dashboard-stats", dashboardHandler.GetStats)
}
