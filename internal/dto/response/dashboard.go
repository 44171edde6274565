package response

type DashboardStats struct {
	TotalAuditoriums  int64 `json:"total_auditoriums"`
	PendingRequests   int64 `json:"pending_requests"`
	CompletedBookings int64 `json:"completed_bookings"`
	PaymentRequests   int64 `json:"payment_requests"`
}
