package usecase

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"
	"sync"
	"time"

	"auditorium-booking/internal/apperror"
	"auditorium-booking/internal/data/entity"
	"auditorium-booking/internal/data/repository"
	"auditorium-booking/internal/dto/request"
	"auditorium-booking/internal/dto/response"
	"auditorium-booking/internal/lifecycle"
	"auditorium-booking/internal/notification"
	"auditorium-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// paymentWindow is how long an approved booking waits for payment.
const paymentWindow = 24 * time.Hour

type BookingService interface {
	CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetExistingBookings(ctx context.Context, auditoriumID, date string) ([]response.BusySlotResponse, error)
	CancelBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.CancellationResponse, error)
	PayBooking(ctx context.Context, userID uuid.UUID, bookingID string, req *request.PayBookingRequest) (*response.PaymentResponse, error)

	// Admin
	GetAllBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	ReviewBooking(ctx context.Context, bookingID string, req *request.ReviewBookingRequest) (*response.BookingResponse, error)

	// CompleteElapsed closes every pending or approved booking whose last slot
	// has ended and reports how many were closed.
	CompleteElapsed(ctx context.Context) (int, error)
	// Wait blocks until queued notifications have been handed to the notifier.
	Wait()
}

type bookingService struct {
	repo     *repository.Repository
	notifier notification.Notifier
	now      Clock
	log      *zap.Logger

	pending sync.WaitGroup
}

func NewBookingService(repo *repository.Repository, notifier notification.Notifier, now Clock, log *zap.Logger) BookingService {
	return &bookingService{
		repo:     repo,
		notifier: notifier,
		now:      now,
		log:      log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	auditoriumID, err := parseID(req.AuditoriumID, "auditorium")
	if err != nil {
		return nil, err
	}
	auditorium, err := s.repo.Auditorium.FindByID(ctx, auditoriumID)
	if err != nil {
		return nil, fmt.Errorf("get auditorium: %w", err)
	}
	if auditorium == nil {
		return nil, fmt.Errorf("%w: auditorium %s", apperror.ErrNotFound, req.AuditoriumID)
	}

	entries := req.DateEntries()
	days, err := lifecycle.ExpandDateEntries(entries)
	if err != nil {
		return nil, err
	}

	hours, err := auditorium.OpeningHours()
	if err != nil {
		s.log.Error("Auditorium has invalid opening hours",
			zap.String("auditorium_id", auditorium.ID.String()),
			zap.String("open", auditorium.OpenTime),
			zap.String("close", auditorium.CloseTime))
		return nil, fmt.Errorf("%w: auditorium opening hours are misconfigured", apperror.ErrValidation)
	}

	now := s.now()
	for day := range days {
		for _, slot := range day.Slots {
			if slot.Start < hours.Start || slot.End > hours.End {
				return nil, fmt.Errorf("%w: slot %s on %s is outside opening hours %s",
					apperror.ErrValidation, slot, day.Date.Format(lifecycle.DateLayout), hours)
			}
			if day.At(slot.Start, now.Location()).Before(now) {
				return nil, fmt.Errorf("%w: slot %s on %s is in the past",
					apperror.ErrValidation, slot, day.Date.Format(lifecycle.DateLayout))
			}
		}
	}

	if err := s.checkAvailability(ctx, auditoriumID, days); err != nil {
		return nil, err
	}

	amenities := make([]string, 0, len(req.Amenities))
	costs := make([]float64, 0, len(req.Amenities))
	for _, name := range req.Amenities {
		name = strings.TrimSpace(name)
		if slices.Contains(amenities, name) {
			continue
		}
		cost, ok := auditorium.AmenityCost(name)
		if !ok {
			return nil, fmt.Errorf("%w: auditorium has no amenity %q", apperror.ErrValidation, name)
		}
		amenities = append(amenities, name)
		costs = append(costs, cost)
	}

	booking := &entity.Booking{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:        userID,
		AuditoriumID:  auditoriumID,
		EventName:     strings.TrimSpace(req.EventName),
		DateEntries:   entries,
		Amenities:     amenities,
		TotalAmount:   lifecycle.ComputeTotalAmount(days, auditorium.PricePerHour, costs),
		Status:        lifecycle.StatusPending,
		PaymentStatus: entity.PaymentStateUnpaid,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking requested",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID.String()),
		zap.String("auditorium_id", auditoriumID.String()),
		zap.Float64("total_amount", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking)
	resp.AuditoriumName = auditorium.Name
	return &resp, nil
}

// checkAvailability rejects slots that overlap each other or an active
// booking of the same auditorium.
func (s *bookingService) checkAvailability(ctx context.Context, auditoriumID uuid.UUID, days iter.Seq[lifecycle.DaySlots]) error {
	busy, err := s.busySlots(ctx, auditoriumID)
	if err != nil {
		return err
	}

	requested := make(map[string][]lifecycle.Slot)
	for day := range days {
		key := day.Date.Format(lifecycle.DateLayout)
		for _, slot := range day.Slots {
			for _, other := range requested[key] {
				if slot.Overlaps(other) {
					return fmt.Errorf("%w: slots %s and %s overlap on %s",
						apperror.ErrValidation, slot, other, key)
				}
			}
			for _, other := range busy[key] {
				if slot.Overlaps(other) {
					return fmt.Errorf("%w: %s on %s is already booked",
						apperror.ErrConflict, slot, key)
				}
			}
			requested[key] = append(requested[key], slot)
		}
	}
	return nil
}

// busySlots indexes the slots of pending and approved bookings by date.
func (s *bookingService) busySlots(ctx context.Context, auditoriumID uuid.UUID) (map[string][]lifecycle.Slot, error) {
	active, err := s.repo.Booking.FindActiveByAuditorium(ctx, auditoriumID)
	if err != nil {
		return nil, fmt.Errorf("get active bookings: %w", err)
	}

	busy := make(map[string][]lifecycle.Slot)
	for _, b := range active {
		days, err := lifecycle.ExpandDateEntries(b.DateEntries)
		if err != nil {
			s.log.Warn("Skipping booking with unreadable dates",
				zap.String("booking_id", b.ID.String()), zap.Error(err))
			continue
		}
		for day := range days {
			key := day.Date.Format(lifecycle.DateLayout)
			busy[key] = append(busy[key], day.Slots...)
		}
	}
	return busy, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID uuid.UUID, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindByUserID(ctx, userID, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	out := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = response.BookingDetailToResponse(b)
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

// GetExistingBookings lists busy slots per date. With an empty date every
// date that still has an active booking is returned.
func (s *bookingService) GetExistingBookings(ctx context.Context, auditoriumID, date string) ([]response.BusySlotResponse, error) {
	id, err := parseID(auditoriumID, "auditorium")
	if err != nil {
		return nil, err
	}
	date = strings.TrimSpace(date)
	if date != "" {
		if _, err := time.Parse(lifecycle.DateLayout, date); err != nil {
			return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", apperror.ErrValidation)
		}
	}

	busy, err := s.busySlots(ctx, id)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(busy))
	for k := range busy {
		if date == "" || k == date {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	out := make([]response.BusySlotResponse, 0, len(keys))
	for _, k := range keys {
		slots := busy[k]
		slices.SortFunc(slots, func(a, b lifecycle.Slot) int { return int(a.Start - b.Start) })
		labels := make([]string, len(slots))
		for i, sl := range slots {
			labels[i] = sl.String()
		}
		out = append(out, response.BusySlotResponse{Date: k, TimeSlots: labels})
	}
	return out, nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.BookingListRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	var status *lifecycle.Status
	if req.Status != nil {
		st := lifecycle.Status(*req.Status)
		status = &st
	}

	bookings, err := s.repo.Booking.FindAll(ctx, status, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	out := make([]response.BookingResponse, len(bookings))
	for i, b := range bookings {
		out[i] = response.BookingDetailToResponse(b)
	}

	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	detail, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	resp := response.BookingDetailToResponse(detail)
	if detail.PaymentStatus != entity.PaymentStateUnpaid {
		payment, err := s.repo.Payment.FindByBookingID(ctx, detail.ID)
		if err != nil {
			return nil, fmt.Errorf("get payment: %w", err)
		}
		if payment != nil {
			resp.Payment = response.PaymentToResponse(payment)
		}
	}
	return &resp, nil
}

func (s *bookingService) ReviewBooking(ctx context.Context, bookingID string, req *request.ReviewBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	detail, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	decision, err := lifecycle.DecideApproval(detail.Snapshot(), lifecycle.Action(req.Action),
		req.Discount, req.Reason, detail.UserEmail)
	if err != nil {
		return nil, err
	}

	t := entity.BookingTransition{
		Status:             decision.Status,
		DiscountPercentage: decision.DiscountPercentage,
		DiscountAmount:     decision.DiscountAmount,
		RejectReason:       decision.RejectReason,
	}
	if decision.Status == lifecycle.StatusApproved {
		due := s.now().Add(paymentWindow)
		t.PaymentDueAt = &due
	}

	if err := s.repo.Booking.SaveTransition(ctx, detail.ID, lifecycle.StatusPending, t); err != nil {
		return nil, fmt.Errorf("review booking: %w", err)
	}

	detail.Status = t.Status
	detail.DiscountPercentage = t.DiscountPercentage
	detail.DiscountAmount = t.DiscountAmount
	detail.RejectReason = t.RejectReason
	detail.PaymentDueAt = t.PaymentDueAt

	s.log.Info("Booking reviewed",
		zap.String("booking_id", bookingID),
		zap.String("status", string(decision.Status)),
	)

	s.notify(notification.FromLifecycle(decision.Notification), bookingID)

	resp := response.BookingDetailToResponse(detail)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, userID uuid.UUID, bookingID string) (*response.CancellationResponse, error) {
	detail, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if detail.UserID != userID {
		return nil, fmt.Errorf("%w: booking %s belongs to another user", apperror.ErrForbidden, bookingID)
	}

	snapshot := detail.Snapshot()
	decision, err := lifecycle.ComputeCancellation(snapshot, s.now())
	if err != nil {
		return nil, err
	}

	// refund_amount is the owed share; payment_status says whether money moves.
	paymentStatus := detail.PaymentStatus
	if decision.Changed && decision.RefundAmount > 0 && paymentStatus == entity.PaymentStatePaid {
		paymentStatus = entity.PaymentStateRefunded
	}

	resp := &response.CancellationResponse{
		BookingID:        bookingID,
		Status:           decision.Status,
		RefundPercentage: decision.RefundPercentage,
		RefundAmount:     decision.RefundAmount,
		PaymentStatus:    paymentStatus,
		HoursUntilStart:  decision.HoursUntil,
	}
	if !decision.Changed {
		return resp, nil
	}

	refund := decision.RefundAmount
	t := entity.BookingTransition{Status: decision.Status, RefundAmount: &refund}
	if err := s.repo.Booking.SaveTransition(ctx, detail.ID, detail.Status, t); err != nil {
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("status", string(decision.Status)),
		zap.Float64("refund_amount", refund),
		zap.Int("hours_until_start", decision.HoursUntil),
	)

	if decision.Status == lifecycle.StatusCancelled {
		notice, err := lifecycle.CancellationNotice(snapshot, decision, detail.UserEmail)
		if err != nil {
			s.log.Warn("Failed to build cancellation notice", zap.Error(err), zap.String("booking_id", bookingID))
		} else {
			s.notify(notification.FromLifecycle(notice), bookingID)
		}
	}

	return resp, nil
}

func (s *bookingService) PayBooking(ctx context.Context, userID uuid.UUID, bookingID string, req *request.PayBookingRequest) (*response.PaymentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	detail, err := s.find(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if detail.UserID != userID {
		return nil, fmt.Errorf("%w: booking %s belongs to another user", apperror.ErrForbidden, bookingID)
	}
	if detail.Status != lifecycle.StatusApproved {
		return nil, fmt.Errorf("%w: booking is %s, only approved bookings can be paid",
			apperror.ErrValidation, detail.Status)
	}
	if detail.PaymentStatus != entity.PaymentStateUnpaid {
		return nil, fmt.Errorf("%w: booking is already %s", apperror.ErrConflict, detail.PaymentStatus)
	}

	now := s.now()
	if detail.PaymentDueAt != nil && now.After(*detail.PaymentDueAt) {
		return nil, fmt.Errorf("%w: payment window closed at %s",
			apperror.ErrValidation, detail.PaymentDueAt.Format(time.RFC3339))
	}

	payable := detail.TotalAmount
	if detail.DiscountAmount != nil {
		payable = *detail.DiscountAmount
	}
	amount := lifecycle.RoundCurrency(req.Amount)
	if amount != lifecycle.RoundCurrency(payable) {
		return nil, fmt.Errorf("%w: amount %.2f does not match the payable amount %.2f",
			apperror.ErrValidation, amount, payable)
	}

	txID, err := utils.GenerateTransactionID(now)
	if err != nil {
		return nil, fmt.Errorf("generate transaction id: %w", err)
	}

	payment := &entity.Payment{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID:     detail.ID,
		Amount:        amount,
		Method:        req.Method,
		Status:        entity.PaymentStatusCompleted,
		TransactionID: txID,
	}
	if err := s.repo.Booking.RecordPayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}

	s.log.Info("Booking paid",
		zap.String("booking_id", bookingID),
		zap.String("transaction_id", txID),
		zap.Float64("amount", amount),
	)

	return response.PaymentToResponse(payment), nil
}

func (s *bookingService) CompleteElapsed(ctx context.Context) (int, error) {
	candidates, err := s.repo.Booking.FindSweepCandidates(ctx)
	if err != nil {
		return 0, fmt.Errorf("find sweep candidates: %w", err)
	}

	now := s.now()
	zero := 0.0
	completed := 0
	for _, b := range candidates {
		if err := ctx.Err(); err != nil {
			return completed, err
		}

		decision, err := lifecycle.CompleteIfElapsed(b.Snapshot(), now)
		if err != nil {
			s.log.Warn("Skipping booking with unreadable dates",
				zap.String("booking_id", b.ID.String()), zap.Error(err))
			continue
		}
		if !decision.Changed {
			continue
		}

		t := entity.BookingTransition{Status: decision.Status, RefundAmount: &zero}
		if err := s.repo.Booking.SaveTransition(ctx, b.ID, b.Status, t); err != nil {
			if errors.Is(err, apperror.ErrConflict) || errors.Is(err, apperror.ErrNotFound) {
				s.log.Debug("Booking changed during sweep", zap.String("booking_id", b.ID.String()))
				continue
			}
			s.log.Error("Failed to complete booking", zap.Error(err), zap.String("booking_id", b.ID.String()))
			continue
		}
		completed++
	}

	if completed > 0 {
		s.log.Info("Elapsed bookings completed", zap.Int("count", completed))
	}
	return completed, nil
}

func (s *bookingService) Wait() {
	s.pending.Wait()
}

// notify delivers msg in the background; a failed delivery never fails the
// request that triggered it.
func (s *bookingService) notify(msg notification.Message, bookingID string) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := s.notifier.Send(ctx, msg); err != nil {
			s.log.Error("Failed to send booking notification",
				zap.Error(err),
				zap.String("booking_id", bookingID),
				zap.String("to", msg.To),
			)
		}
	}()
}

func (s *bookingService) find(ctx context.Context, bookingID string) (*entity.BookingDetail, error) {
	id, err := parseID(bookingID, "booking")
	if err != nil {
		return nil, err
	}

	detail, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if detail == nil {
		return nil, fmt.Errorf("%w: booking %s", apperror.ErrNotFound, bookingID)
	}
	return detail, nil
}
