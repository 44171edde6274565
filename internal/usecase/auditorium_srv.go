package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"auditorium-booking/internal/apperror"
	"auditorium-booking/internal/data/entity"
	"auditorium-booking/internal/data/repository"
	"auditorium-booking/internal/dto/request"
	"auditorium-booking/internal/dto/response"
	"auditorium-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuditoriumService interface {
	GetAuditoriums(ctx context.Context, req *request.AuditoriumListRequest) (*response.PaginatedResponse[response.AuditoriumResponse], error)
	GetAuditoriumByID(ctx context.Context, auditoriumID string) (*response.AuditoriumResponse, error)
	GetPrice(ctx context.Context, auditoriumID string) (*response.PriceResponse, error)

	CreateAuditorium(ctx context.Context, req *request.CreateAuditoriumRequest) (*response.AuditoriumResponse, error)
	UpdateAuditorium(ctx context.Context, auditoriumID string, req *request.UpdateAuditoriumRequest) (*response.AuditoriumResponse, error)
	DeleteAuditorium(ctx context.Context, auditoriumID string) error
}

type auditoriumService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAuditoriumService(repo *repository.Repository, log *zap.Logger) AuditoriumService {
	return &auditoriumService{
		repo: repo,
		log:  log.With(zap.String("service", "auditorium")),
	}
}

func (s *auditoriumService) GetAuditoriums(ctx context.Context, req *request.AuditoriumListRequest) (*response.PaginatedResponse[response.AuditoriumResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	auditoriums, err := s.repo.Auditorium.FindAll(ctx, limit, offset, req.Search)
	if err != nil {
		return nil, fmt.Errorf("get auditoriums: %w", err)
	}

	total, err := s.repo.Auditorium.CountAll(ctx, req.Search)
	if err != nil {
		return nil, fmt.Errorf("count auditoriums: %w", err)
	}

	out := make([]response.AuditoriumResponse, len(auditoriums))
	for i, a := range auditoriums {
		out[i] = response.AuditoriumToResponse(a)
	}

	s.log.Debug("Auditoriums retrieved",
		zap.Int("count", len(auditoriums)),
		zap.Int64("total", total),
		zap.Stringp("search", req.Search),
	)

	return response.NewPaginatedResponse(out, req.Page, limit, total), nil
}

func (s *auditoriumService) GetAuditoriumByID(ctx context.Context, auditoriumID string) (*response.AuditoriumResponse, error) {
	a, err := s.find(ctx, auditoriumID)
	if err != nil {
		return nil, err
	}

	resp := response.AuditoriumToResponse(a)
	return &resp, nil
}

func (s *auditoriumService) GetPrice(ctx context.Context, auditoriumID string) (*response.PriceResponse, error) {
	a, err := s.find(ctx, auditoriumID)
	if err != nil {
		return nil, err
	}

	amenities := a.Amenities
	if amenities == nil {
		amenities = []entity.Amenity{}
	}
	return &response.PriceResponse{
		AuditoriumID: a.ID.String(),
		PricePerHour: a.PricePerHour,
		Amenities:    amenities,
	}, nil
}

func (s *auditoriumService) CreateAuditorium(ctx context.Context, req *request.CreateAuditoriumRequest) (*response.AuditoriumResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create auditorium validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	amenities, err := toAmenities(req.Amenities)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	a := &entity.Auditorium{
		Base:         entity.Base{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		Name:         strings.TrimSpace(req.Name),
		Description:  req.Description,
		Capacity:     req.Capacity,
		Location:     strings.TrimSpace(req.Location),
		PricePerHour: req.PricePerHour,
		OpenTime:     req.OpenTime,
		CloseTime:    req.CloseTime,
		Amenities:    amenities,
	}
	if _, err := a.OpeningHours(); err != nil {
		return nil, fmt.Errorf("%w: close_time must be after open_time", apperror.ErrValidation)
	}

	if err := s.repo.Auditorium.Create(ctx, a); err != nil {
		return nil, fmt.Errorf("create auditorium: %w", err)
	}

	s.log.Info("Auditorium created", zap.String("auditorium_id", a.ID.String()), zap.String("name", a.Name))

	resp := response.AuditoriumToResponse(a)
	return &resp, nil
}

func (s *auditoriumService) UpdateAuditorium(ctx context.Context, auditoriumID string, req *request.UpdateAuditoriumRequest) (*response.AuditoriumResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return nil, validationError(errs)
	}

	a, err := s.find(ctx, auditoriumID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		a.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		a.Description = *req.Description
	}
	if req.Capacity != nil {
		a.Capacity = *req.Capacity
	}
	if req.Location != nil {
		a.Location = strings.TrimSpace(*req.Location)
	}
	if req.PricePerHour != nil {
		a.PricePerHour = *req.PricePerHour
	}
	if req.OpenTime != nil {
		a.OpenTime = *req.OpenTime
	}
	if req.CloseTime != nil {
		a.CloseTime = *req.CloseTime
	}
	if req.Amenities != nil {
		amenities, err := toAmenities(req.Amenities)
		if err != nil {
			return nil, err
		}
		a.Amenities = amenities
	}
	if _, err := a.OpeningHours(); err != nil {
		return nil, fmt.Errorf("%w: close_time must be after open_time", apperror.ErrValidation)
	}

	a.UpdatedAt = time.Now()
	if err := s.repo.Auditorium.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update auditorium: %w", err)
	}

	s.log.Info("Auditorium updated", zap.String("auditorium_id", a.ID.String()))

	resp := response.AuditoriumToResponse(a)
	return &resp, nil
}

func (s *auditoriumService) DeleteAuditorium(ctx context.Context, auditoriumID string) error {
	id, err := parseID(auditoriumID, "auditorium")
	if err != nil {
		return err
	}

	active, err := s.repo.Booking.FindActiveByAuditorium(ctx, id)
	if err != nil {
		return fmt.Errorf("check bookings: %w", err)
	}
	if len(active) > 0 {
		return fmt.Errorf("%w: auditorium has %d active bookings", apperror.ErrConflict, len(active))
	}

	if err := s.repo.Auditorium.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete auditorium: %w", err)
	}

	s.log.Info("Auditorium deleted", zap.String("auditorium_id", auditoriumID))
	return nil
}

func (s *auditoriumService) find(ctx context.Context, auditoriumID string) (*entity.Auditorium, error) {
	id, err := parseID(auditoriumID, "auditorium")
	if err != nil {
		return nil, err
	}

	a, err := s.repo.Auditorium.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get auditorium: %w", err)
	}
	if a == nil {
		return nil, fmt.Errorf("%w: auditorium %s", apperror.ErrNotFound, auditoriumID)
	}
	return a, nil
}

func toAmenities(reqs []request.AmenityRequest) ([]entity.Amenity, error) {
	out := make([]entity.Amenity, 0, len(reqs))
	seen := make(map[string]struct{}, len(reqs))
	for _, r := range reqs {
		name := strings.TrimSpace(r.Name)
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: duplicate amenity %q", apperror.ErrValidation, name)
		}
		seen[name] = struct{}{}
		out = append(out, entity.Amenity{Name: name, Cost: r.Cost})
	}
	return out, nil
}
