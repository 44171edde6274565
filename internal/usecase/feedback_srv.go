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

type FeedbackService interface {
	CreateFeedback(ctx context.Context, userID uuid.UUID, req *request.CreateFeedbackRequest) (*response.FeedbackResponse, error)
	GetAllFeedback(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FeedbackResponse], error)
	GetAuditoriumFeedback(ctx context.Context, auditoriumID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FeedbackResponse], error)
}

type feedbackService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFeedbackService(repo *repository.Repository, log *zap.Logger) FeedbackService {
	return &feedbackService{
		repo: repo,
		log:  log.With(zap.String("service", "feedback")),
	}
}

func (s *feedbackService) CreateFeedback(ctx context.Context, userID uuid.UUID, req *request.CreateFeedbackRequest) (*response.FeedbackResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create feedback validation failed", zap.Any("errors", errs))
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

	feedback := &entity.Feedback{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		UserID:       userID,
		AuditoriumID: auditoriumID,
		Text:         strings.TrimSpace(req.FeedbackText),
	}
	if err := s.repo.Feedback.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}

	s.log.Info("Feedback created",
		zap.String("feedback_id", feedback.ID.String()),
		zap.String("auditorium_id", auditoriumID.String()),
	)

	resp := response.FeedbackToResponse(&entity.FeedbackDetail{
		Feedback:       *feedback,
		AuditoriumName: auditorium.Name,
	})
	return &resp, nil
}

func (s *feedbackService) GetAllFeedback(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FeedbackResponse], error) {
	items, err := s.repo.Feedback.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get feedback: %w", err)
	}

	total, err := s.repo.Feedback.CountAll(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("count feedback: %w", err)
	}

	return toFeedbackPage(items, req, total), nil
}

func (s *feedbackService) GetAuditoriumFeedback(ctx context.Context, auditoriumID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.FeedbackResponse], error) {
	id, err := parseID(auditoriumID, "auditorium")
	if err != nil {
		return nil, err
	}

	items, err := s.repo.Feedback.FindByAuditoriumID(ctx, id, req.Limit(), req.Offset())
	if err != nil {
		return nil, fmt.Errorf("get auditorium feedback: %w", err)
	}

	total, err := s.repo.Feedback.CountAll(ctx, &id)
	if err != nil {
		return nil, fmt.Errorf("count auditorium feedback: %w", err)
	}

	return toFeedbackPage(items, req, total), nil
}

func toFeedbackPage(items []*entity.FeedbackDetail, req *request.PaginatedRequest, total int64) *response.PaginatedResponse[response.FeedbackResponse] {
	out := make([]response.FeedbackResponse, len(items))
	for i, f := range items {
		out[i] = response.FeedbackToResponse(f)
	}
	return response.NewPaginatedResponse(out, req.Page, req.Limit(), total)
}
