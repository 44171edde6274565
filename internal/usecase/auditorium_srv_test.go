package usecase

import (
	"context"
	"testing"

	"auditorium-booking/internal/apperror"
	"auditorium-booking/internal/data/entity"
	"auditorium-booking/internal/data/repository"
	"auditorium-booking/internal/dto/request"
	"auditorium-booking/internal/lifecycle"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuditoriumFixture() (*MockAuditoriumRepository, *MockBookingRepository, AuditoriumService) {
	auditoriums := new(MockAuditoriumRepository)
	bookings := new(MockBookingRepository)
	svc := NewAuditoriumService(&repository.Repository{Auditorium: auditoriums, Booking: bookings}, zap.NewNop())
	return auditoriums, bookings, svc
}

func createAuditoriumRequest() *request.CreateAuditoriumRequest {
	return &request.CreateAuditoriumRequest{
		Name:         "Main Hall",
		Capacity:     300,
		Location:     "Block A",
		PricePerHour: 150,
		OpenTime:     "08:00",
		CloseTime:    "22:00",
		Amenities: []request.AmenityRequest{
			{Name: "projector", Cost: 50},
		},
	}
}

func TestAuditoriumService_Create(t *testing.T) {
	auditoriums, _, svc := newAuditoriumFixture()
	auditoriums.On("Create", mock.Anything, mock.MatchedBy(func(a *entity.Auditorium) bool {
		return a.Name == "Main Hall" && len(a.Amenities) == 1 && a.ID != uuid.Nil
	})).Return(nil)

	resp, err := svc.CreateAuditorium(context.Background(), createAuditoriumRequest())

	require.NoError(t, err)
	assert.Equal(t, "08:00", resp.OpenTime)
	auditoriums.AssertExpectations(t)
}

func TestAuditoriumService_Create_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *request.CreateAuditoriumRequest)
	}{
		{name: "closes before opening", mutate: func(r *request.CreateAuditoriumRequest) { r.CloseTime = "07:00" }},
		{name: "bad clock", mutate: func(r *request.CreateAuditoriumRequest) { r.OpenTime = "8am" }},
		{name: "duplicate amenity", mutate: func(r *request.CreateAuditoriumRequest) {
			r.Amenities = append(r.Amenities, request.AmenityRequest{Name: "projector", Cost: 10})
		}},
		{name: "no capacity", mutate: func(r *request.CreateAuditoriumRequest) { r.Capacity = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auditoriums, _, svc := newAuditoriumFixture()
			req := createAuditoriumRequest()
			tt.mutate(req)

			_, err := svc.CreateAuditorium(context.Background(), req)

			assert.ErrorIs(t, err, apperror.ErrValidation)
			auditoriums.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestAuditoriumService_Update_PartialFields(t *testing.T) {
	auditoriums, _, svc := newAuditoriumFixture()
	a := &entity.Auditorium{
		Base:      entity.Base{ID: uuid.New()},
		Name:      "Main Hall",
		OpenTime:  "08:00",
		CloseTime: "22:00",
	}
	auditoriums.On("FindByID", mock.Anything, a.ID).Return(a, nil)
	auditoriums.On("Update", mock.Anything, mock.MatchedBy(func(x *entity.Auditorium) bool {
		return x.Name == "Main Hall" && x.PricePerHour == 200 && x.CloseTime == "23:00"
	})).Return(nil)

	_, err := svc.UpdateAuditorium(context.Background(), a.ID.String(), &request.UpdateAuditoriumRequest{
		PricePerHour: ptr(200.0),
		CloseTime:    ptr("23:00"),
	})

	require.NoError(t, err)
	auditoriums.AssertExpectations(t)
}

func TestAuditoriumService_Delete_WithActiveBookings(t *testing.T) {
	auditoriums, bookings, svc := newAuditoriumFixture()
	id := uuid.New()
	bookings.On("FindActiveByAuditorium", mock.Anything, id).
		Return([]*entity.Booking{{Status: lifecycle.StatusApproved}}, nil)

	err := svc.DeleteAuditorium(context.Background(), id.String())

	assert.ErrorIs(t, err, apperror.ErrConflict)
	auditoriums.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestAuditoriumService_GetPrice(t *testing.T) {
	auditoriums, _, svc := newAuditoriumFixture()
	a := &entity.Auditorium{Base: entity.Base{ID: uuid.New()}, PricePerHour: 120}
	auditoriums.On("FindByID", mock.Anything, a.ID).Return(a, nil)

	resp, err := svc.GetPrice(context.Background(), a.ID.String())

	require.NoError(t, err)
	assert.Equal(t, 120.0, resp.PricePerHour)
	assert.NotNil(t, resp.Amenities)
}

func TestAuditoriumService_GetByID_NotFound(t *testing.T) {
	auditoriums, _, svc := newAuditoriumFixture()
	id := uuid.New()
	auditoriums.On("FindByID", mock.Anything, id).Return(nil, nil)

	_, err := svc.GetAuditoriumByID(context.Background(), id.String())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
