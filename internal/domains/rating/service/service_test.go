package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"atrium/config"
	"atrium/infras/otel/mocks"

	ratingMocks "atrium/internal/domains/rating/mocks"
	"atrium/internal/domains/rating/model"
	"atrium/internal/domains/rating/model/dto"
	"atrium/internal/domains/rating/service"
	reservationMocks "atrium/internal/domains/reservation/mocks"
	reservationModel "atrium/internal/domains/reservation/model"
	userMocks "atrium/internal/domains/user/mocks"
	"atrium/shared/cache"
	"atrium/shared/constant"
	"atrium/shared/failure"
)

type noopCache struct{}

func (noopCache) Save(_ context.Context, _ string, _ any, _ int) error { return nil }
func (noopCache) Get(_ context.Context, _ string, _ any) error        { return cache.Nil }
func (noopCache) Delete(_ context.Context, _ string) error            { return nil }
func (noopCache) Clear(_ context.Context, _ string) error             { return nil }

func adminCtx() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func completedReservation() reservationModel.Reservation {
	return reservationModel.Reservation{
		ID:      "reservation-id-123",
		UserID:  "user-id-123",
		SpaceID: "space-id-123",
		Date:    time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		Status:  reservationModel.StatusCompleted,
	}
}

func TestRatingService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := ratingMocks.NewMockRating(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockUserRepo, mockReservationRepo, cfg, noopCache{}, mockOtel)

	reqWithReservation := dto.CreateRatingRequest{
		RatedUserID:   "user-id-123",
		ReservationID: "reservation-id-123",
		Score:         4,
		Comment:       "left the room tidy",
	}

	tests := []struct {
		name      string
		req       dto.CreateRatingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "standalone rating without reservation",
			req: dto.CreateRatingRequest{
				RatedUserID: "user-id-123",
				Score:       5,
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "rating tied to a completed reservation",
			req:  reqWithReservation,
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockReservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedReservation(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "rated user not found",
			req:  reqWithReservation,
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "reservation not found",
			req:  reqWithReservation,
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockReservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(reservationModel.Reservation{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "reservation belongs to another user",
			req:  reqWithReservation,
			setupMock: func() {
				other := completedReservation()
				other.UserID = "user-id-999"

				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockReservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(other, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "reservation not completed",
			req:  reqWithReservation,
			setupMock: func() {
				approved := completedReservation()
				approved.Status = reservationModel.StatusApproved

				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockReservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(approved, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "reservation already rated",
			req:  reqWithReservation,
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockReservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedReservation(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "unique violation on insert maps to conflict",
			req:  reqWithReservation,
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockReservationRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(completedReservation(), nil)

				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)})
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			req: dto.CreateRatingRequest{
				RatedUserID: "user-id-123",
				Score:       3,
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(errors.New("insert error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Create(adminCtx(), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRatingService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := ratingMocks.NewMockRating(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockUserRepo, mockReservationRepo, cfg, noopCache{}, mockOtel)

	tests := []struct {
		name      string
		req       dto.UpdateRatingRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful update",
			req:  dto.UpdateRatingRequest{Score: 2, Comment: "revised after review"},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name:      "empty update rejected",
			req:       dto.UpdateRatingRequest{},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "rating not found",
			req:  dto.UpdateRatingRequest{Score: 2},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(adminCtx(), tt.req, "rating-id-123")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRatingService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := ratingMocks.NewMockRating(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockUserRepo, mockReservationRepo, cfg, noopCache{}, mockOtel)

	t.Run("found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Rating{ID: "rating-id-123", RatedUserID: "user-id-123", Score: 4}, nil)

		res, err := svc.Get(adminCtx(), "rating-id-123")

		assert.NoError(t, err)
		assert.Equal(t, "rating-id-123", res.ID)
		assert.Equal(t, 4, res.Score)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Rating{}, nil)

		_, err := svc.Get(adminCtx(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestRatingService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := ratingMocks.NewMockRating(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockUserRepo, mockReservationRepo, cfg, noopCache{}, mockOtel)

	t.Run("successful deletion", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(true, nil)

		mockRepo.EXPECT().
			Delete(gomock.Any(), gomock.Any()).
			Return(nil)

		assert.NoError(t, svc.Delete(adminCtx(), "rating-id-123"))
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			Return(false, nil)

		err := svc.Delete(adminCtx(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
