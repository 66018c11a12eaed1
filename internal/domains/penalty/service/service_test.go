package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"atrium/config"
	"atrium/infras/otel/mocks"

	penaltyMocks "atrium/internal/domains/penalty/mocks"
	"atrium/internal/domains/penalty/model"
	"atrium/internal/domains/penalty/model/dto"
	"atrium/internal/domains/penalty/service"
	reservationMocks "atrium/internal/domains/reservation/mocks"
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

func TestPenaltyService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := penaltyMocks.NewMockPenalty(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockUserRepo, mockReservationRepo, cfg, noopCache{}, mockOtel)

	tests := []struct {
		name      string
		req       dto.CreatePenaltyRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "penalty without reservation",
			req: dto.CreatePenaltyRequest{
				UserID: "user-id-123",
				Reason: "damaged equipment",
				Points: 10,
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
			name: "penalty tied to a reservation",
			req: dto.CreatePenaltyRequest{
				UserID:        "user-id-123",
				ReservationID: "reservation-id-123",
				Reason:        "no show",
				Points:        5,
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockReservationRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "user not found",
			req: dto.CreatePenaltyRequest{
				UserID: "missing-user",
				Reason: "no show",
				Points: 5,
			},
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
			req: dto.CreatePenaltyRequest{
				UserID:        "user-id-123",
				ReservationID: "missing-reservation",
				Reason:        "no show",
				Points:        5,
			},
			setupMock: func() {
				mockUserRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockReservationRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "insert error",
			req: dto.CreatePenaltyRequest{
				UserID: "user-id-123",
				Reason: "no show",
				Points: 5,
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

func TestPenaltyService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := penaltyMocks.NewMockPenalty(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockUserRepo, mockReservationRepo, cfg, noopCache{}, mockOtel)

	tests := []struct {
		name      string
		req       dto.UpdatePenaltyRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "resolve penalty",
			req:  dto.UpdatePenaltyRequest{Status: model.StatusResolved},
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
			req:       dto.UpdatePenaltyRequest{},
			setupMock: func() {},
			wantErr:   true,
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "penalty not found",
			req:  dto.UpdatePenaltyRequest{Points: 3},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "update error",
			req:  dto.UpdatePenaltyRequest{Points: 3},
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("update error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Update(adminCtx(), tt.req, "penalty-id-123")

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

func TestPenaltyService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := penaltyMocks.NewMockPenalty(ctrl)
	mockUserRepo := userMocks.NewMockUser(ctrl)
	mockReservationRepo := reservationMocks.NewMockReservation(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockUserRepo, mockReservationRepo, cfg, noopCache{}, mockOtel)

	t.Run("found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Penalty{ID: "penalty-id-123", UserID: "user-id-123", Points: 10, Status: model.StatusActive}, nil)

		res, err := svc.Get(adminCtx(), "penalty-id-123")

		assert.NoError(t, err)
		assert.Equal(t, "penalty-id-123", res.ID)
		assert.Equal(t, model.StatusActive, res.Status)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Penalty{}, nil)

		_, err := svc.Get(adminCtx(), "missing-id")

		assert.Error(t, err)
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
