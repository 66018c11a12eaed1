package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"atrium/config"
	"atrium/infras/accessctl"
	accessctlMocks "atrium/infras/accessctl/mocks"
	"atrium/infras/otel/mocks"
	eventMocks "atrium/internal/events/mocks"

	reservationMocks "atrium/internal/domains/reservation/mocks"
	"atrium/internal/domains/reservation/model"
	"atrium/internal/domains/reservation/model/dto"
	"atrium/internal/domains/reservation/service"
	spaceMocks "atrium/internal/domains/space/mocks"
	spaceModel "atrium/internal/domains/space/model"
	"atrium/shared/cache"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/failure"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

// noopCache backs the service with a cache that always misses. Cache
// invalidation runs on background goroutines, so a gomock here would race
// with Controller.Finish.
type noopCache struct{}

func (noopCache) Save(_ context.Context, _ string, _ any, _ int) error { return nil }
func (noopCache) Get(_ context.Context, _ string, _ any) error        { return cache.Nil }
func (noopCache) Delete(_ context.Context, _ string) error            { return nil }
func (noopCache) Clear(_ context.Context, _ string) error             { return nil }

func userCtx(userID, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, userID)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func activeSpace() spaceModel.Space {
	return spaceModel.Space{
		ID:       "space-id-123",
		Name:     "Workshop Room A",
		Building: "North Wing",
		Capacity: 10,
		Status:   spaceModel.StatusActive,
	}
}

func pendingReservation(userID string) model.Reservation {
	return model.Reservation{
		ID:          "reservation-id-123",
		UserID:      userID,
		SpaceID:     "space-id-123",
		Date:        time.Date(2026, time.March, 2, 0, 0, 0, 0, time.UTC),
		StartTime:   time.Date(0, time.January, 1, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(0, time.January, 1, 11, 0, 0, 0, time.UTC),
		Attendees:   4,
		Purpose:     "team sync",
		Status:      model.StatusPending,
		RequestedAt: timezone.Now(),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

func TestReservationService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockSpaceRepo := spaceMocks.NewMockSpace(ctrl)
	mockGateway := accessctlMocks.NewMockGateway(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	mockPublisher.EXPECT().PublishReservationEvent(gomock.Any(), gomock.Any()).AnyTimes()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockSpaceRepo, cfg, noopCache{}, mockOtel, mockGateway, mockPublisher)

	validReq := dto.CreateReservationRequest{
		SpaceID:   "space-id-123",
		Date:      "2026-03-02",
		StartTime: "10:00",
		EndTime:   "11:00",
		Attendees: 4,
		Purpose:   "team sync",
	}

	tests := []struct {
		name      string
		req       dto.CreateReservationRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful creation",
			req:  validReq,
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSpace(), nil)

				mockRepo.EXPECT().
					CreateIfAvailable(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr: false,
		},
		{
			name: "space lookup error",
			req:  validReq,
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(spaceModel.Space{}, errors.New("db error"))
			},
			wantErr: true,
		},
		{
			name: "space not found",
			req:  validReq,
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(spaceModel.Space{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "space under maintenance",
			req:  validReq,
			setupMock: func() {
				space := activeSpace()
				space.Status = spaceModel.StatusMaintenance

				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(space, nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "attendees exceed capacity",
			req: dto.CreateReservationRequest{
				SpaceID:   "space-id-123",
				Date:      "2026-03-02",
				StartTime: "10:00",
				EndTime:   "11:00",
				Attendees: 25,
				Purpose:   "all hands",
			},
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSpace(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "end time equals start time",
			req: dto.CreateReservationRequest{
				SpaceID:   "space-id-123",
				Date:      "2026-03-02",
				StartTime: "10:00",
				EndTime:   "10:00",
				Attendees: 4,
				Purpose:   "team sync",
			},
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSpace(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "end time before start time",
			req: dto.CreateReservationRequest{
				SpaceID:   "space-id-123",
				Date:      "2026-03-02",
				StartTime: "11:00",
				EndTime:   "10:00",
				Attendees: 4,
				Purpose:   "team sync",
			},
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSpace(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "overlapping reservation",
			req:  validReq,
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSpace(), nil)

				mockRepo.EXPECT().
					CreateIfAvailable(gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:  true,
			wantCode: http.StatusConflict,
		},
		{
			name: "insert error",
			req:  validReq,
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSpace(), nil)

				mockRepo.EXPECT().
					CreateIfAvailable(gomock.Any(), gomock.Any()).
					Return(false, errors.New("insert error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := userCtx("user-id-123", constant.RoleUser)
			result, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, result.ID)
				assert.Equal(t, "user-id-123", result.UserID)
				assert.Equal(t, string(model.StatusPending), result.Status)
			}
		})
	}
}

func TestReservationService_Transition(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockSpaceRepo := spaceMocks.NewMockSpace(ctrl)
	mockGateway := accessctlMocks.NewMockGateway(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	mockPublisher.EXPECT().PublishReservationEvent(gomock.Any(), gomock.Any()).AnyTimes()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockSpaceRepo, cfg, noopCache{}, mockOtel, mockGateway, mockPublisher)

	tests := []struct {
		name      string
		req       dto.TransitionRequest
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "admin approves pending and mints access session",
			req:  dto.TransitionRequest{Status: "approved"},
			ctx:  userCtx("admin-id-1", constant.RoleAdmin),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)

				mockRepo.EXPECT().
					Transition(gomock.Any(), "reservation-id-123", model.StatusPending, gomock.Any()).
					Return(true, nil)

				mockGateway.EXPECT().
					CreateSession(gomock.Any(), gomock.Any()).
					Return(&accessctl.Session{ID: "session-id-1"}, nil)

				mockRepo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "approval stands when access session fails",
			req:  dto.TransitionRequest{Status: "approved"},
			ctx:  userCtx("admin-id-1", constant.RoleAdmin),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)

				mockRepo.EXPECT().
					Transition(gomock.Any(), "reservation-id-123", model.StatusPending, gomock.Any()).
					Return(true, nil)

				mockGateway.EXPECT().
					CreateSession(gomock.Any(), gomock.Any()).
					Return(nil, errors.New("gateway unreachable"))
			},
			wantErr: false,
		},
		{
			name: "admin rejects pending",
			req:  dto.TransitionRequest{Status: "rejected"},
			ctx:  userCtx("admin-id-1", constant.RoleAdmin),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)

				mockRepo.EXPECT().
					Transition(gomock.Any(), "reservation-id-123", model.StatusPending, gomock.Any()).
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "admin marks approved as no show",
			req:  dto.TransitionRequest{Status: "no_show"},
			ctx:  userCtx("admin-id-1", constant.RoleAdmin),
			setupMock: func() {
				approved := pendingReservation("user-id-123")
				approved.Status = model.StatusApproved

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(approved, nil)

				mockRepo.EXPECT().
					Transition(gomock.Any(), "reservation-id-123", model.StatusApproved, gomock.Any()).
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "owner cancels own pending",
			req:  dto.TransitionRequest{Status: "cancelled", CancellationReason: "plans changed"},
			ctx:  userCtx("user-id-123", constant.RoleUser),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)

				mockRepo.EXPECT().
					Transition(gomock.Any(), "reservation-id-123", model.StatusPending, gomock.Any()).
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "admin cancellation revokes access session",
			req:  dto.TransitionRequest{Status: "cancelled"},
			ctx:  userCtx("admin-id-1", constant.RoleAdmin),
			setupMock: func() {
				sessionID := "session-id-1"
				approved := pendingReservation("user-id-123")
				approved.Status = model.StatusApproved
				approved.AccessSessionID = &sessionID

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(approved, nil)

				mockRepo.EXPECT().
					Transition(gomock.Any(), "reservation-id-123", model.StatusApproved, gomock.Any()).
					Return(true, nil)

				mockGateway.EXPECT().
					RevokeSession(gomock.Any(), "session-id-1").
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "owner cannot approve",
			req:  dto.TransitionRequest{Status: "approved"},
			ctx:  userCtx("user-id-123", constant.RoleUser),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "owner cannot cancel someone else's reservation",
			req:  dto.TransitionRequest{Status: "cancelled"},
			ctx:  userCtx("user-id-999", constant.RoleUser),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "owner cannot cancel once approved",
			req:  dto.TransitionRequest{Status: "cancelled"},
			ctx:  userCtx("user-id-123", constant.RoleUser),
			setupMock: func() {
				approved := pendingReservation("user-id-123")
				approved.Status = model.StatusApproved

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(approved, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "illegal move out of terminal state",
			req:  dto.TransitionRequest{Status: "approved"},
			ctx:  userCtx("admin-id-1", constant.RoleAdmin),
			setupMock: func() {
				rejected := pendingReservation("user-id-123")
				rejected.Status = model.StatusRejected

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(rejected, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "pending cannot jump to no_show",
			req:  dto.TransitionRequest{Status: "no_show"},
			ctx:  userCtx("admin-id-1", constant.RoleAdmin),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "concurrent status change detected",
			req:  dto.TransitionRequest{Status: "approved"},
			ctx:  userCtx("admin-id-1", constant.RoleAdmin),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)

				mockRepo.EXPECT().
					Transition(gomock.Any(), "reservation-id-123", model.StatusPending, gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "reservation not found",
			req:  dto.TransitionRequest{Status: "approved"},
			ctx:  userCtx("admin-id-1", constant.RoleAdmin),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Transition(tt.ctx, tt.req, "reservation-id-123")

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

func TestReservationService_CheckIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockSpaceRepo := spaceMocks.NewMockSpace(ctrl)
	mockGateway := accessctlMocks.NewMockGateway(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	mockPublisher.EXPECT().PublishReservationEvent(gomock.Any(), gomock.Any()).AnyTimes()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockSpaceRepo, cfg, noopCache{}, mockOtel, mockGateway, mockPublisher)

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner checks in approved reservation",
			ctx:  userCtx("user-id-123", constant.RoleUser),
			setupMock: func() {
				approved := pendingReservation("user-id-123")
				approved.Status = model.StatusApproved

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(approved, nil)

				mockRepo.EXPECT().
					CheckIn(gomock.Any(), "reservation-id-123", gomock.Any()).
					Return(true, nil)
			},
			wantErr: false,
		},
		{
			name: "cannot check in a pending reservation",
			ctx:  userCtx("user-id-123", constant.RoleUser),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "double check-in rejected",
			ctx:  userCtx("user-id-123", constant.RoleUser),
			setupMock: func() {
				now := timezone.Now()
				checkedIn := pendingReservation("user-id-123")
				checkedIn.Status = model.StatusApproved
				checkedIn.CheckInAt = &now

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(checkedIn, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "stranger cannot check in",
			ctx:  userCtx("user-id-999", constant.RoleUser),
			setupMock: func() {
				approved := pendingReservation("user-id-123")
				approved.Status = model.StatusApproved

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(approved, nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "concurrent check-in loses",
			ctx:  userCtx("user-id-123", constant.RoleUser),
			setupMock: func() {
				approved := pendingReservation("user-id-123")
				approved.Status = model.StatusApproved

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(approved, nil)

				mockRepo.EXPECT().
					CheckIn(gomock.Any(), "reservation-id-123", gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.CheckIn(tt.ctx, "reservation-id-123")

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

func TestReservationService_CheckOut(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockSpaceRepo := spaceMocks.NewMockSpace(ctrl)
	mockGateway := accessctlMocks.NewMockGateway(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	mockPublisher.EXPECT().PublishReservationEvent(gomock.Any(), gomock.Any()).AnyTimes()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockSpaceRepo, cfg, noopCache{}, mockOtel, mockGateway, mockPublisher)

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner checks out after check-in",
			ctx:  userCtx("user-id-123", constant.RoleUser),
			setupMock: func() {
				checkInAt := timezone.Now().Add(-time.Hour)
				checkedIn := pendingReservation("user-id-123")
				checkedIn.Status = model.StatusApproved
				checkedIn.CheckInAt = &checkInAt

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(checkedIn, nil)

				mockRepo.EXPECT().
					CheckOut(gomock.Any(), "reservation-id-123", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, fields map[string]any) (bool, error) {
						checkOutAt, ok := fields[model.FieldCheckOutAt].(time.Time)
						assert.True(t, ok, "expected check_out_at to be stamped")
						assert.True(t, checkOutAt.After(checkInAt), "expected check-out to land after check-in")

						return true, nil
					})
			},
			wantErr: false,
		},
		{
			name: "cannot check out without check-in",
			ctx:  userCtx("user-id-123", constant.RoleUser),
			setupMock: func() {
				approved := pendingReservation("user-id-123")
				approved.Status = model.StatusApproved

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(approved, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
		{
			name: "double check-out rejected",
			ctx:  userCtx("user-id-123", constant.RoleUser),
			setupMock: func() {
				now := timezone.Now()
				done := pendingReservation("user-id-123")
				done.Status = model.StatusCompleted
				done.CheckInAt = &now
				done.CheckOutAt = &now

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(done, nil)
			},
			wantErr:  true,
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.CheckOut(tt.ctx, "reservation-id-123")

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

func TestReservationService_CheckAvailability(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockSpaceRepo := spaceMocks.NewMockSpace(ctrl)
	mockGateway := accessctlMocks.NewMockGateway(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockSpaceRepo, cfg, noopCache{}, mockOtel, mockGateway, mockPublisher)

	validReq := dto.AvailabilityRequest{
		SpaceID:   "space-id-123",
		Date:      "2026-03-02",
		StartTime: "09:00",
		EndTime:   "10:00",
	}

	tests := []struct {
		name          string
		req           dto.AvailabilityRequest
		setupMock     func()
		wantErr       bool
		wantCode      int
		wantAvailable bool
	}{
		{
			name: "window is free",
			req:  validReq,
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSpace(), nil)

				mockRepo.EXPECT().
					HasConflict(gomock.Any(), "space-id-123", gomock.Any(), gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:       false,
			wantAvailable: true,
		},
		{
			name: "window is taken",
			req:  validReq,
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSpace(), nil)

				mockRepo.EXPECT().
					HasConflict(gomock.Any(), "space-id-123", gomock.Any(), gomock.Any(), gomock.Any()).
					Return(true, nil)
			},
			wantErr:       false,
			wantAvailable: false,
		},
		{
			name: "space not found",
			req:  validReq,
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(spaceModel.Space{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "malformed start time",
			req: dto.AvailabilityRequest{
				SpaceID:   "space-id-123",
				Date:      "2026-03-02",
				StartTime: "9am",
				EndTime:   "10:00",
			},
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSpace(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "end not after start",
			req: dto.AvailabilityRequest{
				SpaceID:   "space-id-123",
				Date:      "2026-03-02",
				StartTime: "10:00",
				EndTime:   "10:00",
			},
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSpace(), nil)
			},
			wantErr:  true,
			wantCode: http.StatusBadRequest,
		},
		{
			name: "conflict query fails",
			req:  validReq,
			setupMock: func() {
				mockSpaceRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(activeSpace(), nil)

				mockRepo.EXPECT().
					HasConflict(gomock.Any(), "space-id-123", gomock.Any(), gomock.Any(), gomock.Any()).
					Return(false, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.CheckAvailability(userCtx("user-id-123", constant.RoleUser), tt.req)

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantAvailable, res.Available)
			assert.Equal(t, tt.req.SpaceID, res.SpaceID)
		})
	}
}

func TestReservationService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockSpaceRepo := spaceMocks.NewMockSpace(ctrl)
	mockGateway := accessctlMocks.NewMockGateway(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockSpaceRepo, cfg, noopCache{}, mockOtel, mockGateway, mockPublisher)

	tests := []struct {
		name      string
		ctx       context.Context
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "owner reads own reservation",
			ctx:  userCtx("user-id-123", constant.RoleUser),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)
			},
			wantErr: false,
		},
		{
			name: "admin reads any reservation",
			ctx:  userCtx("admin-id-1", constant.RoleAdmin),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)
			},
			wantErr: false,
		},
		{
			name: "stranger is rejected",
			ctx:  userCtx("user-id-999", constant.RoleUser),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(pendingReservation("user-id-123"), nil)
			},
			wantErr:  true,
			wantCode: http.StatusForbidden,
		},
		{
			name: "not found",
			ctx:  userCtx("user-id-123", constant.RoleUser),
			setupMock: func() {
				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Reservation{}, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			result, err := svc.Get(tt.ctx, "reservation-id-123")

			if tt.wantErr {
				assert.Error(t, err)
				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "reservation-id-123", result.ID)
			}
		})
	}
}

func TestReservationService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockSpaceRepo := spaceMocks.NewMockSpace(ctrl)
	mockGateway := accessctlMocks.NewMockGateway(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockSpaceRepo, cfg, noopCache{}, mockOtel, mockGateway, mockPublisher)

	params := gDto.QueryParams{Page: 1, Limit: 10}

	t.Run("admin sees unscoped listing", func(t *testing.T) {
		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
				assert.Empty(t, filter.Filters)

				return []model.Reservation{pendingReservation("user-id-123")}, nil
			})

		res, err := svc.GetAll(userCtx("admin-id-1", constant.RoleAdmin), params, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Reservations, 1)
		assert.Equal(t, 1, res.TotalData)
	})

	t.Run("user listing is scoped to owner", func(t *testing.T) {
		wantOwner := gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    "user-id-123",
			Table:    model.TableName,
		}

		mockRepo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			Return(1, nil)

		mockRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Reservation, error) {
				assert.Contains(t, filter.Filters, wantOwner)

				return []model.Reservation{pendingReservation("user-id-123")}, nil
			})

		res, err := svc.GetAll(userCtx("user-id-123", constant.RoleUser), params, gDto.FilterGroup{})

		assert.NoError(t, err)
		assert.Len(t, res.Reservations, 1)
	})
}

func TestReservationService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := reservationMocks.NewMockReservation(ctrl)
	mockSpaceRepo := spaceMocks.NewMockSpace(ctrl)
	mockGateway := accessctlMocks.NewMockGateway(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}

	svc := service.New(mockRepo, mockSpaceRepo, cfg, noopCache{}, mockOtel, mockGateway, mockPublisher)

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "successful deletion",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil)
			},
			wantErr: false,
		},
		{
			name: "not found",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(false, nil)
			},
			wantErr:  true,
			wantCode: http.StatusNotFound,
		},
		{
			name: "delete error",
			setupMock: func() {
				mockRepo.EXPECT().
					Exist(gomock.Any(), gomock.Any()).
					Return(true, nil)

				mockRepo.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(errors.New("delete error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := svc.Delete(userCtx("admin-id-1", constant.RoleAdmin), "reservation-id-123")

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
