package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"atrium/internal/domains/reservation/model"
	"atrium/internal/domains/reservation/model/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"
)

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		SpaceID:   "space-id-123",
		Date:      "2026-03-02",
		StartTime: "09:00",
		EndTime:   "10:30",
		Attendees: 8,
		Purpose:   "sprint planning",
	}

	userID := "user-id-123"
	reservation, err := req.ToModel(userID)

	assert.NoError(t, err)
	assert.NotEmpty(t, reservation.ID, "expected ID to be generated")
	assert.Equal(t, userID, reservation.UserID)
	assert.Equal(t, req.SpaceID, reservation.SpaceID)
	assert.Equal(t, req.Attendees, reservation.Attendees)
	assert.Equal(t, req.Purpose, reservation.Purpose)
	assert.Equal(t, model.StatusPending, reservation.Status)
	assert.Equal(t, 2026, reservation.Date.Year())
	assert.Equal(t, time.March, reservation.Date.Month())
	assert.Equal(t, 9, reservation.StartTime.Hour())
	assert.Equal(t, 30, reservation.EndTime.Minute())
	assert.False(t, reservation.RequestedAt.IsZero(), "expected RequestedAt to be set")
	assert.Equal(t, userID, reservation.CreatedBy)
	assert.Equal(t, userID, reservation.ModifiedBy)
}

func TestCreateReservationRequest_ToModelInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  dto.CreateReservationRequest
	}{
		{
			name: "malformed date",
			req: dto.CreateReservationRequest{
				SpaceID:   "space-id-123",
				Date:      "02-03-2026",
				StartTime: "09:00",
				EndTime:   "10:00",
			},
		},
		{
			name: "malformed start time",
			req: dto.CreateReservationRequest{
				SpaceID:   "space-id-123",
				Date:      "2026-03-02",
				StartTime: "9am",
				EndTime:   "10:00",
			},
		},
		{
			name: "malformed end time",
			req: dto.CreateReservationRequest{
				SpaceID:   "space-id-123",
				Date:      "2026-03-02",
				StartTime: "09:00",
				EndTime:   "25:00",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.req.ToModel("user-id-123")
			assert.Error(t, err)
		})
	}
}

func TestReservationResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	approvedBy := "admin-id-1"
	sessionID := "session-id-1"

	reservation := model.Reservation{
		ID:              "reservation-id-1",
		UserID:          "user-id-123",
		SpaceID:         "space-id-123",
		Date:            time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		StartTime:       time.Date(0, 1, 1, 9, 0, 0, 0, time.UTC),
		EndTime:         time.Date(0, 1, 1, 10, 30, 0, 0, time.UTC),
		Attendees:       8,
		Purpose:         "sprint planning",
		Status:          model.StatusApproved,
		RequestedAt:     now,
		ApprovedBy:      &approvedBy,
		ApprovedAt:      &now,
		AccessSessionID: &sessionID,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "user-id-123",
			ModifiedBy: "admin-id-1",
		},
	}

	var response dto.ReservationResponse
	response.FromModel(reservation)

	assert.Equal(t, reservation.ID, response.ID)
	assert.Equal(t, reservation.UserID, response.UserID)
	assert.Equal(t, reservation.SpaceID, response.SpaceID)
	assert.Equal(t, "2026-03-02", response.Date)
	assert.Equal(t, "09:00", response.StartTime)
	assert.Equal(t, "10:30", response.EndTime)
	assert.Equal(t, "approved", response.Status)
	assert.Equal(t, &approvedBy, response.ApprovedBy)
	assert.Equal(t, &sessionID, response.AccessSessionID)
	assert.Nil(t, response.CancelledAt)
	assert.Equal(t, "user-id-123", response.CreatedBy)
	assert.Equal(t, "admin-id-1", response.ModifiedBy)
}

func TestGetReservationsResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	reservations := []model.Reservation{
		{
			ID:      "reservation-id-1",
			UserID:  "user-id-123",
			SpaceID: "space-id-1",
			Status:  model.StatusPending,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
			},
		},
		{
			ID:      "reservation-id-2",
			UserID:  "user-id-123",
			SpaceID: "space-id-2",
			Status:  model.StatusApproved,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
			},
		},
	}

	totalData := 15
	limit := 10

	var response dto.GetReservationsResponse
	response.FromModels(reservations, totalData, limit)

	assert.Equal(t, totalData, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Len(t, response.Reservations, len(reservations))

	for i, reservation := range response.Reservations {
		assert.Equal(t, reservations[i].ID, reservation.ID)
		assert.Equal(t, string(reservations[i].Status), reservation.Status)
	}
}

func TestGetReservationsResponse_FromModelsEmptyList(t *testing.T) {
	var response dto.GetReservationsResponse
	response.FromModels(nil, 0, 10)

	assert.Equal(t, 0, response.TotalData)
	assert.Equal(t, 1, response.TotalPage)
	assert.Len(t, response.Reservations, 0)
}
