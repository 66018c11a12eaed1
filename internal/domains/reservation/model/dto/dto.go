package dto

import (
	"time"

	"atrium/internal/domains/reservation/model"
	"atrium/shared"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	SpaceID   string `json:"space_id"  validate:"required,uuid"`
	Date      string `json:"date"      validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time"  validate:"required,datetime=15:04"`
	Attendees int    `json:"attendees" validate:"required,gt=0"`
	Purpose   string `json:"purpose"   validate:"required,max=500"`
}

func (c *CreateReservationRequest) ToModel(userID string) (model.Reservation, error) {
	date, err := time.Parse(constant.CivilDayFormat, c.Date)
	if err != nil {
		return model.Reservation{}, err
	}

	startTime, err := time.Parse(constant.ClockFormat, c.StartTime)
	if err != nil {
		return model.Reservation{}, err
	}

	endTime, err := time.Parse(constant.ClockFormat, c.EndTime)
	if err != nil {
		return model.Reservation{}, err
	}

	now := timezone.Now()

	return model.Reservation{
		ID:          uuid.NewString(),
		UserID:      userID,
		SpaceID:     c.SpaceID,
		Date:        date,
		StartTime:   startTime,
		EndTime:     endTime,
		Attendees:   c.Attendees,
		Purpose:     c.Purpose,
		Status:      model.StatusPending,
		RequestedAt: now,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}, nil
}

// AvailabilityRequest asks whether a window is still free without admitting
// anything. The answer is advisory, admission re-checks under the space lock.
type AvailabilityRequest struct {
	SpaceID   string `json:"space_id"   validate:"required,uuid"`
	Date      string `json:"date"       validate:"required,datetime=2006-01-02"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time"   validate:"required,datetime=15:04"`
}

func (a *AvailabilityRequest) Window() (date, start, end time.Time, err error) {
	date, err = time.Parse(constant.CivilDayFormat, a.Date)
	if err != nil {
		return date, start, end, err
	}

	start, err = time.Parse(constant.ClockFormat, a.StartTime)
	if err != nil {
		return date, start, end, err
	}

	end, err = time.Parse(constant.ClockFormat, a.EndTime)

	return date, start, end, err
}

type AvailabilityResponse struct {
	SpaceID   string `json:"space_id"`
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Available bool   `json:"available"`
}

// TransitionRequest drives every status change: approve, reject, cancel and
// no-show all go through the same endpoint.
type TransitionRequest struct {
	Status             string `json:"status"              validate:"required,oneof=approved rejected cancelled no_show"`
	CancellationReason string `json:"cancellation_reason" validate:"omitempty,max=500"`
}

type ReservationResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	SpaceID            string     `json:"space_id"`
	Date               string     `json:"date"`
	StartTime          string     `json:"start_time"`
	EndTime            string     `json:"end_time"`
	Attendees          int        `json:"attendees"`
	Purpose            string     `json:"purpose"`
	Status             string     `json:"status"`
	RequestedAt        time.Time  `json:"requested_at"`
	ApprovedBy         *string    `json:"approved_by,omitempty"`
	ApprovedAt         *time.Time `json:"approved_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CheckInAt          *time.Time `json:"check_in_at,omitempty"`
	CheckOutAt         *time.Time `json:"check_out_at,omitempty"`
	AccessSessionID    *string    `json:"access_session_id,omitempty"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.SpaceID = model.SpaceID
	r.Date = model.Date.Format(constant.CivilDayFormat)
	r.StartTime = model.StartTime.Format(constant.ClockFormat)
	r.EndTime = model.EndTime.Format(constant.ClockFormat)
	r.Attendees = model.Attendees
	r.Purpose = model.Purpose
	r.Status = string(model.Status)
	r.RequestedAt = model.RequestedAt
	r.ApprovedBy = model.ApprovedBy
	r.ApprovedAt = model.ApprovedAt
	r.CancelledAt = model.CancelledAt
	r.CancellationReason = model.CancellationReason
	r.CheckInAt = model.CheckInAt
	r.CheckOutAt = model.CheckOutAt
	r.AccessSessionID = model.AccessSessionID
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}
