package dto

import (
	"atrium/internal/domains/penalty/model"
	"atrium/shared"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"

	"github.com/google/uuid"
)

type CreatePenaltyRequest struct {
	UserID        string `json:"user_id"        validate:"required,uuid"`
	ReservationID string `json:"reservation_id" validate:"omitempty,uuid"`
	Reason        string `json:"reason"         validate:"required,max=500"`
	Points        int    `json:"points"         validate:"required,min=1,max=50"`
}

func (c *CreatePenaltyRequest) ToModel(user string) model.Penalty {
	var reservationID *string
	if c.ReservationID != "" {
		reservationID = &c.ReservationID
	}

	return model.Penalty{
		ID:            uuid.NewString(),
		UserID:        c.UserID,
		ReservationID: reservationID,
		Reason:        c.Reason,
		Points:        c.Points,
		Status:        model.StatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdatePenaltyRequest struct {
	Reason string `db:"reason" json:"reason" validate:"omitempty,max=500"`
	Points int    `db:"points" json:"points" validate:"omitempty,min=1,max=50"`
	Status string `db:"status" json:"status" validate:"omitempty,oneof=active resolved expired"`
}

type PenaltyResponse struct {
	ID            string  `json:"id"`
	UserID        string  `json:"user_id"`
	ReservationID *string `json:"reservation_id,omitempty"`
	Reason        string  `json:"reason"`
	Points        int     `json:"points"`
	Status        string  `json:"status"`
	gDto.Metadata
}

func (r *PenaltyResponse) FromModel(model model.Penalty) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.ReservationID = model.ReservationID
	r.Reason = model.Reason
	r.Points = model.Points
	r.Status = model.Status
	r.Metadata.FromModel(model.Metadata)
}

type GetPenaltiesResponse struct {
	Penalties []PenaltyResponse `json:"penalties"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetPenaltiesResponse) FromModels(models []model.Penalty, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Penalties = make([]PenaltyResponse, len(models))
	for i, mod := range models {
		r.Penalties[i].FromModel(mod)
	}
}
