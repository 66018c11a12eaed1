package dto

import (
	"atrium/internal/domains/rating/model"
	"atrium/shared"
	gDto "atrium/shared/dto"
	gModel "atrium/shared/model"
	"atrium/shared/timezone"

	"github.com/google/uuid"
)

type CreateRatingRequest struct {
	RatedUserID   string `json:"rated_user_id"  validate:"required,uuid"`
	ReservationID string `json:"reservation_id" validate:"omitempty,uuid"`
	Score         int    `json:"score"          validate:"required,min=1,max=5"`
	Comment       string `json:"comment"        validate:"omitempty,max=500"`
}

func (c *CreateRatingRequest) ToModel(user string) model.Rating {
	var reservationID *string
	if c.ReservationID != "" {
		reservationID = &c.ReservationID
	}

	return model.Rating{
		ID:            uuid.NewString(),
		RatedUserID:   c.RatedUserID,
		ReservationID: reservationID,
		Score:         c.Score,
		Comment:       c.Comment,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRatingRequest struct {
	Score   int    `db:"score"   json:"score"   validate:"omitempty,min=1,max=5"`
	Comment string `db:"comment" json:"comment" validate:"omitempty,max=500"`
}

type RatingResponse struct {
	ID            string  `json:"id"`
	RatedUserID   string  `json:"rated_user_id"`
	ReservationID *string `json:"reservation_id,omitempty"`
	Score         int     `json:"score"`
	Comment       string  `json:"comment"`
	gDto.Metadata
}

func (r *RatingResponse) FromModel(model model.Rating) {
	r.ID = model.ID
	r.RatedUserID = model.RatedUserID
	r.ReservationID = model.ReservationID
	r.Score = model.Score
	r.Comment = model.Comment
	r.Metadata.FromModel(model.Metadata)
}

type GetRatingsResponse struct {
	Ratings   []RatingResponse `json:"ratings"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetRatingsResponse) FromModels(models []model.Rating, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Ratings = make([]RatingResponse, len(models))
	for i, mod := range models {
		r.Ratings[i].FromModel(mod)
	}
}
