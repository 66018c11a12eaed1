package model

import "atrium/shared/model"

const (
	TableName  = "user_ratings"
	EntityName = "rating"

	FieldID            = "id"
	FieldRatedUserID   = "rated_user_id"
	FieldReservationID = "reservation_id"
	FieldScore         = "score"
	FieldComment       = "comment"
)

// Rating is an admin-issued conduct score for a user's completed reservation.
// At most one rating may exist per reservation.
type Rating struct {
	ID            string  `db:"id"`
	RatedUserID   string  `db:"rated_user_id"`
	ReservationID *string `db:"reservation_id"`
	Score         int     `db:"score"`
	Comment       string  `db:"comment"`
	model.Metadata
}
