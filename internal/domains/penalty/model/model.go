package model

import "atrium/shared/model"

const (
	TableName  = "user_penalties"
	EntityName = "penalty"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldReservationID = "reservation_id"
	FieldReason        = "reason"
	FieldPoints        = "points"
	FieldStatus        = "status"
)

const (
	StatusActive   = "active"
	StatusResolved = "resolved"
	StatusExpired  = "expired"
)

// Penalty records misconduct points against a user, optionally tied to a
// reservation. The reservation link is SET NULL on delete so the penalty
// outlives the record it was issued for.
type Penalty struct {
	ID            string  `db:"id"`
	UserID        string  `db:"user_id"`
	ReservationID *string `db:"reservation_id"`
	Reason        string  `db:"reason"`
	Points        int     `db:"points"`
	Status        string  `db:"status"`
	model.Metadata
}
