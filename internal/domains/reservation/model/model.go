package model

import (
	"time"

	"atrium/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID                 = "id"
	FieldUserID             = "user_id"
	FieldSpaceID            = "space_id"
	FieldDate               = "reservation_date"
	FieldStartTime          = "start_time"
	FieldEndTime            = "end_time"
	FieldAttendees          = "attendees"
	FieldPurpose            = "purpose"
	FieldStatus             = "status"
	FieldRequestedAt        = "requested_at"
	FieldApprovedBy         = "approved_by"
	FieldApprovedAt         = "approved_at"
	FieldCancelledAt        = "cancelled_at"
	FieldCancellationReason = "cancellation_reason"
	FieldCheckInAt          = "check_in_at"
	FieldCheckOutAt         = "check_out_at"
	FieldAccessSessionID    = "access_session_id"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
	StatusNoShow    Status = "no_show"
)

// transitions is the full state machine. Absent keys are terminal states, no
// transition leads out of them.
var transitions = map[Status][]Status{
	StatusPending:  {StatusApproved, StatusRejected, StatusCancelled},
	StatusApproved: {StatusCancelled, StatusCompleted, StatusNoShow},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	default:
		return false
	}
}

func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// CanTransitionTo reports whether the state machine defines a move from s to
// target. Check-in is not a status change, it only stamps check_in_at.
func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range transitions[s] {
		if next == target {
			return true
		}
	}

	return false
}

// ActiveStatuses are the statuses that hold a slot and therefore participate in
// conflict detection.
func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusApproved)}
}

// Overlaps implements half-open interval overlap: [aStart, aEnd) intersects
// [bStart, bEnd). Touching endpoints do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

type Reservation struct {
	ID                 string     `db:"id"`
	UserID             string     `db:"user_id"`
	SpaceID            string     `db:"space_id"`
	Date               time.Time  `db:"reservation_date"`
	StartTime          time.Time  `db:"start_time"`
	EndTime            time.Time  `db:"end_time"`
	Attendees          int        `db:"attendees"`
	Purpose            string     `db:"purpose"`
	Status             Status     `db:"status"`
	RequestedAt        time.Time  `db:"requested_at"`
	ApprovedBy         *string    `db:"approved_by"`
	ApprovedAt         *time.Time `db:"approved_at"`
	CancelledAt        *time.Time `db:"cancelled_at"`
	CancellationReason *string    `db:"cancellation_reason"`
	CheckInAt          *time.Time `db:"check_in_at"`
	CheckOutAt         *time.Time `db:"check_out_at"`
	AccessSessionID    *string    `db:"access_session_id"`
	model.Metadata
}

func (r *Reservation) CheckedIn() bool {
	return r.CheckInAt != nil
}

func (r *Reservation) CheckedOut() bool {
	return r.CheckOutAt != nil
}

func (r *Reservation) OwnedBy(userID string) bool {
	return r.UserID == userID
}

// DurationMinutes is the length of the reserved window, used when minting an
// access session.
func (r *Reservation) DurationMinutes() int {
	return int(r.EndTime.Sub(r.StartTime).Minutes())
}
