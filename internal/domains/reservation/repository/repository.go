package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/reservation/model"
	spaceModel "atrium/internal/domains/space/model"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/logger"
	gRepo "atrium/shared/repository"
)

type Reservation interface {
	CreateIfAvailable(ctx context.Context, reservation model.Reservation) (conflict bool, err error)
	HasConflict(ctx context.Context, spaceID string, date, start, end time.Time) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Reservation, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Reservation, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Transition(ctx context.Context, id string, from model.Status, fields map[string]any) (moved bool, err error)
	CheckIn(ctx context.Context, id string, fields map[string]any) (moved bool, err error)
	CheckOut(ctx context.Context, id string, fields map[string]any) (moved bool, err error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Reservation]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Reservation {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Reservation](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// conflictFilter matches reservations on the same space and date whose half-open
// window intersects [start, end) and whose status still holds the slot.
func conflictFilter(spaceID string, date, start, end time.Time) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSpaceID,
				Operator: gDto.FilterOperatorEq,
				Value:    spaceID,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldDate,
				Operator: gDto.FilterOperatorEq,
				Value:    date,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    model.ActiveStatuses(),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStartTime,
				ArgName:  "candidate_end",
				Operator: gDto.FilterOperatorLess,
				Value:    end,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldEndTime,
				ArgName:  "candidate_start",
				Operator: gDto.FilterOperatorGreater,
				Value:    start,
				Table:    model.TableName,
			},
		},
	}
}

// HasConflict evaluates the overlap predicate against the committed set. For
// admission it must run inside CreateIfAvailable's transaction instead.
func (repo *repositoryImpl) HasConflict(ctx context.Context, spaceID string, date, start, end time.Time) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.HasConflict")
	defer scope.End()

	return repo.Exist(ctx, conflictFilter(spaceID, date, start, end)) //nolint:wrapcheck
}

// CreateIfAvailable admits the reservation only if no pending or approved
// reservation overlaps its window. The space row is locked first so concurrent
// admissions for the same space serialize; the loser sees the winner's row and
// reports a conflict.
func (repo *repositoryImpl) CreateIfAvailable(ctx context.Context, reservation model.Reservation) (conflict bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CreateIfAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.Tx(ctx)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	defer func() {
		if err != nil || conflict {
			_ = tx.Rollback()
		}
	}()

	var lockedID string

	err = tx.GetContext(ctx, &lockedID,
		fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 FOR UPDATE", spaceModel.FieldID, spaceModel.TableName, spaceModel.FieldID),
		reservation.SpaceID,
	)
	if err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to lock space row: %w", err)
	}

	conflict, err = repo.ExistTx(ctx, tx, conflictFilter(reservation.SpaceID, reservation.Date, reservation.StartTime, reservation.EndTime))
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	if conflict {
		return true, nil
	}

	if err = repo.InsertTx(ctx, tx, reservation); err != nil {
		return false, err //nolint:wrapcheck
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return false, fmt.Errorf("failed to commit reservation: %w", err)
	}

	return false, nil
}

// Transition applies fields only while the reservation is still in the expected
// status. moved=false means the row was gone or a concurrent writer got there
// first; callers decide how to report that.
func (repo *repositoryImpl) Transition(ctx context.Context, id string, from model.Status, fields map[string]any) (moved bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.Transition")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				ArgName:  "expected_status",
				Operator: gDto.FilterOperatorEq,
				Value:    string(from),
				Table:    model.TableName,
			},
		},
	}

	affected, err := repo.UpdateChecked(ctx, fields, filter)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}

// CheckIn stamps check_in_at while the reservation is approved and not yet
// checked in. The guard lives in the WHERE clause so a double check-in loses
// atomically.
func (repo *repositoryImpl) CheckIn(ctx context.Context, id string, fields map[string]any) (moved bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CheckIn")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				ArgName:  "expected_status",
				Operator: gDto.FilterOperatorEq,
				Value:    string(model.StatusApproved),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckInAt,
				Operator: gDto.FilterIsNull,
				Table:    model.TableName,
			},
		},
	}

	affected, err := repo.UpdateChecked(ctx, fields, filter)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}

// CheckOut completes the reservation: requires an existing check-in and no prior
// check-out, enforced in the WHERE clause.
func (repo *repositoryImpl) CheckOut(ctx context.Context, id string, fields map[string]any) (moved bool, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".reservation.CheckOut")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldStatus,
				ArgName:  "expected_status",
				Operator: gDto.FilterOperatorEq,
				Value:    string(model.StatusApproved),
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckInAt,
				Operator: gDto.FilterIsNotNull,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldCheckOutAt,
				Operator: gDto.FilterIsNull,
				Table:    model.TableName,
			},
		},
	}

	affected, err := repo.UpdateChecked(ctx, fields, filter)
	if err != nil {
		return false, err //nolint:wrapcheck
	}

	return affected > 0, nil
}
