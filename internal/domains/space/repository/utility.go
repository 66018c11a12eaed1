package repository

//go:generate go run go.uber.org/mock/mockgen -source=./utility.go -destination=../mocks/utility_mock.go -package=mocks

import (
	"context"

	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/space/model"
	gDto "atrium/shared/dto"
	gRepo "atrium/shared/repository"
)

type Utility interface {
	Insert(ctx context.Context, model model.Utility) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Utility, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type utilityRepositoryImpl struct {
	gRepo.Repository[model.Utility]
	db   *postgres.Connection
	otel otel.Otel
}

func NewUtility(db *postgres.Connection, otel otel.Otel) Utility {
	return &utilityRepositoryImpl{
		Repository: gRepo.NewRepository[model.Utility](model.UtilityEntityName, model.UtilityTableName, model.UtilityFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
