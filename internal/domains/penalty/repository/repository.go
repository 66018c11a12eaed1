package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/penalty/model"
	gDto "atrium/shared/dto"
	gRepo "atrium/shared/repository"
)

type Penalty interface {
	Insert(ctx context.Context, model model.Penalty) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Penalty, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Penalty, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Penalty]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Penalty {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Penalty](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
