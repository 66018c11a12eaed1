package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/rating/model"
	gDto "atrium/shared/dto"
	gRepo "atrium/shared/repository"
)

type Rating interface {
	Insert(ctx context.Context, model model.Rating) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Rating, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Rating, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Rating]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Rating {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Rating](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
