package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"atrium/infras/otel"
	"atrium/infras/postgres"
	"atrium/internal/domains/space/model"
	"atrium/shared/constant"
	gDto "atrium/shared/dto"
	"atrium/shared/logger"
	gRepo "atrium/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Space interface {
	Insert(ctx context.Context, model model.Space) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Space, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Space, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	GetUtilities(ctx context.Context, spaceIDs ...string) (map[string][]model.Utility, error)
	ReplaceUtilities(ctx context.Context, spaceID string, utilityIDs []string) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Space]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Space {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Space](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetUtilities loads the utility tags for the given spaces, keyed by space id.
func (repo *repositoryImpl) GetUtilities(ctx context.Context, spaceIDs ...string) (map[string][]model.Utility, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".space.GetUtilities")
	defer scope.End()

	result := map[string][]model.Utility{}
	if len(spaceIDs) == 0 {
		return result, nil
	}

	query, args, err := sqlx.In(
		`SELECT su.space_id, u.id, u.key, u.label, u.description
		 FROM space_utilities su
		 JOIN utilities u ON u.id = su.utility_id
		 WHERE su.space_id IN (?)`,
		spaceIDs,
	)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to build utilities query: %w", err)
	}

	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	rows := []struct {
		SpaceID     string `db:"space_id"`
		ID          string `db:"id"`
		Key         string `db:"key"`
		Label       string `db:"label"`
		Description string `db:"description"`
	}{}

	err = repo.db.Read.SelectContext(ctx, &rows, repo.db.Read.Rebind(query), args...)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return nil, fmt.Errorf("failed to get utilities: %w", err)
	}

	for _, row := range rows {
		result[row.SpaceID] = append(result[row.SpaceID], model.Utility{
			ID:          row.ID,
			Key:         row.Key,
			Label:       row.Label,
			Description: row.Description,
		})
	}

	return result, nil
}

// ReplaceUtilities rewrites the utility attachments of a space in one transaction.
func (repo *repositoryImpl) ReplaceUtilities(ctx context.Context, spaceID string, utilityIDs []string) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".space.ReplaceUtilities")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (space utilities): %w", err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	_, err = tx.ExecContext(ctx, "DELETE FROM space_utilities WHERE space_id = $1", spaceID)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to clear space utilities: %w", err)
	}

	for _, utilityID := range utilityIDs {
		_, err = tx.ExecContext(ctx, "INSERT INTO space_utilities (space_id, utility_id) VALUES ($1, $2)", spaceID, utilityID)
		if err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to attach utility: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to commit space utilities: %w", err)
	}

	return nil
}
