package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"hotel/infras/otel"
	"hotel/infras/postgres"
	"hotel/internal/domains/rate/model"
	gDto "hotel/shared/dto"
	gRepo "hotel/shared/repository"
)

type Rate interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Rate, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Rate]
}

func New(db *postgres.Connection, otel otel.Otel) Rate {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Rate](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
