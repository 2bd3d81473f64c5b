package mocks

import (
	"context"

	"hotel/infras/postgres"

	"github.com/jmoiron/sqlx"
)

// Transactor runs fn with a nil transaction. Repositories in service tests are mocks,
// so the handle is only passed through. Commits counts successful units of work.
type Transactor struct {
	Commits   int
	Rollbacks int
}

// WithTx implements postgres.Transactor.
func (t *Transactor) WithTx(_ context.Context, fn func(tx *sqlx.Tx) error) error {
	if err := fn(nil); err != nil {
		t.Rollbacks++

		return err
	}

	t.Commits++

	return nil
}

func NewTransactor() *Transactor {
	return &Transactor{}
}

var _ postgres.Transactor = (*Transactor)(nil)
