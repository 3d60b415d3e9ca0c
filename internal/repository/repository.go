// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import (
	"context"
	"time"

	"rpvscraper/internal/model"
)

// RecordRepository persists extracted records and reads them back.
// Records are append-only: there is no update or delete path.
type RecordRepository interface {
	// InsertBatch stores all records atomically. An empty slice is a no-op.
	InsertBatch(ctx context.Context, records []model.Record) error

	// FindByID returns a record by its ID, or sql.ErrNoRows.
	FindByID(ctx context.Context, id int64) (*model.Record, error)

	// List returns a page of records matching filter and the total match count.
	List(ctx context.Context, filter RecordFilter, pq PageQuery) (*PageResult[model.Record], error)
}

// RecordFilter narrows List. Zero-valued fields are ignored.
type RecordFilter struct {
	CaseNumber       string
	AvailabilityDate *time.Time
	Status           string
	// Party matches autores, advogados or reu case-insensitively as a substring.
	Party string
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
type PageResult[T any] struct {
	Items []T
	Total int
}
