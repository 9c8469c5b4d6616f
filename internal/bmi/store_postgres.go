// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package bmi

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phamqnam/bodylog/internal/platform/dberr"
)

// PostgresStore implements [Store] on top of the core.bmi_record table.
// The database assigns identifiers (identity column) and timestamps.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore builds the store over a shared connection pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Insert persists the record and fills in the store-assigned ID and timestamp.
func (store *PostgresStore) Insert(context context.Context, record *Record) error {
	query := `
		INSERT INTO core.bmi_record (name, height, weight, bmi)
		VALUES ($1, $2, $3, $4)
		RETURNING id, createdat`

	err := store.pool.QueryRow(context, query,
		record.Name, record.Height, record.Weight, record.BMI,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "insert bmi record")
	}
	return nil
}

// ListAll returns every record, oldest first.
func (store *PostgresStore) ListAll(context context.Context) ([]*Record, error) {
	query := `
		SELECT id, name, height, weight, bmi, createdat
		FROM core.bmi_record
		ORDER BY id ASC`

	rows, err := store.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list bmi records")
	}
	defer rows.Close()

	return scanRecords(rows)
}

// FindByName returns the records for one subject name, oldest first.
func (store *PostgresStore) FindByName(context context.Context, name string) ([]*Record, error) {
	query := `
		SELECT id, name, height, weight, bmi, createdat
		FROM core.bmi_record
		WHERE name = $1
		ORDER BY id ASC`

	rows, err := store.pool.Query(context, query, name)
	if err != nil {
		return nil, dberr.Wrap(err, "find bmi records by name")
	}
	defer rows.Close()

	return scanRecords(rows)
}

// scanRecords drains a result set into records.
func scanRecords(rows pgx.Rows) ([]*Record, error) {
	records := make([]*Record, 0)
	for rows.Next() {
		record := &Record{}
		if err := rows.Scan(&record.ID, &record.Name, &record.Height, &record.Weight, &record.BMI, &record.CreatedAt); err != nil {
			return nil, dberr.Wrap(err, "scan bmi record")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "iterate bmi records")
	}
	return records, nil
}
