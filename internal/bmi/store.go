// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package bmi

import "context"

// Store persists measurement records.
//
// Implementations assign the record ID and creation timestamp on insert and
// return records in insertion order from the listing methods.
type Store interface {
	// Insert persists the record and fills in its ID and CreatedAt.
	Insert(context context.Context, record *Record) error

	// ListAll returns every record, oldest first.
	ListAll(context context.Context) ([]*Record, error)

	// FindByName returns the records for one subject name, oldest first.
	// An unknown name yields an empty slice, not an error.
	FindByName(context context.Context, name string) ([]*Record, error)
}
