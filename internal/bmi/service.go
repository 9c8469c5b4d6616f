// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package bmi

import (
	"context"
	"strings"

	"github.com/phamqnam/bodylog/internal/platform/validate"
)

// Rejection messages for invalid measurements. Clients of the legacy save
// endpoint match on these strings, so they are part of the contract.
const (
	MsgNonPositiveInputs = "Height and weight must be positive numbers."
	MsgEmptyName         = "Name cannot be empty."
)

// Service validates measurements and persists them as records.
type Service struct {
	store Store
}

// NewService wires the measurement service with its store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Save validates a measurement, computes its index, and persists it.
//
// The two validation rules run in a fixed order: positivity of height and
// weight first, then presence of a name. The first failing rule's message is
// returned with a nil record; these rejections are not errors. An error return
// means the store failed.
func (service *Service) Save(context context.Context, name string, height, weight float64) (*Record, string, error) {
	if new(validate.Validator).Positive("height", height).Positive("weight", weight).HasErrors() {
		return nil, MsgNonPositiveInputs, nil
	}

	name = strings.TrimSpace(name)
	if new(validate.Validator).Required("name", name).HasErrors() {
		return nil, MsgEmptyName, nil
	}

	record := &Record{
		Name:   name,
		Height: height,
		Weight: weight,
		BMI:    Compute(height, weight),
	}
	if err := service.store.Insert(context, record); err != nil {
		return nil, "", err
	}
	return record, "", nil
}

// List returns stored records, oldest first. A non-empty name filters to one
// subject; the name is trimmed the same way Save trims it before storing.
func (service *Service) List(context context.Context, name string) ([]*Record, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return service.store.ListAll(context)
	}
	return service.store.FindByName(context, name)
}
