// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

/*
Package bmi implements body-mass-index record keeping.

A record captures a named measurement (height in meters, weight in kilograms)
together with the index computed from it. Records are append-only; the computed
value is stored rather than derived on read so historical entries are immune to
future changes in rounding.
*/
package bmi

import (
	"math"
	"time"
)

// Record is a stored body-mass-index measurement.
type Record struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Height    float64   `json:"height"`
	Weight    float64   `json:"weight"`
	BMI       float64   `json:"bmi"`
	CreatedAt time.Time `json:"created_at"`
}

// Compute returns weight / height² rounded to two decimal places.
// Callers must have validated that both inputs are positive.
func Compute(height, weight float64) float64 {
	return math.Round(weight/(height*height)*100) / 100
}
