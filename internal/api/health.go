// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

// Package api contains the root and health check handlers.
package api

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/phamqnam/bodylog/internal/platform/constants"
	"github.com/phamqnam/bodylog/internal/platform/respond"
)

// HealthDependencies holds the injectable dependency checkers for /api/health.
type HealthDependencies struct {
	// CheckDatabase pings the PostgreSQL pool.
	CheckDatabase func() error

	// CheckCache pings the Redis client.
	CheckCache func() error
}

type healthHandler struct {
	dependencies HealthDependencies
	logger       *slog.Logger
}

// healthResponse is the body of GET /api/health.
type healthResponse struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Cache     string    `json:"cache"`
	Timestamp time.Time `json:"timestamp"`
	Error     string    `json:"error,omitempty"`
}

// NewHealthHandlers creates the / and /api/health http.HandlerFuncs.
func NewHealthHandlers(deps HealthDependencies, logger *slog.Logger) (root, health http.HandlerFunc) {
	handler := &healthHandler{dependencies: deps, logger: logger}
	return handler.root, handler.health
}

// root handles GET /, a minimal liveness banner.
func (handler *healthHandler) root(writer http.ResponseWriter, request *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldMessage: constants.AppName,
		constants.FieldStatus:  "ok",
	})
}

// health handles GET /api/health. It reports each dependency separately and
// answers 503 when any of them is down.
func (handler *healthHandler) health(writer http.ResponseWriter, request *http.Request) {
	response := healthResponse{
		Status:    "ok",
		Database:  "up",
		Cache:     "up",
		Timestamp: time.Now().UTC(),
	}

	// Failures accumulate so a doubly-degraded report names both causes.
	var failures []string

	if handler.dependencies.CheckDatabase != nil {
		if err := handler.dependencies.CheckDatabase(); err != nil {
			response.Database = "down"
			failures = append(failures, err.Error())
			handler.logger.ErrorContext(request.Context(), "health_check_failed",
				slog.String("dependency", "postgres"), slog.Any("error", err))
		}
	}

	if handler.dependencies.CheckCache != nil {
		if err := handler.dependencies.CheckCache(); err != nil {
			response.Cache = "down"
			failures = append(failures, err.Error())
			handler.logger.ErrorContext(request.Context(), "health_check_failed",
				slog.String("dependency", "redis"), slog.Any("error", err))
		}
	}

	httpStatus := http.StatusOK
	if len(failures) > 0 {
		response.Status = "degraded"
		response.Error = strings.Join(failures, "; ")
		httpStatus = http.StatusServiceUnavailable
	}
	respond.JSON(writer, httpStatus, response)
}
