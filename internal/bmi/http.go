// Copyright (c) 2026 Bodylog. All rights reserved.
// Author: nam.phamquoc.dev@gmail.com

package bmi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/phamqnam/bodylog/internal/platform/request"
	"github.com/phamqnam/bodylog/internal/platform/respond"
)

// Handler exposes the measurement endpoints over HTTP.
type Handler struct {
	service *Service
}

// NewHandler builds the HTTP handler for the measurement endpoints.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the /api/bmi routes.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/", handler.List)
	return router
}

// SaveRequest is the JSON body of POST /save_bmi.
type SaveRequest struct {
	Name   string  `json:"name"`
	Height float64 `json:"height"`
	Weight float64 `json:"weight"`
}

// SaveLegacy handles POST /save_bmi, kept at its historical top-level path.
//
// The endpoint answers 200 for both outcomes: a saved record arrives under
// "record", a validation rejection under "error". Existing clients key off
// those two fields.
func (handler *Handler) SaveLegacy(writer http.ResponseWriter, request *http.Request) {
	var body SaveRequest
	if err := requestutil.DecodeJSON(request, &body); err != nil {
		respond.Error(writer, request, err)
		return
	}

	record, rejection, err := handler.service.Save(request.Context(), body.Name, body.Height, body.Weight)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	if rejection != "" {
		respond.OK(writer, map[string]string{"error": rejection})
		return
	}
	respond.OK(writer, map[string]*Record{"record": record})
}

// List handles GET /api/bmi. An optional ?name= query filters to one subject.
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	records, err := handler.service.List(request.Context(), request.URL.Query().Get("name"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, map[string][]*Record{"records": records})
}
