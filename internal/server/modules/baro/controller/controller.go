package controller

import (
	"net/http"

	"cloudbaro/internal/server/modules/baro/repository"
)

type BaroController interface {
	RegisterRoutes(mux *http.ServeMux)
}

type baroControllerImpl struct {
	repository repository.BaroRepository
}

func NewBaroController(repository repository.BaroRepository) BaroController {
	return &baroControllerImpl{repository: repository}
}

func (c *baroControllerImpl) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/stations", c.handleStations)
	mux.HandleFunc("GET /api/v1/stations/{id}/latest", c.handleLatest)
	mux.HandleFunc("GET /api/v1/stations/{id}/readings", c.handleReadings)
}
