package baro

import (
	"database/sql"
	"log/slog"
	"net/http"

	"cloudbaro/internal/server/modules/baro/controller"
	"cloudbaro/internal/server/modules/baro/repository"
)

func RegisterFeature(mux *http.ServeMux, db *sql.DB, subscriber MQTTSubscriber, logger *slog.Logger) {
	baroRepository := repository.NewRepository(db)
	baroController := controller.NewBaroController(baroRepository)
	baroController.RegisterRoutes(mux)
	if subscriber != nil {
		registerMQTTHandler(subscriber, baroRepository, logger)
	}
}
