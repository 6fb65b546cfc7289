package baro

import (
	"log/slog"

	"cloudbaro/internal/server/modules/baro/repository"
	"cloudbaro/internal/types"
)

// MQTTSubscriber interface for attaching message handlers
type MQTTSubscriber interface {
	SetMessageHandler(handler func(telemetry types.Telemetry) error)
}

// registerMQTTHandler sets up the baro module's MQTT message handler
func registerMQTTHandler(subscriber MQTTSubscriber, repo repository.BaroRepository, logger *slog.Logger) {
	subscriber.SetMessageHandler(func(telemetry types.Telemetry) error {
		logger.Debug("processing telemetry message",
			"station_id", telemetry.StationID,
			"timestamp", telemetry.Timestamp,
		)

		err := repo.InsertReading(
			telemetry.StationID,
			telemetry.Timestamp,
			telemetry.Temperature,
			telemetry.Pressure,
		)

		if err != nil {
			logger.Error("failed to insert reading",
				"station_id", telemetry.StationID,
				"error", err,
			)
			return err
		}

		logger.Debug("successfully stored telemetry",
			"station_id", telemetry.StationID,
		)
		return nil
	})
}
