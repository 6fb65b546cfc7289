package app

import (
	"context"
	"log/slog"

	"cloudbaro/internal/gateway/config"
	"cloudbaro/internal/gateway/mqtt"
	"cloudbaro/internal/gateway/sensor"
)

func Run(ctx context.Context, cfg config.Config) error {
	slog.Info("initializing gateway",
		"mqtt_broker", cfg.MQTTBroker,
		"mqtt_port", cfg.MQTTPort,
		"mqtt_client_id", cfg.MQTTClientID,
		"station_id", cfg.StationID,
		"i2c_bus", cfg.I2CBus,
		"shutdown_pin", cfg.ShutdownPin,
		"reset_pin", cfg.ResetPin,
	)

	mqttClient, err := mqtt.NewClient(cfg, slog.Default())
	if err != nil {
		return err
	}
	defer mqttClient.Disconnect()

	// Connect to MQTT broker with retry and backoff.
	if err := mqttClient.Connect(ctx); err != nil {
		return err
	}

	return sensor.Run(ctx, cfg, mqttClient)
}
