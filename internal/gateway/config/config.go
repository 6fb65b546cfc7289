package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"cloudbaro/internal/logging"
)

type Config struct {
	AppEnv       string
	LogLevel     slog.Level
	MQTTBroker   string
	MQTTPort     int
	MQTTClientID string

	// I2CBus names the bus for i2creg.Open; empty selects the host
	// default (usually /dev/i2c-1).
	I2CBus string
	// ShutdownPin and ResetPin name the GPIOs wired to the sensor's SHDN
	// and RST lines. Both are optional; unset means the line is not wired
	// and power control is unavailable.
	ShutdownPin string
	ResetPin    string

	SensorPollInterval time.Duration
	StationID          string
	// SeaLevelAdjustmentKPa is added to station pressure before reporting,
	// in kilopascals.
	SeaLevelAdjustmentKPa float64
}

func LoadFromEnv() (Config, error) {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = "dev"
	}
	switch appEnv {
	case "dev", "prod":
	default:
		return Config{}, fmt.Errorf("invalid APP_ENV %q (allowed: dev, prod)", appEnv)
	}

	logLevelStr := strings.ToLower(strings.TrimSpace(os.Getenv("LOG_LEVEL")))
	level, ok := logging.ParseLevel(logLevelStr)
	if !ok {
		return Config{}, fmt.Errorf("invalid LOG_LEVEL %q (allowed: debug, info, warn, error)", logLevelStr)
	}

	mqttBroker := strings.TrimSpace(os.Getenv("MQTT_BROKER"))
	if mqttBroker == "" {
		mqttBroker = "localhost"
	}

	mqttPortStr := strings.TrimSpace(os.Getenv("MQTT_PORT"))
	if mqttPortStr == "" {
		mqttPortStr = "1883"
	}
	mqttPort, err := strconv.Atoi(mqttPortStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid MQTT_PORT %q: %w", mqttPortStr, err)
	}

	mqttClientID := strings.TrimSpace(os.Getenv("MQTT_CLIENT_ID"))
	if mqttClientID == "" {
		mqttClientID = "cloudbaro-gateway"
	}

	i2cBus := strings.TrimSpace(os.Getenv("I2C_BUS"))
	shutdownPin := strings.TrimSpace(os.Getenv("SHUTDOWN_PIN"))
	resetPin := strings.TrimSpace(os.Getenv("RESET_PIN"))

	sensorPollIntervalStr := strings.TrimSpace(os.Getenv("SENSOR_POLL_INTERVAL"))
	if sensorPollIntervalStr == "" {
		sensorPollIntervalStr = "1s"
	}
	sensorPollInterval, err := time.ParseDuration(sensorPollIntervalStr)
	if err != nil {
		return Config{}, fmt.Errorf("invalid SENSOR_POLL_INTERVAL %q: %w", sensorPollIntervalStr, err)
	}
	if sensorPollInterval <= 0 {
		return Config{}, fmt.Errorf("SENSOR_POLL_INTERVAL must be positive, got %v", sensorPollInterval)
	}

	stationID := strings.TrimSpace(os.Getenv("STATION_ID"))
	if stationID == "" {
		stationID = "home"
	}

	adjStr := strings.TrimSpace(os.Getenv("SEA_LEVEL_ADJUSTMENT_KPA"))
	if adjStr == "" {
		adjStr = "0"
	}
	adj, err := strconv.ParseFloat(adjStr, 64)
	if err != nil {
		return Config{}, fmt.Errorf("invalid SEA_LEVEL_ADJUSTMENT_KPA %q: %w", adjStr, err)
	}

	return Config{
		AppEnv:                appEnv,
		LogLevel:              level,
		MQTTBroker:            mqttBroker,
		MQTTPort:              mqttPort,
		MQTTClientID:          mqttClientID,
		I2CBus:                i2cBus,
		ShutdownPin:           shutdownPin,
		ResetPin:              resetPin,
		SensorPollInterval:    sensorPollInterval,
		StationID:             stationID,
		SeaLevelAdjustmentKPa: adj,
	}, nil
}
