package sensor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"cloudbaro/internal/gateway/config"
	"cloudbaro/internal/gateway/mqtt"
	"cloudbaro/internal/types"
	"cloudbaro/mpl115a2"
)

const (
	// The MPL115A2 needs about 3ms from the conversion command until the
	// ADC registers hold the new sample, and about 5ms to wake from
	// shutdown. The driver leaves both delays to us.
	conversionSettle = 3 * time.Millisecond
	wakeSettle       = 5 * time.Millisecond
)

// Run polls the barometer until ctx is done, publishing one telemetry
// message per interval. When a shutdown pin is wired the device is powered
// down between polls.
func Run(ctx context.Context, cfg config.Config, mqttClient *mqtt.Client) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("host init: %w", err)
	}

	bus, err := i2creg.Open(cfg.I2CBus)
	if err != nil {
		return fmt.Errorf("i2c open %q: %w", cfg.I2CBus, err)
	}
	defer bus.Close()

	opts := &mpl115a2.Opts{
		Pressure: mpl115a2.HectoPascals{Adjustment: cfg.SeaLevelAdjustmentKPa},
	}
	if cfg.ShutdownPin != "" {
		if opts.Shutdown = gpioreg.ByName(cfg.ShutdownPin); opts.Shutdown == nil {
			return fmt.Errorf("shutdown pin %q not found", cfg.ShutdownPin)
		}
	}
	if cfg.ResetPin != "" {
		if opts.Reset = gpioreg.ByName(cfg.ResetPin); opts.Reset == nil {
			return fmt.Errorf("reset pin %q not found", cfg.ResetPin)
		}
	}

	dev, err := mpl115a2.New(bus, opts)
	if err != nil {
		return fmt.Errorf("mpl115a2: %w", err)
	}
	defer func() {
		if err := dev.Halt(); err != nil {
			slog.Error("sensor halt", "error", err)
		}
	}()
	// New deasserts the control lines; give the device its wake time
	// before the first command.
	time.Sleep(wakeSettle)

	slog.Info("sensor ready",
		"dev", dev.String(),
		"bus", bus.String(),
		"poll_interval", cfg.SensorPollInterval,
		"power_managed", cfg.ShutdownPin != "",
	)

	sequence := 0
	ticker := time.NewTicker(cfg.SensorPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			temperature, pressure, err := sample(dev, cfg.ShutdownPin != "")
			if err != nil {
				slog.Error("sensor read failed", "error", err)
				continue
			}

			sequence++
			telemetry := types.Telemetry{
				StationID:   cfg.StationID,
				Timestamp:   time.Now(),
				Temperature: &temperature,
				Pressure:    &pressure,
				Sequence:    &sequence,
			}
			if err := mqttClient.PublishTelemetry(telemetry); err != nil {
				slog.Error("publish failed", "station_id", cfg.StationID, "error", err)
			}
		}
	}
}

// sample runs one conversion cycle. With power management the device is
// woken first and shut back down afterwards.
func sample(dev *mpl115a2.Dev, powerManaged bool) (temperature, pressure float64, err error) {
	if powerManaged {
		if err := dev.SetShutdown(false); err != nil {
			return 0, 0, fmt.Errorf("wake: %w", err)
		}
		time.Sleep(wakeSettle)
		defer func() {
			if shutdownErr := dev.SetShutdown(true); shutdownErr != nil && err == nil {
				err = fmt.Errorf("shutdown: %w", shutdownErr)
			}
		}()
	}

	if err := dev.StartConversion(); err != nil {
		return 0, 0, err
	}
	time.Sleep(conversionSettle)

	temperature, err = dev.Temperature()
	if err != nil {
		return 0, 0, err
	}
	pressure, err = dev.Pressure()
	if err != nil {
		return 0, 0, err
	}
	return temperature, pressure, nil
}
