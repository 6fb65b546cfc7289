// Package mpl115a2 controls a Freescale MPL115A2 barometric pressure and
// temperature sensor over I²C.
//
// The device has no free-running mode: it must be told to sample before
// each reading, and the conversion takes about 3ms to settle:
//
//	dev, err := mpl115a2.New(bus, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := dev.StartConversion(); err != nil {
//		log.Fatal(err)
//	}
//	time.Sleep(3 * time.Millisecond)
//	t, err := dev.Temperature()
//	p, err := dev.Pressure()
//
// The SHDN and RST lines are not part of the I²C protocol; when wired to
// GPIOs they can be handed to Opts and driven through SetShutdown and
// SetReset. After leaving shutdown or reset the device needs about 5ms
// before it accepts commands. The driver never sleeps on the caller's
// behalf and never retries a failed transfer.
package mpl115a2

import (
	"errors"
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// Addr is the fixed 7-bit I²C address of the MPL115A2.
const Addr uint16 = 0x60

const (
	regPressureADC = 0x00 // Padc MSB, Padc LSB, Tadc MSB, Tadc LSB
	regCoeffA0     = 0x04 // a0, b1, b2, c12 as big-endian 16-bit pairs
	regConvert     = 0x12
)

// ErrNoShutdownPin and ErrNoResetPin are returned by the pin accessors when
// the corresponding line was not supplied in Opts. They are distinct from
// bus errors so callers can tell a wiring/configuration mistake from an I/O
// failure.
var (
	ErrNoShutdownPin = errors.New("mpl115a2: no shutdown pin configured")
	ErrNoResetPin    = errors.New("mpl115a2: no reset pin configured")
)

// Opts holds the construction options. The zero value (or a nil *Opts) is a
// device without power control pins reporting celsius and kilopascals.
type Opts struct {
	// Shutdown is the GPIO wired to the active-low SHDN line. Optional.
	Shutdown gpio.PinOut
	// Reset is the GPIO wired to the active-low RST line. Optional.
	Reset gpio.PinOut
	// Temperature converts readings out of celsius. Defaults to Celsius.
	Temperature TemperatureConverter
	// Pressure converts readings out of kilopascals. Defaults to
	// KiloPascals.
	Pressure PressureConverter
}

// Dev is a handle to an MPL115A2.
//
// The bus and pins are borrowed, not owned. Dev performs no locking; access
// from multiple goroutines must be serialized by the caller.
type Dev struct {
	d     i2c.Dev
	shdn  gpio.PinOut
	rst   gpio.PinOut
	tconv TemperatureConverter
	pconv PressureConverter

	// Factory coefficients, read once on first use.
	cal *calibration

	// Last commanded pin states. The device offers no way to query them
	// back over the bus.
	inShutdown bool
	inReset    bool
}

// New returns a handle to an MPL115A2 on the given bus.
//
// If shutdown or reset pins are supplied they are deasserted (driven high)
// so the device is powered and addressable when New returns.
func New(b i2c.Bus, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	d := &Dev{
		d:     i2c.Dev{Bus: b, Addr: Addr},
		shdn:  opts.Shutdown,
		rst:   opts.Reset,
		tconv: opts.Temperature,
		pconv: opts.Pressure,
	}
	if d.tconv == nil {
		d.tconv = Celsius{}
	}
	if d.pconv == nil {
		d.pconv = KiloPascals{}
	}
	if d.shdn != nil {
		if err := d.shdn.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("mpl115a2: shutdown pin: %w", err)
		}
	}
	if d.rst != nil {
		if err := d.rst.Out(gpio.High); err != nil {
			return nil, fmt.Errorf("mpl115a2: reset pin: %w", err)
		}
	}
	return d, nil
}

func (d *Dev) String() string {
	return fmt.Sprintf("MPL115A2{%s}", d.d.String())
}

// StartConversion commands the device to sample both ADCs. The result
// registers are valid about 3ms after the call returns; the caller owns
// that delay. Issuing the command while the device is shut down or held in
// reset has an undefined device response.
func (d *Dev) StartConversion() error {
	if err := d.d.Tx([]byte{regConvert, 0x00}, nil); err != nil {
		return fmt.Errorf("mpl115a2: start conversion: %w", err)
	}
	return nil
}

// Temperature returns the compensated temperature of the last conversion,
// passed through the configured TemperatureConverter (celsius by default).
func (d *Dev) Temperature() (float64, error) {
	t, _, err := d.read()
	if err != nil {
		return 0, err
	}
	return d.tconv.Convert(t), nil
}

// Pressure returns the compensated pressure of the last conversion, passed
// through the configured PressureConverter (kilopascals by default).
func (d *Dev) Pressure() (float64, error) {
	_, p, err := d.read()
	if err != nil {
		return 0, err
	}
	return d.pconv.Convert(p), nil
}

// Sense reads the device into e in canonical units, bypassing the
// configured converters.
func (d *Dev) Sense(e *physic.Env) error {
	t, p, err := d.read()
	if err != nil {
		return err
	}
	e.Temperature = physic.ZeroCelsius + physic.Temperature(t*float64(physic.Celsius))
	e.Pressure = physic.Pressure(p * float64(physic.KiloPascal))
	return nil
}

// Calibrate reads the factory coefficients from the device. Readings load
// the coefficients automatically on first use and cache them for the life
// of the Dev; call Calibrate only to force a re-read.
func (d *Dev) Calibrate() error {
	var buf [8]byte
	if err := d.d.Tx([]byte{regCoeffA0}, buf[:]); err != nil {
		return fmt.Errorf("mpl115a2: read coefficients: %w", err)
	}
	cal := newCalibration(buf[:])
	d.cal = &cal
	return nil
}

// SetShutdown drives the SHDN line. The device needs about 5ms after
// leaving shutdown before it accepts commands.
func (d *Dev) SetShutdown(enable bool) error {
	if d.shdn == nil {
		return ErrNoShutdownPin
	}
	if err := d.shdn.Out(activeLow(enable)); err != nil {
		return fmt.Errorf("mpl115a2: shutdown pin: %w", err)
	}
	d.inShutdown = enable
	return nil
}

// IsShutdown reports the last state commanded through SetShutdown. Shutdown
// is not readable over the bus, so this reflects intent, not a device
// query.
func (d *Dev) IsShutdown() (bool, error) {
	if d.shdn == nil {
		return false, ErrNoShutdownPin
	}
	return d.inShutdown, nil
}

// SetReset drives the RST line, which disables the device's I²C interface
// while asserted. The device needs about 5ms after leaving reset before it
// accepts commands.
func (d *Dev) SetReset(enable bool) error {
	if d.rst == nil {
		return ErrNoResetPin
	}
	if err := d.rst.Out(activeLow(enable)); err != nil {
		return fmt.Errorf("mpl115a2: reset pin: %w", err)
	}
	d.inReset = enable
	return nil
}

// IsReset reports the last state commanded through SetReset.
func (d *Dev) IsReset() (bool, error) {
	if d.rst == nil {
		return false, ErrNoResetPin
	}
	return d.inReset, nil
}

// Halt powers the device down through the shutdown pin when one is
// configured, and is a no-op otherwise.
func (d *Dev) Halt() error {
	if d.shdn == nil {
		return nil
	}
	return d.SetShutdown(true)
}

// read performs one full compensated reading: lazy coefficient load, a
// single 4-byte ADC block read, then the compensation polynomial.
func (d *Dev) read() (tempC, pressureKPa float64, err error) {
	if d.cal == nil {
		if err := d.Calibrate(); err != nil {
			return 0, 0, err
		}
	}
	var buf [4]byte
	if err := d.d.Tx([]byte{regPressureADC}, buf[:]); err != nil {
		return 0, 0, fmt.Errorf("mpl115a2: read adc: %w", err)
	}
	padc := parseADC(buf[0], buf[1])
	tadc := parseADC(buf[2], buf[3])
	tempC, pressureKPa = d.cal.compensate(padc, tadc)
	return tempC, pressureKPa, nil
}

// parseSigned decodes a big-endian two's complement register pair.
func parseSigned(msb, lsb byte) int16 {
	return int16(uint16(msb)<<8 | uint16(lsb))
}

// parseADC decodes a 10-bit ADC output, right-justified. The low 6 bits of
// the LSB are padding.
func parseADC(msb, lsb byte) uint16 {
	return (uint16(msb)<<8 | uint16(lsb)) >> 6
}

type calibration struct {
	a0, b1, b2, c12 float64
}

// newCalibration decodes the 8-byte coefficient block at regCoeffA0.
// Fractional bits per the datasheet: a0 has 3, b1 has 13, b2 has 14, c12
// has 22 after discarding its 2 pad bits.
func newCalibration(buf []byte) calibration {
	return calibration{
		a0:  float64(parseSigned(buf[0], buf[1])) / 8,
		b1:  float64(parseSigned(buf[2], buf[3])) / 8192,
		b2:  float64(parseSigned(buf[4], buf[5])) / 16384,
		c12: float64(parseSigned(buf[6], buf[7])>>2) / 4194304,
	}
}

// compensate applies the datasheet polynomial to one raw sample pair.
// Pcomp spans the 10-bit ADC range; the fixed slope and offset rescale it
// into the sensor's 50–115 kPa output range. The temperature formula is the
// datasheet's linear approximation around 25°C.
func (c *calibration) compensate(padc, tadc uint16) (tempC, pressureKPa float64) {
	t := float64(tadc)
	pcomp := (c.b1+c.c12*t)*float64(padc) + c.a0 + c.b2*t
	pressureKPa = pcomp*(65.0/1023.0) + 50.0
	tempC = (t-498.0)/-5.35 + 25.0
	return tempC, pressureKPa
}

func activeLow(enable bool) gpio.Level {
	if enable {
		return gpio.Low
	}
	return gpio.High
}

var _ conn.Resource = &Dev{}
