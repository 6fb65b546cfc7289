package mpl115a2

// A TemperatureConverter maps a temperature in celsius to a target unit.
// Any type with the single Convert method is usable, so callers can supply
// units the package does not know about.
type TemperatureConverter interface {
	Convert(celsius float64) float64
}

// TemperatureConverterFunc adapts a plain function into a
// TemperatureConverter.
type TemperatureConverterFunc func(celsius float64) float64

func (f TemperatureConverterFunc) Convert(celsius float64) float64 { return f(celsius) }

// A PressureConverter maps a pressure in kilopascals to a target unit. The
// built-in converters carry an Adjustment in kPa, added before scaling, for
// corrections such as reducing station pressure to sea level. The zero
// adjustment leaves the value untouched.
type PressureConverter interface {
	Convert(kpa float64) float64
}

// PressureConverterFunc adapts a plain function into a PressureConverter.
type PressureConverterFunc func(kpa float64) float64

func (f PressureConverterFunc) Convert(kpa float64) float64 { return f(kpa) }

// Celsius is the identity temperature converter and the default.
type Celsius struct{}

func (Celsius) Convert(celsius float64) float64 { return celsius }

// Fahrenheit converts celsius to fahrenheit.
type Fahrenheit struct{}

func (Fahrenheit) Convert(celsius float64) float64 { return celsius*9/5 + 32 }

// Kelvin converts celsius to kelvin.
type Kelvin struct{}

func (Kelvin) Convert(celsius float64) float64 { return celsius + 273.15 }

// KiloPascals is the identity pressure converter and the default.
type KiloPascals struct{}

func (KiloPascals) Convert(kpa float64) float64 { return kpa }

// AdjustedKiloPascals reports kilopascals offset by Adjustment.
type AdjustedKiloPascals struct {
	Adjustment float64
}

func (c AdjustedKiloPascals) Convert(kpa float64) float64 { return kpa + c.Adjustment }

// HectoPascals reports hectopascals (millibars).
type HectoPascals struct {
	Adjustment float64
}

func (c HectoPascals) Convert(kpa float64) float64 { return (kpa + c.Adjustment) * 10 }

// Atmospheres reports standard atmospheres.
type Atmospheres struct {
	Adjustment float64
}

func (c Atmospheres) Convert(kpa float64) float64 { return (kpa + c.Adjustment) / 101.325 }

// PSI reports pounds per square inch.
type PSI struct {
	Adjustment float64
}

func (c PSI) Convert(kpa float64) float64 { return (kpa + c.Adjustment) * 0.1450377 }

// Bars reports bars.
type Bars struct {
	Adjustment float64
}

func (c Bars) Convert(kpa float64) float64 { return (kpa + c.Adjustment) / 100 }
