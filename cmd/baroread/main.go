// baroread takes a single pressure and temperature reading over I²C and
// prints it in the requested units.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"cloudbaro/mpl115a2"
)

func mainImpl() error {
	bus := flag.String("bus", "", "I²C bus to use (default: first available)")
	shdnPin := flag.String("shdn", "", "GPIO name of the shutdown pin, if wired")
	rstPin := flag.String("rst", "", "GPIO name of the reset pin, if wired")
	tempUnit := flag.String("temp", "c", "temperature unit: c, f or k")
	pressUnit := flag.String("press", "kpa", "pressure unit: kpa, hpa, atm, psi or bar")
	adjust := flag.Float64("adjust", 0, "sea level adjustment in kPa added before conversion")
	flag.Parse()
	if flag.NArg() != 0 {
		return fmt.Errorf("unexpected argument: %s", flag.Arg(0))
	}

	var tconv mpl115a2.TemperatureConverter
	switch *tempUnit {
	case "c":
		tconv = mpl115a2.Celsius{}
	case "f":
		tconv = mpl115a2.Fahrenheit{}
	case "k":
		tconv = mpl115a2.Kelvin{}
	default:
		return fmt.Errorf("invalid -temp %q (allowed: c, f, k)", *tempUnit)
	}

	var pconv mpl115a2.PressureConverter
	switch *pressUnit {
	case "kpa":
		pconv = mpl115a2.AdjustedKiloPascals{Adjustment: *adjust}
	case "hpa":
		pconv = mpl115a2.HectoPascals{Adjustment: *adjust}
	case "atm":
		pconv = mpl115a2.Atmospheres{Adjustment: *adjust}
	case "psi":
		pconv = mpl115a2.PSI{Adjustment: *adjust}
	case "bar":
		pconv = mpl115a2.Bars{Adjustment: *adjust}
	default:
		return fmt.Errorf("invalid -press %q (allowed: kpa, hpa, atm, psi, bar)", *pressUnit)
	}

	if _, err := host.Init(); err != nil {
		return err
	}

	b, err := i2creg.Open(*bus)
	if err != nil {
		return err
	}
	defer func() {
		_ = b.Close()
	}()

	opts := mpl115a2.Opts{Temperature: tconv, Pressure: pconv}
	if *shdnPin != "" {
		p := gpioreg.ByName(*shdnPin)
		if p == nil {
			return fmt.Errorf("shutdown pin %q not found", *shdnPin)
		}
		opts.Shutdown = p
	}
	if *rstPin != "" {
		p := gpioreg.ByName(*rstPin)
		if p == nil {
			return fmt.Errorf("reset pin %q not found", *rstPin)
		}
		opts.Reset = p
	}
	dev, err := mpl115a2.New(b, &opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = dev.Halt()
	}()

	if err := dev.StartConversion(); err != nil {
		return err
	}
	time.Sleep(5 * time.Millisecond)

	temp, err := dev.Temperature()
	if err != nil {
		return err
	}
	press, err := dev.Pressure()
	if err != nil {
		return err
	}

	fmt.Printf("temperature: %.2f %s\n", temp, *tempUnit)
	fmt.Printf("pressure: %.3f %s\n", press, *pressUnit)
	return nil
}

func main() {
	if err := mainImpl(); err != nil {
		fmt.Fprintf(os.Stderr, "baroread: %v\n", err)
		os.Exit(1)
	}
}
