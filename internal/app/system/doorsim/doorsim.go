// Package doorsim simulates coop door telemetry: random open/close flips and
// battery drain, with a low battery alert.
package doorsim

import "github.com/dalemusser/coophub/internal/domain/models"

// Rand is the source of randomness for Step. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Config controls one simulation step.
type Config struct {
	FlipChance float64 // probability in [0,1] that the door flips
	MaxDrain   float64 // maximum battery percentage lost per step
}

// DefaultConfig flips the door on 5% of steps and drains up to half a percent.
var DefaultConfig = Config{FlipChance: 0.05, MaxDrain: 0.5}

// Step returns the next door state. It draws once to decide a flip and once
// for the drain amount. The battery never goes below zero. The low battery
// alert is present exactly when the battery is below models.LowBatteryThreshold.
func Step(d models.DoorState, rng Rand, cfg Config) models.DoorState {
	if rng.Float64() < cfg.FlipChance {
		if d.Status == models.DoorOpen {
			d.Status = models.DoorClosed
		} else {
			d.Status = models.DoorOpen
		}
	}

	d.Battery -= rng.Float64() * cfg.MaxDrain
	if d.Battery < 0 {
		d.Battery = 0
	}

	d.Alerts = syncLowBattery(d.Alerts, d.BatteryLow())
	return d
}

// syncLowBattery returns a new alert list with the low battery alert added or
// removed. Other alerts keep their order.
func syncLowBattery(alerts []string, low bool) []string {
	out := make([]string, 0, len(alerts)+1)
	for _, a := range alerts {
		if a != models.LowBatteryAlert {
			out = append(out, a)
		}
	}
	if low {
		out = append(out, models.LowBatteryAlert)
	}
	return out
}
