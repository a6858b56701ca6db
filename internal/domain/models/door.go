// internal/domain/models/door.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Door status values.
const (
	DoorOpen   = "open"
	DoorClosed = "closed"
)

// LowBatteryThreshold is the battery percentage below which a door raises an alert.
const LowBatteryThreshold = 20

// LowBatteryAlert is the alert text raised for a low door battery.
const LowBatteryAlert = "Low Battery"

// DoorState is the simulated state of a farm's automated coop door.
type DoorState struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" yaml:"-" json:"id"`
	Farm      string             `bson:"farm" yaml:"farm" json:"farm"`
	Status    string             `bson:"status" yaml:"status" json:"status"`
	AutoMode  bool               `bson:"auto_mode" yaml:"auto_mode" json:"auto_mode"`
	Sunrise   string             `bson:"sunrise" yaml:"sunrise" json:"sunrise"`
	Sunset    string             `bson:"sunset" yaml:"sunset" json:"sunset"`
	Battery   float64            `bson:"battery" yaml:"battery" json:"battery"`
	Alerts    []string           `bson:"alerts" yaml:"alerts" json:"alerts"`
	UpdatedAt time.Time          `bson:"updated_at" yaml:"-" json:"updated_at"`
}

// IsValidDoorStatus reports whether s is open or closed.
func IsValidDoorStatus(s string) bool {
	return s == DoorOpen || s == DoorClosed
}

// HasAlert reports whether the door currently carries alert a.
func (d DoorState) HasAlert(a string) bool {
	for _, v := range d.Alerts {
		if v == a {
			return true
		}
	}
	return false
}

// BatteryLow reports whether the battery is below LowBatteryThreshold.
func (d DoorState) BatteryLow() bool {
	return d.Battery < LowBatteryThreshold
}
