// internal/domain/models/equipment.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Equipment status values.
const (
	EquipmentOnline      = "online"
	EquipmentMaintenance = "maintenance"
	EquipmentOffline     = "offline"
)

// Equipment is a coop device deployed on a farm.
type Equipment struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" yaml:"-" json:"id"`
	Name            string             `bson:"name" yaml:"name" json:"name"`
	Type            string             `bson:"type" yaml:"type" json:"type"` // Door Automation | Feed System | Water System
	Farm            string             `bson:"farm" yaml:"farm" json:"farm"`
	Status          string             `bson:"status" yaml:"status" json:"status"`
	Uptime          float64            `bson:"uptime" yaml:"uptime" json:"uptime"`
	LastMaintenance string             `bson:"last_maintenance" yaml:"last_maintenance" json:"last_maintenance"`
	Battery         float64            `bson:"battery" yaml:"battery" json:"battery"`
	Temperature     float64            `bson:"temperature" yaml:"temperature" json:"temperature"`
}

// IsValidEquipmentStatus reports whether s is one of the equipment status values.
func IsValidEquipmentStatus(s string) bool {
	switch s {
	case EquipmentOnline, EquipmentMaintenance, EquipmentOffline:
		return true
	}
	return false
}

