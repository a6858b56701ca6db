// internal/domain/models/farmer.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Farmer status values.
const (
	FarmerActive   = "Active"
	FarmerInactive = "Inactive"
	FarmerPending  = "Pending"
)

// UnassignedEquipment is the equipment model shown for farmers with no device.
const UnassignedEquipment = "Unassigned"

// EquipmentModels lists the device models an admin can assign to a farmer.
var EquipmentModels = []string{
	UnassignedEquipment,
	"Door Controller v1.0",
	"Door Controller v2.0",
	"Auto Feeder Pro",
	"Aqua Monitor",
}

// Farmer is a registered farm account managed by admins.
type Farmer struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" yaml:"-" json:"id"`
	Name      string             `bson:"name" yaml:"name" json:"name"`
	Email     string             `bson:"email" yaml:"email" json:"email"`
	Farm      string             `bson:"farm" yaml:"farm" json:"farm"`
	Location  string             `bson:"location,omitempty" yaml:"location" json:"location,omitempty"`
	Phone     string             `bson:"phone,omitempty" yaml:"phone" json:"phone,omitempty"`
	Status    string             `bson:"status" yaml:"status" json:"status"` // Active | Inactive | Pending
	Equipment string             `bson:"equipment,omitempty" yaml:"equipment" json:"equipment,omitempty"`

	CreatedAt time.Time `bson:"created_at" yaml:"-" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" yaml:"-" json:"updated_at"`
}

// IsValidFarmerStatus reports whether s is one of the farmer status values.
func IsValidFarmerStatus(s string) bool {
	switch s {
	case FarmerActive, FarmerInactive, FarmerPending:
		return true
	}
	return false
}

// IsValidEquipmentModel reports whether m can be assigned to a farmer.
func IsValidEquipmentModel(m string) bool {
	for _, v := range EquipmentModels {
		if v == m {
			return true
		}
	}
	return false
}
