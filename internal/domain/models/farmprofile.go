// internal/domain/models/farmprofile.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductionUpdate is a daily egg count a farmer posts to the farm profile.
type ProductionUpdate struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" yaml:"-" json:"id"`
	Farm      string             `bson:"farm" yaml:"farm" json:"farm"`
	Date      string             `bson:"date" yaml:"date" json:"date"`
	Count     int                `bson:"count" yaml:"count" json:"count"`
	Notes     string             `bson:"notes" yaml:"notes" json:"notes"`
	CreatedAt time.Time          `bson:"created_at" yaml:"-" json:"created_at"`
}

// FarmStory is a short post shared on the farm profile.
type FarmStory struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" yaml:"-" json:"id"`
	Farm      string             `bson:"farm" yaml:"farm" json:"farm"`
	Date      string             `bson:"date" yaml:"date" json:"date"`
	Content   string             `bson:"content" yaml:"content" json:"content"`
	CreatedAt time.Time          `bson:"created_at" yaml:"-" json:"created_at"`
}
