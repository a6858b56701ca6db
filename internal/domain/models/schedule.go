// internal/domain/models/schedule.go
package models

import (
	"regexp"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Schedule kinds.
const (
	ScheduleFeed  = "feed"
	ScheduleWater = "water"
)

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsClockTime reports whether s is a 24-hour HH:MM time.
func IsClockTime(s string) bool {
	return clockRe.MatchString(s)
}

// FeedSchedule is a timed feed or water dispense for a farm.
type FeedSchedule struct {
	ID      primitive.ObjectID `bson:"_id,omitempty" yaml:"-" json:"id"`
	Farm    string             `bson:"farm" yaml:"farm" json:"farm"`
	Kind    string             `bson:"kind" yaml:"kind" json:"kind"` // feed | water
	Time    string             `bson:"time" yaml:"time" json:"time"` // HH:MM
	Amount  string             `bson:"amount" yaml:"amount" json:"amount"`
	Enabled bool               `bson:"enabled" yaml:"enabled" json:"enabled"`
}

// IsValidScheduleKind reports whether k is feed or water.
func IsValidScheduleKind(k string) bool {
	return k == ScheduleFeed || k == ScheduleWater
}
