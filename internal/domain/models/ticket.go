// internal/domain/models/ticket.go
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Ticket status values.
const (
	TicketOpen       = "open"
	TicketInProgress = "in-progress"
	TicketResolved   = "resolved"
)

// Ticket priority values.
const (
	PriorityHigh   = "high"
	PriorityMedium = "medium"
	PriorityLow    = "low"
)

// TicketMessage is one entry in a support conversation.
type TicketMessage struct {
	Sender    string `bson:"sender" yaml:"sender" json:"sender"`
	Message   string `bson:"message" yaml:"message" json:"message"`
	Timestamp string `bson:"timestamp" yaml:"timestamp" json:"timestamp"`
}

// Ticket is a customer support request.
type Ticket struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" yaml:"-" json:"id"`
	Customer   string             `bson:"customer" yaml:"customer" json:"customer"`
	Farm       string             `bson:"farm" yaml:"farm" json:"farm"`
	Subject    string             `bson:"subject" yaml:"subject" json:"subject"`
	Status     string             `bson:"status" yaml:"status" json:"status"`
	Priority   string             `bson:"priority" yaml:"priority" json:"priority"`
	Category   string             `bson:"category" yaml:"category" json:"category"`
	Created    string             `bson:"created" yaml:"created" json:"created"`
	LastUpdate string             `bson:"last_update" yaml:"last_update" json:"last_update"`
	Messages   []TicketMessage    `bson:"messages" yaml:"messages" json:"messages"`
}

// IsValidTicketStatus reports whether s is one of the ticket status values.
func IsValidTicketStatus(s string) bool {
	switch s {
	case TicketOpen, TicketInProgress, TicketResolved:
		return true
	}
	return false
}

// StatusAfterReply returns the status a ticket moves to when support replies.
// Open tickets move to in-progress; others keep their status.
func StatusAfterReply(status string) string {
	if status == TicketOpen {
		return TicketInProgress
	}
	return status
}

// FAQ is a frequently asked question shown on the support screen.
type FAQ struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}
