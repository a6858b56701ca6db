// internal/domain/models/order.go
package models

import (
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order status values.
const (
	OrderPending   = "pending"
	OrderAccepted  = "accepted"
	OrderDelivered = "delivered"
	OrderDeclined  = "declined"
)

// Order transition errors.
var (
	ErrOrderTransition     = errors.New("order status does not allow this action")
	ErrDeliveryUnscheduled = errors.New("delivery date and time are required")
)

// Order is a customer order placed with a farm.
type Order struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" yaml:"-" json:"id"`
	Farm         string             `bson:"farm" yaml:"farm" json:"farm"`
	CustomerName string             `bson:"customer_name" yaml:"customer_name" json:"customer_name"`
	Items        []string           `bson:"items" yaml:"items" json:"items"`
	Total        float64            `bson:"total" yaml:"total" json:"total"`
	Status       string             `bson:"status" yaml:"status" json:"status"`
	Date         string             `bson:"date" yaml:"date" json:"date"`
	DeliveryDate string             `bson:"delivery_date,omitempty" yaml:"delivery_date" json:"delivery_date,omitempty"`
	DeliveryTime string             `bson:"delivery_time,omitempty" yaml:"delivery_time" json:"delivery_time,omitempty"`
}

// IsValidOrderStatus reports whether s is one of the order status values.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderPending, OrderAccepted, OrderDelivered, OrderDeclined:
		return true
	}
	return false
}

// IsIncoming reports whether the order still waits for the farmer's decision.
func (o Order) IsIncoming() bool {
	return o.Status == OrderPending
}

// ItemsLabel joins the order items for display.
func (o Order) ItemsLabel() string {
	return strings.Join(o.Items, ", ")
}

// Accept schedules delivery and moves a pending order to accepted.
func (o Order) Accept(date, tm string) (Order, error) {
	if o.Status != OrderPending {
		return o, ErrOrderTransition
	}
	date, tm = strings.TrimSpace(date), strings.TrimSpace(tm)
	if date == "" || tm == "" {
		return o, ErrDeliveryUnscheduled
	}
	o.Status = OrderAccepted
	o.DeliveryDate = date
	o.DeliveryTime = tm
	return o, nil
}

// Decline moves a pending order to declined.
func (o Order) Decline() (Order, error) {
	if o.Status != OrderPending {
		return o, ErrOrderTransition
	}
	o.Status = OrderDeclined
	return o, nil
}

// MarkDelivered moves an accepted order to delivered.
func (o Order) MarkDelivered() (Order, error) {
	if o.Status != OrderAccepted {
		return o, ErrOrderTransition
	}
	o.Status = OrderDelivered
	return o, nil
}
