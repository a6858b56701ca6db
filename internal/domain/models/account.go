// internal/domain/models/account.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Account roles shown in user management. Only admin and farmer can sign in.
const (
	RoleAdmin  = "admin"
	RoleFarmer = "farmer"
	RoleViewer = "viewer"
)

// Account status values.
const (
	AccountActive   = "active"
	AccountInactive = "inactive"
)

// NeverLoggedIn is the LastLogin value for accounts created from the admin screen.
const NeverLoggedIn = "Never"

// Permission is a named capability with a display label.
type Permission struct {
	Value string
	Label string
}

// AvailablePermissions lists every permission in display order.
var AvailablePermissions = []Permission{
	{Value: "read", Label: "Read Access"},
	{Value: "write", Label: "Write Access"},
	{Value: "manage_own_farm", Label: "Manage Own Farm"},
	{Value: "manage_users", Label: "Manage Users"},
	{Value: "manage_system", Label: "Manage System"},
	{Value: "view_reports", Label: "View Reports"},
}

// RoleOption describes an assignable role.
type RoleOption struct {
	Value string
	Label string
}

// AccountRoles lists the roles an admin can assign.
var AccountRoles = []RoleOption{
	{Value: RoleAdmin, Label: "Administrator"},
	{Value: RoleFarmer, Label: "Farmer"},
	{Value: RoleViewer, Label: "Viewer"},
}

var rolePermissions = map[string][]string{
	RoleAdmin:  {"read", "write", "manage_users", "manage_system", "view_reports"},
	RoleFarmer: {"read", "write", "manage_own_farm"},
	RoleViewer: {"read"},
}

// RolePermissions returns a fresh copy of the default permissions for role.
// Unknown roles get no permissions.
func RolePermissions(role string) []string {
	p := rolePermissions[role]
	out := make([]string, len(p))
	copy(out, p)
	return out
}

// IsValidAccountRole reports whether role can be assigned in user management.
func IsValidAccountRole(role string) bool {
	_, ok := rolePermissions[role]
	return ok
}

// Account is a user record listed on the user management screen.
type Account struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" yaml:"-" json:"id"`
	Name        string             `bson:"name" yaml:"name" json:"name"`
	Email       string             `bson:"email" yaml:"email" json:"email"`
	Role        string             `bson:"role" yaml:"role" json:"role"`
	Status      string             `bson:"status" yaml:"status" json:"status"`
	LastLogin   string             `bson:"last_login" yaml:"last_login" json:"last_login"`
	Permissions []string           `bson:"permissions" yaml:"permissions" json:"permissions"`

	CreatedAt time.Time `bson:"created_at" yaml:"-" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" yaml:"-" json:"updated_at"`
}

// HasPermission reports whether the account carries permission p.
func (a Account) HasPermission(p string) bool {
	for _, v := range a.Permissions {
		if v == p {
			return true
		}
	}
	return false
}

// ToggledAccountStatus returns the status an account moves to when toggled.
func ToggledAccountStatus(status string) string {
	if status == AccountActive {
		return AccountInactive
	}
	return AccountActive
}
