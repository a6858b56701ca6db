// internal/app/features/users/types.go
package users

import (
	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	tabUsers    = "users"
	tabActive   = "active"
	tabInactive = "inactive"
)

var tabKeys = []string{tabUsers, tabActive, tabInactive}

// accountInput is the add/edit form.
type accountInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

func (in accountInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required"), validation.Length(1, 200)),
		validation.Field(&in.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("email is not valid")),
		validation.Field(&in.Role, validation.Required.Error("role is required"),
			validation.In(models.RoleAdmin, models.RoleFarmer, models.RoleViewer).Error("role is not valid")),
		validation.Field(&in.Status, validation.In(models.AccountActive, models.AccountInactive).Error("status is not valid")),
	)
}

var fieldOrder = []string{"name", "email", "role", "status"}

// Stats are the summary cards above the table.
type Stats struct {
	Total    int
	Active   int
	Admins   int64
	Farmers  int64
	Inactive int
}

type listData struct {
	viewdata.BaseVM

	Tabs        []viewdata.Tab
	Tab         string
	Accounts    []models.Account
	Stats       Stats
	Roles       []models.RoleOption
	Permissions []models.Permission
	Form        accountInput
	ShowForm    bool
}

type editData struct {
	viewdata.BaseVM

	ID          string
	Form        accountInput
	Roles       []models.RoleOption
	Permissions []string
}
