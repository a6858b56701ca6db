// internal/app/features/farmers/types.go
package farmers

import (
	"html/template"

	"github.com/dalemusser/coophub/internal/app/system/viewdata"
	"github.com/dalemusser/coophub/internal/domain/models"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const basePath = "/admin/farmer-management"

const (
	tabRegistration = "registration"
	tabManagement   = "management"
	tabEquipment    = "equipment"
	tabMonitoring   = "monitoring"
)

var tabKeys = []string{tabRegistration, tabManagement, tabEquipment, tabMonitoring}

func tabStrip(active string) []viewdata.Tab {
	return viewdata.Tabs(active,
		tabRegistration, "Registration",
		tabManagement, "Management",
		tabEquipment, "Equipment",
		tabMonitoring, "Monitoring",
	)
}

// farmerInput is the register/edit form.
type farmerInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Farm     string `json:"farm"`
	Location string `json:"location"`
	Phone    string `json:"phone"`
	Status   string `json:"status"`
}

func (in farmerInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required.Error("name is required"), validation.Length(1, 200)),
		validation.Field(&in.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("email is not valid")),
		validation.Field(&in.Farm, validation.Required.Error("farm name is required"), validation.Length(1, 200)),
		validation.Field(&in.Status, validation.When(in.Status != "",
			validation.In(models.FarmerActive, models.FarmerInactive, models.FarmerPending).Error("status is not valid"))),
	)
}

var fieldOrder = []string{"name", "email", "farm", "status"}

func (in farmerInput) toModel() models.Farmer {
	return models.Farmer{
		Name:     in.Name,
		Email:    in.Email,
		Farm:     in.Farm,
		Location: in.Location,
		Phone:    in.Phone,
		Status:   in.Status,
	}
}

type listData struct {
	viewdata.BaseVM

	Tabs []viewdata.Tab
	Tab  string

	Farmers         []models.Farmer
	Form            farmerInput
	EquipmentModels []string

	StatusCounts    map[string]int64
	ProductionChart template.HTML
	StatusChart     template.HTML
}

type editData struct {
	viewdata.BaseVM

	ID       string
	Form     farmerInput
	Statuses []string
}
