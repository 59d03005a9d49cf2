package mapper

import (
	"time"

	"github.com/anseninnov/conference-registration/app/entity"
	"github.com/anseninnov/conference-registration/app/types"
)

var registrationTypeLabels = map[int32]string{
	entity.RegistrationTypePaperAuthor:  "Paper Author",
	entity.RegistrationTypePosterAuthor: "Poster Author",
	entity.RegistrationTypeStudent:      "Student",
	entity.RegistrationTypeRegular:      "Regular",
}

var paymentStatusLabels = map[int32]string{
	entity.PaymentStatusUnpaid: "Unpaid",
	entity.PaymentStatusPaid:   "Paid",
}

func RegistrationTypeLabel(registrationType int32) string {
	if label, ok := registrationTypeLabels[registrationType]; ok {
		return label
	}
	return "Unknown"
}

func PaymentStatusLabel(status int32) string {
	if label, ok := paymentStatusLabels[status]; ok {
		return label
	}
	return "Unknown"
}

func CustomerToView(customer *entity.Customer) types.CustomerView {
	return types.CustomerView{
		ID:                  customer.ID,
		Title:               stringValue(customer.Title),
		OtherTitle:          stringValue(customer.OtherTitle),
		FirstName:           customer.FirstName,
		MiddleName:          stringValue(customer.MiddleName),
		LastName:            customer.LastName,
		Email:               customer.Email,
		Phone:               stringValue(customer.Phone),
		Affiliation:         customer.Affiliation,
		Position:            stringValue(customer.Position),
		Type:                customer.Type,
		TypeLabel:           RegistrationTypeLabel(customer.Type),
		PaperNumber:         stringValue(customer.PaperNumber),
		HaveVisa:            customer.HaveVisa,
		DietaryRequirements: customer.DietaryRequirements,
		Status:              customer.Status,
		StatusLabel:         PaymentStatusLabel(customer.Status),
		AttendeeName:        stringValue(customer.AttendeeName),
		AddressLine1:        stringValue(customer.Line1),
		AddressLine2:        stringValue(customer.Line2),
		City:                stringValue(customer.City),
		State:               stringValue(customer.State),
		PostalCode:          stringValue(customer.PostalCode),
		Country:             stringValue(customer.Country),
		CreateDate:          customer.CreateDate.Format(time.RFC3339),
	}
}

func CustomersToViews(customers []*entity.Customer) []types.CustomerView {
	views := make([]types.CustomerView, 0, len(customers))
	for _, customer := range customers {
		views = append(views, CustomerToView(customer))
	}
	return views
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
