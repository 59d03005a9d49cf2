package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anseninnov/conference-registration/app/entity"
	"github.com/anseninnov/conference-registration/app/factory"
	"github.com/anseninnov/conference-registration/app/mapper"
	"github.com/anseninnov/conference-registration/app/pricing"
	"github.com/anseninnov/conference-registration/app/repository"
	"github.com/anseninnov/conference-registration/app/types"
)

var dietaryLabels = map[string]string{
	"0": "No",
	"1": "Vegetarian",
	"2": "Vegan",
	"3": "Halal",
	"4": "Dairy free",
	"5": "Other",
}

// DeriveDietary turns the selected option ids into the stored
// free-text summary. The "Other" option carries the explanation the
// attendee typed in.
func DeriveDietary(optionIDs []string, otherExplain string) string {
	labels := make([]string, 0, len(optionIDs))
	for _, id := range optionIDs {
		label, ok := dietaryLabels[id]
		if !ok {
			continue
		}
		if id == "5" && strings.TrimSpace(otherExplain) != "" {
			label = "Other: " + strings.TrimSpace(otherExplain)
		}
		labels = append(labels, label)
	}
	return strings.Join(labels, ", ")
}

type customerStore interface {
	Create(ctx context.Context, customer *entity.Customer) error
	FindByID(ctx context.Context, id uint64) (*entity.Customer, error)
	List(ctx context.Context, filter repository.CustomerFilter) ([]*entity.Customer, error)
	Count(ctx context.Context, search string) (int64, error)
	ListAll(ctx context.Context) ([]*entity.Customer, error)
}

// RegistrationService owns the registration intake, pricing and the
// admin listing over stored registrations.
type RegistrationService struct {
	customers customerStore
	schedule  *pricing.Schedule
	logger    logrus.FieldLogger
	now       func() time.Time
}

func NewRegistrationService(customers customerStore, schedule *pricing.Schedule) *RegistrationService {
	return &RegistrationService{
		customers: customers,
		schedule:  schedule,
		logger:    factory.NewModuleLogger("registration_service"),
		now:       time.Now,
	}
}

// CreateRegistration stores a new registration as unpaid and returns
// the created record; its id is the token later checkout sessions
// carry as client_reference_id.
func (s *RegistrationService) CreateRegistration(ctx context.Context, req *types.CreateCustomerRequest) (types.CustomerView, error) {
	customer := &entity.Customer{
		Title:               optionalString(req.Title),
		OtherTitle:          optionalString(req.OtherTitle),
		FirstName:           req.FirstName,
		MiddleName:          optionalString(req.MiddleName),
		LastName:            req.LastName,
		Email:               req.Email,
		Phone:               optionalString(req.Phone),
		Affiliation:         req.Affiliation,
		Position:            optionalString(req.Position),
		Type:                req.Type,
		PaperNumber:         optionalString(req.PaperNumber),
		HaveVisa:            req.HaveVisa,
		DietaryRequirements: DeriveDietary(req.DietaryRequirements, req.OtherExplain),
		OtherExplain:        optionalString(req.OtherExplain),
		Status:              entity.PaymentStatusUnpaid,
		CreateDate:          s.now().UTC(),
	}

	if err := s.customers.Create(ctx, customer); err != nil {
		return types.CustomerView{}, fmt.Errorf("create registration: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"customer_id": customer.ID,
		"type":        customer.Type,
	}).Info("registration created")

	return mapper.CustomerToView(customer), nil
}

// Quote returns the registration price in whole dollars for the given
// type, evaluated against the early-bird deadline at call time.
func (s *RegistrationService) Quote(registrationType int32) (types.QuoteResponse, error) {
	at := s.now()
	price, ok := s.schedule.QuoteAt(registrationType, at)
	if !ok {
		return types.QuoteResponse{}, ErrUnknownRegistrationType
	}
	return types.QuoteResponse{
		Type:     registrationType,
		Price:    price,
		Currency: "AUD",
		Early:    s.schedule.Early(at),
	}, nil
}

// CheckoutLink resolves the Stripe payment link for a stored
// registration, carrying the registration id as client_reference_id so
// the webhook can correlate the payment back.
func (s *RegistrationService) CheckoutLink(ctx context.Context, id uint64) (string, error) {
	customer, err := s.customers.FindByID(ctx, id)
	if err != nil {
		return "", fmt.Errorf("find registration %d: %w", id, err)
	}
	if customer == nil {
		return "", ErrCustomerNotFound
	}

	link, ok := s.schedule.LinkAt(customer.Type, s.now())
	if !ok || link == "" {
		return "", ErrNoCheckoutLink
	}

	params := url.Values{}
	params.Set("client_reference_id", strconv.FormatUint(customer.ID, 10))
	params.Set("prefilled_email", customer.Email)

	separator := "?"
	if strings.Contains(link, "?") {
		separator = "&"
	}
	return link + separator + params.Encode(), nil
}

// ListCustomers returns one page of registrations with pagination
// metadata computed from the total matching count.
func (s *RegistrationService) ListCustomers(ctx context.Context, req *types.ListCustomersRequest) (types.CustomerListResponse, error) {
	total, err := s.customers.Count(ctx, req.Search)
	if err != nil {
		return types.CustomerListResponse{}, fmt.Errorf("count registrations: %w", err)
	}

	filter := repository.CustomerFilter{
		Search:    req.Search,
		SortBy:    req.SortBy,
		SortOrder: req.SortOrder,
		Limit:     int32(req.PageSize),
		Offset:    int32((req.Page - 1) * req.PageSize),
	}
	customers, err := s.customers.List(ctx, filter)
	if err != nil {
		return types.CustomerListResponse{}, fmt.Errorf("list registrations: %w", err)
	}

	totalPages := int((total + int64(req.PageSize) - 1) / int64(req.PageSize))

	return types.CustomerListResponse{
		Data: mapper.CustomersToViews(customers),
		Pagination: types.Pagination{
			Page:       req.Page,
			PageSize:   req.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

var exportHeader = []string{
	"ID", "Title", "First Name", "Middle Name", "Last Name", "Email",
	"Phone", "Affiliation", "Position", "Type", "Paper Number",
	"Dietary Requirements", "Status", "Attendee Name", "Address",
	"Registered At",
}

// ExportCSV streams every registration as CSV, newest first.
func (s *RegistrationService) ExportCSV(ctx context.Context, w io.Writer) error {
	customers, err := s.customers.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("export registrations: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return fmt.Errorf("write export header: %w", err)
	}

	for _, customer := range customers {
		record := []string{
			strconv.FormatUint(customer.ID, 10),
			stringValue(customer.Title),
			customer.FirstName,
			stringValue(customer.MiddleName),
			customer.LastName,
			customer.Email,
			stringValue(customer.Phone),
			customer.Affiliation,
			stringValue(customer.Position),
			mapper.RegistrationTypeLabel(customer.Type),
			stringValue(customer.PaperNumber),
			customer.DietaryRequirements,
			mapper.PaymentStatusLabel(customer.Status),
			stringValue(customer.AttendeeName),
			joinAddress(customer),
			customer.CreateDate.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write export row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func joinAddress(customer *entity.Customer) string {
	parts := make([]string, 0, 6)
	for _, part := range []*string{
		customer.Line1, customer.Line2, customer.City,
		customer.State, customer.PostalCode, customer.Country,
	} {
		if part != nil && strings.TrimSpace(*part) != "" {
			parts = append(parts, strings.TrimSpace(*part))
		}
	}
	return strings.Join(parts, ", ")
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func stringValue(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
