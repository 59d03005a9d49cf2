package types

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anseninnov/conference-registration/app/entity"
	"github.com/anseninnov/conference-registration/app/invoice"
	"github.com/anseninnov/conference-registration/pkg/validator"
)

type CreateCustomerRequest struct {
	Title               string   `json:"title"`
	OtherTitle          string   `json:"other_title"`
	FirstName           string   `json:"first_name" validate:"required,max=100"`
	MiddleName          string   `json:"middle_name" validate:"max=100"`
	LastName            string   `json:"last_name" validate:"required,max=100"`
	Email               string   `json:"email" validate:"required,email"`
	Phone               string   `json:"phone" validate:"max=50"`
	Affiliation         string   `json:"affiliation" validate:"required,max=200"`
	Position            string   `json:"position" validate:"max=200"`
	Type                int32    `json:"type"`
	PaperNumber         string   `json:"paper_number" validate:"max=100"`
	HaveVisa            *int32   `json:"have_visa"`
	DietaryRequirements []string `json:"dietary_requirements" validate:"required,min=1,dive,dietary_option"`
	OtherExplain        string   `json:"other_explain" validate:"max=500"`
}

func NewCreateCustomerRequestFromContext(ctx echo.Context) (*CreateCustomerRequest, error) {
	var body CreateCustomerRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.Title = strings.TrimSpace(body.Title)
	body.OtherTitle = strings.TrimSpace(body.OtherTitle)
	body.FirstName = strings.TrimSpace(body.FirstName)
	body.MiddleName = strings.TrimSpace(body.MiddleName)
	body.LastName = strings.TrimSpace(body.LastName)
	body.Email = strings.TrimSpace(body.Email)
	body.Phone = strings.TrimSpace(body.Phone)
	body.Affiliation = strings.TrimSpace(body.Affiliation)
	body.Position = strings.TrimSpace(body.Position)
	body.PaperNumber = strings.TrimSpace(body.PaperNumber)
	body.OtherExplain = strings.TrimSpace(body.OtherExplain)

	return &body, nil
}

func (r *CreateCustomerRequest) Validate(ctx echo.Context) error {
	if err := validator.Validate(ctx.Request().Context(), r); err != nil {
		return err
	}
	if r.Type < entity.RegistrationTypePaperAuthor || r.Type > entity.RegistrationTypeRegular {
		return errors.New("type must be between 1 and 4")
	}
	if r.HaveVisa != nil && *r.HaveVisa != 0 && *r.HaveVisa != 1 {
		return errors.New("have_visa must be 0 or 1")
	}
	return nil
}

type ListCustomersRequest struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Search    string
}

func NewListCustomersRequestFromContext(ctx echo.Context) (*ListCustomersRequest, error) {
	req := &ListCustomersRequest{
		Page:      1,
		PageSize:  10,
		SortBy:    strings.TrimSpace(ctx.QueryParam("sortBy")),
		SortOrder: strings.TrimSpace(ctx.QueryParam("sortOrder")),
		Search:    strings.TrimSpace(ctx.QueryParam("search")),
	}
	if req.SortBy == "" {
		req.SortBy = "id"
	}
	if req.SortOrder == "" {
		req.SortOrder = "desc"
	}

	if raw := strings.TrimSpace(ctx.QueryParam("page")); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.Page = page
	}
	if raw := strings.TrimSpace(ctx.QueryParam("pageSize")); raw != "" {
		pageSize, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		req.PageSize = pageSize
	}

	return req, nil
}

func (r *ListCustomersRequest) Validate() error {
	if r.Page < 1 {
		return errors.New("page must be >= 1")
	}
	if r.PageSize < 1 || r.PageSize > 200 {
		return errors.New("pageSize must be between 1 and 200")
	}
	order := strings.ToLower(r.SortOrder)
	if order != "asc" && order != "desc" {
		return errors.New("sortOrder must be asc or desc")
	}
	return nil
}

type QuoteRequest struct {
	Type int32
}

func NewQuoteRequestFromContext(ctx echo.Context) (*QuoteRequest, error) {
	raw := strings.TrimSpace(ctx.QueryParam("type"))
	registrationType, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil, err
	}
	return &QuoteRequest{Type: int32(registrationType)}, nil
}

func (r *QuoteRequest) Validate() error {
	if r.Type < entity.RegistrationTypePaperAuthor || r.Type > entity.RegistrationTypeRegular {
		return errors.New("type must be between 1 and 4")
	}
	return nil
}

type CheckoutLinkRequest struct {
	ID uint64
}

func NewCheckoutLinkRequestFromContext(ctx echo.Context) (*CheckoutLinkRequest, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, err
	}
	return &CheckoutLinkRequest{ID: id}, nil
}

func (r *CheckoutLinkRequest) Validate() error {
	if r.ID == 0 {
		return errors.New("invalid registration id")
	}
	return nil
}

type CreateVisaRequestRequest struct {
	Type                int32  `json:"type"`
	Title               string `json:"title" validate:"required,max=50"`
	OtherTitle          string `json:"otherTitle" validate:"max=50"`
	FirstName           string `json:"firstName" validate:"required,max=100"`
	MiddleName          string `json:"middleName" validate:"max=100"`
	LastName            string `json:"lastName" validate:"required,max=100"`
	Email               string `json:"email" validate:"required,email"`
	DateOfBirth         string `json:"dateOfBirth"`
	Nationality         string `json:"nationality" validate:"max=100"`
	Institute           string `json:"institute" validate:"max=200"`
	PaperTitle          string `json:"paperTitle" validate:"max=300"`
	AcademicProfile     string `json:"academicProfile" validate:"max=2000"`
	ConferenceInterests string `json:"conferenceInterests" validate:"max=2000"`
	IACRExperience      string `json:"iacrExperience" validate:"max=2000"`
	FileKey             string `json:"fileKey" validate:"max=300"`
	FileName            string `json:"fileName" validate:"max=300"`
}

func NewCreateVisaRequestRequestFromContext(ctx echo.Context) (*CreateVisaRequestRequest, error) {
	var body CreateVisaRequestRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	body.Title = strings.TrimSpace(body.Title)
	body.OtherTitle = strings.TrimSpace(body.OtherTitle)
	body.FirstName = strings.TrimSpace(body.FirstName)
	body.MiddleName = strings.TrimSpace(body.MiddleName)
	body.LastName = strings.TrimSpace(body.LastName)
	body.Email = strings.TrimSpace(body.Email)
	body.DateOfBirth = strings.TrimSpace(body.DateOfBirth)
	body.Nationality = strings.TrimSpace(body.Nationality)
	body.Institute = strings.TrimSpace(body.Institute)

	if body.Type == 0 {
		body.Type = entity.VisaRequestTypeInvitation
	}

	return &body, nil
}

func (r *CreateVisaRequestRequest) Validate(ctx echo.Context) error {
	if err := validator.Validate(ctx.Request().Context(), r); err != nil {
		return err
	}
	if r.Type < entity.VisaRequestTypeInvitation || r.Type > entity.VisaRequestTypeStudentWaiver {
		return errors.New("type must be between 1 and 3")
	}
	if _, err := r.ParsedDateOfBirth(); err != nil {
		return errors.New("dateOfBirth must be YYYY-MM-DD")
	}
	return nil
}

// ParsedDateOfBirth returns the date of birth, or nil when omitted.
func (r *CreateVisaRequestRequest) ParsedDateOfBirth() (*time.Time, error) {
	if r.DateOfBirth == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", r.DateOfBirth)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

type StripeWebhookRequest struct {
	Payload   []byte
	Signature string
}

func NewStripeWebhookRequestFromContext(ctx echo.Context) (*StripeWebhookRequest, error) {
	payload, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return nil, err
	}

	return &StripeWebhookRequest{
		Payload:   payload,
		Signature: strings.TrimSpace(ctx.Request().Header.Get("Stripe-Signature")),
	}, nil
}

func (r *StripeWebhookRequest) Validate() error {
	if len(r.Payload) == 0 {
		return errors.New("empty webhook payload")
	}
	if r.Signature == "" {
		return errors.New("missing Stripe-Signature header")
	}
	return nil
}

type RenderInvoiceRequest struct {
	InvoiceData invoice.Data `json:"invoiceData"`
}

func NewRenderInvoiceRequestFromContext(ctx echo.Context) (*RenderInvoiceRequest, error) {
	var body RenderInvoiceRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	return &body, nil
}

func (r *RenderInvoiceRequest) Validate() error {
	if strings.TrimSpace(r.InvoiceData.InvoiceNumber) == "" {
		return errors.New("invoiceNumber is required")
	}
	return nil
}

type SendInvoiceRequest struct {
	InvoiceData    invoice.Data `json:"invoiceData"`
	RecipientEmail string       `json:"recipientEmail" validate:"required,email"`
}

func NewSendInvoiceRequestFromContext(ctx echo.Context) (*SendInvoiceRequest, error) {
	var body SendInvoiceRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.RecipientEmail = strings.TrimSpace(body.RecipientEmail)
	return &body, nil
}

func (r *SendInvoiceRequest) Validate(ctx echo.Context) error {
	if err := validator.Validate(ctx.Request().Context(), r); err != nil {
		return err
	}
	if strings.TrimSpace(r.InvoiceData.InvoiceNumber) == "" {
		return errors.New("invoiceNumber is required")
	}
	return nil
}

type CreatePaymentLogRequest struct {
	Content string `json:"content" validate:"required"`
	Type    int32  `json:"type"`
}

func NewCreatePaymentLogRequestFromContext(ctx echo.Context) (*CreatePaymentLogRequest, error) {
	var body CreatePaymentLogRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	return &body, nil
}

func (r *CreatePaymentLogRequest) Validate(ctx echo.Context) error {
	return validator.Validate(ctx.Request().Context(), r)
}
