package types

type ErrorResponse struct {
	Error string `json:"error"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type WebhookAckResponse struct {
	Received bool `json:"received"`
}

type CreatedResponse struct {
	ID uint64 `json:"id"`
}

type QuoteResponse struct {
	Type     int32  `json:"type"`
	Price    int64  `json:"price"`
	Currency string `json:"currency"`
	Early    bool   `json:"early"`
}

type CheckoutLinkResponse struct {
	URL string `json:"url"`
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	FileKey  string `json:"fileKey"`
	FileName string `json:"fileName"`
}

type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

type CustomerView struct {
	ID                  uint64 `json:"id"`
	Title               string `json:"title"`
	OtherTitle          string `json:"other_title,omitempty"`
	FirstName           string `json:"first_name"`
	MiddleName          string `json:"middle_name,omitempty"`
	LastName            string `json:"last_name"`
	Email               string `json:"email"`
	Phone               string `json:"phone,omitempty"`
	Affiliation         string `json:"affiliation"`
	Position            string `json:"position,omitempty"`
	Type                int32  `json:"type"`
	TypeLabel           string `json:"type_label"`
	PaperNumber         string `json:"paper_number,omitempty"`
	HaveVisa            *int32 `json:"have_visa,omitempty"`
	DietaryRequirements string `json:"dietary_requirements"`
	Status              int32  `json:"status"`
	StatusLabel         string `json:"status_label"`
	AttendeeName        string `json:"attendee_name,omitempty"`
	AddressLine1        string `json:"address_line1,omitempty"`
	AddressLine2        string `json:"address_line2,omitempty"`
	City                string `json:"city,omitempty"`
	State               string `json:"state,omitempty"`
	PostalCode          string `json:"postal_code,omitempty"`
	Country             string `json:"country,omitempty"`
	CreateDate          string `json:"create_date"`
}

type CustomerListResponse struct {
	Data       []CustomerView `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

type SendInvoiceResponse struct {
	Success   bool   `json:"success"`
	Recipient string `json:"recipient"`
}
