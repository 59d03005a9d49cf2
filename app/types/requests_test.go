package types

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newContext(method, target, body string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestNewListCustomersRequestDefaults(t *testing.T) {
	ctx := newContext(http.MethodGet, "/customers", "")

	req, err := NewListCustomersRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if req.Page != 1 || req.PageSize != 10 {
		t.Fatalf("expected default page 1 size 10, got %d/%d", req.Page, req.PageSize)
	}
	if req.SortBy != "id" || req.SortOrder != "desc" {
		t.Fatalf("expected default sort id desc, got %s %s", req.SortBy, req.SortOrder)
	}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}

func TestNewListCustomersRequestParsesQuery(t *testing.T) {
	ctx := newContext(http.MethodGet, "/customers?page=3&pageSize=50&sortBy=email&sortOrder=asc&search=liddell", "")

	req, err := NewListCustomersRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if req.Page != 3 || req.PageSize != 50 {
		t.Fatalf("unexpected paging %d/%d", req.Page, req.PageSize)
	}
	if req.SortBy != "email" || req.SortOrder != "asc" || req.Search != "liddell" {
		t.Fatalf("unexpected request %+v", req)
	}
}

func TestListCustomersRequestValidateRejectsBadValues(t *testing.T) {
	cases := []ListCustomersRequest{
		{Page: 0, PageSize: 10, SortOrder: "desc"},
		{Page: 1, PageSize: 0, SortOrder: "desc"},
		{Page: 1, PageSize: 500, SortOrder: "desc"},
		{Page: 1, PageSize: 10, SortOrder: "sideways"},
	}
	for _, tc := range cases {
		if err := tc.Validate(); err == nil {
			t.Fatalf("expected validation error for %+v", tc)
		}
	}
}

func TestNewQuoteRequestRejectsNonNumericType(t *testing.T) {
	ctx := newContext(http.MethodGet, "/pricing?type=student", "")

	if _, err := NewQuoteRequestFromContext(ctx); err == nil {
		t.Fatal("expected parse error for non-numeric type")
	}
}

func TestCreateCustomerRequestTrimsFields(t *testing.T) {
	body := `{
		"first_name": "  Alice  ",
		"last_name": "Liddell",
		"email": " alice@example.edu ",
		"affiliation": "Wonderland University",
		"type": 4,
		"dietary_requirements": ["0"]
	}`
	ctx := newContext(http.MethodPost, "/customers", body)

	req, err := NewCreateCustomerRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if req.FirstName != "Alice" || req.Email != "alice@example.edu" {
		t.Fatalf("expected trimmed fields, got %q %q", req.FirstName, req.Email)
	}
	if err := req.Validate(ctx); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}
}

func TestCreateCustomerRequestRejectsBadType(t *testing.T) {
	body := `{
		"first_name": "Alice",
		"last_name": "Liddell",
		"email": "alice@example.edu",
		"affiliation": "Wonderland University",
		"type": 7,
		"dietary_requirements": ["0"]
	}`
	ctx := newContext(http.MethodPost, "/customers", body)

	req, err := NewCreateCustomerRequestFromContext(ctx)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := req.Validate(ctx); err == nil {
		t.Fatal("expected type validation error")
	}
}

func TestCreateVisaRequestRequestDateOfBirth(t *testing.T) {
	req := &CreateVisaRequestRequest{DateOfBirth: "1999-12-31"}
	parsed, err := req.ParsedDateOfBirth()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if parsed == nil || parsed.Year() != 1999 {
		t.Fatalf("unexpected date %v", parsed)
	}

	req.DateOfBirth = ""
	parsed, err = req.ParsedDateOfBirth()
	if err != nil || parsed != nil {
		t.Fatalf("expected nil date for empty input, got %v %v", parsed, err)
	}

	req.DateOfBirth = "31/12/1999"
	if _, err := req.ParsedDateOfBirth(); err == nil {
		t.Fatal("expected parse error for wrong layout")
	}
}

func TestStripeWebhookRequestValidate(t *testing.T) {
	req := &StripeWebhookRequest{Payload: []byte("{}"), Signature: "t=1,v1=abc"}
	if err := req.Validate(); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	if err := (&StripeWebhookRequest{Signature: "t=1,v1=abc"}).Validate(); err == nil {
		t.Fatal("expected error for empty payload")
	}
	if err := (&StripeWebhookRequest{Payload: []byte("{}")}).Validate(); err == nil {
		t.Fatal("expected error for missing signature")
	}
}
