package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/anseninnov/conference-registration/app/entity"
	"github.com/anseninnov/conference-registration/app/pricing"
	"github.com/anseninnov/conference-registration/app/repository"
	"github.com/anseninnov/conference-registration/app/types"
	"github.com/anseninnov/conference-registration/config"
)

type fakeCustomerStore struct {
	created    []*entity.Customer
	byID       map[uint64]*entity.Customer
	listFilter repository.CustomerFilter
	listResult []*entity.Customer
	count      int64
	all        []*entity.Customer
}

func (f *fakeCustomerStore) Create(_ context.Context, customer *entity.Customer) error {
	customer.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, customer)
	return nil
}

func (f *fakeCustomerStore) FindByID(_ context.Context, id uint64) (*entity.Customer, error) {
	return f.byID[id], nil
}

func (f *fakeCustomerStore) List(_ context.Context, filter repository.CustomerFilter) ([]*entity.Customer, error) {
	f.listFilter = filter
	return f.listResult, nil
}

func (f *fakeCustomerStore) Count(_ context.Context, _ string) (int64, error) {
	return f.count, nil
}

func (f *fakeCustomerStore) ListAll(_ context.Context) ([]*entity.Customer, error) {
	return f.all, nil
}

func testSchedule() *pricing.Schedule {
	cutoff, _ := time.Parse(time.RFC3339, "2025-08-15T00:00:00+10:00")
	return pricing.NewSchedule(config.PricingConfig{
		Cutoff:            cutoff,
		FullPriceEarly:    1450,
		FullPriceLate:     1600,
		StudentPriceEarly: 800,
		StudentPriceLate:  950,
		RegularLinkEarly:  "https://buy.stripe.com/regular-early",
		RegularLinkLate:   "https://buy.stripe.com/regular-late",
		StudentLinkEarly:  "https://buy.stripe.com/student-early",
		StudentLinkLate:   "https://buy.stripe.com/student-late",
	})
}

func newTestRegistrationService(store *fakeCustomerStore, at time.Time) *RegistrationService {
	svc := NewRegistrationService(store, testSchedule())
	svc.logger = logrus.New().WithField("module", "test")
	svc.now = func() time.Time { return at }
	return svc
}

func TestDeriveDietary(t *testing.T) {
	cases := []struct {
		name    string
		ids     []string
		explain string
		want    string
	}{
		{name: "none", ids: []string{"0"}, want: "No"},
		{name: "multiple", ids: []string{"1", "3"}, want: "Vegetarian, Halal"},
		{name: "other with text", ids: []string{"2", "5"}, explain: "no shellfish", want: "Vegan, Other: no shellfish"},
		{name: "other without text", ids: []string{"5"}, want: "Other"},
		{name: "unknown id skipped", ids: []string{"1", "9"}, want: "Vegetarian"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DeriveDietary(tc.ids, tc.explain); got != tc.want {
				t.Fatalf("DeriveDietary(%v, %q) = %q, want %q", tc.ids, tc.explain, got, tc.want)
			}
		})
	}
}

func TestCreateRegistrationStoresUnpaidCustomer(t *testing.T) {
	store := &fakeCustomerStore{}
	svc := newTestRegistrationService(store, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC))

	created, err := svc.CreateRegistration(context.Background(), &types.CreateCustomerRequest{
		FirstName:           "Alice",
		LastName:            "Liddell",
		Email:               "alice@example.edu",
		Affiliation:         "Wonderland University",
		Type:                entity.RegistrationTypeStudent,
		DietaryRequirements: []string{"1", "5"},
		OtherExplain:        "no peanuts",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}
	if created.StatusLabel != "Unpaid" {
		t.Fatalf("expected unpaid view, got %q", created.StatusLabel)
	}

	stored := store.created[0]
	if stored.Status != entity.PaymentStatusUnpaid {
		t.Fatalf("expected unpaid status, got %d", stored.Status)
	}
	if stored.DietaryRequirements != "Vegetarian, Other: no peanuts" {
		t.Fatalf("unexpected dietary text %q", stored.DietaryRequirements)
	}
	if stored.MiddleName != nil {
		t.Fatal("expected empty middle name to be stored as NULL")
	}
}

func TestQuotePickedByDeadline(t *testing.T) {
	store := &fakeCustomerStore{}

	early := newTestRegistrationService(store, time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC))
	quote, err := early.Quote(entity.RegistrationTypeStudent)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if quote.Price != 800 || !quote.Early {
		t.Fatalf("expected early student price 800, got %+v", quote)
	}

	late := newTestRegistrationService(store, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))
	quote, err = late.Quote(entity.RegistrationTypeRegular)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if quote.Price != 1600 || quote.Early {
		t.Fatalf("expected late regular price 1600, got %+v", quote)
	}

	if _, err := late.Quote(9); err != ErrUnknownRegistrationType {
		t.Fatalf("expected ErrUnknownRegistrationType, got %v", err)
	}
}

func TestCheckoutLinkCarriesReferenceAndEmail(t *testing.T) {
	store := &fakeCustomerStore{byID: map[uint64]*entity.Customer{
		42: {ID: 42, Email: "alice@example.edu", Type: entity.RegistrationTypeRegular},
	}}
	svc := newTestRegistrationService(store, time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC))

	link, err := svc.CheckoutLink(context.Background(), 42)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !strings.HasPrefix(link, "https://buy.stripe.com/regular-late?") {
		t.Fatalf("expected late regular link, got %q", link)
	}
	if !strings.Contains(link, "client_reference_id=42") {
		t.Fatalf("expected client reference in link, got %q", link)
	}
	if !strings.Contains(link, "prefilled_email=alice%40example.edu") {
		t.Fatalf("expected prefilled email in link, got %q", link)
	}
}

func TestCheckoutLinkUnknownCustomer(t *testing.T) {
	store := &fakeCustomerStore{byID: map[uint64]*entity.Customer{}}
	svc := newTestRegistrationService(store, time.Now())

	if _, err := svc.CheckoutLink(context.Background(), 7); err != ErrCustomerNotFound {
		t.Fatalf("expected ErrCustomerNotFound, got %v", err)
	}
}

func TestCheckoutLinkMissingForType(t *testing.T) {
	store := &fakeCustomerStore{byID: map[uint64]*entity.Customer{
		3: {ID: 3, Email: "p@example.edu", Type: entity.RegistrationTypePaperAuthor},
	}}
	svc := newTestRegistrationService(store, time.Now())

	if _, err := svc.CheckoutLink(context.Background(), 3); err != ErrNoCheckoutLink {
		t.Fatalf("expected ErrNoCheckoutLink, got %v", err)
	}
}

func TestListCustomersPagination(t *testing.T) {
	store := &fakeCustomerStore{
		count: 25,
		listResult: []*entity.Customer{
			{ID: 25, FirstName: "Zo", LastName: "Last", Email: "z@example.edu", Affiliation: "A"},
		},
	}
	svc := newTestRegistrationService(store, time.Now())

	resp, err := svc.ListCustomers(context.Background(), &types.ListCustomersRequest{
		Page: 3, PageSize: 10, SortBy: "id", SortOrder: "desc",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if resp.Pagination.TotalPages != 3 {
		t.Fatalf("expected 3 total pages, got %d", resp.Pagination.TotalPages)
	}
	if resp.Pagination.Total != 25 {
		t.Fatalf("expected total 25, got %d", resp.Pagination.Total)
	}
	if store.listFilter.Offset != 20 || store.listFilter.Limit != 10 {
		t.Fatalf("unexpected filter %+v", store.listFilter)
	}
	if len(resp.Data) != 1 || resp.Data[0].ID != 25 {
		t.Fatalf("unexpected page data %+v", resp.Data)
	}
}

func TestExportCSV(t *testing.T) {
	city := "Brisbane"
	country := "AU"
	store := &fakeCustomerStore{all: []*entity.Customer{
		{
			ID: 2, FirstName: "Bob", LastName: "Stone", Email: "bob@example.org",
			Affiliation: "Somewhere", Type: entity.RegistrationTypeRegular,
			Status: entity.PaymentStatusPaid, DietaryRequirements: "No",
			City: &city, Country: &country,
			CreateDate: time.Date(2025, 8, 20, 10, 0, 0, 0, time.UTC),
		},
	}}
	svc := newTestRegistrationService(store, time.Now())

	var buf bytes.Buffer
	if err := svc.ExportCSV(context.Background(), &buf); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header plus one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID,Title,First Name") {
		t.Fatalf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "Regular") || !strings.Contains(lines[1], "Paid") {
		t.Fatalf("expected display labels in row, got %q", lines[1])
	}
	if !strings.Contains(lines[1], "\"Brisbane, AU\"") {
		t.Fatalf("expected joined address in row, got %q", lines[1])
	}
}
