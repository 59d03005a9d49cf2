package entity

import "time"

// Registration categories as stored in customer_info.type.
const (
	RegistrationTypePaperAuthor  int32 = 1
	RegistrationTypePosterAuthor int32 = 2
	RegistrationTypeStudent      int32 = 3
	RegistrationTypeRegular      int32 = 4
)

// Payment status values for customer_info.status. The only legal
// transition is unpaid to paid, performed by the webhook handler.
const (
	PaymentStatusUnpaid int32 = 0
	PaymentStatusPaid   int32 = 1
)

type Customer struct {
	ID uint64

	Title      *string
	OtherTitle *string
	FirstName  string
	MiddleName *string
	LastName   string
	Email      string
	Phone      *string

	Affiliation string
	Position    *string

	Type                int32
	PaperNumber         *string
	HaveVisa            *int32
	DietaryRequirements string
	OtherExplain        *string

	Status       int32
	AttendeeName *string

	Line1      *string
	Line2      *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string

	CreateDate time.Time
}

// BillingAddress holds the address Stripe captured at checkout.
type BillingAddress struct {
	Line1      *string
	Line2      *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
}

// FullName composes "first [middle] last" from the stored name parts.
func (c *Customer) FullName() string {
	name := c.FirstName
	if c.MiddleName != nil && *c.MiddleName != "" {
		name += " " + *c.MiddleName
	}
	return name + " " + c.LastName
}
