package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/anseninnov/conference-registration/app/entity"
	"github.com/anseninnov/conference-registration/app/factory"
	"github.com/anseninnov/conference-registration/app/provider"
	"github.com/anseninnov/conference-registration/app/repository"
)

const checkoutSessionCompleted = "checkout.session.completed"

type stripeGateway interface {
	VerifyAndParseEvent(payload []byte, signature string) (*provider.Event, error)
	ListLineItems(ctx context.Context, sessionID string) ([]provider.LineItem, []byte, error)
}

type customerPaymentStore interface {
	FindByID(ctx context.Context, id uint64) (*entity.Customer, error)
	MarkPaid(ctx context.Context, id uint64, address entity.BillingAddress, attendeeName string) (bool, error)
}

type paymentLogStore interface {
	Create(ctx context.Context, log *entity.PaymentLog) error
}

type webhookEventStore interface {
	Create(ctx context.Context, event *entity.WebhookEvent) error
}

type invoiceDispatcher interface {
	Dispatch(ctx context.Context, payload InvoicePayload) error
}

// InvoicePayload is the body posted to the invoice email service once a
// registration is marked paid.
type InvoicePayload struct {
	InvoiceNumber string               `json:"invoiceNumber"`
	Name          string               `json:"name"`
	Email         string               `json:"email"`
	Country       string               `json:"country"`
	State         string               `json:"state"`
	City          string               `json:"city"`
	PostalCode    string               `json:"postalCode"`
	AddressLine1  string               `json:"addressLine1"`
	AddressLine2  string               `json:"addressLine2"`
	Payments      []InvoicePaymentLine `json:"payments"`
	SubTotal      decimal.Decimal      `json:"subTotal"`
	Tax           decimal.Decimal      `json:"tax"`
	Total         decimal.Decimal      `json:"total"`
}

type InvoicePaymentLine struct {
	Name     string          `json:"name"`
	Amount   decimal.Decimal `json:"amount"`
	Quantity int64           `json:"quantity"`
}

// WebhookService applies completed Stripe checkouts to stored
// registrations. Signature failures reject the delivery; everything
// after verification is acknowledged so Stripe does not retry
// deliveries we have already recorded.
type WebhookService struct {
	stripe    stripeGateway
	customers customerPaymentStore
	logs      paymentLogStore
	events    webhookEventStore
	invoices  invoiceDispatcher
	taxRate   decimal.Decimal
	logger    logrus.FieldLogger
	now       func() time.Time
}

func NewWebhookService(
	stripe stripeGateway,
	customers customerPaymentStore,
	logs paymentLogStore,
	events webhookEventStore,
	invoices invoiceDispatcher,
	taxRate float64,
) *WebhookService {
	return &WebhookService{
		stripe:    stripe,
		customers: customers,
		logs:      logs,
		events:    events,
		invoices:  invoices,
		taxRate:   decimal.NewFromFloat(taxRate),
		logger:    factory.NewModuleLogger("webhook_service"),
		now:       time.Now,
	}
}

// HandleStripeEvent verifies and applies one webhook delivery. A
// returned error means the delivery must be rejected; nil means it is
// acknowledged, including the cases where nothing was done.
func (s *WebhookService) HandleStripeEvent(ctx context.Context, payload []byte, signature string) error {
	event, err := s.stripe.VerifyAndParseEvent(payload, signature)
	if err != nil {
		s.logger.WithError(err).Warn("webhook signature verification failed")
		return fmt.Errorf("%w: %v", ErrWebhookRejected, err)
	}

	if event.Type != checkoutSessionCompleted {
		s.logger.WithField("event_type", event.Type).Debug("ignoring webhook event")
		return nil
	}
	if event.Session == nil {
		s.logger.Warn("checkout event without session object")
		return nil
	}

	eventID := event.ID
	if eventID == "" {
		eventID = uuid.NewString()
	}
	record := &entity.WebhookEvent{
		EventID:   eventID,
		EventType: event.Type,
		CreatedAt: s.now().UTC(),
	}
	if err := s.events.Create(ctx, record); err != nil {
		if errors.Is(err, repository.ErrEventAlreadySeen) {
			s.logger.WithField("event_id", eventID).Info("duplicate webhook delivery, skipping")
			return nil
		}
		return fmt.Errorf("record webhook event: %w", err)
	}

	return s.applyCheckout(ctx, event)
}

func (s *WebhookService) applyCheckout(ctx context.Context, event *provider.Event) error {
	session := event.Session
	logger := s.logger.WithFields(logrus.Fields{
		"event_id":   event.ID,
		"session_id": session.ID,
	})

	customerID, err := strconv.ParseUint(session.ClientReferenceID, 10, 64)
	if err != nil || customerID == 0 {
		logger.WithField("client_reference_id", session.ClientReferenceID).
			Warn("checkout session without usable client reference, acknowledging")
		return nil
	}
	logger = logger.WithField("customer_id", customerID)

	customer, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return fmt.Errorf("find customer %d: %w", customerID, err)
	}
	if customer == nil {
		logger.Warn("checkout references unknown registration, acknowledging")
		return nil
	}

	attendeeName := session.AttendeeNameField()
	if attendeeName == "" {
		attendeeName = customer.FullName()
	}

	s.recordLog(ctx, logger, entity.PaymentLogTypeCheckout, sessionContent(session), customerID)

	changed, err := s.customers.MarkPaid(ctx, customerID, billingAddress(session), attendeeName)
	if err != nil {
		return fmt.Errorf("mark customer %d paid: %w", customerID, err)
	}
	if !changed {
		logger.Info("registration already paid")
	} else {
		logger.Info("registration marked paid")
	}

	items, rawItems, err := s.stripe.ListLineItems(ctx, session.ID)
	if err != nil {
		// Payment is recorded; the totals and email are best effort.
		logger.WithError(err).Error("failed to fetch checkout line items")
		return nil
	}

	s.recordLog(ctx, logger, entity.PaymentLogTypeLineItems, string(rawItems), customerID)

	subtotal, tax, total := s.computeTotals(items)

	payload := s.invoicePayload(customer, session, attendeeName, items, subtotal, tax, total)
	if err := s.invoices.Dispatch(ctx, payload); err != nil {
		logger.WithError(err).Error("invoice email dispatch failed")
	}

	return nil
}

// computeTotals sums the Stripe line items (minor units) and
// back-calculates the GST component from the tax-inclusive total.
func (s *WebhookService) computeTotals(items []provider.LineItem) (subtotal, tax, total decimal.Decimal) {
	var gross int64
	for _, item := range items {
		gross += item.AmountTotal * item.Quantity
	}

	total = decimal.NewFromInt(gross).Div(decimal.NewFromInt(100))
	divisor := decimal.NewFromInt(1).Add(s.taxRate)
	subtotal = total.Div(divisor).Round(2)
	tax = total.Sub(subtotal)
	return subtotal, tax, total
}

func (s *WebhookService) invoicePayload(
	customer *entity.Customer,
	session *provider.CheckoutSession,
	attendeeName string,
	items []provider.LineItem,
	subtotal, tax, total decimal.Decimal,
) InvoicePayload {
	payload := InvoicePayload{
		InvoiceNumber: strconv.FormatUint(customer.ID, 10),
		Name:          attendeeName,
		Email:         customer.Email,
		Payments:      make([]InvoicePaymentLine, 0, len(items)),
		SubTotal:      subtotal,
		Tax:           tax,
		Total:         total,
	}

	if session.CustomerDetails != nil {
		if session.CustomerDetails.Email != "" {
			payload.Email = session.CustomerDetails.Email
		}
		if address := session.CustomerDetails.Address; address != nil {
			payload.Country = address.Country
			payload.State = address.State
			payload.City = address.City
			payload.PostalCode = address.PostalCode
			payload.AddressLine1 = address.Line1
			payload.AddressLine2 = address.Line2
		}
	}

	for _, item := range items {
		payload.Payments = append(payload.Payments, InvoicePaymentLine{
			Name:     item.Description,
			Amount:   decimal.NewFromInt(item.AmountTotal * item.Quantity).Div(decimal.NewFromInt(100)),
			Quantity: item.Quantity,
		})
	}

	return payload
}

func (s *WebhookService) recordLog(ctx context.Context, logger logrus.FieldLogger, logType int32, content string, customerID uint64) {
	log := &entity.PaymentLog{
		Content:    content,
		Type:       logType,
		CustomerID: &customerID,
		CreateTime: s.now().UTC(),
	}
	if err := s.logs.Create(ctx, log); err != nil {
		logger.WithError(err).WithField("log_type", logType).Error("failed to write payment log")
	}
}

func sessionContent(session *provider.CheckoutSession) string {
	raw, err := json.Marshal(session)
	if err != nil {
		return session.ID
	}
	return string(raw)
}

func billingAddress(session *provider.CheckoutSession) entity.BillingAddress {
	var address entity.BillingAddress
	if session.CustomerDetails == nil || session.CustomerDetails.Address == nil {
		return address
	}

	source := session.CustomerDetails.Address
	address.Line1 = optionalString(source.Line1)
	address.Line2 = optionalString(source.Line2)
	address.City = optionalString(source.City)
	address.State = optionalString(source.State)
	address.PostalCode = optionalString(source.PostalCode)
	address.Country = optionalString(source.Country)
	return address
}
