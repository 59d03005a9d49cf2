package service

import "errors"

var (
	ErrInvalidRequest          = errors.New("invalid request")
	ErrCustomerNotFound        = errors.New("customer not found")
	ErrUnknownRegistrationType = errors.New("unknown registration type")
	ErrNoCheckoutLink          = errors.New("no checkout link for registration type")
	ErrWebhookRejected         = errors.New("webhook signature rejected")
)
