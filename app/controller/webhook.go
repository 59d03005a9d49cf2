package controller

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/anseninnov/conference-registration/app/factory"
	"github.com/anseninnov/conference-registration/app/types"
)

type webhookService interface {
	HandleStripeEvent(ctx context.Context, payload []byte, signature string) error
}

type WebhookController struct {
	service webhookService
	logger  logrus.FieldLogger
}

func NewWebhookController(service webhookService) *WebhookController {
	return &WebhookController{
		service: service,
		logger:  factory.NewModuleLogger("webhook_controller"),
	}
}

// HandleStripe receives Stripe webhook deliveries. The body must stay
// raw for signature verification, so no binding happens here.
func (c *WebhookController) HandleStripe(ctx echo.Context) error {
	req, err := types.NewStripeWebhookRequestFromContext(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return writeBadRequest(ctx, err)
	}

	if err := c.service.HandleStripeEvent(ctx.Request().Context(), req.Payload, req.Signature); err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Warn("webhook delivery failed")
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, types.WebhookAckResponse{Received: true})
}
