package controller

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/anseninnov/conference-registration/app/factory"
	"github.com/anseninnov/conference-registration/app/invoice"
	"github.com/anseninnov/conference-registration/app/mailer"
	"github.com/anseninnov/conference-registration/app/types"
)

type invoiceMailer interface {
	SendHTML(recipient, subject, htmlBody string) error
}

type InvoiceController struct {
	mailer invoiceMailer
	logger logrus.FieldLogger
}

func NewInvoiceController(mailer invoiceMailer) *InvoiceController {
	return &InvoiceController{
		mailer: mailer,
		logger: factory.NewModuleLogger("invoice_controller"),
	}
}

func (c *InvoiceController) RenderPDF(ctx echo.Context) error {
	req, err := types.NewRenderInvoiceRequestFromContext(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return writeBadRequest(ctx, err)
	}

	raw, err := invoice.RenderPDF(req.InvoiceData)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("pdf rendering failed")
		return writeError(ctx, err)
	}

	filename := fmt.Sprintf(`attachment; filename="invoice-%s.pdf"`, req.InvoiceData.InvoiceNumber)
	ctx.Response().Header().Set(echo.HeaderContentDisposition, filename)
	return ctx.Blob(http.StatusOK, "application/pdf", raw)
}

func (c *InvoiceController) RenderHTML(ctx echo.Context) error {
	req, err := types.NewRenderInvoiceRequestFromContext(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return writeBadRequest(ctx, err)
	}

	page, err := invoice.RenderHTML(req.InvoiceData)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("html rendering failed")
		return writeError(ctx, err)
	}

	return ctx.HTML(http.StatusOK, page)
}

func (c *InvoiceController) Send(ctx echo.Context) error {
	req, err := types.NewSendInvoiceRequestFromContext(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := req.Validate(ctx); err != nil {
		return writeBadRequest(ctx, err)
	}

	body, err := invoice.RenderEmailHTML(req.InvoiceData)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("email rendering failed")
		return writeError(ctx, err)
	}

	subject := fmt.Sprintf("Invoice #%s", req.InvoiceData.InvoiceNumber)
	if err := c.mailer.SendHTML(req.RecipientEmail, subject, body); err != nil {
		if errors.Is(err, mailer.ErrNotConfigured) {
			return ctx.JSON(http.StatusServiceUnavailable, types.ErrorResponse{Error: err.Error()})
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("invoice email send failed")
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, types.SendInvoiceResponse{Success: true, Recipient: req.RecipientEmail})
}
