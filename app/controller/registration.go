package controller

import (
	"context"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/anseninnov/conference-registration/app/factory"
	"github.com/anseninnov/conference-registration/app/types"
)

type registrationService interface {
	CreateRegistration(ctx context.Context, req *types.CreateCustomerRequest) (types.CustomerView, error)
	Quote(registrationType int32) (types.QuoteResponse, error)
	CheckoutLink(ctx context.Context, id uint64) (string, error)
	ListCustomers(ctx context.Context, req *types.ListCustomersRequest) (types.CustomerListResponse, error)
	ExportCSV(ctx context.Context, w io.Writer) error
}

type RegistrationController struct {
	service registrationService
	logger  logrus.FieldLogger
}

func NewRegistrationController(service registrationService) *RegistrationController {
	return &RegistrationController{
		service: service,
		logger:  factory.NewModuleLogger("registration_controller"),
	}
}

func (c *RegistrationController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, types.HealthResponse{Status: "ok"})
}

func (c *RegistrationController) CreateCustomer(ctx echo.Context) error {
	req, err := types.NewCreateCustomerRequestFromContext(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := req.Validate(ctx); err != nil {
		return writeBadRequest(ctx, err)
	}

	created, err := c.service.CreateRegistration(ctx.Request().Context(), req)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("create registration failed")
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, created)
}

func (c *RegistrationController) Quote(ctx echo.Context) error {
	req, err := types.NewQuoteRequestFromContext(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return writeBadRequest(ctx, err)
	}

	quote, err := c.service.Quote(req.Type)
	if err != nil {
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quote)
}

func (c *RegistrationController) CheckoutLink(ctx echo.Context) error {
	req, err := types.NewCheckoutLinkRequestFromContext(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return writeBadRequest(ctx, err)
	}

	link, err := c.service.CheckoutLink(ctx.Request().Context(), req.ID)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Warn("checkout link lookup failed")
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, types.CheckoutLinkResponse{URL: link})
}

func (c *RegistrationController) ListCustomers(ctx echo.Context) error {
	req, err := types.NewListCustomersRequestFromContext(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := req.Validate(); err != nil {
		return writeBadRequest(ctx, err)
	}

	resp, err := c.service.ListCustomers(ctx.Request().Context(), req)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("list registrations failed")
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, resp)
}

func (c *RegistrationController) ExportCustomers(ctx echo.Context) error {
	ctx.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="registrations.csv"`)
	ctx.Response().WriteHeader(http.StatusOK)

	if err := c.service.ExportCSV(ctx.Request().Context(), ctx.Response()); err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("export registrations failed")
		return err
	}
	return nil
}
