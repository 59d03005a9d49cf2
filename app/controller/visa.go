package controller

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/anseninnov/conference-registration/app/factory"
	"github.com/anseninnov/conference-registration/app/types"
)

type visaService interface {
	CreateVisaRequest(ctx context.Context, req *types.CreateVisaRequestRequest) (uint64, error)
}

type VisaController struct {
	service visaService
	logger  logrus.FieldLogger
}

func NewVisaController(service visaService) *VisaController {
	return &VisaController{
		service: service,
		logger:  factory.NewModuleLogger("visa_controller"),
	}
}

func (c *VisaController) CreateVisaRequest(ctx echo.Context) error {
	req, err := types.NewCreateVisaRequestRequestFromContext(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := req.Validate(ctx); err != nil {
		return writeBadRequest(ctx, err)
	}

	id, err := c.service.CreateVisaRequest(ctx.Request().Context(), req)
	if err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("create visa request failed")
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, types.CreatedResponse{ID: id})
}
