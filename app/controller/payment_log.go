package controller

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"github.com/anseninnov/conference-registration/app/entity"
	"github.com/anseninnov/conference-registration/app/factory"
	"github.com/anseninnov/conference-registration/app/types"
)

type paymentLogStore interface {
	Create(ctx context.Context, log *entity.PaymentLog) error
}

type PaymentLogController struct {
	logs   paymentLogStore
	logger logrus.FieldLogger
	now    func() time.Time
}

func NewPaymentLogController(logs paymentLogStore) *PaymentLogController {
	return &PaymentLogController{
		logs:   logs,
		logger: factory.NewModuleLogger("payment_log_controller"),
		now:    time.Now,
	}
}

// CreatePaymentLog records a client-side payment trace, such as a
// checkout redirect or a cancelled session.
func (c *PaymentLogController) CreatePaymentLog(ctx echo.Context) error {
	req, err := types.NewCreatePaymentLogRequestFromContext(ctx)
	if err != nil {
		return writeBadRequest(ctx, err)
	}
	if err := req.Validate(ctx); err != nil {
		return writeBadRequest(ctx, err)
	}

	log := &entity.PaymentLog{
		Content:    req.Content,
		Type:       req.Type,
		CreateTime: c.now().UTC(),
	}
	if err := c.logs.Create(ctx.Request().Context(), log); err != nil {
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("create payment log failed")
		return writeError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, types.CreatedResponse{ID: log.ID})
}
