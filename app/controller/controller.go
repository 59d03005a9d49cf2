package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anseninnov/conference-registration/app/service"
	"github.com/anseninnov/conference-registration/app/types"
)

func writeError(ctx echo.Context, err error) error {
	status := http.StatusInternalServerError
	message := "internal server error"

	switch {
	case errors.Is(err, service.ErrCustomerNotFound):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrNoCheckoutLink):
		status = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, service.ErrUnknownRegistrationType),
		errors.Is(err, service.ErrInvalidRequest):
		status = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, service.ErrWebhookRejected):
		status = http.StatusBadRequest
		message = err.Error()
	}

	return ctx.JSON(status, types.ErrorResponse{Error: message})
}

func writeBadRequest(ctx echo.Context, err error) error {
	return ctx.JSON(http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
}
