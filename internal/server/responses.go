package server

import (
	"net/http"

	"github.com/alexanderramin/chewy/internal/app"
	"github.com/gofiber/fiber/v2"
)

type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data,omitempty"`
}

type errorResponse struct {
	Success bool                   `json:"success"`
	Error   app.DashboardErrorCode `json:"error"`
	Message string                 `json:"message"`
}

func success(c *fiber.Ctx, data any) error {
	return c.Status(fiber.StatusOK).JSON(successResponse{Success: true, Data: data})
}

// failure reports err with the status matching its dashboard error code.
func failure(c *fiber.Ctx, err error) error {
	de := app.NewDashboardError(err)
	return c.Status(statusFor(de.Code)).JSON(errorResponse{
		Success: false,
		Error:   de.Code,
		Message: de.Message,
	})
}

func statusFor(code app.DashboardErrorCode) int {
	switch code {
	case app.DashboardErrUnauthorized:
		return http.StatusUnauthorized
	case app.DashboardErrBoardNotFound:
		return http.StatusNotFound
	case app.DashboardErrNoBoard:
		return http.StatusBadRequest
	case app.DashboardErrNotEnoughLists, app.DashboardErrMissingStage:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}
