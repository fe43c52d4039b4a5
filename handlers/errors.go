package handlers

import (
	"errors"
	"net/http"

	"detailing/services/booking"
	"detailing/services/catalog"
	"detailing/services/expense"
	"detailing/services/schedule"
	"detailing/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Error codes returned to clients alongside the message.
const (
	CodeInvalidRequest   = "invalid_request"
	CodeSlotUnavailable  = "slot_unavailable"
	CodeClosedDay        = "closed_day"
	CodePastDate         = "past_date"
	CodeOutsideHours     = "outside_hours"
	CodeInvalidTime      = "invalid_time"
	CodeInvalidDate      = "invalid_date"
	CodeNotFound         = "not_found"
	CodeInvalidStatus    = "invalid_status"
	CodeTransitionDenied = "transition_not_allowed"
	CodeInternal         = "internal_error"
)

// respondError maps service errors onto HTTP responses. Unknown errors are logged and hidden.
func respondError(c *gin.Context, err error) {
	var transition *booking.StatusTransitionError

	switch {
	case booking.IsSlotUnavailable(err):
		utils.JSONCodedError(c, http.StatusConflict, CodeSlotUnavailable, err.Error())
	case errors.Is(err, schedule.ErrInvalidDate):
		utils.JSONCodedError(c, http.StatusBadRequest, CodeInvalidDate, err.Error())
	case errors.Is(err, schedule.ErrInvalidTime):
		utils.JSONCodedError(c, http.StatusBadRequest, CodeInvalidTime, err.Error())
	case errors.Is(err, schedule.ErrPastDate):
		utils.JSONCodedError(c, http.StatusBadRequest, CodePastDate, err.Error())
	case errors.Is(err, schedule.ErrClosedDay):
		utils.JSONCodedError(c, http.StatusBadRequest, CodeClosedDay, err.Error())
	case errors.Is(err, schedule.ErrOutsideHours):
		utils.JSONCodedError(c, http.StatusBadRequest, CodeOutsideHours, err.Error())
	case errors.As(err, &transition):
		utils.JSONCodedError(c, http.StatusConflict, CodeTransitionDenied, err.Error())
	case errors.Is(err, booking.ErrInvalidStatus):
		utils.JSONCodedError(c, http.StatusBadRequest, CodeInvalidStatus, err.Error())
	case errors.Is(err, booking.ErrInvalidRange),
		errors.Is(err, booking.ErrInvalidMonth),
		errors.Is(err, catalog.ErrInvalidService),
		errors.Is(err, expense.ErrInvalidExpense),
		errors.Is(err, expense.ErrInvalidMonth):
		utils.JSONCodedError(c, http.StatusBadRequest, CodeInvalidRequest, err.Error())
	case errors.Is(err, booking.ErrBookingNotFound),
		errors.Is(err, catalog.ErrServiceNotFound),
		errors.Is(err, expense.ErrExpenseNotFound):
		utils.JSONCodedError(c, http.StatusNotFound, CodeNotFound, err.Error())
	default:
		getLogger(c).Error("Request failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
		utils.JSONCodedError(c, http.StatusInternalServerError, CodeInternal, "something went wrong, please try again")
	}
}

// badRequest reports a payload that failed binding.
func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, utils.ErrorResponse{
		Code:    CodeInvalidRequest,
		Message: "invalid input",
		Details: err.Error(),
	})
}
