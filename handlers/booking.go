package handlers

import (
	"net/http"
	"strings"

	"detailing/models"
	"detailing/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the public availability and booking endpoints plus the admin booking desk.
type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// GetAvailability handles GET /api/availability?date=YYYY-MM-DD&service=<title>.
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"code": CodeInvalidDate, "message": "date query parameter is required"})
		return
	}

	slots, err := h.Service.AvailableSlots(c.Request.Context(), date, c.Query("service"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "slots": slots})
}

// GetMonthAvailability handles GET /api/availability/month?month=YYYY-MM&service=<title>.
func (h *BookingHandler) GetMonthAvailability(c *gin.Context) {
	month := strings.TrimSpace(c.Query("month"))
	days, err := h.Service.MonthAvailability(c.Request.Context(), month, c.Query("service"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"month": month, "days": days})
}

// CreateBooking handles POST /api/bookings from the public booking form.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	logger := getLogger(c)

	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warn("Invalid booking payload", zap.Error(err))
		badRequest(c, err)
		return
	}

	b, err := h.Service.CreateBooking(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking confirmed",
		"booking": b,
	})
}
