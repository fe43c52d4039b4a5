package handlers

import (
	"net/http"

	"detailing/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ListBookings handles GET /api/admin/bookings?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Passing only from (or date) lists a single day.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	from := c.Query("from")
	if from == "" {
		from = c.Query("date")
	}
	bookings, err := h.Service.ListBookings(c.Request.Context(), from, c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings, "count": len(bookings)})
}

func (h *BookingHandler) GetBooking(c *gin.Context) {
	b, err := h.Service.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateBookingStatus handles PATCH /api/admin/bookings/:id/status.
func (h *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	var body models.BookingStatusUpdate
	if err := c.ShouldBindJSON(&body); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Service.UpdateStatus(c.Request.Context(), c.Param("id"), body.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) CancelBooking(c *gin.Context) {
	b, err := h.Service.CancelBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	if err := h.Service.DeleteBooking(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateOverrideBooking handles POST /api/admin/bookings/override. It may double-book.
func (h *BookingHandler) CreateOverrideBooking(c *gin.Context) {
	var input models.BookingInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	b, err := h.Service.CreateOverrideBooking(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	getLogger(c).Warn("Admin override booking", zap.String("bookingID", b.ID), zap.String("ip", c.ClientIP()))
	c.JSON(http.StatusCreated, b)
}
