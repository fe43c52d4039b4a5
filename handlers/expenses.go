package handlers

import (
	"net/http"

	"detailing/models"
	"detailing/services/expense"

	"github.com/gin-gonic/gin"
)

type ExpenseHandler struct {
	Service expense.ExpenseService
}

func NewExpenseHandler(svc expense.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{Service: svc}
}

// ListExpenses handles GET /api/admin/expenses?month=YYYY-MM.
func (h *ExpenseHandler) ListExpenses(c *gin.Context) {
	expenses, err := h.Service.List(c.Request.Context(), c.Query("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}
	c.JSON(http.StatusOK, gin.H{"expenses": expenses, "total": total})
}

func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var input models.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	e, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	var input models.ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	e, err := h.Service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
