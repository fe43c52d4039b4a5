package handlers

import (
	"net/http"

	"detailing/models"
	"detailing/services/catalog"

	"github.com/gin-gonic/gin"
)

// CatalogHandler exposes the detailing service catalog.
type CatalogHandler struct {
	Service catalog.CatalogService
}

func NewCatalogHandler(svc catalog.CatalogService) *CatalogHandler {
	return &CatalogHandler{Service: svc}
}

// ListActiveServices is the public listing used by the booking form.
func (h *CatalogHandler) ListActiveServices(c *gin.Context) {
	h.list(c, true)
}

// ListAllServices includes inactive services for the admin dashboard.
func (h *CatalogHandler) ListAllServices(c *gin.Context) {
	h.list(c, false)
}

func (h *CatalogHandler) list(c *gin.Context, activeOnly bool) {
	services, err := h.Service.List(c.Request.Context(), activeOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *CatalogHandler) GetService(c *gin.Context) {
	service, err := h.Service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *CatalogHandler) CreateService(c *gin.Context) {
	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	service, err := h.Service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, service)
}

func (h *CatalogHandler) UpdateService(c *gin.Context) {
	var input models.ServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		badRequest(c, err)
		return
	}
	service, err := h.Service.Update(c.Request.Context(), c.Param("id"), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, service)
}

func (h *CatalogHandler) DeleteService(c *gin.Context) {
	if err := h.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
