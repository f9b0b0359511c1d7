package handler

import (
	"errors"
	"net/http"

	"starpro_store/internal/model"
	"starpro_store/internal/service"
	"starpro_store/internal/view"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	service   service.CustomerService
	formatter view.Formatter
}

func NewCustomerHandler(s service.CustomerService, formatter view.Formatter) *CustomerHandler {
	return &CustomerHandler{service: s, formatter: formatter}
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.service.List(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list customers"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": h.formatter.CustomerCards(customers)})
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req model.AddCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err, &req)
		return
	}

	customer, err := h.service.AddCustomer(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrMissingField) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add customer"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

// RegisterCustomerRoutes registers the owner-only customer routes.
func (h *CustomerHandler) RegisterCustomerRoutes(rg *gin.RouterGroup, authMiddlewares ...gin.HandlerFunc) {
	customerGroup := rg.Group("/customers", authMiddlewares...)
	{
		customerGroup.GET("", h.List)
		customerGroup.POST("", h.Create)
	}
}
