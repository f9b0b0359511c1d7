package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"starpro_store/internal/model"
	"starpro_store/internal/service"
	"starpro_store/internal/view"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	service   service.OrderService
	formatter view.Formatter
}

func NewOrderHandler(s service.OrderService, formatter view.Formatter) *OrderHandler {
	return &OrderHandler{service: s, formatter: formatter}
}

type createOrderBody struct {
	Item   string          `json:"item"`
	Items  []string        `json:"items"`
	Amount json.RawMessage `json:"amount"`
	Method string          `json:"method"`
}

// amountText accepts the amount as a JSON number or string.
func amountText(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	if bytes.Equal(raw, []byte("null")) {
		return ""
	}
	return string(raw)
}

// Create submits the order and waits for it to be committed.
func (h *OrderHandler) Create(c *gin.Context) {
	var body createOrderBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err, &body)
		return
	}

	sub, err := h.service.Submit(c.Request.Context(), model.CreateOrderRequest{
		Item:   body.Item,
		Items:  body.Items,
		Amount: amountText(body.Amount),
		Method: body.Method,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionInProgress):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrInvalidAmount), errors.Is(err, service.ErrEmptyItem):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrNoSession):
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		default:
			_ = c.Error(err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		}
		return
	}

	receipt, err := sub.Wait(c.Request.Context())
	if err != nil {
		if c.Request.Context().Err() != nil {
			// the commit carries on without the caller
			c.JSON(http.StatusAccepted, gin.H{"state": service.StateSubmitting})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to place order"})
		return
	}

	resp := gin.H{
		"message":       "Order placed",
		"order":         receipt.Order,
		"total_display": receipt.TotalDisplay,
		"next":          view.RouteOrders,
	}
	if receipt.Notification != nil {
		resp["notification"] = receipt.Notification
		resp["redirect_url"] = receipt.Notification.URL
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *OrderHandler) List(c *gin.Context) {
	orders, sess, err := h.service.List(c.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoSession) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": h.formatter.OrderTable(orders, *sess)})
}

func (h *OrderHandler) Submission(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"state": h.service.State()})
}

// RegisterOrderRoutes registers order routes for any logged-in session.
func (h *OrderHandler) RegisterOrderRoutes(rg *gin.RouterGroup, authMiddlewares ...gin.HandlerFunc) {
	orderGroup := rg.Group("/orders", authMiddlewares...)
	{
		orderGroup.POST("", h.Create)
		orderGroup.GET("", h.List)
		orderGroup.GET("/submission", h.Submission)
	}
}
