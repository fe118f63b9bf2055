package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/flicky/haiti-storefront/internal/dto"
	"github.com/flicky/haiti-storefront/internal/lifecycle"
	"github.com/flicky/haiti-storefront/internal/middleware"
	"github.com/flicky/haiti-storefront/internal/model"
	"github.com/flicky/haiti-storefront/internal/service"
)

type OrderHandler struct {
	orderService *service.OrderService
}

func NewOrderHandler(orderService *service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListByUserID(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderListResponse(orders))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}

	order, err := h.orderService.GetByID(c.Request.Context(), orderID, middleware.GetUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func toOrderListResponse(orders []model.Order) dto.OrderListResponse {
	items := make([]dto.OrderResponse, 0, len(orders))
	for i := range orders {
		items = append(items, toOrderResponse(&orders[i]))
	}
	return dto.OrderListResponse{Orders: items, Total: len(items)}
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        item.ID,
			ProductID: item.ProductID,
			Name:      item.Name,
			Quantity:  item.Quantity,
			Size:      item.Size,
			Color:     item.Color,
			Price:     item.Price,
		})
	}
	return dto.OrderResponse{
		ID:                  order.ID,
		UserID:              order.UserID,
		OrderNumber:         order.OrderNumber,
		Customer:            order.Customer,
		DeliveryMethod:      order.DeliveryMethod,
		DeliveryAddress:     order.DeliveryAddress,
		Breakdown:           lifecycle.Breakdown(order),
		PaymentStatus:       order.PaymentStatus,
		OrderStatus:         order.OrderStatus,
		SpecialInstructions: order.SpecialInstructions,
		FirstPaymentDate:    order.FirstPaymentDate,
		FinalPaymentDate:    order.FinalPaymentDate,
		ConfirmedAt:         order.ConfirmedAt,
		ReadyAt:             order.ReadyAt,
		DeliveredAt:         order.DeliveredAt,
		Items:               items,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
	}
}
