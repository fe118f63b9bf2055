package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/haiti-storefront/internal/dto"
	"github.com/flicky/haiti-storefront/internal/middleware"
	"github.com/flicky/haiti-storefront/internal/service"
)

type CartHandler struct {
	svc      *service.CartService
	sessions *service.SessionService
}

func NewCartHandler(svc *service.CartService, sessions *service.SessionService) *CartHandler {
	return &CartHandler{svc: svc, sessions: sessions}
}

func (h *CartHandler) GetCart(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), middleware.GetSessionID(c), language(c, h.sessions))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.svc.AddItem(c.Request.Context(), middleware.GetSessionID(c), req, language(c, h.sessions))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.svc.UpdateItem(c.Request.Context(), middleware.GetSessionID(c), req, language(c, h.sessions))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req dto.RemoveCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.svc.RemoveItem(c.Request.Context(), middleware.GetSessionID(c), req, language(c, h.sessions))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CartHandler) Clear(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
