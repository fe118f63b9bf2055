package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/flicky/haiti-storefront/internal/dto"
	"github.com/flicky/haiti-storefront/internal/middleware"
	"github.com/flicky/haiti-storefront/internal/service"
)

type CheckoutHandler struct {
	svc      *service.CheckoutService
	sessions *service.SessionService
}

func NewCheckoutHandler(svc *service.CheckoutService, sessions *service.SessionService) *CheckoutHandler {
	return &CheckoutHandler{svc: svc, sessions: sessions}
}

func (h *CheckoutHandler) Start(c *gin.Context) {
	resp, err := h.svc.Start(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, http.StatusCreated, resp, err)
}

func (h *CheckoutHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) SetDelivery(c *gin.Context) {
	var req dto.DeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.svc.SetDelivery(c.Request.Context(), middleware.GetSessionID(c), req)
	h.respond(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) Next(c *gin.Context) {
	resp, err := h.svc.Next(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) Back(c *gin.Context) {
	resp, err := h.svc.Back(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) Terms(c *gin.Context) {
	var req dto.TermsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.svc.AgreeTerms(c.Request.Context(), middleware.GetSessionID(c), req.AgreeTerms)
	h.respond(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	resp, err := h.svc.Place(c.Request.Context(), middleware.GetSessionID(c), middleware.GetUserID(c), req, language(c, h.sessions))
	h.respond(c, http.StatusCreated, resp, err)
}

func (h *CheckoutHandler) Dispatch(c *gin.Context) {
	resp, err := h.svc.Dispatch(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) Dismiss(c *gin.Context) {
	resp, err := h.svc.Dismiss(c.Request.Context(), middleware.GetSessionID(c))
	h.respond(c, http.StatusOK, resp, err)
}

func (h *CheckoutHandler) Abandon(c *gin.Context) {
	if err := h.svc.Abandon(c.Request.Context(), middleware.GetSessionID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CheckoutHandler) respond(c *gin.Context, status int, resp *dto.CheckoutResponse, err error) {
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, resp)
}
