package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/flicky/haiti-storefront/internal/dto"
	"github.com/flicky/haiti-storefront/internal/service"
)

// catalogPath is where shoppers are sent when a product cannot be shown.
const catalogPath = "/products"

type ProductHandler struct {
	productService *service.ProductService
	sessions       *service.SessionService
}

func NewProductHandler(productService *service.ProductService, sessions *service.SessionService) *ProductHandler {
	return &ProductHandler{productService: productService, sessions: sessions}
}

func (h *ProductHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found", "redirect": catalogPath})
		return
	}

	resp, err := h.productService.GetByID(c.Request.Context(), id, language(c, h.sessions))
	if err != nil {
		if errors.Is(err, service.ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found", "redirect": catalogPath})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) List(c *gin.Context) {
	var req dto.ListProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.productService.List(c.Request.Context(), req, language(c, h.sessions))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
