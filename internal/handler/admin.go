package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/flicky/haiti-storefront/internal/admin"
	"github.com/flicky/haiti-storefront/internal/dto"
	"github.com/flicky/haiti-storefront/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminHandler struct {
	adminService *service.AdminService
}

func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.adminService.ListOrders(c.Request.Context(), c.DefaultQuery("status", admin.FilterAll))
	if err != nil {
		respondError(c, err)
		return
	}
	resp := toOrderListResponse(orders)
	for i := range resp.Orders {
		resp.Orders[i].AdminNotes = orders[i].AdminNotes
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order ID"})
		return
	}
	var req dto.StatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.adminService.UpdateStatus(c.Request.Context(), id, req.Field, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	resp := toOrderResponse(order)
	resp.AdminNotes = order.AdminNotes
	c.JSON(http.StatusOK, resp)
}

func (h *AdminHandler) BulkUpdate(c *gin.Context) {
	var req dto.BulkStatusUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.adminService.BulkUpdate(c.Request.Context(), req.OrderIDs, req.Field, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BulkStatusUpdateResponse{Results: results})
}

// Export streams the filtered orders as an .xlsx attachment. The workbook is
// built in memory first so a failure still yields a JSON error.
func (h *AdminHandler) Export(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.adminService.Export(c.Request.Context(), &buf, c.DefaultQuery("status", admin.FilterAll)); err != nil {
		respondError(c, err)
		return
	}
	filename := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
