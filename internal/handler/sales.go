package handler

import (
	"net/http"

	"storepos/internal/apierror"
	"storepos/internal/dto"
	"storepos/internal/infra"
	"storepos/internal/service"

	"github.com/gin-gonic/gin"
)

type SalesHandler struct {
	svc       service.SalesService
	exportDir string
}

func NewSalesHandler(svc service.SalesService, exportDir string) *SalesHandler {
	return &SalesHandler{svc: svc, exportDir: exportDir}
}

func (h *SalesHandler) Record(c *gin.Context) {
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordSale(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("date bounds must be YYYY-MM-DD"))
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Receipt generates a PDF receipt for a recorded sale and streams it back.
func (h *SalesHandler) Receipt(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	sale, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	path, err := infra.GenerateReceiptPDF(sale, h.exportDir)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.FileAttachment(path, "receipt.pdf")
}
