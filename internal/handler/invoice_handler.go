package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"apartment-be-svc/internal/service"
	"apartment-be-svc/pkg/logger"
	"apartment-be-svc/pkg/utils"
)

const excelContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InvoiceHandler handles invoice-related HTTP requests
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	logger         *logger.Logger
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService service.InvoiceService, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		logger:         logger,
	}
}

// SettleInvoiceRequest optionally pins the amount the payer expects to pay
type SettleInvoiceRequest struct {
	Amount *int64 `json:"amount" example:"500000"`
}

// SettleBatchRequest lists the invoices to settle, in order
type SettleBatchRequest struct {
	InvoiceIDs []uint `json:"invoice_ids" binding:"required" example:"5,6"`
}

// GenerateInvoicesRequest selects the billing period to generate
type GenerateInvoicesRequest struct {
	Month int `json:"month" binding:"required,min=1,max=12" example:"4"`
	Year  int `json:"year" binding:"required,min=2000" example:"2024"`
}

// ListInvoices handles GET /api/v1/invoices
// @Summary List invoices
// @Description Zero-based paginated invoices. Residents only see their own household.
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (0-based)" default(0)
// @Param size query int false "Page size (max 1000)" default(10)
// @Param search query string false "Title or room number"
// @Param status query string false "paid or unpaid"
// @Success 200 {object} utils.APIResponse{data=billing.InvoicePage} "Invoices retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Invalid status"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/invoices [get]
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	page, size := utils.GetPaginationParams(c)
	result, err := h.invoiceService.List(c.Request.Context(), actor, service.InvoiceQuery{
		Page:   page,
		Size:   size,
		Search: c.Query("search"),
		Status: c.Query("status"),
	})
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve invoices")
		return
	}

	utils.SuccessResponse(c, "Invoices retrieved successfully", result)
}

// GetInvoice handles GET /api/v1/invoices/:id
// @Summary Get invoice
// @Description Invoice with its line items
// @Tags invoices
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Success 200 {object} utils.APIResponse{data=billing.Invoice} "Invoice retrieved successfully"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Invoice not found"
// @Router /api/v1/invoices/{id} [get]
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := utils.GetIDParam(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid invoice ID", err)
		return
	}

	invoice, err := h.invoiceService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve invoice")
		return
	}

	utils.SuccessResponse(c, "Invoice retrieved successfully", invoice)
}

// SettleInvoice handles POST /api/v1/invoices/:id/settle
// @Summary Settle invoice
// @Description Record a simulated payment for an unpaid invoice
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Invoice ID"
// @Param request body SettleInvoiceRequest false "Expected amount"
// @Success 200 {object} utils.APIResponse "Payment successful"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Invoice not found"
// @Failure 409 {object} utils.APIResponse "Invoice is already paid"
// @Router /api/v1/invoices/{id}/settle [post]
func (h *InvoiceHandler) SettleInvoice(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := utils.GetIDParam(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid invoice ID", err)
		return
	}

	var req SettleInvoiceRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.BadRequestResponse(c, "Invalid request body", err)
			return
		}
	}

	message, err := h.invoiceService.Settle(c.Request.Context(), actor, id, req.Amount)
	if err != nil {
		respondError(c, h.logger, err, "Failed to settle invoice")
		return
	}

	utils.SuccessResponse(c, message, gin.H{"invoice_id": id})
}

// SettleBatch handles POST /api/v1/invoices/settle-batch
// @Summary Settle several invoices
// @Description Settles the invoices one by one in the given order and stops at the first failure.
// @Description A failed batch answers 409 with the failure message; data still lists what was settled before it.
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SettleBatchRequest true "Invoice IDs"
// @Success 200 {object} utils.APIResponse{data=billing.BatchResult} "Every invoice settled"
// @Failure 400 {object} utils.APIResponse "Empty or invalid selection"
// @Failure 409 {object} utils.APIResponse{data=billing.BatchResult} "Batch stopped at the first failure"
// @Router /api/v1/invoices/settle-batch [post]
func (h *InvoiceHandler) SettleBatch(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var req SettleBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	result, err := h.invoiceService.SettleBatch(c.Request.Context(), actor, req.InvoiceIDs)
	if err != nil {
		respondError(c, h.logger, err, "Failed to settle invoices")
		return
	}

	if !result.Succeeded {
		utils.FailureResponse(c, http.StatusConflict, result.FailureMessage, result)
		return
	}
	utils.SuccessResponse(c, result.Joined(), result)
}

// GenerateInvoices handles POST /api/v1/invoices/generate
// @Summary Generate monthly invoices
// @Description Create invoices for every occupied household from the mandatory monthly fees
// @Tags invoices
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body GenerateInvoicesRequest true "Billing period"
// @Success 201 {object} utils.APIResponse{data=service.GenerateInvoicesResponse} "Invoices generated"
// @Failure 400 {object} utils.APIResponse "Invalid period"
// @Router /api/v1/invoices/generate [post]
func (h *InvoiceHandler) GenerateInvoices(c *gin.Context) {
	var req GenerateInvoicesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	result, err := h.invoiceService.GenerateMonthly(c.Request.Context(), req.Month, req.Year)
	if err != nil {
		respondError(c, h.logger, err, "Failed to generate invoices")
		return
	}

	utils.CreatedResponse(c, fmt.Sprintf("Generated %d invoices", result.CreatedCount), result)
}

// ExportInvoices handles GET /api/v1/invoices/export
// @Summary Export invoices to Excel
// @Tags invoices
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param status query string false "paid or unpaid"
// @Param month query int false "Month (1-12)"
// @Param year query int false "Year"
// @Success 200 {file} file "Excel file"
// @Failure 400 {object} utils.APIResponse "Invalid parameter"
// @Router /api/v1/invoices/export [get]
func (h *InvoiceHandler) ExportInvoices(c *gin.Context) {
	filter := service.InvoiceExportFilter{Status: c.Query("status")}

	month, err := optionalIntQuery(c, "month")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid month parameter format", err)
		return
	}
	year, err := optionalIntQuery(c, "year")
	if err != nil {
		utils.BadRequestResponse(c, "Invalid year parameter format", err)
		return
	}
	filter.Month = month
	filter.Year = year

	content, filename, err := h.invoiceService.ExportToExcel(c.Request.Context(), filter)
	if err != nil {
		respondError(c, h.logger, err, "Failed to export invoices")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, excelContentType, content)
}

func optionalIntQuery(c *gin.Context, name string) (*int, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
