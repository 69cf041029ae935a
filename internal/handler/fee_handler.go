package handler

import (
	"github.com/gin-gonic/gin"

	"apartment-be-svc/internal/service"
	"apartment-be-svc/pkg/logger"
	"apartment-be-svc/pkg/utils"
)

// FeeHandler handles fee definition CRUD
type FeeHandler struct {
	feeService service.FeeService
	logger     *logger.Logger
}

// NewFeeHandler creates a new fee handler
func NewFeeHandler(feeService service.FeeService, logger *logger.Logger) *FeeHandler {
	return &FeeHandler{
		feeService: feeService,
		logger:     logger,
	}
}

// ListFees handles GET /api/v1/fees
// @Summary List fee definitions
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=[]models.FeeDefinition} "Fees retrieved successfully"
// @Router /api/v1/fees [get]
func (h *FeeHandler) ListFees(c *gin.Context) {
	fees, err := h.feeService.List(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve fees")
		return
	}
	utils.SuccessResponse(c, "Fees retrieved successfully", fees)
}

// GetFee handles GET /api/v1/fees/:id
// @Summary Get fee definition
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee ID"
// @Success 200 {object} utils.APIResponse{data=models.FeeDefinition} "Fee retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Fee not found"
// @Router /api/v1/fees/{id} [get]
func (h *FeeHandler) GetFee(c *gin.Context) {
	id, err := utils.GetIDParam(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid fee ID", err)
		return
	}

	fee, err := h.feeService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve fee")
		return
	}
	utils.SuccessResponse(c, "Fee retrieved successfully", fee)
}

// CreateFee handles POST /api/v1/fees
// @Summary Create fee definition
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.FeeInput true "Fee definition"
// @Success 201 {object} utils.APIResponse{data=models.FeeDefinition} "Fee created successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request body"
// @Router /api/v1/fees [post]
func (h *FeeHandler) CreateFee(c *gin.Context) {
	var input service.FeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	fee, err := h.feeService.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create fee")
		return
	}
	utils.CreatedResponse(c, "Fee created successfully", fee)
}

// UpdateFee handles PUT /api/v1/fees/:id
// @Summary Update fee definition
// @Tags fees
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee ID"
// @Param request body service.FeeInput true "Fee definition"
// @Success 200 {object} utils.APIResponse{data=models.FeeDefinition} "Fee updated successfully"
// @Failure 404 {object} utils.APIResponse "Fee not found"
// @Router /api/v1/fees/{id} [put]
func (h *FeeHandler) UpdateFee(c *gin.Context) {
	id, err := utils.GetIDParam(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid fee ID", err)
		return
	}

	var input service.FeeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	fee, err := h.feeService.Update(c.Request.Context(), id, input)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update fee")
		return
	}
	utils.SuccessResponse(c, "Fee updated successfully", fee)
}

// DeleteFee handles DELETE /api/v1/fees/:id
// @Summary Delete fee definition
// @Tags fees
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fee ID"
// @Success 200 {object} utils.APIResponse "Fee deleted successfully"
// @Failure 404 {object} utils.APIResponse "Fee not found"
// @Router /api/v1/fees/{id} [delete]
func (h *FeeHandler) DeleteFee(c *gin.Context) {
	id, err := utils.GetIDParam(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid fee ID", err)
		return
	}

	if err := h.feeService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err, "Failed to delete fee")
		return
	}
	utils.SuccessResponse(c, "Fee deleted successfully", nil)
}
