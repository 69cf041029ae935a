package handler

import (
	"github.com/gin-gonic/gin"

	"apartment-be-svc/internal/service"
	"apartment-be-svc/pkg/logger"
	"apartment-be-svc/pkg/utils"
)

// HouseholdHandler handles household-related HTTP requests
type HouseholdHandler struct {
	householdService service.HouseholdService
	logger           *logger.Logger
}

// NewHouseholdHandler creates a new household handler
func NewHouseholdHandler(householdService service.HouseholdService, logger *logger.Logger) *HouseholdHandler {
	return &HouseholdHandler{
		householdService: householdService,
		logger:           logger,
	}
}

// ListHouseholds handles GET /api/v1/households
// @Summary List households
// @Description List all households, optionally filtered by room number or owner name
// @Tags households
// @Produce json
// @Security BearerAuth
// @Param search query string false "Room number or owner name"
// @Success 200 {object} utils.APIResponse{data=[]billing.Household} "Households retrieved successfully"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/households [get]
func (h *HouseholdHandler) ListHouseholds(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	households, err := h.householdService.List(c.Request.Context(), actor, c.Query("search"))
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve households")
		return
	}

	utils.SuccessResponse(c, "Households retrieved successfully", households)
}

// GetHousehold handles GET /api/v1/households/:id
// @Summary Get household
// @Description Residents may only read their own household
// @Tags households
// @Produce json
// @Security BearerAuth
// @Param id path int true "Household ID"
// @Success 200 {object} utils.APIResponse{data=billing.Household} "Household retrieved successfully"
// @Failure 400 {object} utils.APIResponse "Invalid household ID"
// @Failure 403 {object} utils.APIResponse "Forbidden"
// @Failure 404 {object} utils.APIResponse "Household not found"
// @Router /api/v1/households/{id} [get]
func (h *HouseholdHandler) GetHousehold(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := utils.GetIDParam(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid household ID", err)
		return
	}

	household, err := h.householdService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve household")
		return
	}

	utils.SuccessResponse(c, "Household retrieved successfully", household)
}
