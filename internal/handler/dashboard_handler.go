package handler

import (
	"github.com/gin-gonic/gin"

	"apartment-be-svc/internal/service"
	"apartment-be-svc/pkg/logger"
	"apartment-be-svc/pkg/utils"
)

// DashboardHandler handles dashboard-related HTTP requests
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *logger.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService service.DashboardService, logger *logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// GetAdminDashboard handles GET /api/v1/dashboard/admin
// @Summary Admin dashboard
// @Description Stat cards, six-month revenue and debt series, recent payments and collection rate
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=billing.DashboardSummary} "Dashboard retrieved successfully"
// @Failure 500 {object} utils.APIResponse "Internal server error"
// @Router /api/v1/dashboard/admin [get]
func (h *DashboardHandler) GetAdminDashboard(c *gin.Context) {
	summary, err := h.dashboardService.GetAdminDashboard(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve dashboard")
		return
	}

	utils.SuccessResponse(c, "Dashboard retrieved successfully", summary)
}

// GetResidentDashboard handles GET /api/v1/dashboard/resident
// @Summary Resident dashboard
// @Description Own household, outstanding amount and the latest payments
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.APIResponse{data=response.ResidentDashboardResponse} "Dashboard retrieved successfully"
// @Failure 403 {object} utils.APIResponse "No household linked to the account"
// @Router /api/v1/dashboard/resident [get]
func (h *DashboardHandler) GetResidentDashboard(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	dashboard, err := h.dashboardService.GetResidentDashboard(c.Request.Context(), actor)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve dashboard")
		return
	}

	utils.SuccessResponse(c, "Dashboard retrieved successfully", dashboard)
}
