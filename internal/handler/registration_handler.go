package handler

import (
	"github.com/gin-gonic/gin"

	"apartment-be-svc/internal/models"
	"apartment-be-svc/internal/service"
	"apartment-be-svc/pkg/logger"
	"apartment-be-svc/pkg/utils"
)

// RegistrationHandler handles temporary residence and absence requests
type RegistrationHandler struct {
	registrationService service.RegistrationService
	logger              *logger.Logger
}

// NewRegistrationHandler creates a new registration handler
func NewRegistrationHandler(registrationService service.RegistrationService, logger *logger.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		registrationService: registrationService,
		logger:              logger,
	}
}

// ReviewRegistrationRequest approves or rejects a pending request
type ReviewRegistrationRequest struct {
	Approved *bool  `json:"approved" binding:"required" example:"true"`
	Note     string `json:"note" example:"Documents verified"`
}

// ListRegistrations handles GET /api/v1/registrations
// @Summary List registrations
// @Description Residents only see requests of their own household
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (0-based)" default(0)
// @Param size query int false "Page size" default(10)
// @Param status query string false "PENDING, APPROVED or REJECTED"
// @Param type query string false "TEMPORARY_RESIDENCE or TEMPORARY_ABSENCE"
// @Success 200 {object} utils.PaginatedResponse "Registrations retrieved successfully"
// @Router /api/v1/registrations [get]
func (h *RegistrationHandler) ListRegistrations(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	page, size := utils.GetPaginationParams(c)
	query := service.RegistrationQuery{
		Status: models.RegistrationStatus(c.Query("status")),
		Type:   models.RegistrationType(c.Query("type")),
		Page:   page,
		Size:   size,
	}

	registrations, total, err := h.registrationService.List(c.Request.Context(), actor, query)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve registrations")
		return
	}

	utils.PaginatedSuccessResponse(c, "Registrations retrieved successfully", registrations, page, size, total)
}

// GetRegistration handles GET /api/v1/registrations/:id
// @Summary Get registration
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} utils.APIResponse{data=models.TemporaryRegistration} "Registration retrieved successfully"
// @Failure 404 {object} utils.APIResponse "Registration not found"
// @Router /api/v1/registrations/{id} [get]
func (h *RegistrationHandler) GetRegistration(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := utils.GetIDParam(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid registration ID", err)
		return
	}

	registration, err := h.registrationService.Get(c.Request.Context(), actor, id)
	if err != nil {
		respondError(c, h.logger, err, "Failed to retrieve registration")
		return
	}
	utils.SuccessResponse(c, "Registration retrieved successfully", registration)
}

// CreateRegistration handles POST /api/v1/registrations
// @Summary Create registration
// @Description Requests by residents start PENDING; requests created by an admin are approved immediately
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body service.RegistrationInput true "Registration"
// @Success 201 {object} utils.APIResponse{data=models.TemporaryRegistration} "Registration created successfully"
// @Failure 400 {object} utils.APIResponse "Invalid request body"
// @Failure 403 {object} utils.APIResponse "Resident belongs to another household"
// @Router /api/v1/registrations [post]
func (h *RegistrationHandler) CreateRegistration(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	var input service.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	registration, err := h.registrationService.Create(c.Request.Context(), actor, input)
	if err != nil {
		respondError(c, h.logger, err, "Failed to create registration")
		return
	}
	utils.CreatedResponse(c, "Registration created successfully", registration)
}

// UpdateRegistration handles PUT /api/v1/registrations/:id
// @Summary Update registration
// @Description Residents may only edit their own pending requests
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Param request body service.RegistrationInput true "Registration"
// @Success 200 {object} utils.APIResponse{data=models.TemporaryRegistration} "Registration updated successfully"
// @Failure 409 {object} utils.APIResponse "Registration already reviewed"
// @Router /api/v1/registrations/{id} [put]
func (h *RegistrationHandler) UpdateRegistration(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := utils.GetIDParam(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid registration ID", err)
		return
	}

	var input service.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	registration, err := h.registrationService.Update(c.Request.Context(), actor, id, input)
	if err != nil {
		respondError(c, h.logger, err, "Failed to update registration")
		return
	}
	utils.SuccessResponse(c, "Registration updated successfully", registration)
}

// ReviewRegistration handles PUT /api/v1/registrations/:id/approval
// @Summary Approve or reject registration
// @Tags registrations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Param request body ReviewRegistrationRequest true "Decision"
// @Success 200 {object} utils.APIResponse{data=models.TemporaryRegistration} "Registration reviewed successfully"
// @Failure 409 {object} utils.APIResponse "Registration already reviewed"
// @Router /api/v1/registrations/{id}/approval [put]
func (h *RegistrationHandler) ReviewRegistration(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := utils.GetIDParam(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid registration ID", err)
		return
	}

	var req ReviewRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err)
		return
	}

	registration, err := h.registrationService.Review(c.Request.Context(), actor, id, *req.Approved, req.Note)
	if err != nil {
		respondError(c, h.logger, err, "Failed to review registration")
		return
	}
	utils.SuccessResponse(c, "Registration reviewed successfully", registration)
}

// DeleteRegistration handles DELETE /api/v1/registrations/:id
// @Summary Delete registration
// @Tags registrations
// @Produce json
// @Security BearerAuth
// @Param id path int true "Registration ID"
// @Success 200 {object} utils.APIResponse "Registration deleted successfully"
// @Failure 409 {object} utils.APIResponse "Registration already reviewed"
// @Router /api/v1/registrations/{id} [delete]
func (h *RegistrationHandler) DeleteRegistration(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := utils.GetIDParam(c)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid registration ID", err)
		return
	}

	if err := h.registrationService.Delete(c.Request.Context(), actor, id); err != nil {
		respondError(c, h.logger, err, "Failed to delete registration")
		return
	}
	utils.SuccessResponse(c, "Registration deleted successfully", nil)
}
