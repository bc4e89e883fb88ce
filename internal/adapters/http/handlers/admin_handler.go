package handlers

import (
	"myfinbank-admin/internal/core/services"
	"myfinbank-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the signed-in admin's profile endpoints
type AdminHandler struct {
	adminService *services.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// GetProfile returns the current admin
// @Summary Get profile
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/admin/profile [get]
func (h *AdminHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.adminService.GetProfile(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Profile retrieved successfully", profile)
}

// UpdateProfile changes the current admin's name and phone
// @Summary Update profile
// @Tags Admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.UpdateProfileInput true "Profile fields"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/admin/profile [put]
func (h *AdminHandler) UpdateProfile(c *fiber.Ctx) error {
	var input services.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	profile, err := h.adminService.UpdateProfile(c.UserContext(), &input)
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Profile updated successfully", profile)
}
