package handlers

import (
	"myfinbank-admin/internal/core/domain"
	"myfinbank-admin/internal/core/services"
	"myfinbank-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles customer management endpoints
type CustomerHandler struct {
	customerService *services.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List lists all customers
// @Summary List customers
// @Description All customers, newest registration first
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/customers/api/all [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	customers, err := h.customerService.List(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Customers retrieved successfully", customers)
}

// ListActive lists active customers
// @Summary List active customers
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/customers/api/active [get]
func (h *CustomerHandler) ListActive(c *fiber.Ctx) error {
	customers, err := h.customerService.ListActive(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Active customers retrieved successfully", customers)
}

// Search finds customers by name or email
// @Summary Search customers
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param keyword query string true "Name or email fragment"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/customers/api/search [get]
func (h *CustomerHandler) Search(c *fiber.Ctx) error {
	customers, err := h.customerService.Search(c.UserContext(), c.Query("keyword"))
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Customers retrieved successfully", customers)
}

// Recent lists the latest registrations
// @Summary Recent customers
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /admin/customers/api/recent [get]
func (h *CustomerHandler) Recent(c *fiber.Ctx) error {
	customers, err := h.customerService.Recent(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Recent customers retrieved successfully", customers)
}

// Stats reports customer counts
// @Summary Customer statistics
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=models.CustomerStats}
// @Router /admin/customers/api/stats [get]
func (h *CustomerHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.customerService.Stats(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Customer statistics retrieved successfully", stats)
}

// GetByID returns one customer
// @Summary Get customer
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/customers/api/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, err := customerID(c)
	if err != nil {
		return writeError(c, err)
	}

	customer, err := h.customerService.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Customer retrieved successfully", customer)
}

// ToggleStatus activates or deactivates a customer account
// @Summary Toggle customer status
// @Tags Customers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Customer ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/customers/api/{id}/toggle-status [post]
func (h *CustomerHandler) ToggleStatus(c *fiber.Ctx) error {
	id, err := customerID(c)
	if err != nil {
		return writeError(c, err)
	}

	customer, err := h.customerService.ToggleStatus(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}

	message := "Customer account deactivated successfully"
	if customer.Active {
		message = "Customer account activated successfully"
	}
	return response.Success(c, message, customer)
}

func customerID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, domain.NewError(domain.KindInvalidInput, "invalid customer id")
	}
	return uint(id), nil
}
