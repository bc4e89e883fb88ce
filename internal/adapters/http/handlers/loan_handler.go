package handlers

import (
	"fmt"

	"myfinbank-admin/internal/core/domain"
	"myfinbank-admin/internal/core/services"
	"myfinbank-admin/internal/pkg/pagination"
	"myfinbank-admin/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan approval endpoints
type LoanHandler struct {
	loanService *services.LoanApprovalService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanApprovalService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// ListPending lists pending applications
// @Summary List pending loans
// @Description Pending applications, oldest first
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/loans/api/pending [get]
func (h *LoanHandler) ListPending(c *fiber.Ctx) error {
	loans, err := h.loanService.ListPending(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Pending loans retrieved successfully", loans)
}

// ListByStatus lists applications with a given status
// @Summary List loans by status
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param status path string true "PENDING, APPROVED or REJECTED"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/loans/api/status/{status} [get]
func (h *LoanHandler) ListByStatus(c *fiber.Ctx) error {
	page, err := h.loanService.ListByStatus(c.UserContext(), c.Params("status"), pagination.GetParams(c))
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Loans retrieved successfully", page)
}

// GetByID returns one application
// @Summary Get loan
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /admin/loans/api/{id} [get]
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	id, err := loanID(c)
	if err != nil {
		return writeError(c, err)
	}

	loan, err := h.loanService.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return response.Success(c, "Loan retrieved successfully", loan)
}

// Approve approves a pending application
// @Summary Approve loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body services.DecisionInput false "Remarks"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/loans/api/approve/{id} [post]
func (h *LoanHandler) Approve(c *fiber.Ctx) error {
	return h.decide(c, domain.DecisionApprove, "Loan approved successfully")
}

// Reject rejects a pending application
// @Summary Reject loan
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body services.DecisionInput false "Remarks"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/loans/api/reject/{id} [post]
func (h *LoanHandler) Reject(c *fiber.Ctx) error {
	return h.decide(c, domain.DecisionReject, "Loan rejected successfully")
}

// BatchProcess applies one decision to many applications
// @Summary Batch approve/reject
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.BatchInput true "Loan ids, action (approve|reject) and remarks"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /admin/loans/api/batch-process [post]
func (h *LoanHandler) BatchProcess(c *fiber.Ctx) error {
	id, err := identity(c)
	if err != nil {
		return writeError(c, err)
	}

	var input services.BatchInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	result, err := h.loanService.BatchProcess(c.UserContext(), &input, id.Subject)
	if err != nil {
		return writeError(c, err)
	}

	message := fmt.Sprintf("Processed %d loans successfully, %d failed", result.SuccessCount, result.ErrorCount)
	return response.Success(c, message, result)
}

func (h *LoanHandler) decide(c *fiber.Ctx, decision domain.Decision, message string) error {
	actor, err := identity(c)
	if err != nil {
		return writeError(c, err)
	}

	id, err := loanID(c)
	if err != nil {
		return writeError(c, err)
	}

	var input services.DecisionInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}
	if input.Remarks == "" {
		input.Remarks = c.Query("remarks")
	}

	loan, err := h.loanService.Decide(c.UserContext(), id, decision, actor.Subject, input.Remarks)
	if err != nil {
		return writeError(c, err)
	}

	return response.Success(c, message, loan.ToResponse())
}

func loanID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, domain.NewError(domain.KindInvalidInput, "invalid loan id")
	}
	return uint(id), nil
}
