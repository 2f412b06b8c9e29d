package handlers

import (
	"edugate/internal/adapters/http/middleware"
	"edugate/internal/core/services"
	"edugate/internal/pkg/pagination"
	"edugate/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// LoanHandler handles loan application endpoints
type LoanHandler struct {
	loanService *services.LoanService
	log         *logrus.Logger
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService, log *logrus.Logger) *LoanHandler {
	return &LoanHandler{
		loanService: loanService,
		log:         log,
	}
}

// SubmitLoanRequest documents the canonical submission body
type SubmitLoanRequest struct {
	ApplicantName    string   `json:"applicant_name"`
	Email            string   `json:"email"`
	Phone            string   `json:"phone"`
	Amount           float64  `json:"amount"`
	Duration         int      `json:"duration"`
	Purpose          string   `json:"purpose"`
	FamilyIncome     *float64 `json:"family_income"`
	CreditScore      *int     `json:"credit_score"`
	PreviousDefaults bool     `json:"previous_defaults"`
	Aadhar           string   `json:"aadhar"`
	DOB              string   `json:"dob"`
}

// UpdateStatusRequest represents status update request body
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// Submit handles loan submission
// @Summary Submit loan application
// @Description Submit a new application. Numbers may be sent as strings and legacy field names are accepted.
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body SubmitLoanRequest true "Application"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/loans/submit [post]
func (h *LoanHandler) Submit(c *fiber.Ctx) error {
	body, err := parseLoanBody(c.Body())
	if err != nil {
		return handleError(c, h.log, err, "")
	}

	input, err := body.toSubmitInput()
	if err != nil {
		return handleError(c, h.log, err, "")
	}

	loan, err := h.loanService.Submit(c.Context(), middleware.CallerFrom(c), input)
	if err != nil {
		return handleError(c, h.log, err, "Failed to submit loan application")
	}

	return response.Success(c, "Loan application submitted successfully", fiber.Map{
		"loan": loan,
	})
}

// List handles listing every application
// @Summary List loan applications
// @Description Get all applications, newest first. Passing page or limit returns a single page plus meta.
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page (max 100)"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/loans [get]
func (h *LoanHandler) List(c *fiber.Ctx) error {
	if pagination.Requested(c) {
		params := pagination.GetParams(c)
		loans, total, err := h.loanService.ListPage(c.Context(), middleware.CallerFrom(c), params.Offset, params.Limit)
		if err != nil {
			return handleError(c, h.log, err, "Failed to get loan applications")
		}
		return response.Success(c, "Loan applications retrieved successfully", fiber.Map{
			"requests": loans,
			"meta":     pagination.GetMeta(params, total),
		})
	}

	loans, err := h.loanService.List(c.Context(), middleware.CallerFrom(c))
	if err != nil {
		return handleError(c, h.log, err, "Failed to get loan applications")
	}

	return response.Success(c, "Loan applications retrieved successfully", fiber.Map{
		"requests": loans,
	})
}

// ListMine handles listing the caller's own applications
// @Summary My loan applications
// @Description Get the applications submitted by the current student
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /api/loans/mine [get]
func (h *LoanHandler) ListMine(c *fiber.Ctx) error {
	loans, err := h.loanService.ListMine(c.Context(), middleware.CallerFrom(c))
	if err != nil {
		return handleError(c, h.log, err, "Failed to get loan applications")
	}

	return response.Success(c, "Loan applications retrieved successfully", fiber.Map{
		"loans": loans,
	})
}

// Get handles getting one application
// @Summary Get loan application
// @Description Get a single application by ID
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/loans/{id} [get]
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	loan, err := h.loanService.Get(c.Context(), middleware.CallerFrom(c), c.Params("id"))
	if err != nil {
		return handleError(c, h.log, err, "Failed to get loan application")
	}

	return response.Success(c, "Loan application retrieved successfully", fiber.Map{
		"loan": loan,
	})
}

// UpdateStatus handles the review decision
// @Summary Update loan status
// @Description Approve or cancel an application that is under review
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Application ID"
// @Param body body UpdateStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /api/loans/{id}/status [post]
func (h *LoanHandler) UpdateStatus(c *fiber.Ctx) error {
	var req UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.SetStatus(c.Context(), middleware.CallerFrom(c), c.Params("id"), req.Status)
	if err != nil {
		return handleError(c, h.log, err, "Failed to update loan status")
	}

	return response.Success(c, "Loan status updated successfully", fiber.Map{
		"loan": loan,
	})
}
