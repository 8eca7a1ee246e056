package handlers

import (
	"errors"
	"strconv"

	"zeelx/internal/core/domain"
	"zeelx/internal/pkg/pagination"
	"zeelx/internal/pkg/response"
	"zeelx/internal/sandbox/services"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan endpoints
type LoanHandler struct {
	loanService    *services.LoanService
	profileService *services.ProfileService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService, profileService *services.ProfileService) *LoanHandler {
	return &LoanHandler{loanService: loanService, profileService: profileService}
}

// RequestLoanRequest represents a loan request body
type RequestLoanRequest struct {
	Amount   int64 `json:"amount"`
	TermDays int   `json:"termDays"`
}

// MyLoans returns one page of the user's loans plus stats
// @Summary List my loans
// @Description Get one page of the user's loans with aggregate stats
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param status query string false "Filter by loan status"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /loans/my-loans [get]
func (h *LoanHandler) MyLoans(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	rows, stats, total, err := h.loanService.List(c.Context(), userID, c.Query("status"), params)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch loans")
	}

	loans := make([]*domain.Loan, 0, len(rows))
	for i := range rows {
		loans = append(loans, rows[i].ToDomain())
	}

	return response.Success(c, "Loans retrieved successfully", fiber.Map{
		"loans": loans,
		"stats": stats,
		"meta":  pagination.GetMeta(params, total),
	})
}

// Get returns a single loan
// @Summary Get loan
// @Description Get one of the user's loans by id
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /loans/{id} [get]
func (h *LoanHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan id")
	}

	loan, err := h.loanService.Get(c.Context(), userID, uint(id))
	if err != nil {
		if errors.Is(err, domain.ErrLoanNotFound) {
			return response.NotFound(c, "Loan not found")
		}
		return response.InternalServerError(c, "Failed to fetch loan")
	}

	return response.Success(c, "Loan retrieved successfully", fiber.Map{
		"loan": loan.ToDomain(),
	})
}

// RequestApproved opens and disburses a loan
// @Summary Request loan
// @Description Request a loan over a supported term; disburses into the wallet on approval
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body RequestLoanRequest true "Amount and term"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/request-approved [post]
func (h *LoanHandler) RequestApproved(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req RequestLoanRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, err := h.loanService.RequestApproved(c.Context(), userID, req.Amount, req.TermDays)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTerm):
			return response.BadRequest(c, "Term must be 14, 30 or 90 days")
		case errors.Is(err, domain.ErrAmountOutOfRange):
			return response.BadRequest(c, "Loan amount outside allowed range")
		case errors.Is(err, domain.ErrProfileNotFound):
			return response.UnprocessableEntity(c, "Submit your profile before requesting a loan")
		case errors.Is(err, domain.ErrProfileNotVerified):
			return response.UnprocessableEntity(c, "Verify your profile before requesting a loan")
		case errors.Is(err, domain.ErrLoanLimitExceeded):
			return response.UnprocessableEntity(c, "Amount exceeds available loan limit")
		default:
			return response.InternalServerError(c, "Failed to request loan")
		}
	}

	return response.Created(c, "Loan disbursed successfully", fiber.Map{
		"loan": loan.ToDomain(),
	})
}

// Pay repays against a loan from the wallet
// @Summary Pay loan
// @Description Repay an amount against a loan from the wallet balance
// @Tags Loans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Param body body AmountRequest true "Payment amount"
// @Success 200 {object} response.Response
// @Failure 402 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/{id}/pay [post]
func (h *LoanHandler) Pay(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan id")
	}

	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	loan, wallet, err := h.loanService.Pay(c.Context(), userID, uint(id), req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be positive")
		case errors.Is(err, domain.ErrLoanNotPayable):
			return response.UnprocessableEntity(c, "Loan is not open for payment")
		case errors.Is(err, domain.ErrOverpaymentRejected):
			return response.UnprocessableEntity(c, "Payment exceeds remaining amount")
		case errors.Is(err, domain.ErrInsufficientFunds):
			return response.PaymentRequired(c, "Insufficient wallet balance")
		default:
			return response.InternalServerError(c, "Failed to process payment")
		}
	}

	return response.Success(c, "Payment processed successfully", fiber.Map{
		"loan":   loan.ToDomain(),
		"wallet": wallet.ToDomain(),
	})
}

// Extend rolls the due date forward one term
// @Summary Extend loan
// @Description Charge the lock portion and roll the due date forward one term
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Param id path int true "Loan ID"
// @Success 200 {object} response.Response
// @Failure 402 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/{id}/extend [post]
func (h *LoanHandler) Extend(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan id")
	}

	loan, wallet, err := h.loanService.Extend(c.Context(), userID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrLoanNotFound):
			return response.NotFound(c, "Loan not found")
		case errors.Is(err, domain.ErrLoanNotExtendable):
			return response.UnprocessableEntity(c, "This loan cannot be extended")
		case errors.Is(err, domain.ErrExtensionLimitReached):
			return response.UnprocessableEntity(c, "Loan extension limit reached")
		case errors.Is(err, domain.ErrLoanNotPayable):
			return response.UnprocessableEntity(c, "Loan is not open for extension")
		case errors.Is(err, domain.ErrInsufficientFunds):
			return response.PaymentRequired(c, "Insufficient wallet balance for the lock payment")
		default:
			return response.InternalServerError(c, "Failed to extend loan")
		}
	}

	return response.Success(c, "Loan extended successfully", fiber.Map{
		"loan":   loan.ToDomain(),
		"wallet": wallet.ToDomain(),
	})
}

// Verify pays the verification fee and unlocks borrowing
// @Summary Verify profile
// @Description Pay the one-off verification fee from the wallet and unlock the loan limit
// @Tags Loans
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 402 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /loans/verify [post]
func (h *LoanHandler) Verify(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	profile, err := h.profileService.Verify(c.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			return response.UnprocessableEntity(c, "Submit your profile before verifying")
		case errors.Is(err, domain.ErrAlreadyVerified):
			return response.UnprocessableEntity(c, "Profile is already verified")
		case errors.Is(err, domain.ErrInsufficientFunds):
			return response.PaymentRequired(c, "Insufficient wallet balance for the verification fee")
		default:
			return response.InternalServerError(c, "Failed to verify profile")
		}
	}

	return response.Success(c, "Profile verified successfully", fiber.Map{
		"profile": profile.ToDomain(),
	})
}
