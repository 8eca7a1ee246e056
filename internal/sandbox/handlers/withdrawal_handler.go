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

// WithdrawalHandler handles withdrawal endpoints
type WithdrawalHandler struct {
	withdrawalService *services.WithdrawalService
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalService *services.WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalService: withdrawalService}
}

// Create submits a withdrawal request
// @Summary Create withdrawal
// @Description Hold funds and open a pending withdrawal to a bank account
// @Tags Withdrawals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.WithdrawalInput true "Amount and bank details"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 402 {object} response.Response
// @Router /withdrawals [post]
func (h *WithdrawalHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.WithdrawalInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	withdrawal, err := h.withdrawalService.Create(c.Context(), userID, &input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be positive")
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Bank name and account are required")
		case errors.Is(err, domain.ErrInsufficientFunds):
			return response.PaymentRequired(c, "Insufficient wallet balance")
		case errors.Is(err, domain.ErrWalletNotFound):
			return response.NotFound(c, "Wallet not found")
		default:
			return response.InternalServerError(c, "Failed to create withdrawal")
		}
	}

	return response.Created(c, "Withdrawal requested successfully", fiber.Map{
		"withdrawal": withdrawal.ToDomain(),
	})
}

// List returns one page of withdrawal requests
// @Summary List withdrawals
// @Description Get one page of the user's withdrawal requests, newest first
// @Tags Withdrawals
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /withdrawals [get]
func (h *WithdrawalHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	rows, total, err := h.withdrawalService.List(c.Context(), userID, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch withdrawals")
	}

	withdrawals := make([]*domain.Withdrawal, 0, len(rows))
	for i := range rows {
		withdrawals = append(withdrawals, rows[i].ToDomain())
	}

	return response.Success(c, "Withdrawals retrieved successfully", fiber.Map{
		"withdrawals": withdrawals,
		"meta":        pagination.GetMeta(params, total),
	})
}

// Cancel cancels a pending withdrawal
// @Summary Cancel withdrawal
// @Description Cancel a pending withdrawal and release the held funds
// @Tags Withdrawals
// @Produce json
// @Security BearerAuth
// @Param id path int true "Withdrawal ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /withdrawals/{id} [delete]
func (h *WithdrawalHandler) Cancel(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid withdrawal id")
	}

	withdrawal, wallet, err := h.withdrawalService.Cancel(c.Context(), userID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWithdrawalNotFound):
			return response.NotFound(c, "Withdrawal not found")
		case errors.Is(err, domain.ErrWithdrawalNotOpen):
			return response.UnprocessableEntity(c, "Only pending withdrawals can be cancelled")
		default:
			return response.InternalServerError(c, "Failed to cancel withdrawal")
		}
	}

	return response.Success(c, "Withdrawal cancelled successfully", fiber.Map{
		"withdrawal": withdrawal.ToDomain(),
		"wallet":     wallet.ToDomain(),
	})
}
