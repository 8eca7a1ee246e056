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

// WalletHandler handles wallet endpoints
type WalletHandler struct {
	walletService *services.WalletService
}

// NewWalletHandler creates a new wallet handler
func NewWalletHandler(walletService *services.WalletService) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// AmountRequest represents a bare amount body
type AmountRequest struct {
	Amount int64 `json:"amount"`
}

// Get returns the current wallet snapshot
// @Summary Get wallet
// @Description Get the current user's wallet balance and totals
// @Tags Wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /wallet [get]
func (h *WalletHandler) Get(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	wallet, err := h.walletService.Get(c.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return response.NotFound(c, "Wallet not found")
		}
		return response.InternalServerError(c, "Failed to fetch wallet")
	}

	return response.Success(c, "Wallet retrieved successfully", fiber.Map{
		"wallet": wallet.ToDomain(),
	})
}

// CreateDeposit opens a deposit invoice
// @Summary Create deposit
// @Description Open a pending deposit invoice; the balance moves on settlement
// @Tags Wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body AmountRequest true "Deposit amount"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /wallet/deposit [post]
func (h *WalletHandler) CreateDeposit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req AmountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	invoice, err := h.walletService.CreateDeposit(c.Context(), userID, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidAmount):
			return response.BadRequest(c, "Amount must be positive")
		case errors.Is(err, domain.ErrWalletNotFound):
			return response.NotFound(c, "Wallet not found")
		default:
			return response.InternalServerError(c, "Failed to create deposit")
		}
	}

	return response.Created(c, "Deposit invoice created", fiber.Map{
		"transaction": invoice.ToDomain(),
	})
}

// CheckPayment settles a pending deposit invoice
// @Summary Check deposit payment
// @Description Settle a pending deposit invoice and credit the wallet
// @Tags Wallet
// @Produce json
// @Security BearerAuth
// @Param id path int true "Transaction ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /wallet/check-payment/{id} [post]
func (h *WalletHandler) CheckPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid transaction id")
	}

	invoice, wallet, err := h.walletService.CheckPayment(c.Context(), userID, uint(id))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTransactionNotFound):
			return response.NotFound(c, "Deposit invoice not found")
		case errors.Is(err, domain.ErrTransactionSettled):
			return response.UnprocessableEntity(c, "Deposit invoice already settled")
		default:
			return response.InternalServerError(c, "Failed to settle deposit")
		}
	}

	return response.Success(c, "Deposit settled successfully", fiber.Map{
		"transaction": invoice.ToDomain(),
		"wallet":      wallet.ToDomain(),
	})
}

// History returns one page of the ledger
// @Summary Wallet history
// @Description Get one page of the user's transactions, newest first
// @Tags Wallet
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /wallet/history [get]
func (h *WalletHandler) History(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	params := pagination.GetParams(c)
	rows, total, err := h.walletService.History(c.Context(), userID, params)
	if err != nil {
		return response.InternalServerError(c, "Failed to fetch history")
	}

	transactions := make([]*domain.Transaction, 0, len(rows))
	for i := range rows {
		transactions = append(transactions, rows[i].ToDomain())
	}

	return response.Success(c, "History retrieved successfully", fiber.Map{
		"transactions": transactions,
		"meta":         pagination.GetMeta(params, total),
	})
}
