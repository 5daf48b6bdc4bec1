package http

import (
	"net/http"
	"strconv"

	"prive-ledger/pkg/logger"
	"prive-ledger/services/ledger/internal/entity"
	"prive-ledger/services/ledger/internal/usecase"

	"github.com/gin-gonic/gin"
)

type WalletHandler struct {
	ledgerUseCase usecase.LedgerUseCase
	logger        *logger.Logger
}

func NewWalletHandler(ledgerUseCase usecase.LedgerUseCase, logger *logger.Logger) *WalletHandler {
	return &WalletHandler{
		ledgerUseCase: ledgerUseCase,
		logger:        logger,
	}
}

type DepositRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// GetWallet godoc
// @Summary      Get wallet
// @Description  Get account balance for the authenticated user
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  entity.Account
// @Router       /wallet [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
	userID := c.GetString("user_id")

	account, err := h.ledgerUseCase.ProvisionAccount(userID)
	if err != nil {
		h.logger.Error("Failed to get account: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, account)
}

// Deposit godoc
// @Summary      Deposit funds
// @Description  Add funds to the authenticated user's balance
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body DepositRequest true "Deposit amount in cents"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /wallet/deposit [post]
func (h *WalletHandler) Deposit(c *gin.Context) {
	userID := c.GetString("user_id")

	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.ledgerUseCase.ProvisionAccount(userID)
	if err != nil {
		h.logger.Error("Failed to get account: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.ledgerUseCase.Credit(account.ID, req.Amount, entity.TransactionKindDeposit, "Deposit")
	if err != nil {
		respondError(c, h.logger, "Failed to deposit", err)
		return
	}

	balance, err := h.ledgerUseCase.GetBalance(account.ID)
	if err != nil {
		h.logger.Error("Failed to get balance: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"transaction": transaction,
		"balance":     balance,
	})
}

// GetTransactions godoc
// @Summary      Get transactions
// @Description  Get transaction history for the authenticated user, newest first
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Number of transactions"
// @Param        offset query int false "Offset"
// @Success      200  {object}  map[string]interface{}
// @Router       /wallet/transactions [get]
func (h *WalletHandler) GetTransactions(c *gin.Context) {
	userID := c.GetString("user_id")
	limit := 50
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	account, err := h.ledgerUseCase.ProvisionAccount(userID)
	if err != nil {
		h.logger.Error("Failed to get account: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	transactions, err := h.ledgerUseCase.Transactions(account.ID, limit, offset)
	if err != nil {
		h.logger.Error("Failed to get transactions: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transactions": transactions, "count": len(transactions)})
}

// GetEntitlements godoc
// @Summary      Get entitlements
// @Description  Get active subscriptions and unlocked content for the authenticated user
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /wallet/entitlements [get]
func (h *WalletHandler) GetEntitlements(c *gin.Context) {
	userID := c.GetString("user_id")

	account, err := h.ledgerUseCase.ProvisionAccount(userID)
	if err != nil {
		h.logger.Error("Failed to get account: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	entitlements, err := h.ledgerUseCase.Entitlements(account.ID)
	if err != nil {
		h.logger.Error("Failed to get entitlements: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"entitlements": entitlements, "count": len(entitlements)})
}
