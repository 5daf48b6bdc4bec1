package http

import (
	"net/http"

	"prive-ledger/pkg/logger"
	"prive-ledger/services/ledger/internal/usecase"

	"github.com/gin-gonic/gin"
)

type PayoutHandler struct {
	payoutUseCase usecase.PayoutUseCase
	logger        *logger.Logger
}

func NewPayoutHandler(payoutUseCase usecase.PayoutUseCase, logger *logger.Logger) *PayoutHandler {
	return &PayoutHandler{
		payoutUseCase: payoutUseCase,
		logger:        logger,
	}
}

type WithdrawRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// RequestWithdrawal godoc
// @Summary      Request withdrawal
// @Description  Reserve funds for a withdrawal; the transaction stays pending until the processor settles it
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body WithdrawRequest true "Withdrawal amount in cents"
// @Success      202  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /withdrawals [post]
func (h *PayoutHandler) RequestWithdrawal(c *gin.Context) {
	userID := c.GetString("user_id")

	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.payoutUseCase.RequestWithdrawal(userID, req.Amount)
	if err != nil {
		respondError(c, h.logger, "Failed to request withdrawal", err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"message":     "Withdrawal requested",
		"transaction": transaction,
	})
}

// ConfirmWithdrawal godoc
// @Summary      Confirm withdrawal
// @Description  Settlement callback marking a pending withdrawal as completed
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        transaction_id path string true "Withdrawal transaction ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /admin/withdrawals/{transaction_id}/confirm [post]
func (h *PayoutHandler) ConfirmWithdrawal(c *gin.Context) {
	transactionID := c.Param("transaction_id")

	transaction, err := h.payoutUseCase.ConfirmWithdrawal(transactionID)
	if err != nil {
		respondError(c, h.logger, "Failed to confirm withdrawal", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Withdrawal confirmed",
		"transaction": transaction,
	})
}

// FailWithdrawal godoc
// @Summary      Fail withdrawal
// @Description  Settlement callback marking a pending withdrawal as failed and refunding the reserved amount
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        transaction_id path string true "Withdrawal transaction ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  map[string]string
// @Router       /admin/withdrawals/{transaction_id}/fail [post]
func (h *PayoutHandler) FailWithdrawal(c *gin.Context) {
	transactionID := c.Param("transaction_id")

	transaction, err := h.payoutUseCase.FailWithdrawal(transactionID)
	if err != nil {
		respondError(c, h.logger, "Failed to fail withdrawal", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Withdrawal failed and reversed",
		"transaction": transaction,
	})
}
