package http

import (
	"net/http"

	"prive-ledger/pkg/logger"
	"prive-ledger/services/ledger/internal/entity"
	"prive-ledger/services/ledger/internal/usecase"

	"github.com/gin-gonic/gin"
)

type MonetizationHandler struct {
	monetizationUseCase usecase.MonetizationUseCase
	logger              *logger.Logger
}

func NewMonetizationHandler(monetizationUseCase usecase.MonetizationUseCase, logger *logger.Logger) *MonetizationHandler {
	return &MonetizationHandler{
		monetizationUseCase: monetizationUseCase,
		logger:              logger,
	}
}

type SubscribeRequest struct {
	Price int64 `json:"price" binding:"required,min=1"`
}

type UnlockRequest struct {
	Price int64 `json:"price" binding:"required,min=1"`
}

type TipRequest struct {
	Amount int64 `json:"amount" binding:"required,min=1"`
}

// Subscribe godoc
// @Summary      Subscribe to creator
// @Description  Charge the monthly price and grant a subscription to the creator's content
// @Tags         monetization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        creator_id path string true "Creator user ID"
// @Param        request body SubscribeRequest true "Monthly price in cents"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /subscriptions/{creator_id} [post]
func (h *MonetizationHandler) Subscribe(c *gin.Context) {
	userID := c.GetString("user_id")
	creatorID := c.Param("creator_id")

	var req SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entitlement, err := h.monetizationUseCase.Subscribe(userID, creatorID, req.Price)
	if err != nil {
		respondError(c, h.logger, "Failed to subscribe", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Subscribed successfully",
		"entitlement": entitlement,
	})
}

// Unsubscribe godoc
// @Summary      Unsubscribe from creator
// @Description  Remove the subscription without refunding the current period
// @Tags         monetization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        creator_id path string true "Creator user ID"
// @Success      200  {object}  map[string]string
// @Router       /subscriptions/{creator_id} [delete]
func (h *MonetizationHandler) Unsubscribe(c *gin.Context) {
	userID := c.GetString("user_id")
	creatorID := c.Param("creator_id")

	if err := h.monetizationUseCase.Unsubscribe(userID, creatorID); err != nil {
		respondError(c, h.logger, "Failed to unsubscribe", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unsubscribed successfully"})
}

// GetSubscriptions godoc
// @Summary      List entitlements
// @Description  List the authenticated user's subscriptions and unlocked content
// @Tags         monetization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /subscriptions [get]
func (h *MonetizationHandler) GetSubscriptions(c *gin.Context) {
	userID := c.GetString("user_id")

	entitlements, err := h.monetizationUseCase.Subscriptions(userID)
	if err != nil {
		respondError(c, h.logger, "Failed to list subscriptions", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"entitlements": entitlements, "count": len(entitlements)})
}

// UnlockPost godoc
// @Summary      Unlock post
// @Description  Pay once for permanent access to a locked post
// @Tags         monetization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        post_id path string true "Post ID"
// @Param        request body UnlockRequest true "Unlock price in cents"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /unlock/post/{post_id} [post]
func (h *MonetizationHandler) UnlockPost(c *gin.Context) {
	h.unlock(c, c.Param("post_id"), entity.EntitlementKindUnlockPost)
}

// UnlockMessage godoc
// @Summary      Unlock message
// @Description  Pay once for permanent access to a locked private message
// @Tags         monetization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        message_id path string true "Message ID"
// @Param        request body UnlockRequest true "Unlock price in cents"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /unlock/message/{message_id} [post]
func (h *MonetizationHandler) UnlockMessage(c *gin.Context) {
	h.unlock(c, c.Param("message_id"), entity.EntitlementKindUnlockMessage)
}

func (h *MonetizationHandler) unlock(c *gin.Context, targetID string, kind entity.EntitlementKind) {
	userID := c.GetString("user_id")

	var req UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entitlement, err := h.monetizationUseCase.Unlock(userID, targetID, kind, req.Price)
	if err != nil {
		respondError(c, h.logger, "Failed to unlock content", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Content unlocked",
		"entitlement": entitlement,
	})
}

// Tip godoc
// @Summary      Tip a creator
// @Description  Send a tip from the authenticated user to a creator
// @Tags         monetization
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        creator_id path string true "Creator user ID"
// @Param        request body TipRequest true "Tip amount in cents"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /tips/{creator_id} [post]
func (h *MonetizationHandler) Tip(c *gin.Context) {
	userID := c.GetString("user_id")
	creatorID := c.Param("creator_id")

	var req TipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	transaction, err := h.monetizationUseCase.Tip(userID, creatorID, req.Amount)
	if err != nil {
		respondError(c, h.logger, "Failed to send tip", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":     "Tip sent successfully",
		"transaction": transaction,
	})
}
