package http

import (
	"errors"
	"net/http"

	"prive-ledger/pkg/logger"
	"prive-ledger/services/ledger/internal/entity"

	"github.com/gin-gonic/gin"
)

// respondError maps ledger sentinel errors to HTTP statuses. Anything
// unrecognized is treated as an internal failure and logged.
func respondError(c *gin.Context, log *logger.Logger, msg string, err error) {
	switch {
	case errors.Is(err, entity.ErrInsufficientFunds),
		errors.Is(err, entity.ErrInvalidAmount),
		errors.Is(err, entity.ErrSelfPayment),
		errors.Is(err, entity.ErrBelowMinimum):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrAccountNotFound),
		errors.Is(err, entity.ErrTransactionNotFound),
		errors.Is(err, entity.ErrEntitlementNotFound),
		errors.Is(err, entity.ErrTargetNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, entity.ErrInvalidStateTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Error("%s: %v", msg, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
