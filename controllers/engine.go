package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/slotswap/slotswap_backend/database"
	"github.com/slotswap/slotswap_backend/swap"
)

// Global coordinator instance shared by the handlers
var coordinator *swap.Coordinator

// InitEngine wires the swap coordinator to the connected database. Must be
// called after database.Connect.
func InitEngine() {
	coordinator = swap.NewCoordinator(database.DB)
}

// respondEngineError maps engine errors to HTTP statuses
func respondEngineError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, swap.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, swap.ErrUnauthorized):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, swap.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, swap.ErrSlotLocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": "locked"})
	case errors.Is(err, swap.ErrPendingRequestExists):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "reason": "pending_request_exists"})
	case errors.Is(err, swap.ErrInvalidRange),
		errors.Is(err, swap.ErrInvalidTransition),
		errors.Is(err, swap.ErrSelfSwap),
		errors.Is(err, swap.ErrSlotNotSwappable),
		errors.Is(err, swap.ErrDuplicateRequest),
		errors.Is(err, swap.ErrNotPending):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
