package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/slotswap/slotswap_backend/database"
	"github.com/slotswap/slotswap_backend/models"
	"github.com/slotswap/slotswap_backend/swap"
	"github.com/slotswap/slotswap_backend/websocket"
)

type CreateSwapRequestInput struct {
	MySlotID    uint `json:"my_slot_id" binding:"required" example:"1"`
	TheirSlotID uint `json:"their_slot_id" binding:"required" example:"2"`
}

type SwapResponseInput struct {
	Accepted *bool `json:"accepted" binding:"required" example:"true"`
}

// notifyInvalidated pushes a slot_unavailable event to both parties of every
// request that was force-rejected by a cascade.
func notifyInvalidated(requests []models.SwapRequest) {
	for i := range requests {
		websocket.NotifyUser(requests[i].RequesterID, "slot_unavailable", requests[i])
		websocket.NotifyUser(requests[i].TargetUserID, "slot_unavailable", requests[i])
	}
}

// GetSwappableSlots godoc
// @Summary Browse the swap marketplace
// @Description Returns all SWAPPABLE slots owned by other users, with owner details
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "List of swappable slots"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/swappable-slots [get]
func GetSwappableSlots(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	slots, err := swap.NewRegistry(database.DB).ListSwappable(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch swappable slots"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// CreateSwapRequest godoc
// @Summary Propose a swap
// @Description Creates a pending request to exchange one of the caller's slots for another user's slot
// @Tags swaps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateSwapRequestInput true "Swap Proposal"
// @Success 201 {object} map[string]interface{} "Swap request created"
// @Failure 400 {object} map[string]string "Invalid input, self swap, slot not swappable, or duplicate"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Slot not found"
// @Router /api/swap-request [post]
func CreateSwapRequest(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateSwapRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	request, err := coordinator.CreateRequest(userID, input.MySlotID, input.TheirSlotID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	websocket.NotifyUser(request.TargetUserID, "swap_request_received", request)

	c.JSON(http.StatusCreated, gin.H{"request": request})
}

// RespondToSwap godoc
// @Summary Accept or reject a swap request
// @Description Accepting atomically exchanges slot ownership and rejects competing requests on either slot; rejecting leaves slots untouched
// @Tags swaps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Swap Request ID"
// @Param response body SwapResponseInput true "Swap Response"
// @Success 200 {object} map[string]interface{} "Request settled"
// @Failure 400 {object} map[string]string "Invalid input or request no longer pending"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Slot no longer available"
// @Router /api/swap-response/{id} [post]
func RespondToSwap(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	var input SwapResponseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if *input.Accepted {
		request, invalidated, err := coordinator.Accept(uint(requestID), userID)
		if err != nil {
			respondEngineError(c, err)
			return
		}

		websocket.NotifyUser(request.RequesterID, "swap_accepted", request)
		notifyInvalidated(invalidated)

		c.JSON(http.StatusOK, gin.H{"request": request})
		return
	}

	request, err := coordinator.Reject(uint(requestID), userID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	websocket.NotifyUser(request.RequesterID, "swap_rejected", request)

	c.JSON(http.StatusOK, gin.H{"request": request})
}

// CancelSwapRequest godoc
// @Summary Cancel a swap request
// @Description Withdraws a pending request the authenticated user made
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Param id path int true "Swap Request ID"
// @Success 200 {object} map[string]interface{} "Request cancelled"
// @Failure 400 {object} map[string]string "Request no longer pending"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Request not found"
// @Router /api/swap-request/{id} [delete]
func CancelSwapRequest(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	requestID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID"})
		return
	}

	request, err := coordinator.Cancel(uint(requestID), userID)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	websocket.NotifyUser(request.TargetUserID, "swap_cancelled", request)

	c.JSON(http.StatusOK, gin.H{"request": request})
}

// GetIncomingSwapRequests godoc
// @Summary Get incoming swap requests
// @Description Returns pending requests targeting the authenticated user's slots, with requester and slot snapshots
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "List of incoming requests"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/swap-requests/incoming [get]
func GetIncomingSwapRequests(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	requests, err := swap.NewLedger(database.DB).ListIncoming(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch swap requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}

// GetOutgoingSwapRequests godoc
// @Summary Get outgoing swap requests
// @Description Returns every request the authenticated user has made, with target user and slot snapshots
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "List of outgoing requests"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/swap-requests/outgoing [get]
func GetOutgoingSwapRequests(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	requests, err := swap.NewLedger(database.DB).ListOutgoing(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch swap requests"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
