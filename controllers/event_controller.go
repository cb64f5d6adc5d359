package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/slotswap/slotswap_backend/database"
	"github.com/slotswap/slotswap_backend/swap"
)

type CreateEventInput struct {
	Title     string    `json:"title" binding:"required" example:"Morning shift"`
	StartTime time.Time `json:"start_time" binding:"required" example:"2026-09-01T09:00:00Z"`
	EndTime   time.Time `json:"end_time" binding:"required" example:"2026-09-01T10:00:00Z"`
	Status    string    `json:"status" example:"BUSY"`
}

type UpdateEventInput struct {
	Title     *string    `json:"title"`
	StartTime *time.Time `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	Status    *string    `json:"status" example:"SWAPPABLE"`
}

// GetEvents godoc
// @Summary Get the authenticated user's slots
// @Description Returns all calendar slots owned by the authenticated user
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{} "List of slots"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/events [get]
func GetEvents(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	events, err := swap.NewRegistry(database.DB).ListByOwner(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch events"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// CreateEvent godoc
// @Summary Create a slot
// @Description Creates a new calendar slot owned by the authenticated user
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventInput true "Slot Creation"
// @Success 201 {object} map[string]interface{} "Slot created"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Server error"
// @Router /api/events [post]
func CreateEvent(c *gin.Context) {
	userID := c.MustGet("userID").(uint)

	var input CreateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := swap.NewRegistry(database.DB).Create(userID, input.Title, input.StartTime, input.EndTime, input.Status)
	if err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// UpdateEvent godoc
// @Summary Update a slot
// @Description Edits a slot's title, times, or BUSY/SWAPPABLE status. Changing the time range or leaving SWAPPABLE rejects pending requests that referenced the slot.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Param event body UpdateEventInput true "Slot Update"
// @Success 200 {object} map[string]interface{} "Slot updated"
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Slot not found"
// @Failure 409 {object} map[string]string "Slot is part of an in-flight swap"
// @Router /api/events/{id} [put]
func UpdateEvent(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	var input UpdateEventInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, invalidated, err := coordinator.UpdateSlot(uint(eventID), userID, swap.SlotUpdate{
		Title:     input.Title,
		StartTime: input.StartTime,
		EndTime:   input.EndTime,
		Status:    input.Status,
	})
	if err != nil {
		respondEngineError(c, err)
		return
	}

	notifyInvalidated(invalidated)

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent godoc
// @Summary Delete a slot
// @Description Deletes a slot. Fails while the slot is locked into an in-flight swap or referenced by a pending request.
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param id path int true "Slot ID"
// @Success 200 {object} map[string]string "Slot deleted"
// @Failure 400 {object} map[string]string "Invalid slot ID"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Forbidden"
// @Failure 404 {object} map[string]string "Slot not found"
// @Failure 409 {object} map[string]string "Pending request exists or slot locked"
// @Router /api/events/{id} [delete]
func DeleteEvent(c *gin.Context) {
	userID := c.MustGet("userID").(uint)
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid event ID"})
		return
	}

	if err := coordinator.DeleteSlot(uint(eventID), userID); err != nil {
		respondEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted successfully"})
}
