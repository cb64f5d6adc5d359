package swap

import (
	"errors"

	"github.com/slotswap/slotswap_backend/models"
	"gorm.io/gorm"
)

// Ledger owns SwapRequest records: creation, status transitions, and the
// incoming/outgoing views. Requests are never deleted and terminal states
// are immutable.
type Ledger struct {
	db *gorm.DB
}

// NewLedger constructs a Ledger over the given database handle.
func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Create records a new PENDING request proposing to exchange requesterSlot
// for targetSlot. Both slots must be SWAPPABLE and owned by different users,
// and no identical pending request may already exist.
func (l *Ledger) Create(requesterSlot, targetSlot *models.Event) (*models.SwapRequest, error) {
	if requesterSlot.UserID == targetSlot.UserID {
		return nil, ErrSelfSwap
	}
	if requesterSlot.Status != models.StatusSwappable || targetSlot.Status != models.StatusSwappable {
		return nil, ErrSlotNotSwappable
	}

	var existing models.SwapRequest
	err := l.db.Where("requester_slot_id = ? AND target_slot_id = ? AND status = ?",
		requesterSlot.ID, targetSlot.ID, models.SwapPending).
		First(&existing).Error
	if err == nil {
		return nil, ErrDuplicateRequest
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	request := models.SwapRequest{
		RequesterID:     requesterSlot.UserID,
		RequesterSlotID: requesterSlot.ID,
		TargetUserID:    targetSlot.UserID,
		TargetSlotID:    targetSlot.ID,
		Status:          models.SwapPending,
	}
	if err := l.db.Create(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// Get returns a single request by id.
func (l *Ledger) Get(id uint) (*models.SwapRequest, error) {
	var request models.SwapRequest
	if err := l.db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &request, nil
}

// ListIncoming returns the pending requests targeting one of userID's slots,
// populated with the requester and both slots' current snapshots.
func (l *Ledger) ListIncoming(userID uint) ([]models.SwapRequest, error) {
	var requests []models.SwapRequest
	err := l.db.Where("target_user_id = ? AND status = ?", userID, models.SwapPending).
		Preload("Requester").Preload("RequesterSlot").Preload("TargetSlot").
		Order("created_at").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ListOutgoing returns every request userID has made, in any state,
// populated with the target user and both slots' current snapshots.
func (l *Ledger) ListOutgoing(userID uint) ([]models.SwapRequest, error) {
	var requests []models.SwapRequest
	err := l.db.Where("requester_id = ?", userID).
		Preload("TargetUser").Preload("RequesterSlot").Preload("TargetSlot").
		Order("created_at").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// Transition moves a PENDING request to a terminal state on behalf of actor.
// ACCEPTED and REJECTED are reserved for the target user, CANCELLED for the
// requester.
func (l *Ledger) Transition(id uint, status, resolution string, actor uint) (*models.SwapRequest, error) {
	request, err := l.Get(id)
	if err != nil {
		return nil, err
	}

	switch status {
	case models.SwapAccepted, models.SwapRejected:
		if request.TargetUserID != actor {
			return nil, ErrUnauthorized
		}
	case models.SwapCancelled:
		if request.RequesterID != actor {
			return nil, ErrUnauthorized
		}
	default:
		return nil, ErrInvalidTransition
	}
	if request.Status != models.SwapPending {
		return nil, ErrNotPending
	}

	request.Status = status
	request.Resolution = resolution
	if err := l.db.Save(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

// Invalidate force-rejects the given requests with the SLOT_UNAVAILABLE
// resolution. The status guard makes it idempotent: already-terminal
// requests are left alone.
func (l *Ledger) Invalidate(ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return l.db.Model(&models.SwapRequest{}).
		Where("id IN ? AND status = ?", ids, models.SwapPending).
		Updates(map[string]interface{}{
			"status":     models.SwapRejected,
			"resolution": models.ReasonSlotUnavailable,
		}).Error
}
