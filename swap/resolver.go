package swap

import (
	"github.com/slotswap/slotswap_backend/models"
	"gorm.io/gorm"
)

// Resolver computes which pending requests become invalid once a slot has
// been consumed by an accepted swap or edited out from under them. It only
// reads; the coordinator applies the transitions it returns.
type Resolver struct {
	db *gorm.DB
}

// NewResolver constructs a Resolver over the given database handle.
func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Invalidated returns, in id order, the PENDING requests that reference any
// of the given slots on either side. A non-zero exclude id skips the request
// currently being accepted. Calling it again after the invalidation has been
// applied returns an empty set.
func (r *Resolver) Invalidated(slotIDs []uint, exclude uint) ([]models.SwapRequest, error) {
	query := r.db.Where("status = ?", models.SwapPending).
		Where("requester_slot_id IN ? OR target_slot_id IN ?", slotIDs, slotIDs).
		Order("id")
	if exclude != 0 {
		query = query.Where("id <> ?", exclude)
	}

	var requests []models.SwapRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
