package swap

import (
	"github.com/slotswap/slotswap_backend/models"
	"gorm.io/gorm"
)

// Coordinator orchestrates the swap protocol. It is the sole writer of
// cross-entity invariants: every mutation that can race with an accept
// (slot edits and deletes, request creation, responses) funnels through its
// lock table, so operations on the same slots serialize while disjoint
// operations run in parallel.
//
// The critical section is short: re-validate, compare-and-mutate, one
// database transaction. It never waits on the network or on user input.
type Coordinator struct {
	db    *gorm.DB
	locks *lockTable
}

// NewCoordinator constructs a Coordinator over the given database handle.
func NewCoordinator(db *gorm.DB) *Coordinator {
	return &Coordinator{db: db, locks: newLockTable()}
}

// CreateRequest records a PENDING request from requester proposing to
// exchange mySlotID for theirSlotID. The slot pair is locked so that
// creation cannot interleave with an accept consuming either slot.
func (c *Coordinator) CreateRequest(requester, mySlotID, theirSlotID uint) (*models.SwapRequest, error) {
	unlock := c.locks.lockPair(mySlotID, theirSlotID)
	defer unlock()

	var created *models.SwapRequest
	err := c.db.Transaction(func(tx *gorm.DB) error {
		registry := NewRegistry(tx)

		mine, err := registry.Get(mySlotID)
		if err != nil {
			return err
		}
		theirs, err := registry.Get(theirSlotID)
		if err != nil {
			return err
		}
		if mine.UserID != requester {
			return ErrUnauthorized
		}

		created, err = NewLedger(tx).Create(mine, theirs)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Accept performs the atomic exchange for request id on behalf of actor.
//
// The protocol: acquire both slot locks in ascending id order, then inside
// one transaction re-validate every precondition from scratch (the
// preliminary read below only decides which locks to take — everything it
// saw may have changed while waiting), fence both slots LOCKED, exchange
// ownership, settle both slots BUSY, mark the request ACCEPTED, and
// force-reject every other pending request that referenced either slot.
// A failure at any point rolls the transaction back to the pre-call state.
//
// Of two accepts contending on a shared slot, exactly one commits; the
// loser finds the slot no longer SWAPPABLE (or its request already
// force-rejected) and returns ErrConflict or ErrNotPending with no mutation.
//
// On success it returns the accepted request and the competing requests
// that were force-rejected, so the caller can notify their owners.
func (c *Coordinator) Accept(id, actor uint) (*models.SwapRequest, []models.SwapRequest, error) {
	request, err := NewLedger(c.db).Get(id)
	if err != nil {
		return nil, nil, err
	}
	if request.TargetUserID != actor {
		return nil, nil, ErrUnauthorized
	}
	if request.Status != models.SwapPending {
		return nil, nil, ErrNotPending
	}

	unlock := c.locks.lockPair(request.RequesterSlotID, request.TargetSlotID)
	defer unlock()

	var accepted *models.SwapRequest
	var invalidated []models.SwapRequest
	err = c.db.Transaction(func(tx *gorm.DB) error {
		registry := NewRegistry(tx)
		ledger := NewLedger(tx)

		fresh, err := ledger.Get(id)
		if err != nil {
			return err
		}
		if fresh.TargetUserID != actor {
			return ErrUnauthorized
		}
		if fresh.Status != models.SwapPending {
			return ErrNotPending
		}

		requesterSlot, err := registry.Get(fresh.RequesterSlotID)
		if err != nil {
			return err
		}
		targetSlot, err := registry.Get(fresh.TargetSlotID)
		if err != nil {
			return err
		}
		if requesterSlot.Status != models.StatusSwappable || targetSlot.Status != models.StatusSwappable {
			return ErrConflict
		}
		if requesterSlot.UserID != fresh.RequesterID || targetSlot.UserID != fresh.TargetUserID {
			return ErrConflict
		}

		slotIDs := []uint{requesterSlot.ID, targetSlot.ID}
		if err := registry.fence(slotIDs); err != nil {
			return err
		}

		// Exchange ownership. A completed swap is BUSY on both sides;
		// swapping again requires a fresh opt-in.
		if err := registry.assign(requesterSlot.ID, targetSlot.UserID, models.StatusBusy); err != nil {
			return err
		}
		if err := registry.assign(targetSlot.ID, requesterSlot.UserID, models.StatusBusy); err != nil {
			return err
		}

		accepted, err = ledger.Transition(fresh.ID, models.SwapAccepted, "", actor)
		if err != nil {
			return err
		}

		// Cascade: every other pending request on either slot now points
		// at a slot that changed hands and must not be left dangling.
		stale, err := NewResolver(tx).Invalidated(slotIDs, fresh.ID)
		if err != nil {
			return err
		}
		staleIDs := make([]uint, 0, len(stale))
		for i := range stale {
			staleIDs = append(staleIDs, stale[i].ID)
			stale[i].Status = models.SwapRejected
			stale[i].Resolution = models.ReasonSlotUnavailable
		}
		if err := ledger.Invalidate(staleIDs); err != nil {
			return err
		}
		invalidated = stale
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return accepted, invalidated, nil
}

// Reject declines a pending request on behalf of the target user. No slot
// is mutated; the transition still serializes against accepts on the same
// pair so a decline cannot interleave with an in-flight exchange.
func (c *Coordinator) Reject(id, actor uint) (*models.SwapRequest, error) {
	return c.settle(id, actor, models.SwapRejected, models.ReasonTargetDeclined)
}

// Cancel withdraws a pending request on behalf of the requester. A cancel
// that arrives after an accept has begun on the same request loses the race
// and returns ErrNotPending.
func (c *Coordinator) Cancel(id, actor uint) (*models.SwapRequest, error) {
	return c.settle(id, actor, models.SwapCancelled, models.ReasonRequesterCancelled)
}

func (c *Coordinator) settle(id, actor uint, status, resolution string) (*models.SwapRequest, error) {
	request, err := NewLedger(c.db).Get(id)
	if err != nil {
		return nil, err
	}

	unlock := c.locks.lockPair(request.RequesterSlotID, request.TargetSlotID)
	defer unlock()

	var settled *models.SwapRequest
	err = c.db.Transaction(func(tx *gorm.DB) error {
		settled, err = NewLedger(tx).Transition(id, status, resolution, actor)
		return err
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

// UpdateSlot edits a slot under the slot's lock. Changing the time range,
// or taking the slot off the market, cascade-rejects every pending request
// that referenced it: a request must always reflect the slot content its
// two parties agreed on.
func (c *Coordinator) UpdateSlot(id, actor uint, upd SlotUpdate) (*models.Event, []models.SwapRequest, error) {
	unlock := c.locks.lock(id)
	defer unlock()

	var event *models.Event
	var invalidated []models.SwapRequest
	err := c.db.Transaction(func(tx *gorm.DB) error {
		updated, timesChanged, leftMarket, err := NewRegistry(tx).Update(id, actor, upd)
		if err != nil {
			return err
		}
		event = updated

		if timesChanged || leftMarket {
			stale, err := NewResolver(tx).Invalidated([]uint{id}, 0)
			if err != nil {
				return err
			}
			staleIDs := make([]uint, 0, len(stale))
			for i := range stale {
				staleIDs = append(staleIDs, stale[i].ID)
				stale[i].Status = models.SwapRejected
				stale[i].Resolution = models.ReasonSlotUnavailable
			}
			if err := NewLedger(tx).Invalidate(staleIDs); err != nil {
				return err
			}
			invalidated = stale
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return event, invalidated, nil
}

// DeleteSlot removes a slot under the slot's lock. Deletion is refused while
// the slot is locked into an in-flight swap or referenced by any pending
// request.
func (c *Coordinator) DeleteSlot(id, actor uint) error {
	unlock := c.locks.lock(id)
	defer unlock()

	return c.db.Transaction(func(tx *gorm.DB) error {
		return NewRegistry(tx).Delete(id, actor)
	})
}
