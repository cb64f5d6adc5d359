package swap

import (
	"errors"
	"time"

	"github.com/slotswap/slotswap_backend/models"
	"gorm.io/gorm"
)

// Registry owns Event records and their status transitions. Every slot
// mutation in the engine goes through it; nothing writes Event fields
// directly.
type Registry struct {
	db *gorm.DB
}

// NewRegistry constructs a Registry over the given database handle. Inside a
// coordinator transaction the handle is the transaction itself.
func NewRegistry(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// SlotUpdate carries optional field changes for Update. Nil fields are left
// untouched.
type SlotUpdate struct {
	Title     *string
	StartTime *time.Time
	EndTime   *time.Time
	Status    *string
}

// Create inserts a new slot for owner. Status defaults to BUSY; LOCKED is
// never accepted from callers.
func (r *Registry) Create(owner uint, title string, start, end time.Time, status string) (*models.Event, error) {
	if !end.After(start) {
		return nil, ErrInvalidRange
	}
	if status == "" {
		status = models.StatusBusy
	}
	if status != models.StatusBusy && status != models.StatusSwappable {
		return nil, ErrInvalidTransition
	}

	event := models.Event{
		UserID:    owner,
		Title:     title,
		StartTime: start,
		EndTime:   end,
		Status:    status,
	}
	if err := r.db.Create(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// Get returns a single slot by id.
func (r *Registry) Get(id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// Update applies the given field changes on behalf of actor. It reports
// whether the slot's time range changed and whether the slot left the
// SWAPPABLE state, so the caller can invalidate pending requests that
// referenced the old content.
func (r *Registry) Update(id, actor uint, upd SlotUpdate) (event *models.Event, timesChanged, leftMarket bool, err error) {
	event, err = r.Get(id)
	if err != nil {
		return nil, false, false, err
	}
	if event.UserID != actor {
		return nil, false, false, ErrUnauthorized
	}
	if event.Status == models.StatusLocked {
		return nil, false, false, ErrSlotLocked
	}

	if upd.Title != nil {
		event.Title = *upd.Title
	}
	if upd.StartTime != nil {
		event.StartTime = *upd.StartTime
		timesChanged = true
	}
	if upd.EndTime != nil {
		event.EndTime = *upd.EndTime
		timesChanged = true
	}
	if !event.EndTime.After(event.StartTime) {
		return nil, false, false, ErrInvalidRange
	}
	if upd.Status != nil && *upd.Status != event.Status {
		if *upd.Status != models.StatusBusy && *upd.Status != models.StatusSwappable {
			return nil, false, false, ErrInvalidTransition
		}
		if event.Status == models.StatusSwappable {
			leftMarket = true
		}
		event.Status = *upd.Status
	}

	if err = r.db.Save(event).Error; err != nil {
		return nil, false, false, err
	}
	return event, timesChanged, leftMarket, nil
}

// SetStatus flips a slot between BUSY and SWAPPABLE on behalf of its owner.
func (r *Registry) SetStatus(id uint, status string, actor uint) (*models.Event, error) {
	event, _, _, err := r.Update(id, actor, SlotUpdate{Status: &status})
	return event, err
}

// ListSwappable returns all SWAPPABLE slots ordered by start time, owner
// preloaded. A non-zero excludeOwner hides that user's own slots, which is
// how the marketplace view filters out the caller.
func (r *Registry) ListSwappable(excludeOwner uint) ([]models.Event, error) {
	query := r.db.Preload("User").
		Where("status = ?", models.StatusSwappable).
		Order("start_time")
	if excludeOwner != 0 {
		query = query.Where("user_id <> ?", excludeOwner)
	}

	var events []models.Event
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// ListByOwner returns all of one user's slots ordered by start time.
func (r *Registry) ListByOwner(owner uint) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.Where("user_id = ?", owner).Order("start_time").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// fence marks the given slots LOCKED inside an accept transaction so that no
// other statement in the transaction can hand them to a second swap. The
// coordinator always overwrites LOCKED with BUSY before commit.
func (r *Registry) fence(ids []uint) error {
	return r.db.Model(&models.Event{}).
		Where("id IN ?", ids).
		Update("status", models.StatusLocked).Error
}

// assign hands a slot to a new owner with the given stable status. Only the
// coordinator calls this, from inside the accept critical section.
func (r *Registry) assign(id, owner uint, status string) error {
	return r.db.Model(&models.Event{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"user_id": owner, "status": status}).Error
}

// Delete removes a slot. It refuses while the slot is locked into an
// in-flight swap or referenced by a pending request; requests are an audit
// trail and must never dangle on a missing slot.
func (r *Registry) Delete(id, actor uint) error {
	event, err := r.Get(id)
	if err != nil {
		return err
	}
	if event.UserID != actor {
		return ErrUnauthorized
	}
	if event.Status == models.StatusLocked {
		return ErrSlotLocked
	}

	var pending int64
	err = r.db.Model(&models.SwapRequest{}).
		Where("status = ? AND (requester_slot_id = ? OR target_slot_id = ?)",
			models.SwapPending, id, id).
		Count(&pending).Error
	if err != nil {
		return err
	}
	if pending > 0 {
		return ErrPendingRequestExists
	}

	return r.db.Delete(&models.Event{}, id).Error
}
