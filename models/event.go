package models

import (
	"time"
)

// Event statuses. StatusLocked fences a slot while a swap transaction is in
// flight; it is never accepted from clients and never survives a restart.
const (
	StatusBusy      = "BUSY"
	StatusSwappable = "SWAPPABLE"
	StatusLocked    = "LOCKED"
)

// Event is one slot of a user's calendar.
type Event struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Status    string    `gorm:"size:20;not null;default:'BUSY';index" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
