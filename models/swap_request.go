package models

import (
	"time"
)

// SwapRequest statuses. PENDING is the only non-terminal state; terminal
// states are immutable and requests are never deleted.
const (
	SwapPending   = "PENDING"
	SwapAccepted  = "ACCEPTED"
	SwapRejected  = "REJECTED"
	SwapCancelled = "CANCELLED"
)

// Resolution reasons recorded when a request leaves PENDING.
const (
	ReasonSlotUnavailable    = "SLOT_UNAVAILABLE"
	ReasonTargetDeclined     = "TARGET_DECLINED"
	ReasonRequesterCancelled = "REQUESTER_CANCELLED"
)

// SwapRequest is a proposal to exchange ownership of two slots between two
// users. TargetUserID is derived from the target slot's owner at creation
// time and is the only user allowed to accept or reject.
type SwapRequest struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	RequesterID     uint      `gorm:"not null;index" json:"requester_id"`
	Requester       User      `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	RequesterSlotID uint      `gorm:"not null;index" json:"requester_slot_id"`
	RequesterSlot   Event     `gorm:"foreignKey:RequesterSlotID" json:"requester_slot,omitempty"`
	TargetUserID    uint      `gorm:"not null;index" json:"target_user_id"`
	TargetUser      User      `gorm:"foreignKey:TargetUserID" json:"target_user,omitempty"`
	TargetSlotID    uint      `gorm:"not null;index" json:"target_slot_id"`
	TargetSlot      Event     `gorm:"foreignKey:TargetSlotID" json:"target_slot,omitempty"`
	Status          string    `gorm:"size:20;not null;default:'PENDING';index" json:"status"`
	Resolution      string    `gorm:"size:30" json:"resolution,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
