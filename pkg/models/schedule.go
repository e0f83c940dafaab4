package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WorkingHours is the persisted daily working window of the storefront.
// At most one row is active at a time; activating a row deactivates the rest.
// A window with start after end is stored as-is and simply never opens.
type WorkingHours struct {
	BaseModel
	StartHour   int        `gorm:"not null" json:"start_hour" validate:"gte=0,lte=23"`
	StartMinute int        `gorm:"not null" json:"start_minute" validate:"gte=0,lte=59"`
	EndHour     int        `gorm:"not null" json:"end_hour" validate:"gte=0,lte=23"`
	EndMinute   int        `gorm:"not null" json:"end_minute" validate:"gte=0,lte=59"`
	IsActive    bool       `gorm:"default:true;index" json:"is_active"`
	Description string     `json:"description"`
	SetBy       *uuid.UUID `gorm:"type:uuid" json:"set_by"`
}

// BeforeSave keeps a single active schedule row
func (w *WorkingHours) BeforeSave(tx *gorm.DB) error {
	if w.IsActive {
		return tx.Model(&WorkingHours{}).
			Where("is_active = ? AND id != ?", true, w.ID).
			Update("is_active", false).Error
	}
	return nil
}

// UpdateWorkingHoursRequest replaces the whole schedule (last writer wins)
type UpdateWorkingHoursRequest struct {
	StartHour   int    `json:"start_hour" validate:"gte=0,lte=23"`
	StartMinute int    `json:"start_minute" validate:"gte=0,lte=59"`
	EndHour     int    `json:"end_hour" validate:"gte=0,lte=23"`
	EndMinute   int    `json:"end_minute" validate:"gte=0,lte=59"`
	IsActive    bool   `json:"is_active"`
	Description string `json:"description"`
}
