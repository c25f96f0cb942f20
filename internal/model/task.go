package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the calendar-day format tasks are bucketed by.
const DateLayout = "2006-01-02"

// Task represents a unit of daily work owned by exactly one user.
type Task struct {
	ID        uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	OwnerID   uuid.UUID `json:"ownerId" gorm:"type:char(36);not null;index"`
	Text      string    `json:"text" gorm:"size:1024;not null"`
	Completed bool      `json:"completed" gorm:"default:false;index"`
	Image     *string   `json:"image" gorm:"size:512"`
	Date      string    `json:"date" gorm:"size:10;not null;index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate sets UUID before creating the record.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
