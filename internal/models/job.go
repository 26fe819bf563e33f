package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Job kinds executed by the scheduler.
const (
	JobConfirmOrder = "confirm_order"
)

// ScheduledJob is a deferred task persisted so it survives restarts.
type ScheduledJob struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Kind      string    `json:"kind"`
	OrderID   uint      `gorm:"index" json:"order_id"`
	RunAt     time.Time `gorm:"index" json:"run_at"`
	Done      bool      `gorm:"default:false" json:"done"`
	Cancelled bool      `gorm:"default:false" json:"cancelled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate ensures job IDs are generated for new records.
func (j *ScheduledJob) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
