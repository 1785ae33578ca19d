package adminlog

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	ActionClearInventory = "clear_inventory"
	ActionChange         = "change"
)

// LogEntry is one row of the admin console history.
type LogEntry struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Action     string         `gorm:"type:varchar(64);not null;column:action;index" json:"action"`
	ObjectType string         `gorm:"type:varchar(64);not null;column:object_type" json:"object_type"`
	ObjectIDs  datatypes.JSON `gorm:"column:object_ids" json:"object_ids"`
	Message    string         `gorm:"type:text;not null;column:message" json:"message"`
	Details    datatypes.JSON `gorm:"column:details" json:"details,omitempty"`
	Actor      string         `gorm:"type:varchar(255);column:actor" json:"actor"`
	CreatedAt  time.Time      `gorm:"not null;index" json:"created_at"`
}

func (LogEntry) TableName() string { return "admin_log_entry" }
