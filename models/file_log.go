package models

import "time"

const (
	FileActionCreated  = "created"
	FileActionRenamed  = "renamed"
	FileActionTrashed  = "trashed"
	FileActionRestored = "restored"
	FileActionDeleted  = "deleted"
)

// FileLog is append-only; the application never updates or deletes rows.
type FileLog struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	FileID    uint      `gorm:"not null;index" json:"file_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"type:varchar(20);not null;index" json:"action"`
	OldValue  string    `gorm:"type:varchar(500)" json:"old_value"`
	NewValue  string    `gorm:"type:varchar(500)" json:"new_value"`
	CreatedAt time.Time `gorm:"index;autoCreateTime" json:"created_at"`
}
