package models

import "time"

// File rows are the source of truth for ownership and lifecycle; the
// blob behind StoragePath is never consulted without one. StoragePath
// and Size are immutable after upload, only Name changes on rename.
// IsDeleted is the trash flag: an explicit column rather than gorm's
// soft delete, because trash is a reversible user-visible state and a
// hard delete must actually remove the row.
type File struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	FolderID    *uint     `gorm:"index" json:"folder_id"`
	Size        int64     `gorm:"not null" json:"size"`
	MimeType    string    `gorm:"type:varchar(100)" json:"file_type"`
	StoragePath string    `gorm:"type:varchar(1000);uniqueIndex;not null" json:"-"`
	IsDeleted   bool      `gorm:"default:false;index" json:"is_deleted"`
	Width       int       `json:"width,omitempty"`
	Height      int       `json:"height,omitempty"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `gorm:"index" json:"updated_at"`
}
