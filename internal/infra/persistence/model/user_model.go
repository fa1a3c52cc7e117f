package model

import (
	"time"

	"gorm.io/gorm"
)

// UserModel mirrors the 'users' table. IDs are 24-hex-character object id
// strings generated by the application, not by the database. Unique indexes
// on name and email are the authoritative uniqueness guard; the service's
// pre-insert checks are advisory only.
type UserModel struct {
	ID           string `gorm:"type:char(24);primaryKey"`
	Name         string `gorm:"type:varchar(16);uniqueIndex:idx_users_name;not null"`
	Email        string `gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Avatar       string `gorm:"type:varchar(512)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
