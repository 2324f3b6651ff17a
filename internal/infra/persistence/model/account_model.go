// Package model defines the GORM persistence models mirroring the database
// tables.
package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. The unique indexes on email and
// username_key are the authoritative guard against duplicate identities; the
// application-level existence checks only provide friendlier errors. Email is
// stored canonical lowercase; Username keeps the display casing, so the
// case-insensitive identity lives in UsernameKey, the lowercase form carrying
// the unique index.
type AccountModel struct {
	ID                  uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name                string    `gorm:"type:varchar(100);not null"`
	Email               string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username            string    `gorm:"type:varchar(30);not null"`
	UsernameKey         string    `gorm:"type:varchar(30);uniqueIndex;not null"`
	PasswordHash        string    `gorm:"type:varchar(255);not null"`
	ProfileType         string    `gorm:"type:varchar(20);not null"`
	Status              string    `gorm:"type:varchar(20);not null;index"`
	IsTemporaryPassword bool      `gorm:"not null;default:false"`

	EmailConfirmationToken     string `gorm:"type:varchar(64)"`
	EmailConfirmationExpiresAt *time.Time
	EmailConfirmedAt           *time.Time

	PasswordResetToken     string `gorm:"type:varchar(64)"`
	PasswordResetExpiresAt *time.Time

	PendingEmail      string `gorm:"type:varchar(255)"`
	PendingEmailToken string `gorm:"type:varchar(64)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}
