package model

import (
	"time"

	"github.com/google/uuid"
)

// GameModel mirrors the 'games' table. Titles are unique case-insensitively;
// TitleKey stores the lowercase form carrying the unique index.
type GameModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Title       string    `gorm:"type:varchar(255);not null"`
	TitleKey    string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Genre       string    `gorm:"type:varchar(100)"`
	Description string    `gorm:"type:text"`
	Price       float64   `gorm:"type:numeric(10,2);not null"`
	ReleaseDate time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (GameModel) TableName() string {
	return "games"
}
