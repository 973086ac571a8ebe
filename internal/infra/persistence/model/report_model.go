package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportModel mirrors the 'reports' table. UserID is a required FK to users;
// LocationID is an optional FK to locations.
type ReportModel struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	Description string     `gorm:"type:text;not null"`
	Category    string     `gorm:"type:varchar(50);not null;index"`
	Status      string     `gorm:"type:varchar(20);not null;default:pending;index"`
	ImageURL    string     `gorm:"type:varchar(512)"`
	LocationID  *uuid.UUID `gorm:"type:uuid"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Location *LocationModel `gorm:"foreignKey:LocationID"`
}

// TableName explicitly sets the table name for GORM.
func (ReportModel) TableName() string {
	return "reports"
}
