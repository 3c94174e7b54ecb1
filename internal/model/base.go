package model

import (
	"time"
)

// GORM manages CreatedAt and UpdatedAt.
// CreatedBy and UpdatedBy hold the acting user's ID and are set by the service layer.
type BaseEntity struct {
	CreatedAt time.Time `gorm:"column:created_at;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
	CreatedBy *uint32   `gorm:"column:created_by"`
	UpdatedBy *uint32   `gorm:"column:updated_by"`
}
