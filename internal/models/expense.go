package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Expense is a single spending record. Ownership is fixed at creation;
// every read and write is scoped to OwnerID.
type Expense struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID    string    `gorm:"size:36;index;not null" json:"ownerId"`
	CategoryID string    `gorm:"size:36;index;not null" json:"categoryId"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Purpose    string    `gorm:"size:200;not null" json:"purpose"`
	Date       time.Time `gorm:"index;not null" json:"date"`
	Version    int       `gorm:"not null;default:0" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Owner    *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (e *Expense) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	return nil
}

func (e *Expense) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.SetColumn("version", e.Version+1)
	return nil
}
