package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PeriodDaily   = "daily"
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"

	LimitActive   = "active"
	LimitInactive = "inactive"
)

// SpendingLimit caps spending for one (owner, category) pair inside the
// [StartDate, EndDate] window. Status and window are independent signals:
// an expense is only checked against a limit that is active AND whose
// window contains the expense date.
type SpendingLimit struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID    string    `gorm:"size:36;index;not null" json:"ownerId"`
	CategoryID string    `gorm:"size:36;index;not null" json:"categoryId"`
	Amount     float64   `gorm:"not null" json:"amount"`
	Period     string    `gorm:"size:16;not null" json:"period"`
	Status     string    `gorm:"size:16;not null;default:active" json:"status"`
	StartDate  time.Time `gorm:"index;not null" json:"startDate"`
	EndDate    time.Time `gorm:"index;not null" json:"endDate"`
	Version    int       `gorm:"not null;default:0" json:"-"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`

	Owner    *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

func (l *SpendingLimit) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

func (l *SpendingLimit) BeforeUpdate(tx *gorm.DB) error {
	tx.Statement.SetColumn("version", l.Version+1)
	return nil
}
