package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionModel struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	Sequence    int64     `gorm:"autoIncrement;uniqueIndex" json:"sequence"`
	AccountID   string    `gorm:"type:uuid;not null;index" json:"account_id"`
	Kind        string    `gorm:"type:varchar(32);not null" json:"kind"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Status      string    `gorm:"type:varchar(16);not null" json:"status"`
	Description string    `gorm:"type:text" json:"description"`
	TargetID    string    `gorm:"type:varchar(255);index" json:"target_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
