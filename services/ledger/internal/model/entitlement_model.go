package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntitlementModel struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	AccountID string    `gorm:"type:uuid;not null;uniqueIndex:idx_entitlement_target" json:"account_id"`
	TargetID  string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_entitlement_target" json:"target_id"`
	Kind      string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_entitlement_target" json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

func (EntitlementModel) TableName() string {
	return "entitlements"
}

func (e *EntitlementModel) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}
