package persistent

import (
	"errors"

	"prive-ledger/services/ledger/internal/entity"
	"prive-ledger/services/ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EntitlementRepository interface {
	Get(accountID, targetID string, kind entity.EntitlementKind) (*entity.Entitlement, error)
	Create(entitlement *entity.Entitlement) error
	Delete(accountID, targetID string, kind entity.EntitlementKind) error
	ListByAccount(accountID string) ([]*entity.Entitlement, error)
}

type entitlementRepository struct {
	db *gorm.DB
}

func NewEntitlementRepository(db *gorm.DB) EntitlementRepository {
	return &entitlementRepository{db: db}
}

func (r *entitlementRepository) Get(accountID, targetID string, kind entity.EntitlementKind) (*entity.Entitlement, error) {
	var entitlementModel model.EntitlementModel
	err := r.db.Where("account_id = ? AND target_id = ? AND kind = ?", accountID, targetID, string(kind)).
		First(&entitlementModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrEntitlementNotFound
		}
		return nil, err
	}
	return ToEntitlementEntity(&entitlementModel), nil
}

func (r *entitlementRepository) Create(entitlement *entity.Entitlement) error {
	entitlementModel := ToEntitlementModel(entitlement)
	if entitlementModel.ID == "" {
		entitlementModel.ID = uuid.New().String()
	}
	if err := r.db.Create(entitlementModel).Error; err != nil {
		return err
	}
	*entitlement = *ToEntitlementEntity(entitlementModel)
	return nil
}

func (r *entitlementRepository) Delete(accountID, targetID string, kind entity.EntitlementKind) error {
	result := r.db.Where("account_id = ? AND target_id = ? AND kind = ?", accountID, targetID, string(kind)).
		Delete(&model.EntitlementModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrEntitlementNotFound
	}
	return nil
}

func (r *entitlementRepository) ListByAccount(accountID string) ([]*entity.Entitlement, error) {
	var entitlementModels []model.EntitlementModel
	if err := r.db.Where("account_id = ?", accountID).Order("created_at DESC").Find(&entitlementModels).Error; err != nil {
		return nil, err
	}

	entitlements := make([]*entity.Entitlement, len(entitlementModels))
	for i := range entitlementModels {
		entitlements[i] = ToEntitlementEntity(&entitlementModels[i])
	}
	return entitlements, nil
}
