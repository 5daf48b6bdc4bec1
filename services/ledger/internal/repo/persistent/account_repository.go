package persistent

import (
	"errors"

	"prive-ledger/services/ledger/internal/entity"
	"prive-ledger/services/ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccountRepository interface {
	// GetOrCreate returns the account owned by userID, creating it with a zero
	// balance when absent. The second return value reports whether the account
	// was created by this call.
	GetOrCreate(userID string) (*entity.Account, bool, error)
	GetByID(accountID string) (*entity.Account, error)
	UpdateBalance(accountID string, balance int64) error
	SetDisabled(accountID string, disabled bool) error
}

type accountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) GetOrCreate(userID string) (*entity.Account, bool, error) {
	var accountModel model.AccountModel
	err := r.db.Where("user_id = ?", userID).First(&accountModel).Error
	if err == nil {
		return ToAccountEntity(&accountModel), false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	accountModel = model.AccountModel{
		ID:      uuid.New().String(),
		UserID:  userID,
		Balance: 0,
	}
	if err := r.db.Create(&accountModel).Error; err != nil {
		return nil, false, err
	}
	return ToAccountEntity(&accountModel), true, nil
}

func (r *accountRepository) GetByID(accountID string) (*entity.Account, error) {
	var accountModel model.AccountModel
	if err := r.db.Where("id = ?", accountID).First(&accountModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrAccountNotFound
		}
		return nil, err
	}
	return ToAccountEntity(&accountModel), nil
}

func (r *accountRepository) UpdateBalance(accountID string, balance int64) error {
	result := r.db.Model(&model.AccountModel{}).Where("id = ?", accountID).Update("balance", balance)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrAccountNotFound
	}
	return nil
}

func (r *accountRepository) SetDisabled(accountID string, disabled bool) error {
	result := r.db.Model(&model.AccountModel{}).Where("id = ?", accountID).Update("disabled", disabled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrAccountNotFound
	}
	return nil
}
