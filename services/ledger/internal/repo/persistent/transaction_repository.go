package persistent

import (
	"errors"

	"prive-ledger/services/ledger/internal/entity"
	"prive-ledger/services/ledger/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionRepository interface {
	// Create appends the transaction, assigning its id, sequence and created_at.
	Create(transaction *entity.Transaction) error
	GetByID(transactionID string) (*entity.Transaction, error)
	// GetByTarget returns the account's transaction for a target and kind, or
	// entity.ErrTransactionNotFound when none exists.
	GetByTarget(accountID, targetID string, kind entity.TransactionKind) (*entity.Transaction, error)
	// ListByAccount returns transactions newest-first (sequence descending).
	ListByAccount(accountID string, limit, offset int) ([]*entity.Transaction, error)
	// UpdateStatus applies one of the legal transitions pending -> completed or
	// pending -> failed and returns the updated record. Any other transition
	// fails with entity.ErrInvalidStateTransition.
	UpdateStatus(transactionID string, status entity.TransactionStatus) (*entity.Transaction, error)
}

type transactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r *transactionRepository) Create(transaction *entity.Transaction) error {
	transactionModel := ToTransactionModel(transaction)
	if transactionModel.ID == "" {
		transactionModel.ID = uuid.New().String()
	}
	if err := r.db.Create(transactionModel).Error; err != nil {
		return err
	}
	// The BIGSERIAL sequence comes back from the database; created_at is set
	// by GORM before the insert.
	*transaction = *ToTransactionEntity(transactionModel)
	return nil
}

func (r *transactionRepository) GetByTarget(accountID, targetID string, kind entity.TransactionKind) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	err := r.db.Where("account_id = ? AND target_id = ? AND kind = ?", accountID, targetID, string(kind)).
		First(&transactionModel).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrTransactionNotFound
		}
		return nil, err
	}
	return ToTransactionEntity(&transactionModel), nil
}

func (r *transactionRepository) GetByID(transactionID string) (*entity.Transaction, error) {
	var transactionModel model.TransactionModel
	if err := r.db.Where("id = ?", transactionID).First(&transactionModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrTransactionNotFound
		}
		return nil, err
	}
	return ToTransactionEntity(&transactionModel), nil
}

func (r *transactionRepository) ListByAccount(accountID string, limit, offset int) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	query := r.db.Where("account_id = ?", accountID).Order("sequence DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.Transaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = ToTransactionEntity(&transactionModels[i])
	}
	return transactions, nil
}

func (r *transactionRepository) UpdateStatus(transactionID string, status entity.TransactionStatus) (*entity.Transaction, error) {
	if status != entity.TransactionStatusCompleted && status != entity.TransactionStatusFailed {
		return nil, entity.ErrInvalidStateTransition
	}

	result := r.db.Model(&model.TransactionModel{}).
		Where("id = ? AND status = ?", transactionID, string(entity.TransactionStatusPending)).
		Update("status", string(status))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Distinguish a missing record from an illegal transition.
		if _, err := r.GetByID(transactionID); err != nil {
			return nil, err
		}
		return nil, entity.ErrInvalidStateTransition
	}
	return r.GetByID(transactionID)
}
