package persistent

import (
	"prive-ledger/services/ledger/internal/entity"
	"prive-ledger/services/ledger/internal/model"
)

func ToAccountEntity(m *model.AccountModel) *entity.Account {
	if m == nil {
		return nil
	}

	return &entity.Account{
		ID:        m.ID,
		UserID:    m.UserID,
		Balance:   m.Balance,
		Disabled:  m.Disabled,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToAccountModel(e *entity.Account) *model.AccountModel {
	if e == nil {
		return nil
	}

	return &model.AccountModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Balance:   e.Balance,
		Disabled:  e.Disabled,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToTransactionEntity(m *model.TransactionModel) *entity.Transaction {
	if m == nil {
		return nil
	}

	return &entity.Transaction{
		ID:          m.ID,
		Sequence:    m.Sequence,
		AccountID:   m.AccountID,
		Kind:        entity.TransactionKind(m.Kind),
		Amount:      m.Amount,
		Status:      entity.TransactionStatus(m.Status),
		Description: m.Description,
		TargetID:    m.TargetID,
		CreatedAt:   m.CreatedAt,
	}
}

func ToTransactionModel(e *entity.Transaction) *model.TransactionModel {
	if e == nil {
		return nil
	}

	return &model.TransactionModel{
		ID:          e.ID,
		Sequence:    e.Sequence,
		AccountID:   e.AccountID,
		Kind:        string(e.Kind),
		Amount:      e.Amount,
		Status:      string(e.Status),
		Description: e.Description,
		TargetID:    e.TargetID,
		CreatedAt:   e.CreatedAt,
	}
}

func ToEntitlementEntity(m *model.EntitlementModel) *entity.Entitlement {
	if m == nil {
		return nil
	}

	return &entity.Entitlement{
		ID:        m.ID,
		AccountID: m.AccountID,
		TargetID:  m.TargetID,
		Kind:      entity.EntitlementKind(m.Kind),
		CreatedAt: m.CreatedAt,
	}
}

func ToEntitlementModel(e *entity.Entitlement) *model.EntitlementModel {
	if e == nil {
		return nil
	}

	return &model.EntitlementModel{
		ID:        e.ID,
		AccountID: e.AccountID,
		TargetID:  e.TargetID,
		Kind:      string(e.Kind),
		CreatedAt: e.CreatedAt,
	}
}
