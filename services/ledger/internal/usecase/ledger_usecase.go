package usecase

import (
	"errors"
	"fmt"

	"prive-ledger/pkg/logger"
	"prive-ledger/services/ledger/internal/entity"
	"prive-ledger/services/ledger/internal/repo/persistent"
)

// LedgerUseCase is the sole mutator of account balances. Every mutation is
// paired with exactly one transaction record, and all check-then-mutate steps
// for one account run under that account's lock.
type LedgerUseCase interface {
	// GetAccount returns the account owned by userID, creating an empty one on
	// first touch.
	GetAccount(userID string) (*entity.Account, error)
	// ProvisionAccount is GetAccount plus the signup bonus deposit when the
	// account is created by this call.
	ProvisionAccount(userID string) (*entity.Account, error)
	GetBalance(accountID string) (int64, error)
	Credit(accountID string, amount int64, kind entity.TransactionKind, description string) (*entity.Transaction, error)
	Debit(accountID string, amount int64, kind entity.TransactionKind, description string) (*entity.Transaction, error)
	// Withdraw debits like Debit but records the transaction as pending:
	// funds leave the spendable balance immediately while external settlement
	// is still in flight.
	Withdraw(accountID string, amount int64, description string) (*entity.Transaction, error)
	Transactions(accountID string, limit, offset int) ([]*entity.Transaction, error)
	Transaction(transactionID string) (*entity.Transaction, error)
	// SettleTransaction applies pending -> completed or pending -> failed.
	SettleTransaction(transactionID string, status entity.TransactionStatus) (*entity.Transaction, error)
	// ReverseWithdrawal credits a failed withdrawal's reserved amount back.
	// At most one reversal ever exists per withdrawal; repeat calls return the
	// existing one.
	ReverseWithdrawal(withdrawalID string) (*entity.Transaction, error)
	// PurchaseEntitlement atomically grants the (account, target, kind)
	// entitlement, debiting the price only when it is not already held. The
	// returned transaction is nil when the entitlement already existed.
	PurchaseEntitlement(purchase EntitlementPurchase) (*entity.Entitlement, *entity.Transaction, error)
	RevokeEntitlement(accountID, targetID string, kind entity.EntitlementKind) error
	Entitlement(accountID, targetID string, kind entity.EntitlementKind) (*entity.Entitlement, error)
	Entitlements(accountID string) ([]*entity.Entitlement, error)
}

// EntitlementPurchase describes one priced, idempotent unlock.
type EntitlementPurchase struct {
	AccountID   string
	TargetID    string
	Kind        entity.EntitlementKind
	Price       int64
	Description string
}

type ledgerUseCase struct {
	accounts     persistent.AccountRepository
	transactions persistent.TransactionRepository
	entitlements persistent.EntitlementRepository
	signupBonus  int64
	locks        *accountLockTable
	logger       *logger.Logger
}

func NewLedgerUseCase(
	accountRepo persistent.AccountRepository,
	transactionRepo persistent.TransactionRepository,
	entitlementRepo persistent.EntitlementRepository,
	signupBonus int64,
	log *logger.Logger,
) LedgerUseCase {
	return &ledgerUseCase{
		accounts:     accountRepo,
		transactions: transactionRepo,
		entitlements: entitlementRepo,
		signupBonus:  signupBonus,
		locks:        newAccountLockTable(),
		logger:       log,
	}
}

func (uc *ledgerUseCase) GetAccount(userID string) (*entity.Account, error) {
	account, _, err := uc.accounts.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (uc *ledgerUseCase) ProvisionAccount(userID string) (*entity.Account, error) {
	account, created, err := uc.accounts.GetOrCreate(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to provision account: %w", err)
	}
	if !created || uc.signupBonus <= 0 {
		return account, nil
	}

	if _, err := uc.Credit(account.ID, uc.signupBonus, entity.TransactionKindDeposit, "Signup bonus"); err != nil {
		return nil, fmt.Errorf("failed to apply signup bonus: %w", err)
	}
	return uc.accounts.GetByID(account.ID)
}

func (uc *ledgerUseCase) GetBalance(accountID string) (int64, error) {
	account, err := uc.accounts.GetByID(accountID)
	if err != nil {
		return 0, err
	}
	return account.Balance, nil
}

func (uc *ledgerUseCase) Credit(accountID string, amount int64, kind entity.TransactionKind, description string) (*entity.Transaction, error) {
	if amount <= 0 {
		return nil, entity.ErrInvalidAmount
	}

	lock := uc.locks.lockFor(accountID)
	lock.Lock()
	defer lock.Unlock()

	return uc.creditLocked(accountID, amount, kind, description, "")
}

func (uc *ledgerUseCase) Debit(accountID string, amount int64, kind entity.TransactionKind, description string) (*entity.Transaction, error) {
	if amount <= 0 {
		return nil, entity.ErrInvalidAmount
	}

	lock := uc.locks.lockFor(accountID)
	lock.Lock()
	defer lock.Unlock()

	return uc.debitLocked(accountID, amount, kind, description, "", entity.TransactionStatusCompleted)
}

func (uc *ledgerUseCase) Withdraw(accountID string, amount int64, description string) (*entity.Transaction, error) {
	if amount <= 0 {
		return nil, entity.ErrInvalidAmount
	}

	lock := uc.locks.lockFor(accountID)
	lock.Lock()
	defer lock.Unlock()

	return uc.debitLocked(accountID, amount, entity.TransactionKindWithdrawal, description, "", entity.TransactionStatusPending)
}

// creditLocked must be called with the account's lock held.
func (uc *ledgerUseCase) creditLocked(accountID string, amount int64, kind entity.TransactionKind, description, targetID string) (*entity.Transaction, error) {
	account, err := uc.accounts.GetByID(accountID)
	if err != nil {
		return nil, err
	}

	if err := uc.accounts.UpdateBalance(account.ID, account.Balance+amount); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	transaction := &entity.Transaction{
		AccountID:   account.ID,
		Kind:        kind,
		Amount:      amount,
		Status:      entity.TransactionStatusCompleted,
		Description: description,
		TargetID:    targetID,
	}
	if err := uc.transactions.Create(transaction); err != nil {
		uc.rollbackBalance(account)
		return nil, fmt.Errorf("failed to record credit: %w", err)
	}
	return transaction, nil
}

// debitLocked must be called with the account's lock held. It leaves balance
// and log untouched when funds are insufficient.
func (uc *ledgerUseCase) debitLocked(accountID string, amount int64, kind entity.TransactionKind, description, targetID string, status entity.TransactionStatus) (*entity.Transaction, error) {
	account, err := uc.accounts.GetByID(accountID)
	if err != nil {
		return nil, err
	}

	if account.Balance < amount {
		return nil, entity.ErrInsufficientFunds
	}

	if err := uc.accounts.UpdateBalance(account.ID, account.Balance-amount); err != nil {
		return nil, fmt.Errorf("failed to update balance: %w", err)
	}

	transaction := &entity.Transaction{
		AccountID:   account.ID,
		Kind:        kind,
		Amount:      -amount,
		Status:      status,
		Description: description,
		TargetID:    targetID,
	}
	if err := uc.transactions.Create(transaction); err != nil {
		uc.rollbackBalance(account)
		return nil, fmt.Errorf("failed to record debit: %w", err)
	}
	return transaction, nil
}

// rollbackBalance restores an account's pre-mutation balance after the paired
// transaction record failed to append. Callers still hold the account's lock.
func (uc *ledgerUseCase) rollbackBalance(account *entity.Account) {
	if err := uc.accounts.UpdateBalance(account.ID, account.Balance); err != nil {
		uc.logger.Error("Failed to roll back balance for account %s: %v", account.ID, err)
	}
}

func (uc *ledgerUseCase) Transactions(accountID string, limit, offset int) ([]*entity.Transaction, error) {
	transactions, err := uc.transactions.ListByAccount(accountID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

func (uc *ledgerUseCase) Transaction(transactionID string) (*entity.Transaction, error) {
	return uc.transactions.GetByID(transactionID)
}

func (uc *ledgerUseCase) SettleTransaction(transactionID string, status entity.TransactionStatus) (*entity.Transaction, error) {
	transaction, err := uc.transactions.UpdateStatus(transactionID, status)
	if err != nil {
		if errors.Is(err, entity.ErrInvalidStateTransition) {
			// Illegal transitions are caller bugs; log loudly instead of
			// silently ignoring them.
			uc.logger.Error("Illegal status transition for transaction %s -> %s", transactionID, status)
		}
		return nil, err
	}
	return transaction, nil
}

func (uc *ledgerUseCase) ReverseWithdrawal(withdrawalID string) (*entity.Transaction, error) {
	withdrawal, err := uc.transactions.GetByID(withdrawalID)
	if err != nil {
		return nil, err
	}
	if withdrawal.Kind != entity.TransactionKindWithdrawal {
		return nil, entity.ErrTransactionNotFound
	}
	if withdrawal.Status != entity.TransactionStatusFailed {
		return nil, entity.ErrInvalidStateTransition
	}

	lock := uc.locks.lockFor(withdrawal.AccountID)
	lock.Lock()
	defer lock.Unlock()

	// The reversal carries the withdrawal's id as its target; a second call
	// finds it there instead of crediting again.
	existing, err := uc.transactions.GetByTarget(withdrawal.AccountID, withdrawal.ID, entity.TransactionKindWithdrawalReversal)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, entity.ErrTransactionNotFound) {
		return nil, fmt.Errorf("failed to check for reversal: %w", err)
	}

	return uc.creditLocked(withdrawal.AccountID, -withdrawal.Amount, entity.TransactionKindWithdrawalReversal, "Withdrawal reversal", withdrawal.ID)
}

func (uc *ledgerUseCase) PurchaseEntitlement(purchase EntitlementPurchase) (*entity.Entitlement, *entity.Transaction, error) {
	if purchase.Price <= 0 {
		return nil, nil, entity.ErrInvalidAmount
	}

	// The entitlement check shares the debit's critical section so two
	// concurrent purchases of one target cannot both observe "not entitled".
	lock := uc.locks.lockFor(purchase.AccountID)
	lock.Lock()
	defer lock.Unlock()

	existing, err := uc.entitlements.Get(purchase.AccountID, purchase.TargetID, purchase.Kind)
	if err == nil {
		// Already entitled: success with no charge.
		return existing, nil, nil
	}
	if !errors.Is(err, entity.ErrEntitlementNotFound) {
		return nil, nil, fmt.Errorf("failed to check entitlement: %w", err)
	}

	// Grant first, charge second: the debit rolls itself back on storage
	// failure, and a failed debit drops the grant again.
	entitlement := &entity.Entitlement{
		AccountID: purchase.AccountID,
		TargetID:  purchase.TargetID,
		Kind:      purchase.Kind,
	}
	if err := uc.entitlements.Create(entitlement); err != nil {
		return nil, nil, fmt.Errorf("failed to create entitlement: %w", err)
	}

	transaction, err := uc.debitLocked(purchase.AccountID, purchase.Price, purchase.Kind.TransactionKind(), purchase.Description, purchase.TargetID, entity.TransactionStatusCompleted)
	if err != nil {
		if delErr := uc.entitlements.Delete(purchase.AccountID, purchase.TargetID, purchase.Kind); delErr != nil {
			uc.logger.Error("Failed to drop unpaid entitlement %s/%s: %v", purchase.AccountID, purchase.TargetID, delErr)
		}
		return nil, nil, err
	}
	return entitlement, transaction, nil
}

func (uc *ledgerUseCase) RevokeEntitlement(accountID, targetID string, kind entity.EntitlementKind) error {
	lock := uc.locks.lockFor(accountID)
	lock.Lock()
	defer lock.Unlock()

	if err := uc.entitlements.Delete(accountID, targetID, kind); err != nil {
		return err
	}
	return nil
}

func (uc *ledgerUseCase) Entitlement(accountID, targetID string, kind entity.EntitlementKind) (*entity.Entitlement, error) {
	return uc.entitlements.Get(accountID, targetID, kind)
}

func (uc *ledgerUseCase) Entitlements(accountID string) ([]*entity.Entitlement, error) {
	entitlements, err := uc.entitlements.ListByAccount(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list entitlements: %w", err)
	}
	return entitlements, nil
}
