// Package memory holds in-memory implementations of the ledger repositories.
// They back the use case tests; the persistent package is the production
// storage.
package memory

import (
	"sort"
	"sync"
	"time"

	"prive-ledger/services/ledger/internal/entity"
	"prive-ledger/services/ledger/internal/repo/persistent"

	"github.com/google/uuid"
)

// Store owns all in-memory state behind one mutex and hands out repository
// views over it via Accounts, Transactions and Entitlements.
type Store struct {
	mu           sync.Mutex
	accounts     map[string]*entity.Account // keyed by account id
	byUser       map[string]string          // user id -> account id
	transactions []*entity.Transaction
	entitlements map[string]*entity.Entitlement // keyed by account|target|kind
	sequence     int64
}

func NewStore() *Store {
	return &Store{
		accounts:     make(map[string]*entity.Account),
		byUser:       make(map[string]string),
		entitlements: make(map[string]*entity.Entitlement),
	}
}

func (s *Store) Accounts() persistent.AccountRepository         { return &accountStore{s} }
func (s *Store) Transactions() persistent.TransactionRepository { return &transactionStore{s} }
func (s *Store) Entitlements() persistent.EntitlementRepository { return &entitlementStore{s} }

func entitlementKey(accountID, targetID string, kind entity.EntitlementKind) string {
	return accountID + "|" + targetID + "|" + string(kind)
}

type accountStore struct {
	store *Store
}

func (r *accountStore) GetOrCreate(userID string) (*entity.Account, bool, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if accountID, ok := r.store.byUser[userID]; ok {
		copied := *r.store.accounts[accountID]
		return &copied, false, nil
	}

	now := time.Now().UTC()
	account := &entity.Account{
		ID:        uuid.New().String(),
		UserID:    userID,
		Balance:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.store.accounts[account.ID] = account
	r.store.byUser[userID] = account.ID

	copied := *account
	return &copied, true, nil
}

func (r *accountStore) GetByID(accountID string) (*entity.Account, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[accountID]
	if !ok {
		return nil, entity.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *accountStore) UpdateBalance(accountID string, balance int64) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[accountID]
	if !ok {
		return entity.ErrAccountNotFound
	}
	account.Balance = balance
	account.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *accountStore) SetDisabled(accountID string, disabled bool) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	account, ok := r.store.accounts[accountID]
	if !ok {
		return entity.ErrAccountNotFound
	}
	account.Disabled = disabled
	account.UpdatedAt = time.Now().UTC()
	return nil
}

type transactionStore struct {
	store *Store
}

func (r *transactionStore) Create(transaction *entity.Transaction) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now().UTC()
	}
	r.store.sequence++
	transaction.Sequence = r.store.sequence

	copied := *transaction
	r.store.transactions = append(r.store.transactions, &copied)
	return nil
}

func (r *transactionStore) GetByID(transactionID string) (*entity.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	transaction := r.store.findTransaction(transactionID)
	if transaction == nil {
		return nil, entity.ErrTransactionNotFound
	}
	copied := *transaction
	return &copied, nil
}

func (r *transactionStore) GetByTarget(accountID, targetID string, kind entity.TransactionKind) (*entity.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, transaction := range r.store.transactions {
		if transaction.AccountID == accountID && transaction.TargetID == targetID && transaction.Kind == kind {
			copied := *transaction
			return &copied, nil
		}
	}
	return nil, entity.ErrTransactionNotFound
}

func (s *Store) findTransaction(transactionID string) *entity.Transaction {
	for _, transaction := range s.transactions {
		if transaction.ID == transactionID {
			return transaction
		}
	}
	return nil
}

func (r *transactionStore) ListByAccount(accountID string, limit, offset int) ([]*entity.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []*entity.Transaction
	for _, transaction := range r.store.transactions {
		if transaction.AccountID == accountID {
			copied := *transaction
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Sequence > result[j].Sequence
	})

	if offset > 0 {
		if offset >= len(result) {
			return nil, nil
		}
		result = result[offset:]
	}
	if limit > 0 && limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (r *transactionStore) UpdateStatus(transactionID string, status entity.TransactionStatus) (*entity.Transaction, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if status != entity.TransactionStatusCompleted && status != entity.TransactionStatusFailed {
		return nil, entity.ErrInvalidStateTransition
	}

	transaction := r.store.findTransaction(transactionID)
	if transaction == nil {
		return nil, entity.ErrTransactionNotFound
	}
	if transaction.Status != entity.TransactionStatusPending {
		return nil, entity.ErrInvalidStateTransition
	}
	transaction.Status = status

	copied := *transaction
	return &copied, nil
}

type entitlementStore struct {
	store *Store
}

func (r *entitlementStore) Get(accountID, targetID string, kind entity.EntitlementKind) (*entity.Entitlement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	entitlement, ok := r.store.entitlements[entitlementKey(accountID, targetID, kind)]
	if !ok {
		return nil, entity.ErrEntitlementNotFound
	}
	copied := *entitlement
	return &copied, nil
}

func (r *entitlementStore) Create(entitlement *entity.Entitlement) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if entitlement.ID == "" {
		entitlement.ID = uuid.New().String()
	}
	if entitlement.CreatedAt.IsZero() {
		entitlement.CreatedAt = time.Now().UTC()
	}

	copied := *entitlement
	r.store.entitlements[entitlementKey(entitlement.AccountID, entitlement.TargetID, entitlement.Kind)] = &copied
	return nil
}

func (r *entitlementStore) Delete(accountID, targetID string, kind entity.EntitlementKind) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := entitlementKey(accountID, targetID, kind)
	if _, ok := r.store.entitlements[key]; !ok {
		return entity.ErrEntitlementNotFound
	}
	delete(r.store.entitlements, key)
	return nil
}

func (r *entitlementStore) ListByAccount(accountID string) ([]*entity.Entitlement, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	var result []*entity.Entitlement
	for _, entitlement := range r.store.entitlements {
		if entitlement.AccountID == accountID {
			copied := *entitlement
			result = append(result, &copied)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

var (
	_ persistent.AccountRepository     = (*accountStore)(nil)
	_ persistent.TransactionRepository = (*transactionStore)(nil)
	_ persistent.EntitlementRepository = (*entitlementStore)(nil)
)
