package usecase

import "sync"

// accountLockTable hands out one mutex per account so balance check-then-mutate
// runs as a critical section without unrelated accounts contending.
type accountLockTable struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newAccountLockTable() *accountLockTable {
	return &accountLockTable{locks: make(map[string]*sync.Mutex)}
}

func (t *accountLockTable) lockFor(accountID string) *sync.Mutex {
	t.mu.Lock()
	defer t.mu.Unlock()

	lock, ok := t.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		t.locks[accountID] = lock
	}
	return lock
}
