package usecase

import (
	"fmt"

	"prive-ledger/pkg/logger"
	"prive-ledger/pkg/queue"
	"prive-ledger/services/ledger/internal/entity"
)

// PayoutUseCase guards the exit of money from the platform. A withdrawal
// request reserves the funds immediately (the transaction stays pending) and
// the external payment processor later confirms or fails it through the
// settlement callbacks.
type PayoutUseCase interface {
	RequestWithdrawal(userID string, amount int64) (*entity.Transaction, error)
	// ConfirmWithdrawal marks a pending withdrawal as completed. The balance
	// was already debited at request time.
	ConfirmWithdrawal(transactionID string) (*entity.Transaction, error)
	// FailWithdrawal marks a pending withdrawal as failed and credits the
	// reserved amount back as a separate reversal transaction. Repeating the
	// call on an already failed withdrawal only fills in a missing reversal.
	FailWithdrawal(transactionID string) (*entity.Transaction, error)
}

type payoutUseCase struct {
	ledger        LedgerUseCase
	minWithdrawal int64
	queueClient   *queue.Client
	logger        *logger.Logger
}

func NewPayoutUseCase(
	ledger LedgerUseCase,
	minWithdrawal int64,
	queueClient *queue.Client,
	log *logger.Logger,
) PayoutUseCase {
	return &payoutUseCase{
		ledger:        ledger,
		minWithdrawal: minWithdrawal,
		queueClient:   queueClient,
		logger:        log,
	}
}

func (uc *payoutUseCase) RequestWithdrawal(userID string, amount int64) (*entity.Transaction, error) {
	if amount < uc.minWithdrawal {
		return nil, entity.ErrBelowMinimum
	}

	account, err := uc.ledger.GetAccount(userID)
	if err != nil {
		return nil, err
	}

	transaction, err := uc.ledger.Withdraw(account.ID, amount, "Withdrawal to bank account")
	if err != nil {
		return nil, err
	}

	uc.publish(queue.RoutingKeyPayoutRequested, userID, transaction)
	return transaction, nil
}

func (uc *payoutUseCase) ConfirmWithdrawal(transactionID string) (*entity.Transaction, error) {
	transaction, err := uc.withdrawalByID(transactionID)
	if err != nil {
		return nil, err
	}

	settled, err := uc.ledger.SettleTransaction(transaction.ID, entity.TransactionStatusCompleted)
	if err != nil {
		return nil, err
	}

	uc.publish(queue.RoutingKeyPayoutSettled, "", settled)
	return settled, nil
}

func (uc *payoutUseCase) FailWithdrawal(transactionID string) (*entity.Transaction, error) {
	transaction, err := uc.withdrawalByID(transactionID)
	if err != nil {
		return nil, err
	}

	switch transaction.Status {
	case entity.TransactionStatusPending:
		failed, err := uc.ledger.SettleTransaction(transaction.ID, entity.TransactionStatusFailed)
		if err != nil {
			return nil, err
		}
		transaction = failed
	case entity.TransactionStatusFailed:
		// An earlier call flipped the status but its reversal credit may not
		// have landed; the reversal below is idempotent, so finish it here.
	default:
		return nil, entity.ErrInvalidStateTransition
	}

	reversal, err := uc.ledger.ReverseWithdrawal(transaction.ID)
	if err != nil {
		return nil, fmt.Errorf("failed withdrawal %s was not reversed: %w", transaction.ID, err)
	}
	uc.logger.Info("Reversed failed withdrawal %s with credit %s", transaction.ID, reversal.ID)

	uc.publish(queue.RoutingKeyPayoutFailed, "", transaction)
	return transaction, nil
}

func (uc *payoutUseCase) withdrawalByID(transactionID string) (*entity.Transaction, error) {
	transaction, err := uc.ledger.Transaction(transactionID)
	if err != nil {
		return nil, err
	}
	if transaction.Kind != entity.TransactionKindWithdrawal {
		return nil, entity.ErrTransactionNotFound
	}
	return transaction, nil
}

func (uc *payoutUseCase) publish(routingKey, userID string, transaction *entity.Transaction) {
	if uc.queueClient == nil {
		return
	}
	event := queue.LedgerEvent{
		TransactionID: transaction.ID,
		AccountID:     transaction.AccountID,
		UserID:        userID,
		Kind:          string(transaction.Kind),
		Amount:        transaction.Amount,
		OccurredAt:    transaction.CreatedAt,
	}
	go func() {
		if err := uc.queueClient.PublishLedgerEvent(routingKey, event); err != nil {
			uc.logger.Error("Failed to publish %s event: %v", routingKey, err)
		}
	}()
}
