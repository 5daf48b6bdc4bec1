package usecase

import (
	"context"
	"errors"
	"fmt"

	"prive-ledger/pkg/logger"
	"prive-ledger/pkg/queue"
	"prive-ledger/services/ledger/internal/entity"
	"prive-ledger/services/ledger/internal/resolver"
)

// MonetizationUseCase turns user-facing paid actions into priced, idempotent
// ledger operations. Insufficient balance surfaces verbatim and is never
// retried here.
type MonetizationUseCase interface {
	// Subscribe charges monthlyPrice once; calling it again while entitled
	// returns the existing entitlement without charging.
	Subscribe(subscriberID, creatorID string, monthlyPrice int64) (*entity.Entitlement, error)
	// Unsubscribe removes the entitlement without refunding. It is a no-op
	// when no subscription exists.
	Unsubscribe(subscriberID, creatorID string) error
	// Unlock grants paid access to a post or message, charging at most once
	// per target.
	Unlock(payerID, targetID string, kind entity.EntitlementKind, price int64) (*entity.Entitlement, error)
	// Tip is intentionally not idempotent: every call is a new payment.
	Tip(payerID, recipientID string, amount int64) (*entity.Transaction, error)
	Subscriptions(userID string) ([]*entity.Entitlement, error)
}

type monetizationUseCase struct {
	ledger      LedgerUseCase
	owners      resolver.ContentOwnerResolver
	feeBps      int
	queueClient *queue.Client
	logger      *logger.Logger
}

func NewMonetizationUseCase(
	ledger LedgerUseCase,
	owners resolver.ContentOwnerResolver,
	feeBps int,
	queueClient *queue.Client,
	log *logger.Logger,
) MonetizationUseCase {
	return &monetizationUseCase{
		ledger:      ledger,
		owners:      owners,
		feeBps:      feeBps,
		queueClient: queueClient,
		logger:      log,
	}
}

// creatorShare is the platform fee split: the creator receives the price minus
// the fee, rounded down to whole minor units.
func (uc *monetizationUseCase) creatorShare(price int64) int64 {
	return price - price*int64(uc.feeBps)/10000
}

func (uc *monetizationUseCase) Subscribe(subscriberID, creatorID string, monthlyPrice int64) (*entity.Entitlement, error) {
	if subscriberID == creatorID {
		return nil, entity.ErrSelfPayment
	}
	if monthlyPrice <= 0 {
		return nil, entity.ErrInvalidAmount
	}

	subscriber, err := uc.ledger.GetAccount(subscriberID)
	if err != nil {
		return nil, err
	}

	entitlement, transaction, err := uc.ledger.PurchaseEntitlement(EntitlementPurchase{
		AccountID:   subscriber.ID,
		TargetID:    creatorID,
		Kind:        entity.EntitlementKindSubscription,
		Price:       monthlyPrice,
		Description: fmt.Sprintf("Subscription to %s", creatorID),
	})
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		// Already subscribed; nothing was charged.
		return entitlement, nil
	}

	if err := uc.creditOwner(creatorID, uc.creatorShare(monthlyPrice), entity.TransactionKindSubscription, fmt.Sprintf("Subscription from %s", subscriberID)); err != nil {
		return nil, err
	}
	return entitlement, nil
}

func (uc *monetizationUseCase) Unsubscribe(subscriberID, creatorID string) error {
	subscriber, err := uc.ledger.GetAccount(subscriberID)
	if err != nil {
		return err
	}

	err = uc.ledger.RevokeEntitlement(subscriber.ID, creatorID, entity.EntitlementKindSubscription)
	if err != nil && !errors.Is(err, entity.ErrEntitlementNotFound) {
		return err
	}
	return nil
}

func (uc *monetizationUseCase) Unlock(payerID, targetID string, kind entity.EntitlementKind, price int64) (*entity.Entitlement, error) {
	if kind != entity.EntitlementKindUnlockPost && kind != entity.EntitlementKindUnlockMessage {
		return nil, fmt.Errorf("unsupported unlock kind %q", kind)
	}
	if price <= 0 {
		return nil, entity.ErrInvalidAmount
	}

	ownerID, err := uc.owners.OwnerOf(context.Background(), targetID, kind)
	if err != nil {
		return nil, err
	}
	if ownerID == payerID {
		return nil, entity.ErrSelfPayment
	}

	payer, err := uc.ledger.GetAccount(payerID)
	if err != nil {
		return nil, err
	}

	description := "Unlocked premium post"
	if kind == entity.EntitlementKindUnlockMessage {
		description = "Unlocked private message"
	}

	entitlement, transaction, err := uc.ledger.PurchaseEntitlement(EntitlementPurchase{
		AccountID:   payer.ID,
		TargetID:    targetID,
		Kind:        kind,
		Price:       price,
		Description: description,
	})
	if err != nil {
		return nil, err
	}
	if transaction == nil {
		return entitlement, nil
	}

	if err := uc.creditOwner(ownerID, uc.creatorShare(price), kind.TransactionKind(), fmt.Sprintf("Content unlocked by %s", payerID)); err != nil {
		return nil, err
	}
	return entitlement, nil
}

func (uc *monetizationUseCase) Tip(payerID, recipientID string, amount int64) (*entity.Transaction, error) {
	if payerID == recipientID {
		return nil, entity.ErrSelfPayment
	}
	if amount <= 0 {
		return nil, entity.ErrInvalidAmount
	}

	payer, err := uc.ledger.GetAccount(payerID)
	if err != nil {
		return nil, err
	}

	debit, err := uc.ledger.Debit(payer.ID, amount, entity.TransactionKindTip, "Tip sent to creator")
	if err != nil {
		return nil, err
	}

	// The debit succeeded; the recipient credit is unconditional.
	recipient, err := uc.ledger.GetAccount(recipientID)
	if err != nil {
		return nil, err
	}
	credit, err := uc.ledger.Credit(recipient.ID, amount, entity.TransactionKindTip, fmt.Sprintf("Tip from %s", payerID))
	if err != nil {
		return nil, err
	}

	if uc.queueClient != nil {
		go uc.publishTipEvent(recipientID, credit)
	}
	return debit, nil
}

func (uc *monetizationUseCase) Subscriptions(userID string) ([]*entity.Entitlement, error) {
	account, err := uc.ledger.GetAccount(userID)
	if err != nil {
		return nil, err
	}
	return uc.ledger.Entitlements(account.ID)
}

func (uc *monetizationUseCase) creditOwner(ownerID string, share int64, kind entity.TransactionKind, description string) error {
	if share <= 0 {
		return nil
	}
	owner, err := uc.ledger.GetAccount(ownerID)
	if err != nil {
		return err
	}
	if _, err := uc.ledger.Credit(owner.ID, share, kind, description); err != nil {
		return fmt.Errorf("failed to credit creator %s: %w", ownerID, err)
	}
	return nil
}

func (uc *monetizationUseCase) publishTipEvent(recipientID string, credit *entity.Transaction) {
	event := queue.LedgerEvent{
		TransactionID: credit.ID,
		AccountID:     credit.AccountID,
		UserID:        recipientID,
		Kind:          string(credit.Kind),
		Amount:        credit.Amount,
		OccurredAt:    credit.CreatedAt,
	}
	if err := uc.queueClient.PublishLedgerEvent(queue.RoutingKeyTipReceived, event); err != nil {
		uc.logger.Error("Failed to publish tip event: %v", err)
	}
}
