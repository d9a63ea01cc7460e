package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/AlenaMolokova/payhook/internal/credentials"
	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/AlenaMolokova/payhook/internal/storage"
)

type PaymentStorage interface {
	GetUserByID(ctx context.Context, id int64) (models.User, error)
	GetPaymentByTransactionID(ctx context.Context, transactionID string) (models.Payment, error)
	GetAccount(ctx context.Context, accountID, ownerID int64) (models.Account, error)
	EnsureAccount(ctx context.Context, accountID, ownerID int64) (models.Account, error)
	ApplyPayment(ctx context.Context, p models.Payment) (models.Payment, models.Account, error)
}

type PaymentResult struct {
	Payment        models.Payment
	Account        models.Account
	AccountCreated bool
}

type PaymentUseCase struct {
	storage PaymentStorage
	secret  string
	log     *slog.Logger
}

func NewPaymentUseCase(storage PaymentStorage, secret string, log *slog.Logger) *PaymentUseCase {
	return &PaymentUseCase{storage: storage, secret: secret, log: log}
}

// ProcessWebhook applies one payment notification. The stages run in order
// and each one is a hard gate:
//
//  1. signature over account_id, amount, transaction_id, user_id
//  2. user exists
//  3. transaction id not seen before
//  4. account resolved, provisioned with a zero balance when new
//  5. payment row and balance increment committed together
//
// Stage 3 is only a shortcut for replays. Two concurrent deliveries of the
// same transaction id are separated by the unique index in stage 5, where the
// loser is rolled back and gets ErrApplyFailed.
func (uc *PaymentUseCase) ProcessWebhook(ctx context.Context, ev models.PaymentEvent) (PaymentResult, error) {
	log := uc.log.With(
		slog.String("transaction_id", ev.TransactionID),
		slog.Int64("user_id", ev.UserID),
		slog.Int64("account_id", ev.AccountID),
	)

	expected := credentials.SignPayment(uc.secret, ev.AccountID, ev.Amount.String(), ev.TransactionID, ev.UserID)
	if !credentials.VerifySignature(expected, ev.Signature) {
		log.Warn("payment rejected: signature mismatch")
		return PaymentResult{}, ErrInvalidSignature
	}

	amount, err := parseEvent(ev)
	if err != nil {
		log.Warn("payment rejected: malformed event", slog.Any("error", err))
		return PaymentResult{}, err
	}

	if _, err := uc.storage.GetUserByID(ctx, ev.UserID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("payment rejected: unknown user")
			return PaymentResult{}, ErrUserNotFound
		}
		return PaymentResult{}, fmt.Errorf("failed to get user: %w", err)
	}

	_, err = uc.storage.GetPaymentByTransactionID(ctx, ev.TransactionID)
	if err == nil {
		log.Info("payment ignored: already processed")
		return PaymentResult{}, ErrDuplicateTransaction
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return PaymentResult{}, fmt.Errorf("failed to check transaction: %w", err)
	}

	account, created, err := uc.resolveAccount(ctx, ev.AccountID, ev.UserID)
	if err != nil {
		if errors.Is(err, ErrAccountOwnership) {
			log.Warn("payment rejected: account owned by another user")
		}
		return PaymentResult{}, err
	}
	if created {
		log.Info("account provisioned")
	}

	payment, account, err := uc.storage.ApplyPayment(ctx, models.Payment{
		TransactionID: ev.TransactionID,
		Amount:        amount,
		AccountID:     account.ID,
	})
	if err != nil {
		log.Error("payment rolled back", slog.Any("error", err))
		return PaymentResult{}, fmt.Errorf("%w: %v", ErrApplyFailed, err)
	}

	log.Info("payment applied", slog.Float64("amount", amount), slog.Float64("balance", account.Balance))
	return PaymentResult{Payment: payment, Account: account, AccountCreated: created}, nil
}

func (uc *PaymentUseCase) resolveAccount(ctx context.Context, accountID, userID int64) (models.Account, bool, error) {
	account, err := uc.storage.GetAccount(ctx, accountID, userID)
	if err == nil {
		return account, false, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.Account{}, false, fmt.Errorf("failed to get account: %w", err)
	}

	account, err = uc.storage.EnsureAccount(ctx, accountID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return models.Account{}, false, ErrAccountOwnership
		}
		return models.Account{}, false, fmt.Errorf("failed to create account: %w", err)
	}
	return account, true, nil
}

// parseEvent checks the fields the signature cannot vouch for. Negative
// amounts pass through as debits.
func parseEvent(ev models.PaymentEvent) (float64, error) {
	if strings.TrimSpace(ev.TransactionID) == "" {
		return 0, fmt.Errorf("%w: transaction_id is required", ErrInvalidInput)
	}
	if ev.Amount == "" {
		return 0, fmt.Errorf("%w: amount is required", ErrInvalidInput)
	}
	amount, err := ev.Amount.Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: amount is not a number", ErrInvalidInput)
	}
	return amount, nil
}
