package storage

import (
	"context"

	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) GetAccountsByOwner(ctx context.Context, ownerID int64) ([]models.Account, error) {
	const op = "storage.GetAccountsByOwner"

	rows, err := s.db.Query(ctx, `
		SELECT id, balance, owner_id
		FROM accounts
		WHERE owner_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	accounts := make([]models.Account, 0)
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.Balance, &a.OwnerID); err != nil {
			return nil, wrap(op, err)
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return accounts, nil
}

func (s *Storage) GetPaymentsByOwner(ctx context.Context, ownerID int64) ([]models.Payment, error) {
	const op = "storage.GetPaymentsByOwner"

	rows, err := s.db.Query(ctx, `
		SELECT p.id, p.transaction_id, p.amount, p.account_id
		FROM payments p
		JOIN accounts a ON a.id = p.account_id
		WHERE a.owner_id = $1
		ORDER BY p.id
	`, ownerID)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	payments := make([]models.Payment, 0)
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.TransactionID, &p.Amount, &p.AccountID); err != nil {
			return nil, wrap(op, err)
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}
	return payments, nil
}

func (s *Storage) GetPaymentByTransactionID(ctx context.Context, transactionID string) (models.Payment, error) {
	const op = "storage.GetPaymentByTransactionID"

	var p models.Payment
	err := s.db.QueryRow(ctx, `
		SELECT id, transaction_id, amount, account_id
		FROM payments
		WHERE transaction_id = $1
	`, transactionID).Scan(&p.ID, &p.TransactionID, &p.Amount, &p.AccountID)
	if err != nil {
		return models.Payment{}, wrap(op, err)
	}
	return p, nil
}

func (s *Storage) GetAccount(ctx context.Context, accountID, ownerID int64) (models.Account, error) {
	const op = "storage.GetAccount"

	var a models.Account
	err := s.db.QueryRow(ctx, `
		SELECT id, balance, owner_id
		FROM accounts
		WHERE id = $1 AND owner_id = $2
	`, accountID, ownerID).Scan(&a.ID, &a.Balance, &a.OwnerID)
	if err != nil {
		return models.Account{}, wrap(op, err)
	}
	return a, nil
}

// EnsureAccount creates account accountID for ownerID with a zero balance
// unless an account with that id already exists, then reads it back scoped to
// the owner. ErrNotFound means the id belongs to somebody else.
func (s *Storage) EnsureAccount(ctx context.Context, accountID, ownerID int64) (models.Account, error) {
	const op = "storage.EnsureAccount"

	_, err := s.db.Exec(ctx, `
		INSERT INTO accounts (id, balance, owner_id)
		VALUES ($1, 0, $2)
		ON CONFLICT (id) DO NOTHING
	`, accountID, ownerID)
	if err != nil {
		return models.Account{}, wrap(op, err)
	}

	return s.GetAccount(ctx, accountID, ownerID)
}

// ApplyPayment records p and credits its account in one transaction. On any
// error nothing is persisted; a concurrent insert of the same transaction id
// surfaces as ErrDuplicate.
func (s *Storage) ApplyPayment(ctx context.Context, p models.Payment) (models.Payment, models.Account, error) {
	const op = "storage.ApplyPayment"

	var account models.Account
	err := pgx.BeginFunc(ctx, s.db, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO payments (transaction_id, amount, account_id)
			VALUES ($1, $2, $3)
			RETURNING id
		`, p.TransactionID, p.Amount, p.AccountID).Scan(&p.ID)
		if err != nil {
			return err
		}

		return tx.QueryRow(ctx, `
			UPDATE accounts
			SET balance = balance + $1
			WHERE id = $2
			RETURNING id, balance, owner_id
		`, p.Amount, p.AccountID).Scan(&account.ID, &account.Balance, &account.OwnerID)
	})
	if err != nil {
		return models.Payment{}, models.Account{}, wrap(op, err)
	}
	return p, account, nil
}
