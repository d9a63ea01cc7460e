package testutils

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/AlenaMolokova/payhook/internal/storage"
)

// MemoryStore is an in-process stand-in for storage.Storage. It enforces the
// schema constraints that matter to callers: unique emails, unique
// transaction ids, account ownership and cascading user deletion.
type MemoryStore struct {
	mu       sync.Mutex
	users    map[int64]models.User
	accounts map[int64]models.Account
	payments []models.Payment
	nextUser int64
	nextPay  int64

	applyCalls int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[int64]models.User),
		accounts: make(map[int64]models.Account),
	}
}

func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *MemoryStore) CreateUser(ctx context.Context, user models.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return 0, fmt.Errorf("memory.CreateUser: %w", storage.ErrDuplicate)
		}
	}
	m.nextUser++
	user.ID = m.nextUser
	m.users[user.ID] = user
	return user.ID, nil
}

func (m *MemoryStore) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, fmt.Errorf("memory.GetUserByID: %w", storage.ErrNotFound)
	}
	return u, nil
}

func (m *MemoryStore) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, fmt.Errorf("memory.GetUserByEmail: %w", storage.ErrNotFound)
}

func (m *MemoryStore) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[id]
	if !ok {
		return fmt.Errorf("memory.UpdateUser: %w", storage.ErrNotFound)
	}
	if upd.Email != "" {
		for otherID, other := range m.users {
			if otherID != id && other.Email == upd.Email {
				return fmt.Errorf("memory.UpdateUser: %w", storage.ErrDuplicate)
			}
		}
		u.Email = upd.Email
	}
	if upd.FullName != "" {
		u.FullName = upd.FullName
	}
	if upd.HashedPassword != "" {
		u.HashedPassword = upd.HashedPassword
	}
	if upd.IsAdmin != nil {
		u.IsAdmin = *upd.IsAdmin
	}
	m.users[id] = u
	return nil
}

func (m *MemoryStore) DeleteUser(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[id]; !ok {
		return fmt.Errorf("memory.DeleteUser: %w", storage.ErrNotFound)
	}
	delete(m.users, id)

	owned := make(map[int64]bool)
	for accID, acc := range m.accounts {
		if acc.OwnerID == id {
			owned[accID] = true
			delete(m.accounts, accID)
		}
	}
	kept := m.payments[:0]
	for _, p := range m.payments {
		if !owned[p.AccountID] {
			kept = append(kept, p)
		}
	}
	m.payments = kept
	return nil
}

func (m *MemoryStore) ListUsersWithAccounts(ctx context.Context) ([]models.UserWithAccounts, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users := make([]models.UserWithAccounts, 0, len(m.users))
	for _, u := range m.users {
		users = append(users, models.UserWithAccounts{User: u, Accounts: m.accountsOf(u.ID)})
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (m *MemoryStore) GetAccountsByOwner(ctx context.Context, ownerID int64) ([]models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.accountsOf(ownerID), nil
}

func (m *MemoryStore) accountsOf(ownerID int64) []models.Account {
	accounts := make([]models.Account, 0)
	for _, a := range m.accounts {
		if a.OwnerID == ownerID {
			accounts = append(accounts, a)
		}
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts
}

func (m *MemoryStore) GetPaymentsByOwner(ctx context.Context, ownerID int64) ([]models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	payments := make([]models.Payment, 0)
	for _, p := range m.payments {
		if acc, ok := m.accounts[p.AccountID]; ok && acc.OwnerID == ownerID {
			payments = append(payments, p)
		}
	}
	return payments, nil
}

func (m *MemoryStore) GetPaymentByTransactionID(ctx context.Context, transactionID string) (models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.payments {
		if p.TransactionID == transactionID {
			return p, nil
		}
	}
	return models.Payment{}, fmt.Errorf("memory.GetPaymentByTransactionID: %w", storage.ErrNotFound)
}

func (m *MemoryStore) GetAccount(ctx context.Context, accountID, ownerID int64) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[accountID]
	if !ok || acc.OwnerID != ownerID {
		return models.Account{}, fmt.Errorf("memory.GetAccount: %w", storage.ErrNotFound)
	}
	return acc, nil
}

func (m *MemoryStore) EnsureAccount(ctx context.Context, accountID, ownerID int64) (models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.users[ownerID]; !ok {
		return models.Account{}, fmt.Errorf("memory.EnsureAccount: %w", storage.ErrForeignKey)
	}
	acc, ok := m.accounts[accountID]
	if !ok {
		acc = models.Account{ID: accountID, OwnerID: ownerID}
		m.accounts[accountID] = acc
	}
	if acc.OwnerID != ownerID {
		return models.Account{}, fmt.Errorf("memory.EnsureAccount: %w", storage.ErrNotFound)
	}
	return acc, nil
}

func (m *MemoryStore) ApplyPayment(ctx context.Context, p models.Payment) (models.Payment, models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.applyCalls++
	if err := ctx.Err(); err != nil {
		return models.Payment{}, models.Account{}, fmt.Errorf("memory.ApplyPayment: %w", err)
	}
	for _, existing := range m.payments {
		if existing.TransactionID == p.TransactionID {
			return models.Payment{}, models.Account{}, fmt.Errorf("memory.ApplyPayment: %w", storage.ErrDuplicate)
		}
	}
	acc, ok := m.accounts[p.AccountID]
	if !ok {
		return models.Payment{}, models.Account{}, fmt.Errorf("memory.ApplyPayment: %w", storage.ErrForeignKey)
	}

	m.nextPay++
	p.ID = m.nextPay
	m.payments = append(m.payments, p)
	acc.Balance += p.Amount
	m.accounts[acc.ID] = acc
	return p, acc, nil
}

// SetAdmin flips the admin flag directly, bypassing the admin API.
func (m *MemoryStore) SetAdmin(id int64, isAdmin bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.users[id]
	u.IsAdmin = isAdmin
	m.users[id] = u
}

// PutAccount inserts or replaces an account row.
func (m *MemoryStore) PutAccount(acc models.Account) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.accounts[acc.ID] = acc
}

func (m *MemoryStore) Account(id int64) (models.Account, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	acc, ok := m.accounts[id]
	return acc, ok
}

func (m *MemoryStore) PaymentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.payments)
}

// ApplyCalls counts ApplyPayment invocations, successful or not.
func (m *MemoryStore) ApplyCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.applyCalls
}
