package usecase

import (
	"context"
	"strings"
	"testing"

	"github.com/AlenaMolokova/payhook/internal/credentials"
	"github.com/AlenaMolokova/payhook/internal/models"
	"github.com/AlenaMolokova/payhook/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boolPtr(b bool) *bool { return &b }

func TestAdminCreateUser(t *testing.T) {
	tests := []struct {
		name    string
		in      NewUser
		wantErr error
	}{
		{name: "plain user", in: NewUser{Email: "u@x.com", FullName: "U", Password: "pw"}},
		{name: "admin user", in: NewUser{Email: "adm@x.com", FullName: "Adm", Password: "pw", IsAdmin: true}},
		{name: "taken email", in: NewUser{Email: "taken@x.com", FullName: "T", Password: "pw"}, wantErr: ErrEmailTaken},
		{name: "bad email", in: NewUser{Email: "nope", FullName: "N", Password: "pw"}, wantErr: ErrInvalidInput},
		{name: "no password", in: NewUser{Email: "p@x.com", FullName: "P"}, wantErr: ErrInvalidInput},
		{name: "password over 72 bytes", in: NewUser{Email: "l@x.com", FullName: "L", Password: strings.Repeat("p", 73)}, wantErr: ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := testutils.NewMemoryStore()
			_, err := store.CreateUser(context.Background(), models.User{Email: "taken@x.com", FullName: "T"})
			require.NoError(t, err)
			uc := NewAdminUseCase(store)

			id, err := uc.CreateUser(context.Background(), tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			user, err := store.GetUserByID(context.Background(), id)
			require.NoError(t, err)
			assert.Equal(t, tt.in.IsAdmin, user.IsAdmin)
			assert.True(t, credentials.VerifyPassword(tt.in.Password, user.HashedPassword))
		})
	}
}

func TestAdminUpdateUser(t *testing.T) {
	ctx := context.Background()

	t.Run("partial update keeps untouched fields", func(t *testing.T) {
		store := testutils.NewMemoryStore()
		uc := NewAdminUseCase(store)
		id, err := uc.CreateUser(ctx, NewUser{Email: "u@x.com", FullName: "Old", Password: "pw"})
		require.NoError(t, err)

		require.NoError(t, uc.UpdateUser(ctx, id, UserChanges{FullName: "New"}))

		user, err := store.GetUserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "New", user.FullName)
		assert.Equal(t, "u@x.com", user.Email)
		assert.True(t, credentials.VerifyPassword("pw", user.HashedPassword))
		assert.False(t, user.IsAdmin)
	})

	t.Run("password and admin flag", func(t *testing.T) {
		store := testutils.NewMemoryStore()
		uc := NewAdminUseCase(store)
		id, err := uc.CreateUser(ctx, NewUser{Email: "u@x.com", FullName: "U", Password: "pw"})
		require.NoError(t, err)

		require.NoError(t, uc.UpdateUser(ctx, id, UserChanges{Password: "pw2", IsAdmin: boolPtr(true)}))

		user, err := store.GetUserByID(ctx, id)
		require.NoError(t, err)
		assert.True(t, credentials.VerifyPassword("pw2", user.HashedPassword))
		assert.True(t, user.IsAdmin)
	})

	t.Run("errors", func(t *testing.T) {
		store := testutils.NewMemoryStore()
		uc := NewAdminUseCase(store)
		a, err := uc.CreateUser(ctx, NewUser{Email: "a@x.com", FullName: "A", Password: "pw"})
		require.NoError(t, err)
		_, err = uc.CreateUser(ctx, NewUser{Email: "b@x.com", FullName: "B", Password: "pw"})
		require.NoError(t, err)

		assert.ErrorIs(t, uc.UpdateUser(ctx, 404, UserChanges{FullName: "X"}), ErrUserNotFound)
		assert.ErrorIs(t, uc.UpdateUser(ctx, a, UserChanges{Email: "b@x.com"}), ErrEmailTaken)
		assert.ErrorIs(t, uc.UpdateUser(ctx, a, UserChanges{Email: "broken"}), ErrInvalidInput)
		assert.ErrorIs(t, uc.UpdateUser(ctx, a, UserChanges{FullName: "   "}), ErrInvalidInput)
		assert.ErrorIs(t, uc.UpdateUser(ctx, a, UserChanges{Password: strings.Repeat("p", 73)}), ErrInvalidInput)

		user, err := store.GetUserByID(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, "A", user.FullName)
		assert.True(t, credentials.VerifyPassword("pw", user.HashedPassword))
	})

	t.Run("full name is trimmed", func(t *testing.T) {
		store := testutils.NewMemoryStore()
		uc := NewAdminUseCase(store)
		id, err := uc.CreateUser(ctx, NewUser{Email: "u@x.com", FullName: "U", Password: "pw"})
		require.NoError(t, err)

		require.NoError(t, uc.UpdateUser(ctx, id, UserChanges{FullName: "  New Name "}))

		user, err := store.GetUserByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "New Name", user.FullName)
	})
}

func TestAdminDeleteUser_Cascades(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMemoryStore()
	uc := NewAdminUseCase(store)
	payments := NewPaymentUseCase(store, webhookSecret, discardLogger())

	id, err := uc.CreateUser(ctx, NewUser{Email: "u@x.com", FullName: "U", Password: "pw"})
	require.NoError(t, err)
	_, err = payments.ProcessWebhook(ctx, signedEvent(42, "10", "tx-del", id))
	require.NoError(t, err)

	require.NoError(t, uc.DeleteUser(ctx, id))

	_, ok := store.Account(42)
	assert.False(t, ok)
	assert.Equal(t, 0, store.PaymentCount())
	assert.ErrorIs(t, uc.DeleteUser(ctx, id), ErrUserNotFound)
}

func TestAdminListUsers(t *testing.T) {
	ctx := context.Background()
	store := testutils.NewMemoryStore()
	uc := NewAdminUseCase(store)

	a, err := uc.CreateUser(ctx, NewUser{Email: "a@x.com", FullName: "A", Password: "pw"})
	require.NoError(t, err)
	_, err = uc.CreateUser(ctx, NewUser{Email: "b@x.com", FullName: "B", Password: "pw"})
	require.NoError(t, err)
	store.PutAccount(models.Account{ID: 7, Balance: 12.5, OwnerID: a})

	users, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)

	byEmail := map[string]models.UserWithAccounts{}
	for _, u := range users {
		byEmail[u.Email] = u
	}
	assert.Equal(t, []models.Account{{ID: 7, Balance: 12.5, OwnerID: a}}, byEmail["a@x.com"].Accounts)
	assert.NotNil(t, byEmail["b@x.com"].Accounts)
	assert.Empty(t, byEmail["b@x.com"].Accounts)
}

func TestEnsureAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates missing admin", func(t *testing.T) {
		store := testutils.NewMemoryStore()
		uc := NewAdminUseCase(store)

		created, err := uc.EnsureAdmin(ctx, "root@x.com", "pw")
		require.NoError(t, err)
		assert.True(t, created)

		user, err := store.GetUserByEmail(ctx, "root@x.com")
		require.NoError(t, err)
		assert.True(t, user.IsAdmin)

		created, err = uc.EnsureAdmin(ctx, "root@x.com", "other")
		require.NoError(t, err)
		assert.False(t, created)
		user, _ = store.GetUserByEmail(ctx, "root@x.com")
		assert.True(t, credentials.VerifyPassword("pw", user.HashedPassword), "existing password is kept")
	})

	t.Run("promotes existing user", func(t *testing.T) {
		store := testutils.NewMemoryStore()
		uc := NewAdminUseCase(store)
		_, err := uc.CreateUser(ctx, NewUser{Email: "root@x.com", FullName: "R", Password: "pw"})
		require.NoError(t, err)

		created, err := uc.EnsureAdmin(ctx, "root@x.com", "pw")
		require.NoError(t, err)
		assert.False(t, created)

		user, _ := store.GetUserByEmail(ctx, "root@x.com")
		assert.True(t, user.IsAdmin)
	})
}
