package storage

import (
	"context"

	"github.com/AlenaMolokova/payhook/internal/models"
)

func (s *Storage) CreateUser(ctx context.Context, user models.User) (int64, error) {
	const op = "storage.CreateUser"

	var id int64
	err := s.db.QueryRow(ctx, `
		INSERT INTO users (email, full_name, hashed_password, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, user.Email, user.FullName, user.HashedPassword, user.IsAdmin).Scan(&id)
	if err != nil {
		return 0, wrap(op, err)
	}
	return id, nil
}

func (s *Storage) GetUserByID(ctx context.Context, id int64) (models.User, error) {
	const op = "storage.GetUserByID"

	var u models.User
	err := s.db.QueryRow(ctx, `
		SELECT id, email, full_name, hashed_password, is_admin
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Email, &u.FullName, &u.HashedPassword, &u.IsAdmin)
	if err != nil {
		return models.User{}, wrap(op, err)
	}
	return u, nil
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	const op = "storage.GetUserByEmail"

	var u models.User
	err := s.db.QueryRow(ctx, `
		SELECT id, email, full_name, hashed_password, is_admin
		FROM users
		WHERE email = $1
	`, email).Scan(&u.ID, &u.Email, &u.FullName, &u.HashedPassword, &u.IsAdmin)
	if err != nil {
		return models.User{}, wrap(op, err)
	}
	return u, nil
}

func (s *Storage) UpdateUser(ctx context.Context, id int64, upd models.UserUpdate) error {
	const op = "storage.UpdateUser"

	tag, err := s.db.Exec(ctx, `
		UPDATE users SET
			email = COALESCE(NULLIF($2, ''), email),
			full_name = COALESCE(NULLIF($3, ''), full_name),
			hashed_password = COALESCE(NULLIF($4, ''), hashed_password),
			is_admin = COALESCE($5, is_admin)
		WHERE id = $1
	`, id, upd.Email, upd.FullName, upd.HashedPassword, upd.IsAdmin)
	if err != nil {
		return wrap(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrap(op, ErrNotFound)
	}
	return nil
}

// DeleteUser removes the user. Accounts and payments go with it through the
// ON DELETE CASCADE foreign keys.
func (s *Storage) DeleteUser(ctx context.Context, id int64) error {
	const op = "storage.DeleteUser"

	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return wrap(op, err)
	}
	if tag.RowsAffected() == 0 {
		return wrap(op, ErrNotFound)
	}
	return nil
}

func (s *Storage) ListUsersWithAccounts(ctx context.Context) ([]models.UserWithAccounts, error) {
	const op = "storage.ListUsersWithAccounts"

	rows, err := s.db.Query(ctx, `
		SELECT id, email, full_name, hashed_password, is_admin
		FROM users
		ORDER BY id
	`)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer rows.Close()

	users := make([]models.UserWithAccounts, 0)
	index := make(map[int64]int)
	for rows.Next() {
		var u models.UserWithAccounts
		if err := rows.Scan(&u.ID, &u.Email, &u.FullName, &u.HashedPassword, &u.IsAdmin); err != nil {
			return nil, wrap(op, err)
		}
		u.Accounts = make([]models.Account, 0)
		index[u.ID] = len(users)
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap(op, err)
	}

	accRows, err := s.db.Query(ctx, `
		SELECT id, balance, owner_id
		FROM accounts
		ORDER BY id
	`)
	if err != nil {
		return nil, wrap(op, err)
	}
	defer accRows.Close()

	for accRows.Next() {
		var a models.Account
		if err := accRows.Scan(&a.ID, &a.Balance, &a.OwnerID); err != nil {
			return nil, wrap(op, err)
		}
		if i, ok := index[a.OwnerID]; ok {
			users[i].Accounts = append(users[i].Accounts, a)
		}
	}
	if err := accRows.Err(); err != nil {
		return nil, wrap(op, err)
	}

	return users, nil
}
