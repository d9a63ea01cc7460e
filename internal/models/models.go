package models

import "encoding/json"

type User struct {
	ID             int64
	Email          string
	FullName       string
	HashedPassword string
	IsAdmin        bool
}

type Account struct {
	ID      int64
	Balance float64
	OwnerID int64
}

type Payment struct {
	ID            int64
	TransactionID string
	Amount        float64
	AccountID     int64
}

// UserWithAccounts is a user row together with the accounts it owns.
type UserWithAccounts struct {
	User
	Accounts []Account
}

// UserUpdate carries the columns to change on a user row. Empty strings and
// a nil IsAdmin leave the column untouched.
type UserUpdate struct {
	Email          string
	FullName       string
	HashedPassword string
	IsAdmin        *bool
}

// PaymentEvent is an inbound payment notification. Amount keeps the JSON
// number text as sent because the signature covers that text.
type PaymentEvent struct {
	AccountID     int64       `json:"account_id"`
	Amount        json.Number `json:"amount"`
	TransactionID string      `json:"transaction_id"`
	UserID        int64       `json:"user_id"`
	Signature     string      `json:"signature"`
}
