package handlers

import "github.com/AlenaMolokova/payhook/internal/models"

type loginResponse struct {
	Message string `json:"message"`
	UserID  int64  `json:"user_id"`
	Token   string `json:"token"`
}

type profileResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type accountResponse struct {
	ID      int64   `json:"id"`
	Balance float64 `json:"balance"`
}

type paymentResponse struct {
	ID        int64   `json:"id"`
	Amount    float64 `json:"amount"`
	AccountID int64   `json:"account_id"`
}

type adminUserResponse struct {
	ID       int64             `json:"id"`
	Email    string            `json:"email"`
	FullName string            `json:"full_name"`
	IsAdmin  bool              `json:"is_admin"`
	Accounts []accountResponse `json:"accounts"`
}

func toAccounts(accounts []models.Account) []accountResponse {
	out := make([]accountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, accountResponse{ID: a.ID, Balance: a.Balance})
	}
	return out
}

func toPayments(payments []models.Payment) []paymentResponse {
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, paymentResponse{ID: p.ID, Amount: p.Amount, AccountID: p.AccountID})
	}
	return out
}

func toAdminUsers(users []models.UserWithAccounts) []adminUserResponse {
	out := make([]adminUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, adminUserResponse{
			ID:       u.ID,
			Email:    u.Email,
			FullName: u.FullName,
			IsAdmin:  u.IsAdmin,
			Accounts: toAccounts(u.Accounts),
		})
	}
	return out
}
