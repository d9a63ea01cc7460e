package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/AlenaMolokova/payhook/internal/usecase"
	"github.com/AlenaMolokova/payhook/internal/utils"
	"github.com/AlenaMolokova/payhook/internal/validation"
	"github.com/go-chi/chi/v5"
)

// userIDParam reads the {user_id} path segment.
func userIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "user_id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// writeAdminError maps admin use case errors onto responses.
func writeAdminError(w http.ResponseWriter, log *slog.Logger, err error) {
	switch {
	case errors.Is(err, usecase.ErrUserNotFound):
		utils.WriteJSONError(w, http.StatusNotFound, "User not found")
	case errors.Is(err, usecase.ErrEmailTaken):
		utils.WriteJSONError(w, http.StatusBadRequest, "User with this email already exists")
	case errors.Is(err, validation.ErrPasswordTooLong):
		utils.WriteJSONError(w, http.StatusBadRequest, passwordTooLongMessage)
	case errors.Is(err, usecase.ErrInvalidInput):
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid user data")
	default:
		log.Error("admin operation failed", slog.Any("error", err))
		utils.WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

type CreateUserHandler struct {
	admin AdminService
	log   *slog.Logger
}

func NewCreateUserHandler(admin AdminService, log *slog.Logger) *CreateUserHandler {
	return &CreateUserHandler{admin: admin, log: log}
}

func (h *CreateUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
		IsAdmin  bool   `json:"is_admin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	id, err := h.admin.CreateUser(r.Context(), usecase.NewUser{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		writeAdminError(w, h.log, err)
		return
	}

	h.log.Info("user created by admin", slog.Int64("user_id", id), slog.Bool("is_admin", req.IsAdmin))
	utils.WriteJSONMessage(w, http.StatusOK, "User created successfully")
}

type DeleteUserHandler struct {
	admin AdminService
	log   *slog.Logger
}

func NewDeleteUserHandler(admin AdminService, log *slog.Logger) *DeleteUserHandler {
	return &DeleteUserHandler{admin: admin, log: log}
}

func (h *DeleteUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	if err := h.admin.DeleteUser(r.Context(), id); err != nil {
		writeAdminError(w, h.log, err)
		return
	}

	h.log.Info("user deleted by admin", slog.Int64("user_id", id))
	utils.WriteJSONMessage(w, http.StatusOK, "User deleted successfully")
}

type UpdateUserHandler struct {
	admin AdminService
	log   *slog.Logger
}

func NewUpdateUserHandler(admin AdminService, log *slog.Logger) *UpdateUserHandler {
	return &UpdateUserHandler{admin: admin, log: log}
}

func (h *UpdateUserHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := userIDParam(r)
	if !ok {
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req struct {
		Email    string `json:"email"`
		FullName string `json:"full_name"`
		Password string `json:"password"`
		IsAdmin  *bool  `json:"is_admin"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteJSONError(w, http.StatusBadRequest, "Invalid request format")
		return
	}

	err := h.admin.UpdateUser(r.Context(), id, usecase.UserChanges{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		IsAdmin:  req.IsAdmin,
	})
	if err != nil {
		writeAdminError(w, h.log, err)
		return
	}

	h.log.Info("user updated by admin", slog.Int64("user_id", id))
	utils.WriteJSONMessage(w, http.StatusOK, "User updated successfully")
}

type ListUsersHandler struct {
	admin AdminService
	log   *slog.Logger
}

func NewListUsersHandler(admin AdminService, log *slog.Logger) *ListUsersHandler {
	return &ListUsersHandler{admin: admin, log: log}
}

func (h *ListUsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	users, err := h.admin.ListUsers(r.Context())
	if err != nil {
		writeAdminError(w, h.log, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, toAdminUsers(users))
}
