package handler

import (
	"net/http"

	"github.com/prog6212/cmcs/backend/internal/domain"
	"github.com/prog6212/cmcs/backend/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetAllUserInfo(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "users listed", users)
}

func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       string  `json:"name" validate:"required"`
		Surname    string  `json:"surname" validate:"required"`
		Email      string  `json:"email" validate:"required,email"`
		Role       string  `json:"role" validate:"required,oneof=HR Lecturer Coordinator Manager"`
		HourlyRate float64 `json:"hourlyRate" validate:"gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	password := utils.GenerateRandomPassword(h.config.NewUser.PasswordLength)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user := &domain.User{
		Name:         req.Name,
		Surname:      req.Surname,
		Email:        req.Email,
		HourlyRate:   req.HourlyRate,
		Role:         domain.Role(req.Role),
		PasswordHash: string(hashedPassword),
	}

	if _, err := h.service.AddUser(r.Context(), user); err != nil {
		h.serviceError(w, r, err, "user not found")
		return
	}

	// the generated password only ever leaves the server in this mail
	mailMessage := domain.MailMessage{
		Type: domain.MailTypeCreateUser,
		To:   user.Email,
		Data: domain.CreateUserMailData{
			FullName: user.FullName(),
			Email:    user.Email,
			Role:     string(user.Role),
			Password: password,
		},
	}

	if err := h.mail.Publish(r.Context(), mailMessage); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "user created", user)
}

func (h *Handler) GetUserInfo(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)
	h.successResponse(w, r, "user found", user)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name       *string  `json:"name" validate:"omitempty,min=1"`
		Surname    *string  `json:"surname" validate:"omitempty,min=1"`
		Email      *string  `json:"email" validate:"omitempty,email"`
		Role       *string  `json:"role" validate:"omitempty,oneof=HR Lecturer Coordinator Manager"`
		HourlyRate *float64 `json:"hourlyRate" validate:"omitempty,gte=0"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	user := r.Context().Value(UserInfoCtx).(*domain.User)

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Surname != nil {
		user.Surname = *req.Surname
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		user.Role = domain.Role(*req.Role)
	}
	if req.HourlyRate != nil {
		user.HourlyRate = *req.HourlyRate
	}

	if err := h.service.UpdateUser(r.Context(), user); err != nil {
		h.serviceError(w, r, err, "user not found")
		return
	}

	h.successResponse(w, r, "user updated", user)
}

func (h *Handler) UpdateUserPassword(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(UserInfoCtx).(*domain.User)

	var req struct {
		Password string `json:"password" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	user.PasswordHash = string(hashedPassword)
	if err := h.service.UpdateUser(r.Context(), user); err != nil {
		h.serviceError(w, r, err, "user not found")
		return
	}

	h.successResponse(w, r, "password updated", nil)
}
