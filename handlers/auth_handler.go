package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"okrproject/models"
	service "okrproject/services"
	"okrproject/utils"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	user, err := h.service.Register(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			utils.HandleMessageResponse(w, "Email is already registered", http.StatusBadRequest)
			return
		}
		utils.HandleErrorResponse(w, "There was a problem registering the user", err, http.StatusInternalServerError)
		return
	}

	utils.HandleJSONResponse(w, models.AuthResponse{
		Msg:  "User registered successfully",
		User: user.Summary(),
	}, http.StatusCreated)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	token, user, err := h.service.Login(ctx, &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			utils.HandleMessageResponse(w, "Invalid email or password", http.StatusUnauthorized)
			return
		}
		utils.HandleErrorResponse(w, "There was a problem logging in", err, http.StatusInternalServerError)
		return
	}

	utils.HandleJSONResponse(w, models.AuthResponse{
		Msg:   "Login successful",
		Token: token,
		User:  user.Summary(),
	}, http.StatusOK)
}
