package routes

import (
	"net/http"

	"okrproject/handlers"
)

func SetupAuthRoutes(mux *http.ServeMux, authHandler *handlers.AuthHandler) {
	mux.Handle("POST /auth/register", http.HandlerFunc(authHandler.Register))
	mux.Handle("POST /auth/login", http.HandlerFunc(authHandler.Login))
}
