package routes

import (
	"net/http"

	"okrproject/handlers"
	"okrproject/middlewares"
)

// SetupOKRRoutes mounts the /okr surface. Tokens issued by the auth routes
// are required on every OKR operation.
func SetupOKRRoutes(mux *http.ServeMux, okrHandler *handlers.OKRHandler, jwtSecret string) {
	jwtMiddleware := middlewares.JWTMiddleware(jwtSecret)

	mux.Handle("POST /okr", jwtMiddleware(http.HandlerFunc(okrHandler.CreateOKR)))
	mux.Handle("POST /okr/{$}", jwtMiddleware(http.HandlerFunc(okrHandler.CreateOKR)))
	mux.Handle("GET /okr", jwtMiddleware(http.HandlerFunc(okrHandler.GetOKRs)))
	mux.Handle("GET /okr/{$}", jwtMiddleware(http.HandlerFunc(okrHandler.GetOKRs)))
	mux.Handle("GET /okr/stats", jwtMiddleware(http.HandlerFunc(okrHandler.GetOKRStats)))
	mux.Handle("GET /okr/owner/{ownerId}", jwtMiddleware(http.HandlerFunc(okrHandler.GetOKRsByOwner)))
	mux.Handle("GET /okr/{id}", jwtMiddleware(http.HandlerFunc(okrHandler.GetOKRByID)))
	mux.Handle("PUT /okr/{id}", jwtMiddleware(http.HandlerFunc(okrHandler.UpdateOKR)))
	mux.Handle("DELETE /okr/{id}", jwtMiddleware(http.HandlerFunc(okrHandler.DeleteOKR)))
	// Key Result sub-resource
	mux.Handle("POST /okr/{id}/key-results", jwtMiddleware(http.HandlerFunc(okrHandler.AddKeyResult)))
	mux.Handle("PUT /okr/{id}/key-results/{keyResultId}", jwtMiddleware(http.HandlerFunc(okrHandler.UpdateKeyResult)))
	mux.Handle("DELETE /okr/{id}/key-results/{keyResultId}", jwtMiddleware(http.HandlerFunc(okrHandler.DeleteKeyResult)))
}
