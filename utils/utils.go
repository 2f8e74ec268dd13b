package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"okrproject/models"

	"github.com/go-playground/validator/v10"
)

var Validate *validator.Validate

func init() {
	Validate = validator.New()
}

// DecodeAndValidate decodes the request body into a structure and validates it
func DecodeAndValidate(w http.ResponseWriter, r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		HandleErrorResponse(w, "Invalid request body", err, http.StatusBadRequest)
		return err
	}
	if err := Validate.Struct(v); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		messages := make([]string, 0, len(validationErrors))

		for _, e := range validationErrors {
			messages = append(messages, fmt.Sprintf("%s: %s", e.Field(), e.Tag()))
		}
		HandleErrorResponse(w, "Validation failed", errors.New(strings.Join(messages, ", ")), http.StatusBadRequest)
		return err
	}
	return nil
}

// HandleMessageResponse writes a bare {msg} envelope
func HandleMessageResponse(w http.ResponseWriter, msg string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(models.NewMessageResponse(msg))
}

// HandleErrorResponse writes a {msg, error} envelope
func HandleErrorResponse(w http.ResponseWriter, msg string, err error, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(models.NewErrorResponse(msg, err))
}

// HandleJSONResponse writes an arbitrary success payload
func HandleJSONResponse(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}
