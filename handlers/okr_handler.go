package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"okrproject/models"
	service "okrproject/services"
	"okrproject/utils"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OKRHandler struct {
	service service.OKRService
}

func NewOKRHandler(service service.OKRService) *OKRHandler {
	return &OKRHandler{
		service: service,
	}
}

func (h *OKRHandler) CreateOKR(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOKRRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	okr, err := h.service.CreateOKR(ctx, &req)
	if err != nil {
		handleServiceError(w, err, "There was a problem creating the OKR")
		return
	}

	utils.HandleJSONResponse(w, models.NewOKRResponse("OKR created successfully", okr), http.StatusCreated)
}

func (h *OKRHandler) GetOKRs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := filterFromQuery(query)

	page := intQueryParam(query, "page", 1)
	limit := intQueryParam(query, "limit", 10)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := h.service.GetOKRs(ctx, filter, page, limit)
	if err != nil {
		handleServiceError(w, err, "There was a problem retrieving the OKRs")
		return
	}

	utils.HandleJSONResponse(w, result, http.StatusOK)
}

func (h *OKRHandler) GetOKRByID(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid OKR ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	okr, err := h.service.GetOKRByID(ctx, id)
	if err != nil {
		handleServiceError(w, err, "There was a problem retrieving the OKR")
		return
	}

	utils.HandleJSONResponse(w, okr, http.StatusOK)
}

func (h *OKRHandler) GetOKRsByOwner(w http.ResponseWriter, r *http.Request) {
	ownerID, err := primitive.ObjectIDFromHex(r.PathValue("ownerId"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid owner ID format", http.StatusBadRequest)
		return
	}

	query := r.URL.Query()
	filter := models.OKRFilter{
		Status: query.Get("status"),
		Period: query.Get("period"),
		Year:   intQueryParam(query, "year", 0),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	okrs, err := h.service.GetOKRsByOwner(ctx, ownerID, filter)
	if err != nil {
		handleServiceError(w, err, "There was a problem retrieving the owner's OKRs")
		return
	}

	utils.HandleJSONResponse(w, models.OwnerOKRsResponse{OKRs: okrs, Count: len(okrs)}, http.StatusOK)
}

func (h *OKRHandler) UpdateOKR(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid OKR ID format", http.StatusBadRequest)
		return
	}

	var req models.UpdateOKRRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	okr, err := h.service.UpdateOKR(ctx, id, &req)
	if err != nil {
		handleServiceError(w, err, "There was a problem updating the OKR")
		return
	}

	utils.HandleJSONResponse(w, models.NewOKRResponse("OKR updated successfully", okr), http.StatusOK)
}

func (h *OKRHandler) DeleteOKR(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid OKR ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	if err := h.service.DeleteOKR(ctx, id); err != nil {
		handleServiceError(w, err, "There was a problem deleting the OKR")
		return
	}

	utils.HandleMessageResponse(w, "OKR deleted successfully", http.StatusOK)
}

func (h *OKRHandler) AddKeyResult(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid OKR ID format", http.StatusBadRequest)
		return
	}

	var req models.AddKeyResultRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	okr, err := h.service.AddKeyResult(ctx, id, &req)
	if err != nil {
		handleServiceError(w, err, "There was a problem adding the Key Result")
		return
	}

	utils.HandleJSONResponse(w, models.NewOKRResponse("Key Result added successfully", okr), http.StatusOK)
}

func (h *OKRHandler) UpdateKeyResult(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid OKR ID format", http.StatusBadRequest)
		return
	}

	keyResultID, err := primitive.ObjectIDFromHex(r.PathValue("keyResultId"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid Key Result ID format", http.StatusBadRequest)
		return
	}

	var req models.UpdateKeyResultRequest
	if err := utils.DecodeAndValidate(w, r, &req); err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	okr, err := h.service.UpdateKeyResult(ctx, id, keyResultID, &req)
	if err != nil {
		handleServiceError(w, err, "There was a problem updating the Key Result")
		return
	}

	utils.HandleJSONResponse(w, models.NewOKRResponse("Key Result updated successfully", okr), http.StatusOK)
}

func (h *OKRHandler) DeleteKeyResult(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(r.PathValue("id"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid OKR ID format", http.StatusBadRequest)
		return
	}

	keyResultID, err := primitive.ObjectIDFromHex(r.PathValue("keyResultId"))
	if err != nil {
		utils.HandleMessageResponse(w, "Invalid Key Result ID format", http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	okr, err := h.service.DeleteKeyResult(ctx, id, keyResultID)
	if err != nil {
		handleServiceError(w, err, "There was a problem deleting the Key Result")
		return
	}

	utils.HandleJSONResponse(w, models.NewOKRResponse("Key Result deleted successfully", okr), http.StatusOK)
}

func (h *OKRHandler) GetOKRStats(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := models.OKRFilter{
		Owner:  query.Get("ownerId"),
		Period: query.Get("period"),
		Year:   intQueryParam(query, "year", 0),
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	stats, err := h.service.GetOKRStats(ctx, filter)
	if err != nil {
		handleServiceError(w, err, "There was a problem retrieving the statistics")
		return
	}

	utils.HandleJSONResponse(w, stats, http.StatusOK)
}

// handleServiceError maps service errors onto the HTTP error taxonomy:
// validation 400, missing documents 404, anything else 500.
func handleServiceError(w http.ResponseWriter, err error, fallbackMsg string) {
	var validationError *service.ValidationError
	switch {
	case errors.As(err, &validationError):
		utils.HandleMessageResponse(w, validationError.Msg, http.StatusBadRequest)
	case errors.Is(err, service.ErrKeyResultNotFound):
		utils.HandleMessageResponse(w, "Key Result not found", http.StatusNotFound)
	case errors.Is(err, service.ErrNotFound):
		utils.HandleMessageResponse(w, "OKR not found", http.StatusNotFound)
	default:
		log.Printf("%s: %v", fallbackMsg, err)
		utils.HandleErrorResponse(w, fallbackMsg, err, http.StatusInternalServerError)
	}
}

func filterFromQuery(query url.Values) models.OKRFilter {
	return models.OKRFilter{
		Owner:      query.Get("owner"),
		Period:     query.Get("period"),
		Year:       intQueryParam(query, "year", 0),
		Status:     query.Get("status"),
		Category:   query.Get("category"),
		Team:       query.Get("team"),
		Visibility: query.Get("visibility"),
	}
}

func intQueryParam(query url.Values, key string, fallback int) int {
	value := query.Get(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
