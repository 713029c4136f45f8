package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/San7122/shopsmart-pro-sub001/internal/services"
)

type StorefrontHandler struct {
	Service *services.StorefrontService
}

func NewStorefrontHandler(s *services.StorefrontService) *StorefrontHandler {
	return &StorefrontHandler{Service: s}
}

// GetStorefront serves the public catalog page. No auth: the slug is the
// only lookup key and nothing sensitive is in the response.
func (h *StorefrontHandler) GetStorefront(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	storefront, err := h.Service.GetStorefront(r.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrShopNotFound) {
			http.Error(w, "Shop not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(storefront)
}

// GetStorefrontProducts serves just the catalog items for clients that
// already have the shop header.
func (h *StorefrontHandler) GetStorefrontProducts(w http.ResponseWriter, r *http.Request) {
	slug := mux.Vars(r)["slug"]

	storefront, err := h.Service.GetStorefront(r.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrShopNotFound) {
			http.Error(w, "Shop not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(storefront.Products)
}
