package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rogerio-castellano/storefront/internal/shop"
	"go.uber.org/zap"
)

// readJSON tries to read the body of a request and converts it into JSON
func readJSON(w http.ResponseWriter, r *http.Request, data any) error {
	maxBytes := 1048576 // one megabyte
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	err := dec.Decode(data)
	if err != nil {
		return fmt.Errorf("failed to read JSON: %w", err)
	}

	err = dec.Decode(&struct{}{})
	if err != io.EOF {
		return errors.New("body must have only a single json value")
	}

	return nil
}

// writeJSON takes a response status code and arbitrary data and writes a json response to the client
func writeJSON(w http.ResponseWriter, status int, data any, headers ...http.Header) error {
	out, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if len(headers) > 0 {
		for key, value := range headers[0] {
			w.Header()[key] = value
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("failed to write to response: %w", err)
	}

	return nil
}

func (h *Handlers) respond(w http.ResponseWriter, status int, data any) {
	if err := writeJSON(w, status, data); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}

func productIDParam(r *http.Request) (int, error) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		return 0, errors.New("invalid product ID")
	}
	return id, nil
}

// writeShopError turns a shop error into the notice shown to the user.
func (h *Handlers) writeShopError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, shop.ErrProductNotFound), errors.Is(err, shop.ErrCartLineNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, shop.ErrOutOfStock), errors.Is(err, shop.ErrEmptyCart), errors.Is(err, shop.ErrInvalidStockChange):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, shop.ErrConfirmationRequired), errors.Is(err, shop.ErrQuantityOutOfRange):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, shop.ErrCatalogUnavailable), errors.Is(err, shop.ErrNotLoaded):
		http.Error(w, shop.ErrCatalogUnavailable.Error(), http.StatusServiceUnavailable)
	default:
		h.logger.Error("storefront operation failed", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
