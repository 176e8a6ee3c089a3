package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"wealthfolio/internal/core"
	"wealthfolio/internal/records"
)

const maxBodyBytes = 1 << 20 // 1 MiB

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Error: message})
}

// readJSON decodes the request body into v, rejecting oversized bodies.
func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// writeStoreError maps record-store errors onto HTTP statuses. Records owned
// by another user answer 401, matching what clients already expect from
// missing auth.
func writeStoreError(r *http.Request, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, records.ErrNotFound):
		writeError(w, http.StatusNotFound, "record not found")
	case errors.Is(err, records.ErrNotOwner):
		writeError(w, http.StatusUnauthorized, "not authorized")
	case errors.Is(err, records.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "email already registered")
	default:
		slog.ErrorContext(r.Context(), "Store error", "error", err, "url", r.URL.Path)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// sanitizeInput removes control characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// parseMonthParam reads a "month" query parameter in YYYY-MM form, defaulting
// to the current month.
func parseMonthParam(r *http.Request) (year, month int, err error) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		now := time.Now()
		return now.Year(), int(now.Month()), nil
	}
	t, perr := time.Parse("2006-01", v)
	if perr != nil {
		return 0, 0, fmt.Errorf("invalid month %q, want YYYY-MM", v)
	}
	return t.Year(), int(t.Month()), nil
}

// parseRefParam reads a "ref" query parameter as a calendar day, defaulting
// to today.
func parseRefParam(r *http.Request) (time.Time, error) {
	v := strings.TrimSpace(r.URL.Query().Get("ref"))
	if v == "" {
		return time.Now(), nil
	}
	d, err := core.ParseDay(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ref %q, want YYYY-MM-DD", v)
	}
	return d.Time, nil
}

// parseLimitParam reads a bounded positive "limit" query parameter; zero
// means "use the default".
func parseLimitParam(r *http.Request) (int, error) {
	v := strings.TrimSpace(r.URL.Query().Get("limit"))
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 || n > 100 {
		return 0, fmt.Errorf("invalid limit %q, want 1-100", v)
	}
	return n, nil
}
