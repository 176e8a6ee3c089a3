package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"wealthfolio/internal/auth"
	"wealthfolio/internal/core"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())
	list, err := s.store.ListTransactions(r.Context(), owner)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())
	t, err := s.store.GetTransaction(r.Context(), owner, chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	var t core.Transaction
	if err := readJSON(w, r, &t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t.ID = ""
	t.Owner = owner
	t.Title = sanitizeInput(t.Title)
	t.Category = sanitizeInput(t.Category)
	if err := t.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.txService.Create(r.Context(), t)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	s.financeStatsCache.DeletePrefix(owner + "|")
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	var t core.Transaction
	if err := readJSON(w, r, &t); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	t.ID = chi.URLParam(r, "id")
	t.Owner = owner
	t.Title = sanitizeInput(t.Title)
	t.Category = sanitizeInput(t.Category)
	if err := t.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.txService.Update(r.Context(), t)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	s.financeStatsCache.DeletePrefix(owner + "|")
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	if err := s.txService.Delete(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeStoreError(r, w, err)
		return
	}
	s.financeStatsCache.DeletePrefix(owner + "|")
	w.WriteHeader(http.StatusNoContent)
}
