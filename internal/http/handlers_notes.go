package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"wealthfolio/internal/auth"
	"wealthfolio/internal/core"
)

type noteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Color    string `json:"color"`
	IsPinned bool   `json:"isPinned"`
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())
	list, err := s.store.ListNotes(r.Context(), owner)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	var req noteRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	n := core.Note{
		Owner:    owner,
		Title:    sanitizeInput(req.Title),
		Content:  sanitizeInput(req.Content),
		Color:    req.Color,
		IsPinned: req.IsPinned,
	}
	if err := n.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.store.CreateNote(r.Context(), n)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	var req noteRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	n := core.Note{
		ID:       chi.URLParam(r, "id"),
		Owner:    owner,
		Title:    sanitizeInput(req.Title),
		Content:  sanitizeInput(req.Content),
		Color:    req.Color,
		IsPinned: req.IsPinned,
	}
	if err := n.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.store.UpdateNote(r.Context(), n)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	if err := s.store.DeleteNote(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeStoreError(r, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
