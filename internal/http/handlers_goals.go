package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"wealthfolio/internal/auth"
	"wealthfolio/internal/core"
)

type goalRequest struct {
	Title    string           `json:"title"`
	Horizon  core.GoalHorizon `json:"horizon"`
	Deadline core.Date        `json:"deadline"`
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())
	list, err := s.store.ListGoals(r.Context(), owner)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	var req goalRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	g := core.Goal{
		Owner:    owner,
		Title:    sanitizeInput(req.Title),
		Horizon:  req.Horizon,
		Deadline: req.Deadline,
	}
	if err := g.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.store.CreateGoal(r.Context(), g)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	var req goalRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	g := core.Goal{
		ID:       chi.URLParam(r, "id"),
		Owner:    owner,
		Title:    sanitizeInput(req.Title),
		Horizon:  req.Horizon,
		Deadline: req.Deadline,
	}
	if err := g.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.store.UpdateGoal(r.Context(), g)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleToggleGoal(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	saved, err := s.store.ToggleGoal(r.Context(), owner, chi.URLParam(r, "id"), time.Now().UTC())
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	if err := s.store.DeleteGoal(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeStoreError(r, w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
