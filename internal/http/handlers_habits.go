package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"wealthfolio/internal/auth"
	"wealthfolio/internal/core"
)

type habitRequest struct {
	Title  string `json:"title"`
	Target int    `json:"target"`
}

type toggleHabitRequest struct {
	Date string `json:"date"`
}

func (s *Server) handleListHabits(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())
	list, err := s.store.ListHabits(r.Context(), owner)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleCreateHabit(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	var req habitRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	h := core.Habit{
		Owner:  owner,
		Title:  sanitizeInput(req.Title),
		Target: req.Target,
	}
	if h.Target == 0 {
		h.Target = core.DefaultHabitTarget
	}
	if err := h.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.store.CreateHabit(r.Context(), h)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	s.habitStatsCache.DeletePrefix(owner + "|")
	writeJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleUpdateHabit(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	var req habitRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	probe := core.Habit{Owner: owner, Title: sanitizeInput(req.Title), Target: req.Target}
	if err := probe.Validate(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	saved, err := s.store.UpdateHabit(r.Context(), owner, chi.URLParam(r, "id"), probe.Title, probe.Target)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	s.habitStatsCache.DeletePrefix(owner + "|")
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleToggleHabit(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	var req toggleHabitRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	day, err := core.ParseDay(req.Date)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "invalid date, want YYYY-MM-DD")
		return
	}

	saved, err := s.store.ToggleHabitDate(r.Context(), owner, chi.URLParam(r, "id"), day.Day())
	if err != nil {
		writeStoreError(r, w, err)
		return
	}
	s.habitStatsCache.DeletePrefix(owner + "|")
	writeJSON(w, http.StatusOK, saved)
}

func (s *Server) handleDeleteHabit(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	if err := s.store.DeleteHabit(r.Context(), owner, chi.URLParam(r, "id")); err != nil {
		writeStoreError(r, w, err)
		return
	}
	s.habitStatsCache.DeletePrefix(owner + "|")
	w.WriteHeader(http.StatusNoContent)
}
