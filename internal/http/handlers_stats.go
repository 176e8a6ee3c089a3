package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"wealthfolio/internal/auth"
	"wealthfolio/internal/core"
	"wealthfolio/internal/stats"
)

type habitStatsPayload struct {
	Month       string                   `json:"month"`
	Days        []stats.DayStat          `json:"days"`
	Consistency int                      `json:"consistency"`
	Leaderboard []stats.LeaderboardEntry `json:"leaderboard"`
	Declines    []stats.DeclineEntry     `json:"declines"`
}

type weekStatsPayload struct {
	Ref     string               `json:"ref"`
	PrevRef string               `json:"prevRef"`
	NextRef string               `json:"nextRef"`
	Days    []stats.WeekDayCount `json:"days"`
}

type financeStatsPayload struct {
	Balances   stats.Balances         `json:"balances"`
	Totals     stats.Totals           `json:"totals"`
	ByCategory []stats.CategoryAmount `json:"byCategory"`
	Month      *stats.MonthSummary    `json:"month,omitempty"`
}

func (s *Server) handleHabitStats(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	year, month, err := parseMonthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, err := parseLimitParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	key := fmt.Sprintf("%s|%04d-%02d|%d", owner, year, month, limit)
	if payload, found := s.habitStatsCache.Get(key); found {
		slog.DebugContext(r.Context(), "Habit stats cache hit", "year", year, "month", month)
		writeJSON(w, http.StatusOK, payload)
		return
	}

	habits, err := s.store.ListHabits(r.Context(), owner)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}

	// The decline audit judges the current month up to "today" only when the
	// selected month is the current one; past months use their last day.
	now := time.Now()
	ref := now
	if year != now.Year() || month != int(now.Month()) {
		ref = time.Date(year, time.Month(month), stats.DaysInMonth(year, month), 0, 0, 0, 0, time.UTC)
	}

	rollup := stats.MonthlyRollup(habits, year, month)
	payload := habitStatsPayload{
		Month:       stats.MonthPrefix(year, month),
		Days:        rollup,
		Consistency: stats.AverageConsistency(rollup),
		Leaderboard: stats.Leaderboard(habits, year, month, limit),
		Declines:    stats.DeclineAudit(habits, ref, limit),
	}

	s.habitStatsCache.Set(key, payload)
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) handleWeekStats(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	ref, err := parseRefParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	habits, err := s.store.ListHabits(r.Context(), owner)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}

	writeJSON(w, http.StatusOK, weekStatsPayload{
		Ref:     ref.Format(core.DayLayout),
		PrevRef: stats.PrevWeek(ref).Format(core.DayLayout),
		NextRef: stats.NextWeek(ref).Format(core.DayLayout),
		Days:    stats.WeeklyCounts(habits, ref),
	})
}

func (s *Server) handleFinanceStats(w http.ResponseWriter, r *http.Request) {
	owner, _ := auth.UserID(r.Context())

	q := r.URL.Query()
	yearStr := strings.TrimSpace(q.Get("year"))
	monthStr := strings.TrimSpace(q.Get("month"))

	var year, month int
	withMonth := yearStr != "" || monthStr != ""
	if withMonth {
		var err error
		year, err = strconv.Atoi(yearStr)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid year")
			return
		}
		month, err = strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			writeError(w, http.StatusBadRequest, "invalid month")
			return
		}
	}

	key := owner + "|all"
	if withMonth {
		key = fmt.Sprintf("%s|%04d-%02d", owner, year, month)
	}
	if payload, found := s.financeStatsCache.Get(key); found {
		slog.DebugContext(r.Context(), "Finance stats cache hit", "key_month", withMonth)
		writeJSON(w, http.StatusOK, payload)
		return
	}

	txs, err := s.store.ListTransactions(r.Context(), owner)
	if err != nil {
		writeStoreError(r, w, err)
		return
	}

	payload := financeStatsPayload{
		Balances:   stats.ComputeBalances(txs),
		Totals:     stats.ComputeTotals(txs),
		ByCategory: stats.ExpenseBreakdown(txs),
	}
	if withMonth {
		summary := stats.ComputeMonthSummary(txs, year, month)
		payload.Month = &summary
	}

	s.financeStatsCache.Set(key, payload)
	writeJSON(w, http.StatusOK, payload)
}
