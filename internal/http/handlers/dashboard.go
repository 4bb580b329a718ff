package handlers

import (
	"net/http"
	"time"

	"learnd/internal/entitlement"
	"learnd/internal/sqlinline"
)

type dashboardSummaryDTO struct {
	TotalLessons    int            `json:"total_lessons"`
	AvgSatisfaction float64        `json:"avg_satisfaction"`
	Budget          map[string]int `json:"budget"`
	Timeline        map[string]int `json:"timeline"`
	ScopeChanged    int            `json:"scope_changed"`
}

type dashboardClientDTO struct {
	ClientName      string  `json:"client_name"`
	LessonCount     int     `json:"lesson_count"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
}

type dashboardMonthDTO struct {
	Month           time.Time `json:"month"`
	LessonCount     int       `json:"lesson_count"`
	AvgSatisfaction float64   `json:"avg_satisfaction"`
}

// DashboardSummary returns the basic aggregates available on every tier.
func (a *App) DashboardSummary(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)

	var (
		dto                               dashboardSummaryDTO
		budgetUnder, budgetOn, budgetOver int
		tlEarly, tlOnTime, tlLate         int
	)
	row := a.SQL.QueryRow(r.Context(), sqlinline.QDashboardSummary, userID)
	if err := row.Scan(
		&dto.TotalLessons, &dto.AvgSatisfaction,
		&budgetUnder, &budgetOn, &budgetOver,
		&tlEarly, &tlOnTime, &tlLate,
		&dto.ScopeChanged,
	); err != nil {
		a.writeDomainError(w, err, "failed to load summary")
		return
	}
	dto.Budget = map[string]int{"under": budgetUnder, "on": budgetOn, "over": budgetOver}
	dto.Timeline = map[string]int{"early": tlEarly, "on_time": tlOnTime, "late": tlLate}
	a.json(w, http.StatusOK, dto)
}

// DashboardAdvanced returns the per-client and monthly breakdowns gated behind
// the custom dashboard capability.
func (a *App) DashboardAdvanced(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if _, ok := a.requireCapability(w, r, entitlement.CapabilityCustomDashboard); !ok {
		return
	}

	clients := []dashboardClientDTO{}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QDashboardClients, userID, 10)
	if err != nil {
		a.writeDomainError(w, err, "failed to load client breakdown")
		return
	}
	for rows.Next() {
		var c dashboardClientDTO
		if err := rows.Scan(&c.ClientName, &c.LessonCount, &c.AvgSatisfaction); err != nil {
			rows.Close()
			a.writeDomainError(w, err, "failed to scan client breakdown")
			return
		}
		clients = append(clients, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		a.writeDomainError(w, err, "failed to load client breakdown")
		return
	}

	monthly := []dashboardMonthDTO{}
	rows, err = a.SQL.Query(r.Context(), sqlinline.QDashboardMonthly, userID)
	if err != nil {
		a.writeDomainError(w, err, "failed to load monthly breakdown")
		return
	}
	defer rows.Close()
	for rows.Next() {
		var m dashboardMonthDTO
		if err := rows.Scan(&m.Month, &m.LessonCount, &m.AvgSatisfaction); err != nil {
			a.writeDomainError(w, err, "failed to scan monthly breakdown")
			return
		}
		monthly = append(monthly, m)
	}
	if err := rows.Err(); err != nil {
		a.writeDomainError(w, err, "failed to load monthly breakdown")
		return
	}

	a.json(w, http.StatusOK, map[string]any{"clients": clients, "monthly": monthly})
}
