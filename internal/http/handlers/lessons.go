package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"learnd/internal/domain"
	"learnd/internal/entitlement"
)

type lessonRequest struct {
	ProjectName  string            `json:"project_name"`
	ClientName   string            `json:"client_name"`
	Satisfaction int               `json:"satisfaction"`
	Budget       string            `json:"budget_status"`
	Timeline     string            `json:"timeline_status"`
	ScopeChanged bool              `json:"scope_changed"`
	Notes        string            `json:"notes"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
}

type lessonDTO struct {
	ID           string            `json:"id"`
	ProjectName  string            `json:"project_name"`
	ClientName   string            `json:"client_name"`
	Satisfaction int               `json:"satisfaction"`
	Budget       string            `json:"budget_status"`
	Timeline     string            `json:"timeline_status"`
	ScopeChanged bool              `json:"scope_changed"`
	Notes        string            `json:"notes"`
	CustomFields map[string]string `json:"custom_fields,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

func lessonToDTO(l *domain.Lesson) lessonDTO {
	return lessonDTO{
		ID:           l.ID,
		ProjectName:  l.ProjectName,
		ClientName:   l.ClientName,
		Satisfaction: l.Satisfaction,
		Budget:       string(l.Budget),
		Timeline:     string(l.Timeline),
		ScopeChanged: l.ScopeChanged,
		Notes:        l.Notes,
		CustomFields: l.CustomFields,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

func (r lessonRequest) toDomain(userID, id string) *domain.Lesson {
	return &domain.Lesson{
		ID:           id,
		UserID:       userID,
		ProjectName:  r.ProjectName,
		ClientName:   r.ClientName,
		Satisfaction: r.Satisfaction,
		Budget:       domain.BudgetStatus(r.Budget),
		Timeline:     domain.TimelineStatus(r.Timeline),
		ScopeChanged: r.ScopeChanged,
		Notes:        r.Notes,
		CustomFields: r.CustomFields,
	}
}

func (a *App) LessonsCreate(w http.ResponseWriter, r *http.Request) {
	var req lessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	userID := a.currentUserID(r)
	tier, err := a.currentTier(r.Context(), userID)
	if err != nil {
		a.writeDomainError(w, err, "failed to load profile")
		return
	}
	if !a.requireQuota(w, r, tier, entitlement.QuotaLessons) {
		return
	}
	lesson, err := a.Lessons.Create(r.Context(), req.toDomain(userID, ""))
	if err != nil {
		a.writeDomainError(w, err, "failed to create lesson")
		return
	}
	a.recordUsage(r.Context(), userID, domain.UsageLessonCreated, map[string]any{"lesson_id": lesson.ID})
	a.json(w, http.StatusCreated, lessonToDTO(lesson))
}

func (a *App) LessonsList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	filter, err := lessonFilterFromQuery(r)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	lessons, err := a.Lessons.List(r.Context(), userID, filter)
	if err != nil {
		a.writeDomainError(w, err, "failed to list lessons")
		return
	}
	items := make([]lessonDTO, 0, len(lessons))
	for i := range lessons {
		items = append(items, lessonToDTO(&lessons[i]))
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) LessonGet(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	lesson, err := a.Lessons.GetByID(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		a.writeDomainError(w, err, "failed to load lesson")
		return
	}
	a.json(w, http.StatusOK, lessonToDTO(lesson))
}

func (a *App) LessonUpdate(w http.ResponseWriter, r *http.Request) {
	var req lessonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	userID := a.currentUserID(r)
	lesson, err := a.Lessons.Update(r.Context(), req.toDomain(userID, chi.URLParam(r, "id")))
	if err != nil {
		a.writeDomainError(w, err, "failed to update lesson")
		return
	}
	a.json(w, http.StatusOK, lessonToDTO(lesson))
}

func (a *App) LessonDelete(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if err := a.Lessons.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		a.writeDomainError(w, err, "failed to delete lesson")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func lessonFilterFromQuery(r *http.Request) (domain.LessonFilter, error) {
	q := r.URL.Query()
	filter := domain.LessonFilter{
		ClientName: q.Get("client"),
		Budget:     domain.BudgetStatus(q.Get("budget")),
		Timeline:   domain.TimelineStatus(q.Get("timeline")),
		Search:     q.Get("search"),
	}
	var err error
	if filter.MinSatisfaction, err = intQuery(q.Get("min_satisfaction")); err != nil {
		return filter, err
	}
	if filter.MaxSatisfaction, err = intQuery(q.Get("max_satisfaction")); err != nil {
		return filter, err
	}
	if filter.Limit, err = intQuery(q.Get("limit")); err != nil {
		return filter, err
	}
	if filter.Offset, err = intQuery(q.Get("offset")); err != nil {
		return filter, err
	}
	if v := q.Get("scope_changed"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return filter, err
		}
		filter.ScopeChanged = &b
	}
	if v := q.Get("from"); v != "" {
		if filter.CreatedFrom, err = time.Parse(time.RFC3339, v); err != nil {
			return filter, err
		}
	}
	if v := q.Get("to"); v != "" {
		if filter.CreatedTo, err = time.Parse(time.RFC3339, v); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

func intQuery(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}
